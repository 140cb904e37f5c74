package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edusync-app/school-service/internal/repositories"
)

// handleDBError translates gorm errors into repository sentinels.
func handleDBError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repositories.ErrAlreadyExists
	}
	return fmt.Errorf("%s: %w", op, err)
}

// insertIgnore performs an idempotent insert: a conflicting row is skipped
// rather than raised. Reports whether a row was actually inserted, making
// the "inserted" vs "already exists, skipped" outcomes explicit.
func insertIgnore(db *gorm.DB, value interface{}) (bool, error) {
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(value)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// applySort appends a sanitized ORDER BY. Only the allow-listed columns
// are accepted; anything else falls back to created_at.
func applySort(db *gorm.DB, sortBy, sortOrder string, allowed map[string]bool) *gorm.DB {
	if !allowed[sortBy] {
		sortBy = "created_at"
	}
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	return db.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))
}
