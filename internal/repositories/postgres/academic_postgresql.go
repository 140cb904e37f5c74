package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/edusync-app/school-service/internal/models"
	"github.com/edusync-app/school-service/internal/repositories"
)

type academicRepository struct {
	db *gorm.DB
}

func NewAcademicPostgreSQL(db *gorm.DB) repositories.AcademicRepository {
	return &academicRepository{db: db}
}

// ===== SCHOOL =====

func (r *academicRepository) CreateSchool(ctx context.Context, school *models.School) error {
	if err := r.db.WithContext(ctx).Create(school).Error; err != nil {
		return handleDBError(err, "create school")
	}
	return nil
}

func (r *academicRepository) GetSchool(ctx context.Context) (*models.School, error) {
	var school models.School
	if err := r.db.WithContext(ctx).First(&school).Error; err != nil {
		return nil, handleDBError(err, "get school")
	}
	return &school, nil
}

// ===== ACADEMIC YEAR =====

func (r *academicRepository) CreateYear(ctx context.Context, year *models.AcademicYear) error {
	if err := r.db.WithContext(ctx).Create(year).Error; err != nil {
		return handleDBError(err, "create academic year")
	}
	return nil
}

func (r *academicRepository) GetCurrentYear(ctx context.Context) (*models.AcademicYear, error) {
	var year models.AcademicYear
	if err := r.db.WithContext(ctx).Where("is_current = ?", true).First(&year).Error; err != nil {
		return nil, handleDBError(err, "get current academic year")
	}
	return &year, nil
}

func (r *academicRepository) ListYears(ctx context.Context) ([]*models.AcademicYear, error) {
	var years []*models.AcademicYear
	if err := r.db.WithContext(ctx).Order("start_date desc").Find(&years).Error; err != nil {
		return nil, handleDBError(err, "list academic years")
	}
	return years, nil
}

// SetCurrentYear clears every other is_current flag in the same statement
// pair so exactly one year stays current.
func (r *academicRepository) SetCurrentYear(ctx context.Context, yearID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.AcademicYear{}).
			Where("is_current = ?", true).
			Update("is_current", false).Error; err != nil {
			return handleDBError(err, "clear current year")
		}
		result := tx.Model(&models.AcademicYear{}).
			Where("id = ?", yearID).
			Update("is_current", true)
		if result.Error != nil {
			return handleDBError(result.Error, "set current year")
		}
		if result.RowsAffected == 0 {
			return repositories.ErrNotFound
		}
		return nil
	})
}

// ===== TERM =====

func (r *academicRepository) CreateTerm(ctx context.Context, term *models.Term) error {
	if err := r.db.WithContext(ctx).Create(term).Error; err != nil {
		return handleDBError(err, "create term")
	}
	return nil
}

func (r *academicRepository) GetCurrentTerm(ctx context.Context) (*models.Term, error) {
	var term models.Term
	if err := r.db.WithContext(ctx).Where("is_current = ?", true).First(&term).Error; err != nil {
		return nil, handleDBError(err, "get current term")
	}
	return &term, nil
}

func (r *academicRepository) ListRecentTerms(ctx context.Context, limit int) ([]*models.Term, error) {
	var terms []*models.Term
	query := r.db.WithContext(ctx).Order("start_date desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&terms).Error; err != nil {
		return nil, handleDBError(err, "list recent terms")
	}
	return terms, nil
}

func (r *academicRepository) SetCurrentTerm(ctx context.Context, termID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Term{}).
			Where("is_current = ?", true).
			Update("is_current", false).Error; err != nil {
			return handleDBError(err, "clear current term")
		}
		result := tx.Model(&models.Term{}).
			Where("id = ?", termID).
			Update("is_current", true)
		if result.Error != nil {
			return handleDBError(result.Error, "set current term")
		}
		if result.RowsAffected == 0 {
			return repositories.ErrNotFound
		}
		return nil
	})
}
