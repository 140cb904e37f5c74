package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/edusync-app/school-service/internal/models"
	"github.com/edusync-app/school-service/internal/repositories"
)

// resourceEntry binds an exposed table name to its model constructors.
// Only registered tables are reachable; the table name is never used as a
// raw SQL identifier from user input.
type resourceEntry struct {
	newModel func() any
	newSlice func() any
}

func entryFor[T any]() resourceEntry {
	return resourceEntry{
		newModel: func() any { return new(T) },
		newSlice: func() any { return new([]T) },
	}
}

// resourceRegistry lists the tables the generic CRUD endpoint may touch.
var resourceRegistry = map[string]resourceEntry{
	"users":           entryFor[models.User](),
	"teachers":        entryFor[models.Teacher](),
	"students":        entryFor[models.Student](),
	"classes":         entryFor[models.Class](),
	"courses":         entryFor[models.Course](),
	"assignments":     entryFor[models.Assignment](),
	"calendar_events": entryFor[models.CalendarEvent](),
	"library_books":   entryFor[models.LibraryBook](),
	"lab_resources":   entryFor[models.LabResource](),
}

type resourceRepository struct {
	db *gorm.DB
}

func NewResourcePostgreSQL(db *gorm.DB) repositories.ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) Tables() []string {
	tables := make([]string, 0, len(resourceRegistry))
	for name := range resourceRegistry {
		tables = append(tables, name)
	}
	sort.Strings(tables)
	return tables
}

func (r *resourceRepository) List(ctx context.Context, table string, query models.ListQuery) (any, int64, error) {
	entry, ok := resourceRegistry[table]
	if !ok {
		return nil, 0, fmt.Errorf("unknown resource table %q: %w", table, repositories.ErrNotFound)
	}

	model := entry.newModel()
	dest := entry.newSlice()

	q := r.db.WithContext(ctx).Model(model)
	for column, value := range query.Filter {
		// Filter keys are matched against gorm's column naming; unknown
		// columns surface as a database error rather than being ignored.
		q = q.Where(map[string]interface{}{column: value})
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count "+table)
	}

	if query.Size > 0 {
		page := query.Page
		if page < 1 {
			page = 1
		}
		q = q.Limit(query.Size).Offset((page - 1) * query.Size)
	}
	q = applySort(q, query.SortBy, query.SortOrder, map[string]bool{
		"created_at": true, "updated_at": true, "id": true, "name": true, "title": true,
	})

	if err := q.Find(dest).Error; err != nil {
		return nil, 0, handleDBError(err, "list "+table)
	}

	return dest, total, nil
}

func (r *resourceRepository) Create(ctx context.Context, table string, body []byte) (any, error) {
	entry, ok := resourceRegistry[table]
	if !ok {
		return nil, fmt.Errorf("unknown resource table %q: %w", table, repositories.ErrNotFound)
	}

	model := entry.newModel()
	if err := json.Unmarshal(body, model); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", table, err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, handleDBError(err, "create "+table)
	}
	return model, nil
}

func (r *resourceRepository) Update(ctx context.Context, table string, id uint, body []byte) (any, error) {
	entry, ok := resourceRegistry[table]
	if !ok {
		return nil, fmt.Errorf("unknown resource table %q: %w", table, repositories.ErrNotFound)
	}

	model := entry.newModel()
	if err := r.db.WithContext(ctx).First(model, id).Error; err != nil {
		return nil, handleDBError(err, "get "+table)
	}

	if err := json.Unmarshal(body, model); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", table, err)
	}

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return nil, handleDBError(err, "update "+table)
	}
	return model, nil
}

func (r *resourceRepository) Delete(ctx context.Context, table string, id uint) error {
	entry, ok := resourceRegistry[table]
	if !ok {
		return fmt.Errorf("unknown resource table %q: %w", table, repositories.ErrNotFound)
	}

	result := r.db.WithContext(ctx).Delete(entry.newModel(), id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete "+table)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
