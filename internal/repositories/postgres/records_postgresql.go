package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/edusync-app/school-service/internal/models"
	"github.com/edusync-app/school-service/internal/repositories"
)

type recordsRepository struct {
	db *gorm.DB
}

func NewRecordsPostgreSQL(db *gorm.DB) repositories.RecordsRepository {
	return &recordsRepository{db: db}
}

// ===== ATTENDANCE =====

func (r *recordsRepository) CreateAttendance(ctx context.Context, att *models.StudentAttendance) (bool, error) {
	inserted, err := insertIgnore(r.db.WithContext(ctx), att)
	if err != nil {
		return false, handleDBError(err, "create attendance")
	}
	return inserted, nil
}

func (r *recordsRepository) ListAttendance(ctx context.Context, filters repositories.AttendanceFilters) ([]*models.StudentAttendance, int64, error) {
	var records []*models.StudentAttendance
	var total int64

	query := r.db.WithContext(ctx).Model(&models.StudentAttendance{})
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.ClassID != nil {
		query = query.Where("class_id = ?", *filters.ClassID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.DateFrom != nil {
		query = query.Where("date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("date <= ?", *filters.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count attendance")
	}

	query = query.Order("date desc")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}

	if err := query.Find(&records).Error; err != nil {
		return nil, 0, handleDBError(err, "list attendance")
	}

	return records, total, nil
}

// ===== GRADES =====

func (r *recordsRepository) CreateGrade(ctx context.Context, grade *models.StudentGrade) (bool, error) {
	inserted, err := insertIgnore(r.db.WithContext(ctx), grade)
	if err != nil {
		return false, handleDBError(err, "create grade")
	}
	return inserted, nil
}

func (r *recordsRepository) ListGrades(ctx context.Context, filters repositories.GradeFilters) ([]*models.StudentGrade, int64, error) {
	var grades []*models.StudentGrade
	var total int64

	query := r.db.WithContext(ctx).Model(&models.StudentGrade{})
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.CourseID != nil {
		query = query.Where("course_id = ?", *filters.CourseID)
	}
	if filters.TermID != nil {
		query = query.Where("term_id = ?", *filters.TermID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count grades")
	}

	query = query.Preload("Course").Preload("Term").Order("id")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}

	if err := query.Find(&grades).Error; err != nil {
		return nil, 0, handleDBError(err, "list grades")
	}

	return grades, total, nil
}
