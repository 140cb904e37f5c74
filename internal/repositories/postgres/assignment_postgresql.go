package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/edusync-app/school-service/internal/models"
	"github.com/edusync-app/school-service/internal/repositories"
)

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentPostgreSQL(db *gorm.DB) repositories.AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	if err := r.db.WithContext(ctx).Create(assignment).Error; err != nil {
		return handleDBError(err, "create assignment")
	}
	return nil
}

func (r *assignmentRepository) List(ctx context.Context) ([]*models.Assignment, error) {
	var assignments []*models.Assignment
	if err := r.db.WithContext(ctx).Order("due_date").Find(&assignments).Error; err != nil {
		return nil, handleDBError(err, "list assignments")
	}
	return assignments, nil
}

func (r *assignmentRepository) ListByCourses(ctx context.Context, courseIDs []uint) ([]*models.Assignment, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}
	var assignments []*models.Assignment
	err := r.db.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Order("due_date").
		Find(&assignments).Error
	if err != nil {
		return nil, handleDBError(err, "list assignments by courses")
	}
	return assignments, nil
}

func (r *assignmentRepository) CreateStudentAssignment(ctx context.Context, sa *models.StudentAssignment) (bool, error) {
	inserted, err := insertIgnore(r.db.WithContext(ctx), sa)
	if err != nil {
		return false, handleDBError(err, "create student assignment")
	}
	return inserted, nil
}

func (r *assignmentRepository) ListStudentAssignments(ctx context.Context, studentID uint) ([]*models.StudentAssignment, error) {
	var records []*models.StudentAssignment
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Preload("Assignment").
		Preload("Assignment.Course").
		Find(&records).Error
	if err != nil {
		return nil, handleDBError(err, "list student assignments")
	}
	return records, nil
}
