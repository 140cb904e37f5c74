package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/edusync-app/school-service/internal/models"
	"github.com/edusync-app/school-service/internal/repositories"
)

// ===== TEACHER REPOSITORY =====

type teacherRepository struct {
	db *gorm.DB
}

func NewTeacherPostgreSQL(db *gorm.DB) repositories.TeacherRepository {
	return &teacherRepository{db: db}
}

func (r *teacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	if err := r.db.WithContext(ctx).Create(teacher).Error; err != nil {
		return handleDBError(err, "create teacher")
	}
	return nil
}

func (r *teacherRepository) GetByID(ctx context.Context, id uint) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := r.db.WithContext(ctx).Preload("User").First(&teacher, id).Error; err != nil {
		return nil, handleDBError(err, "get teacher by id")
	}
	return &teacher, nil
}

func (r *teacherRepository) GetByUserID(ctx context.Context, userID uint) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&teacher).Error; err != nil {
		return nil, handleDBError(err, "get teacher by user id")
	}
	return &teacher, nil
}

func (r *teacherRepository) List(ctx context.Context) ([]*models.Teacher, error) {
	var teachers []*models.Teacher
	if err := r.db.WithContext(ctx).Preload("User").Order("id").Find(&teachers).Error; err != nil {
		return nil, handleDBError(err, "list teachers")
	}
	return teachers, nil
}

// ===== STUDENT REPOSITORY =====

type studentRepository struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	if err := r.db.WithContext(ctx).Create(student).Error; err != nil {
		return handleDBError(err, "create student")
	}
	return nil
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Preload("User").First(&student, id).Error; err != nil {
		return nil, handleDBError(err, "get student by id")
	}
	return &student, nil
}

func (r *studentRepository) GetByUserID(ctx context.Context, userID uint) (*models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&student).Error; err != nil {
		return nil, handleDBError(err, "get student by user id")
	}
	return &student, nil
}

func (r *studentRepository) List(ctx context.Context) ([]*models.Student, error) {
	var students []*models.Student
	if err := r.db.WithContext(ctx).Preload("User").Order("id").Find(&students).Error; err != nil {
		return nil, handleDBError(err, "list students")
	}
	return students, nil
}

func (r *studentRepository) ListByGradeSection(ctx context.Context, grade int, section string) ([]*models.Student, error) {
	var students []*models.Student
	err := r.db.WithContext(ctx).
		Where("grade = ? AND section = ?", grade, section).
		Order("roll_number").
		Find(&students).Error
	if err != nil {
		return nil, handleDBError(err, "list students by grade/section")
	}
	return students, nil
}
