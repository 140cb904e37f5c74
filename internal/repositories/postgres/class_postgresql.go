package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/edusync-app/school-service/internal/models"
	"github.com/edusync-app/school-service/internal/repositories"
)

type classRepository struct {
	db *gorm.DB
}

func NewClassPostgreSQL(db *gorm.DB) repositories.ClassRepository {
	return &classRepository{db: db}
}

// ===== CLASSES =====

func (r *classRepository) CreateClass(ctx context.Context, class *models.Class) error {
	if err := r.db.WithContext(ctx).Create(class).Error; err != nil {
		return handleDBError(err, "create class")
	}
	return nil
}

func (r *classRepository) GetClassByGradeSection(ctx context.Context, grade int, section string) (*models.Class, error) {
	var class models.Class
	err := r.db.WithContext(ctx).
		Where("grade = ? AND section = ?", grade, section).
		First(&class).Error
	if err != nil {
		return nil, handleDBError(err, "get class by grade/section")
	}
	return &class, nil
}

func (r *classRepository) ListClasses(ctx context.Context) ([]*models.Class, error) {
	var classes []*models.Class
	if err := r.db.WithContext(ctx).Order("grade, section").Find(&classes).Error; err != nil {
		return nil, handleDBError(err, "list classes")
	}
	return classes, nil
}

func (r *classRepository) ListClassesByGrade(ctx context.Context, grade int) ([]*models.Class, error) {
	var classes []*models.Class
	if err := r.db.WithContext(ctx).Where("grade = ?", grade).Order("section").Find(&classes).Error; err != nil {
		return nil, handleDBError(err, "list classes by grade")
	}
	return classes, nil
}

// ===== COURSES =====

func (r *classRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		return handleDBError(err, "create course")
	}
	return nil
}

func (r *classRepository) ListCourses(ctx context.Context) ([]*models.Course, error) {
	var courses []*models.Course
	if err := r.db.WithContext(ctx).Order("id").Find(&courses).Error; err != nil {
		return nil, handleDBError(err, "list courses")
	}
	return courses, nil
}

// ===== LINKS =====

func (r *classRepository) LinkTeacherClass(ctx context.Context, link *models.TeacherClass) (bool, error) {
	inserted, err := insertIgnore(r.db.WithContext(ctx), link)
	if err != nil {
		return false, handleDBError(err, "link teacher to class")
	}
	return inserted, nil
}

func (r *classRepository) LinkClassCourse(ctx context.Context, link *models.ClassCourse) (bool, error) {
	inserted, err := insertIgnore(r.db.WithContext(ctx), link)
	if err != nil {
		return false, handleDBError(err, "link course to class")
	}
	return inserted, nil
}

func (r *classRepository) ListTeacherClasses(ctx context.Context, teacherID uint) ([]*models.TeacherClass, error) {
	var links []*models.TeacherClass
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Preload("Class").
		Find(&links).Error
	if err != nil {
		return nil, handleDBError(err, "list teacher classes")
	}
	return links, nil
}

func (r *classRepository) ListClassCourses(ctx context.Context, classID uint) ([]*models.ClassCourse, error) {
	var links []*models.ClassCourse
	err := r.db.WithContext(ctx).
		Where("class_id = ?", classID).
		Preload("Course").
		Find(&links).Error
	if err != nil {
		return nil, handleDBError(err, "list class courses")
	}
	return links, nil
}

func (r *classRepository) ListClassCoursesByGrade(ctx context.Context, grade int) ([]*models.ClassCourse, error) {
	var links []*models.ClassCourse
	err := r.db.WithContext(ctx).
		Joins("JOIN classes ON classes.id = class_courses.class_id").
		Where("classes.grade = ?", grade).
		Find(&links).Error
	if err != nil {
		return nil, handleDBError(err, "list class courses by grade")
	}
	return links, nil
}
