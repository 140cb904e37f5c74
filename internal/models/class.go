package models

import "time"

type Class struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	Name           string `json:"name" gorm:"not null;size:50"`
	Grade          int    `json:"grade" gorm:"not null;index" validate:"min=1,max=12"`
	Section        string `json:"section" gorm:"not null;size:5"`
	AcademicYearID uint   `json:"academic_year_id" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	AcademicYear AcademicYear   `json:"academic_year" gorm:"foreignKey:AcademicYearID"`
	Teachers     []TeacherClass `json:"teachers,omitempty" gorm:"foreignKey:ClassID"`
	Courses      []ClassCourse  `json:"courses,omitempty" gorm:"foreignKey:ClassID"`
}

func (Class) TableName() string {
	return "classes"
}

type Course struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null;size:100"`
	Code        string  `json:"code" gorm:"uniqueIndex;not null;size:20" validate:"required,max=20"`
	Description *string `json:"description" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Course) TableName() string {
	return "courses"
}

// TeacherClass links a teacher to a class they teach in.
type TeacherClass struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	TeacherID uint `json:"teacher_id" gorm:"not null;uniqueIndex:idx_teacher_class"`
	ClassID   uint `json:"class_id" gorm:"not null;uniqueIndex:idx_teacher_class"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Teacher Teacher `json:"teacher" gorm:"foreignKey:TeacherID"`
	Class   Class   `json:"class" gorm:"foreignKey:ClassID"`
}

func (TeacherClass) TableName() string {
	return "teacher_classes"
}

// ClassCourse links a course to a class and records the teacher of record
// for that course in that class.
type ClassCourse struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	ClassID   uint `json:"class_id" gorm:"not null;uniqueIndex:idx_class_course"`
	CourseID  uint `json:"course_id" gorm:"not null;uniqueIndex:idx_class_course"`
	TeacherID uint `json:"teacher_id" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Class   Class   `json:"class" gorm:"foreignKey:ClassID"`
	Course  Course  `json:"course" gorm:"foreignKey:CourseID"`
	Teacher Teacher `json:"teacher" gorm:"foreignKey:TeacherID"`
}

func (ClassCourse) TableName() string {
	return "class_courses"
}
