package models

import "time"

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// StudentAttendance records one status per student, class and school day.
type StudentAttendance struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	StudentID uint             `json:"student_id" gorm:"not null;uniqueIndex:idx_attendance_day"`
	ClassID   uint             `json:"class_id" gorm:"not null;uniqueIndex:idx_attendance_day"`
	Date      time.Time        `json:"date" gorm:"not null;uniqueIndex:idx_attendance_day;index"`
	Status    AttendanceStatus `json:"status" gorm:"not null;size:10" validate:"required,oneof=present absent late"`

	// Free text: reason for absence / lateness detail.
	Note *string `json:"note" gorm:"size:255"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Student Student `json:"student" gorm:"foreignKey:StudentID"`
	Class   Class   `json:"class" gorm:"foreignKey:ClassID"`
}

func (StudentAttendance) TableName() string {
	return "student_attendance"
}

// StudentGrade holds one letter grade per student, course and term.
type StudentGrade struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	StudentID uint   `json:"student_id" gorm:"not null;uniqueIndex:idx_student_grade"`
	CourseID  uint   `json:"course_id" gorm:"not null;uniqueIndex:idx_student_grade"`
	TermID    uint   `json:"term_id" gorm:"not null;uniqueIndex:idx_student_grade"`
	Grade     string `json:"grade" gorm:"not null;size:2" validate:"required,oneof=A B C D F"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Student Student `json:"student" gorm:"foreignKey:StudentID"`
	Course  Course  `json:"course" gorm:"foreignKey:CourseID"`
	Term    Term    `json:"term" gorm:"foreignKey:TermID"`
}

func (StudentGrade) TableName() string {
	return "student_grades"
}
