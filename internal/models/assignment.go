package models

import "time"

type AssignmentStatus string

const (
	AssignmentNotStarted AssignmentStatus = "not_started"
	AssignmentPending    AssignmentStatus = "pending"
	AssignmentCompleted  AssignmentStatus = "completed"
)

type Assignment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CourseID    uint      `json:"course_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null;size:200" validate:"required,max=200"`
	Description *string   `json:"description" gorm:"type:text"`
	DueDate     time.Time `json:"due_date" gorm:"not null;index"`

	// Normally a teacher's user id.
	CreatedBy uint `json:"created_by" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Course  Course `json:"course" gorm:"foreignKey:CourseID"`
	Creator User   `json:"creator" gorm:"foreignKey:CreatedBy"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// StudentAssignment joins Student x Assignment.
//
// Invariants: Grade is set only when Status is completed; SubmittedAt is
// set only when Status is completed or pending.
type StudentAssignment struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	StudentID    uint             `json:"student_id" gorm:"not null;uniqueIndex:idx_student_assignment"`
	AssignmentID uint             `json:"assignment_id" gorm:"not null;uniqueIndex:idx_student_assignment"`
	Status       AssignmentStatus `json:"status" gorm:"not null;default:not_started;index" validate:"omitempty,oneof=not_started pending completed"`
	Grade        *string          `json:"grade" gorm:"size:2"`
	SubmittedAt  *time.Time       `json:"submitted_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Student    Student    `json:"student" gorm:"foreignKey:StudentID"`
	Assignment Assignment `json:"assignment" gorm:"foreignKey:AssignmentID"`
}

func (StudentAssignment) TableName() string {
	return "student_assignments"
}
