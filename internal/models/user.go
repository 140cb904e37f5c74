package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent     UserRole = "student"
	RoleTeacher     UserRole = "teacher"
	RolePrincipal   UserRole = "principal"
	RoleAdmin       UserRole = "admin"
	RoleSuperAdmin  UserRole = "super-admin"
	RoleFinancial   UserRole = "financial"
	RoleAdmission   UserRole = "admission"
	RoleSchoolAdmin UserRole = "school-admin"
	RoleLabs        UserRole = "labs"
	RoleClub        UserRole = "club"
	RoleLibrary     UserRole = "library"
)

// AllRoles lists every role the system recognizes. Route allow-lists and
// the seeder draw from this closed set only.
var AllRoles = []UserRole{
	RoleStudent, RoleTeacher, RolePrincipal, RoleAdmin, RoleSuperAdmin,
	RoleFinancial, RoleAdmission, RoleSchoolAdmin, RoleLabs, RoleClub,
	RoleLibrary,
}

// Valid reports whether r is a member of the closed role set.
func (r UserRole) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Name         string   `json:"name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	PasswordHash string   `json:"-" gorm:"column:password_hash;not null;size:255"`
	Role         UserRole `json:"role" gorm:"not null;size:20;index" validate:"required"`

	// Profile info
	AvatarURL *string `json:"avatar_url" gorm:"size:500"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// Teacher extends a User with role=teacher.
type Teacher struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	UserID  uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	Subject string `json:"subject" gorm:"not null;size:100"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User    User           `json:"user" gorm:"foreignKey:UserID"`
	Classes []TeacherClass `json:"classes,omitempty" gorm:"foreignKey:TeacherID"`
}

func (Teacher) TableName() string {
	return "teachers"
}

// Student extends a User with role=student.
type Student struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	UserID     uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	RollNumber string `json:"roll_number" gorm:"uniqueIndex;not null;size:20"`
	Grade      int    `json:"grade" gorm:"not null;index" validate:"min=1,max=12"`
	Section    string `json:"section" gorm:"not null;size:5"`

	// Rolling summary maintained by the seeder / attendance jobs
	AttendancePercentage float64 `json:"attendance_percentage" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `json:"user" gorm:"foreignKey:UserID"`
}

func (Student) TableName() string {
	return "students"
}
