package models

import (
	"time"

	"gorm.io/datatypes"
)

// School is the single settings row for the installation.
type School struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"not null;size:200" validate:"required,max=200"`
	Address string `json:"address" gorm:"size:500"`
	Phone   string `json:"phone" gorm:"size:30"`
	Email   string `json:"email" gorm:"size:255" validate:"omitempty,email"`

	// Branding colors as a structured JSON document, e.g.
	// {"primary":"#1e40af","secondary":"#f59e0b"}
	Branding datatypes.JSON `json:"branding"`

	// Ordered band -> letter mapping, e.g.
	// [{"min":90,"letter":"A"},{"min":80,"letter":"B"},...]
	GradingScale datatypes.JSON `json:"grading_scale"`

	Timezone string `json:"timezone" gorm:"size:64;default:UTC"`
	Currency string `json:"currency" gorm:"size:8;default:USD"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (School) TableName() string {
	return "school_settings"
}

type AcademicYear struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:20;uniqueIndex"`
	StartDate time.Time `json:"start_date" gorm:"not null"`
	EndDate   time.Time `json:"end_date" gorm:"not null"`

	// Exactly one year carries is_current=true at any time.
	IsCurrent bool `json:"is_current" gorm:"not null;default:false;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Terms []Term `json:"terms,omitempty" gorm:"foreignKey:AcademicYearID"`
}

func (AcademicYear) TableName() string {
	return "academic_years"
}

type Term struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	AcademicYearID uint      `json:"academic_year_id" gorm:"not null;index"`
	Name           string    `json:"name" gorm:"not null;size:50"`
	StartDate      time.Time `json:"start_date" gorm:"not null"`
	EndDate        time.Time `json:"end_date" gorm:"not null"`

	// Exactly one term within the current year carries is_current=true.
	IsCurrent bool `json:"is_current" gorm:"not null;default:false;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	AcademicYear AcademicYear `json:"academic_year" gorm:"foreignKey:AcademicYearID"`
}

func (Term) TableName() string {
	return "school_terms"
}
