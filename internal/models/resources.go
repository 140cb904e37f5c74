package models

import "time"

// LibraryBook tracks physical copies. Available never exceeds Quantity;
// the validator enforces 0 <= available <= quantity on writes.
type LibraryBook struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	Title     string  `json:"title" gorm:"not null;size:200" validate:"required,max=200"`
	Author    string  `json:"author" gorm:"size:100"`
	ISBN      *string `json:"isbn" gorm:"uniqueIndex;size:20"`
	Quantity  int     `json:"quantity" gorm:"not null;default:0" validate:"min=0"`
	Available int     `json:"available" gorm:"not null;default:0" validate:"min=0,ltefield=Quantity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (LibraryBook) TableName() string {
	return "library_books"
}

// LabResource tracks lab equipment stock with the same quantity pairing.
type LabResource struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"not null;size:200" validate:"required,max=200"`
	Lab       string `json:"lab" gorm:"size:100"`
	Quantity  int    `json:"quantity" gorm:"not null;default:0" validate:"min=0"`
	Available int    `json:"available" gorm:"not null;default:0" validate:"min=0,ltefield=Quantity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (LabResource) TableName() string {
	return "lab_resources"
}
