package models

import "time"

// Lead capture from the public contact form. No login required; write-only
// from the public side, read-only from the admin area.
type ContactRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Email   string `gorm:"size:100;not null" json:"email"`
	Phone   string `gorm:"size:30" json:"phone"`
	Service string `gorm:"size:100" json:"service"`
	Message string `gorm:"size:2000;not null" json:"message"`

	CreatedAt time.Time `json:"created_at"`
}
