package models

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:30" json:"phone"`
	Address      string `gorm:"size:500" json:"address"`
	Role         string `gorm:"size:20;default:'USER'" json:"role"`

	// Deactivated accounts keep their row (and booking history) but are
	// hidden from listings and cannot log in.
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
