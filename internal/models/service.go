package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Slug        string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text;not null" json:"description"`
	ShortDesc   string `gorm:"size:200;not null" json:"short_desc"`

	Price       float64 `json:"price"`
	PriceUnit   string  `gorm:"size:50" json:"price_unit"`
	DurationMin int     `json:"duration_min"`

	ImageURL string `gorm:"size:500" json:"image_url"`
	Active   bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
