package models

import "time"

type Booking struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex;not null" json:"reference"`

	UserID uint `json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	ScheduledDate time.Time `json:"scheduled_date"`
	ScheduledTime string    `gorm:"size:5" json:"scheduled_time"`

	Address string `gorm:"size:500;not null" json:"address"`
	Notes   string `gorm:"size:1000" json:"notes"`

	// Price captured at creation time; later edits to the service do not
	// change what the customer agreed to pay.
	TotalPrice float64 `json:"total_price"`

	Status      string     `gorm:"size:20;default:'PENDING'" json:"status"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
