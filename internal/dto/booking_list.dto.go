package dto

import "time"

type BookingListDTO struct {
	ID            uint      `json:"id"`
	Reference     string    `json:"reference"`
	ScheduledDate time.Time `json:"scheduled_date"`
	ScheduledTime string    `json:"scheduled_time"`
	Address       string    `json:"address"`
	Notes         string    `json:"notes,omitempty"`
	TotalPrice    float64   `json:"total_price"`
	Status        string    `json:"status"`
	ServiceName   string    `json:"service_name"`
	ServiceSlug   string    `json:"service_slug"`
}
