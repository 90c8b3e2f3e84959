package validate

import (
	"strings"
	"time"
)

type BookingInput struct {
	ServiceID     uint   `json:"service_id"`
	ScheduledDate string `json:"scheduled_date"`
	ScheduledTime string `json:"scheduled_time"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

// Booking takes the current time as an argument so the date-not-in-past rule
// stays deterministic.
func Booking(in BookingInput, now time.Time) (BookingInput, Errors) {
	errs := Errors{}

	in.ScheduledDate = strings.TrimSpace(in.ScheduledDate)
	in.ScheduledTime = strings.TrimSpace(in.ScheduledTime)
	in.Address = strings.TrimSpace(in.Address)
	in.Notes = strings.TrimSpace(in.Notes)

	if in.ServiceID == 0 {
		errs.add("service_id", "Please select a service")
	}

	if in.ScheduledDate == "" {
		errs.add("scheduled_date", "Date is required")
	} else if date, err := time.Parse("2006-01-02", in.ScheduledDate); err != nil {
		errs.add("scheduled_date", "Invalid date format")
	} else {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if date.Before(today) {
			errs.add("scheduled_date", "Date must be today or in the future")
		}
	}

	switch {
	case in.ScheduledTime == "":
		errs.add("scheduled_time", "Time is required")
	case !timeRe.MatchString(in.ScheduledTime):
		errs.add("scheduled_time", "Invalid time format")
	}

	switch {
	case in.Address == "":
		errs.add("address", "Address is required")
	case len(in.Address) < 10:
		errs.add("address", "Please provide a complete address")
	case len(in.Address) > 500:
		errs.add("address", "Address is too long")
	}

	if len(in.Notes) > 1000 {
		errs.add("notes", "Notes are too long")
	}

	return in, errs
}
