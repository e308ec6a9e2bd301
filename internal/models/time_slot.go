package models

import (
	"fmt"
	"time"
)

// TimeSlot represents a fixed bookable time-of-day window, e.g. 07:00-08:30.
// Slots are created by staff and are never hard-deleted once referenced by a
// schedule or appointment; they are deactivated instead.
type TimeSlot struct {
	BaseModel
	Name      string `gorm:"size:100;not null" json:"name"`
	StartTime string `gorm:"size:5;not null" json:"startTime"` // "HH:MM", 24h clock
	EndTime   string `gorm:"size:5;not null" json:"endTime"`
	IsActive  bool   `gorm:"default:true" json:"isActive"`
}

// ValidateClockTime checks that a value is a well-formed "HH:MM" time of day.
func ValidateClockTime(value string) error {
	if _, err := time.Parse("15:04", value); err != nil {
		return fmt.Errorf("invalid time %q, expected HH:MM: %w", value, err)
	}
	return nil
}
