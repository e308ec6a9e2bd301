// Package scheduling holds the booking rules shared by the appointment and
// trainer-schedule handlers: availability resolution against a trainer's
// weekly schedule, the appointment status state machine, and the reporting
// count queries.
package scheduling

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"gym-app-server/internal/models"
)

// Reason strings returned to clients when a slot cannot be booked.
const (
	ReasonNoSchedule    = "trainer has no working schedule for this slot"
	ReasonSlotConfirmed = "slot already has a confirmed appointment"
)

const dateOnlyFormat = "2006-01-02"

// Availability is the result of an availability check.
type Availability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// ParseDate parses a calendar date in YYYY-MM-DD form. Appointment dates
// carry no time component.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(dateOnlyFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return date, nil
}

// FormatDate renders a calendar date in YYYY-MM-DD form.
func FormatDate(date time.Time) string {
	return date.Format(dateOnlyFormat)
}

// CheckAvailability decides whether (trainer, date, slot) is currently
// bookable. The trainer must have a weekly schedule entry for the date's day
// of week, and the slot must not already hold a CONFIRMED appointment. A
// PENDING appointment does not block the slot: unconfirmed requests may pile
// up and the trainer reconciles them at confirmation time.
func CheckAvailability(db *gorm.DB, trainerID string, date time.Time, timeSlotID string) (Availability, error) {
	day := models.DayOfWeekOf(date)

	// Duplicate schedule rows are possible; any available one suffices.
	var scheduleCount int64
	err := db.Model(&models.TrainerSchedule{}).
		Where("trainer_id = ? AND time_slot_id = ? AND day_of_week = ? AND is_available = ?",
			trainerID, timeSlotID, day, true).
		Count(&scheduleCount).Error
	if err != nil {
		return Availability{}, fmt.Errorf("failed to check weekly schedule: %w", err)
	}
	if scheduleCount == 0 {
		return Availability{Available: false, Reason: ReasonNoSchedule}, nil
	}

	confirmed, err := CountByTrainerDateSlot(db, trainerID, date, timeSlotID, models.StatusConfirmed)
	if err != nil {
		return Availability{}, err
	}
	if confirmed > 0 {
		return Availability{Available: false, Reason: ReasonSlotConfirmed}, nil
	}

	return Availability{Available: true}, nil
}
