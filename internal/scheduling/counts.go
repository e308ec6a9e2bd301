package scheduling

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"gym-app-server/internal/models"
)

// Reporting and re-validation count queries. Plain filtered reads, no
// business rules.

// CountByTrainerAndStatus counts a trainer's appointments with the status.
func CountByTrainerAndStatus(db *gorm.DB, trainerID string, status models.AppointmentStatus) (int64, error) {
	var count int64
	err := db.Model(&models.Appointment{}).
		Where("trainer_id = ? AND status = ?", trainerID, status).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count trainer appointments: %w", err)
	}
	return count, nil
}

// CountByUserAndStatus counts a member's appointments with the status.
func CountByUserAndStatus(db *gorm.DB, userID string, status models.AppointmentStatus) (int64, error) {
	var count int64
	err := db.Model(&models.Appointment{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count member appointments: %w", err)
	}
	return count, nil
}

// CountByTrainerDateRange counts a trainer's appointments with a date between
// from and to inclusive.
func CountByTrainerDateRange(db *gorm.DB, trainerID string, from, to time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.Appointment{}).
		Where("trainer_id = ? AND date >= ? AND date <= ?", trainerID, from, to).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments in range: %w", err)
	}
	return count, nil
}

// CountByTrainerDateSlot counts appointments at one concrete (trainer, date,
// slot) with the status. Used by the availability check and by the
// confirmation conflict re-check.
func CountByTrainerDateSlot(db *gorm.DB, trainerID string, date time.Time, timeSlotID string, status models.AppointmentStatus) (int64, error) {
	var count int64
	err := db.Model(&models.Appointment{}).
		Where("trainer_id = ? AND date = ? AND time_slot_id = ? AND status = ?",
			trainerID, date, timeSlotID, status).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments for slot: %w", err)
	}
	return count, nil
}
