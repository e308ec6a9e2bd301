package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusCompleted AppointmentStatus = "COMPLETED"
)

// IsTerminal reports whether no further status transitions are allowed.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Appointment represents a personal training session booked by a member with
// a trainer for one calendar date and time slot.
type Appointment struct {
	BaseModel
	UserID     string            `gorm:"size:36;index" json:"userId"`
	TrainerID  string            `gorm:"size:36;index" json:"trainerId"`
	Date       time.Time         `gorm:"type:date;index" json:"date"`
	TimeSlotID string            `gorm:"size:36;index" json:"timeSlotId"`
	Notes      string            `gorm:"type:text" json:"notes"`
	Exercises  *string           `gorm:"type:text" json:"exercises"` // trainer-authored, nullable
	Status     AppointmentStatus `gorm:"size:20;default:'PENDING'" json:"status"`
	Location   string            `gorm:"size:255" json:"location"`

	// Relations
	User          User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Trainer       Trainer        `gorm:"foreignKey:TrainerID" json:"trainer,omitempty"`
	TimeSlot      TimeSlot       `gorm:"foreignKey:TimeSlotID" json:"timeSlot,omitempty"`
	Rating        *Rating        `gorm:"foreignKey:AppointmentID" json:"rating,omitempty"`
	WorkoutResult *WorkoutResult `gorm:"foreignKey:AppointmentID" json:"workoutResult,omitempty"`
}

// IsTrainerUser reports whether the given user account is the trainer side of
// this appointment. Requires the Trainer relation to be preloaded.
func (a *Appointment) IsTrainerUser(userID string) bool {
	return a.Trainer.UserID != "" && a.Trainer.UserID == userID
}

// IsParticipant reports whether the given user is the booking member or the
// appointment's trainer.
func (a *Appointment) IsParticipant(userID string) bool {
	return a.UserID == userID || a.IsTrainerUser(userID)
}
