package scheduling

import (
	"errors"
	"fmt"

	"gym-app-server/internal/models"
)

// Sentinel errors for transition failures. Handlers map ErrNotParticipant and
// ErrTrainerOnly to 403 and the rest to 400.
var (
	ErrNotParticipant = errors.New("caller is not a participant of this appointment")
	ErrTrainerOnly    = errors.New("only the trainer can perform this status change")
	ErrTerminalStatus = errors.New("appointment is in a terminal status")
	ErrBadTransition  = errors.New("invalid status transition")
)

// allowedTransitions lists the reachable target statuses per current status.
// PENDING is only ever set at creation; CANCELLED and COMPLETED are terminal.
var allowedTransitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusConfirmed, models.StatusCancelled, models.StatusCompleted},
}

// ValidateTransition checks the state machine and the caller rules for moving
// an appointment to target. callerID is the acting user account; staff and
// admin callers bypass the participant and trainer-only checks. The
// appointment's Trainer relation must be preloaded.
func ValidateTransition(appt *models.Appointment, target models.AppointmentStatus, callerID string, callerRole models.Role) error {
	privileged := callerRole == models.RoleAdmin || callerRole == models.RoleStaff

	if !privileged && !appt.IsParticipant(callerID) {
		return ErrNotParticipant
	}

	if appt.Status.IsTerminal() {
		return fmt.Errorf("%w: appointment is already %s", ErrTerminalStatus, appt.Status)
	}

	targets, ok := allowedTransitions[appt.Status]
	if !ok {
		return fmt.Errorf("%w: from %s", ErrBadTransition, appt.Status)
	}
	found := false
	for _, t := range targets {
		if t == target {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s -> %s", ErrBadTransition, appt.Status, target)
	}

	// Only the trainer confirms or completes a session; the member can only
	// cancel.
	if (target == models.StatusConfirmed || target == models.StatusCompleted) &&
		!privileged && !appt.IsTrainerUser(callerID) {
		return ErrTrainerOnly
	}

	return nil
}
