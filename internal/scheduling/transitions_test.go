package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gym-app-server/internal/models"
)

const (
	memberID      = "member-1"
	trainerUserID = "trainer-user-1"
	outsiderID    = "someone-else"
)

func appointmentWithStatus(status models.AppointmentStatus) *models.Appointment {
	appt := &models.Appointment{
		UserID: memberID,
		Status: status,
		Trainer: models.Trainer{
			UserID: trainerUserID,
		},
	}
	appt.Trainer.ID = "trainer-1"
	appt.TrainerID = appt.Trainer.ID
	return appt
}

func TestValidateTransitionTable(t *testing.T) {
	tests := []struct {
		name    string
		from    models.AppointmentStatus
		to      models.AppointmentStatus
		caller  string
		role    models.Role
		wantErr error
	}{
		{"trainer confirms pending", models.StatusPending, models.StatusConfirmed, trainerUserID, models.RoleTrainer, nil},
		{"trainer re-confirms confirmed", models.StatusConfirmed, models.StatusConfirmed, trainerUserID, models.RoleTrainer, nil},
		{"member cancels pending", models.StatusPending, models.StatusCancelled, memberID, models.RoleUser, nil},
		{"trainer cancels confirmed", models.StatusConfirmed, models.StatusCancelled, trainerUserID, models.RoleTrainer, nil},
		{"trainer completes confirmed", models.StatusConfirmed, models.StatusCompleted, trainerUserID, models.RoleTrainer, nil},

		{"member cannot confirm", models.StatusPending, models.StatusConfirmed, memberID, models.RoleUser, ErrTrainerOnly},
		{"member cannot complete", models.StatusConfirmed, models.StatusCompleted, memberID, models.RoleUser, ErrTrainerOnly},
		{"third party cannot touch", models.StatusPending, models.StatusCancelled, outsiderID, models.RoleUser, ErrNotParticipant},

		{"cannot complete pending", models.StatusPending, models.StatusCompleted, trainerUserID, models.RoleTrainer, ErrBadTransition},
		{"cannot revert to pending", models.StatusConfirmed, models.StatusPending, trainerUserID, models.RoleTrainer, ErrBadTransition},

		{"completed is terminal for trainer", models.StatusCompleted, models.StatusCancelled, trainerUserID, models.RoleTrainer, ErrTerminalStatus},
		{"completed is terminal for member", models.StatusCompleted, models.StatusConfirmed, memberID, models.RoleUser, ErrTerminalStatus},
		{"cancelled is terminal", models.StatusCancelled, models.StatusConfirmed, trainerUserID, models.RoleTrainer, ErrTerminalStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appt := appointmentWithStatus(tt.from)
			err := ValidateTransition(appt, tt.to, tt.caller, tt.role)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTransitionStaffBypass(t *testing.T) {
	// Staff and admin are not participants but may drive any legal transition.
	appt := appointmentWithStatus(models.StatusPending)
	assert.NoError(t, ValidateTransition(appt, models.StatusConfirmed, outsiderID, models.RoleStaff))

	appt = appointmentWithStatus(models.StatusConfirmed)
	assert.NoError(t, ValidateTransition(appt, models.StatusCompleted, outsiderID, models.RoleAdmin))

	// The state machine still applies to privileged callers.
	appt = appointmentWithStatus(models.StatusCompleted)
	assert.ErrorIs(t, ValidateTransition(appt, models.StatusCancelled, outsiderID, models.RoleAdmin), ErrTerminalStatus)
}
