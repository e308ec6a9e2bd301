package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gym-app-server/internal/config"
	"gym-app-server/internal/middleware"
	"gym-app-server/internal/models"
	"gym-app-server/internal/scheduling"
	"gym-app-server/internal/utils"
)

// AppointmentHandler handles personal training appointment requests.
type AppointmentHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, cfg *config.Config) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Cfg: cfg}
}

// loadAppointment fetches an appointment with every relation the API
// contract promises: member, trainer (and the trainer's own user), time slot
// and any post-session records.
func (h *AppointmentHandler) loadAppointment(id string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := h.DB.
		Preload("User").
		Preload("Trainer.User").
		Preload("TimeSlot").
		Preload("Rating").
		Preload("WorkoutResult").
		First(&appointment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (h *AppointmentHandler) listAppointments(c *gin.Context, where string, args ...interface{}) {
	var appointments []models.Appointment
	query := h.DB.
		Preload("User").
		Preload("Trainer.User").
		Preload("TimeSlot").
		Preload("Rating").
		Preload("WorkoutResult").
		Order("date desc, created_at desc")
	if where != "" {
		query = query.Where(where, args...)
	}
	if err := query.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}
	utils.Success(c, "Appointments fetched successfully", appointments)
}

// CreateAppointmentRequest represents the request body for booking an appointment.
type CreateAppointmentRequest struct {
	UserID     string `json:"userId" binding:"omitempty,uuid"` // defaults to the caller; staff may book for others
	TrainerID  string `json:"trainerId" binding:"required,uuid"`
	Date       string `json:"date" binding:"required"` // YYYY-MM-DD
	TimeSlotID string `json:"timeSlotId" binding:"required,uuid"`
	Notes      string `json:"notes"`
}

// CreateAppointment books a new PENDING appointment after re-validating the
// trainer's availability for the requested date and slot.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	callerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	callerRole, _ := middleware.GetUserRoleFromContext(c)

	memberID := req.UserID
	if memberID == "" {
		memberID = callerID
	}
	if callerRole == models.RoleUser && memberID != callerID {
		utils.Forbidden(c, "Members can only book appointments for themselves.")
		return
	}

	date, err := scheduling.ParseDate(req.Date)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	// Verify member exists
	var member models.User
	if err := h.DB.First(&member, "id = ?", memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Member not found")
		} else {
			utils.InternalServerError(c, "Database error verifying member: "+err.Error())
		}
		return
	}

	// Verify trainer exists
	var trainer models.Trainer
	if err := h.DB.First(&trainer, "id = ?", req.TrainerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Trainer not found")
		} else {
			utils.InternalServerError(c, "Database error verifying trainer: "+err.Error())
		}
		return
	}

	// Verify time slot exists and is bookable
	var slot models.TimeSlot
	if err := h.DB.First(&slot, "id = ?", req.TimeSlotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Time slot not found")
		} else {
			utils.InternalServerError(c, "Database error verifying time slot: "+err.Error())
		}
		return
	}
	if !slot.IsActive {
		utils.BadRequest(c, "Time slot is not active")
		return
	}

	appointment := models.Appointment{
		UserID:     memberID,
		TrainerID:  trainer.ID,
		Date:       date,
		TimeSlotID: slot.ID,
		Notes:      req.Notes,
		Status:     models.StatusPending,
		Location:   h.Cfg.DefaultSessionLocation,
	}

	// Availability check and insert share one transaction. Booking attempts
	// are not serialized: two PENDING requests for the same slot may both
	// succeed, and the trainer resolves the conflict at confirmation time.
	var availability scheduling.Availability
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		availability, err = scheduling.CheckAvailability(tx, trainer.ID, date, slot.ID)
		if err != nil {
			return err
		}
		if !availability.Available {
			return nil
		}
		return tx.Create(&appointment).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}
	if !availability.Available {
		utils.BadRequest(c, "Trainer is not available: "+availability.Reason)
		return
	}

	created, err := h.loadAppointment(appointment.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to load created appointment: "+err.Error())
		return
	}
	utils.Created(c, "Appointment created successfully", created)
}

// GetAppointments returns every appointment. Staff and admin only (enforced
// at the route).
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	h.listAppointments(c, "")
}

// GetAppointmentByID returns a single appointment. Accessible by its member,
// its trainer, or staff/admin.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointment, err := h.loadAppointment(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	callerID, _ := middleware.GetUserIDFromContext(c)
	callerRole, _ := middleware.GetUserRoleFromContext(c)
	if !middleware.IsStaffOrAdmin(callerRole) && !appointment.IsParticipant(callerID) {
		utils.Forbidden(c, "You are not authorized to view this appointment")
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// GetMyMemberAppointments returns the calling member's appointments.
func (h *AppointmentHandler) GetMyMemberAppointments(c *gin.Context) {
	callerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	h.listAppointments(c, "user_id = ?", callerID)
}

// GetMyTrainerAppointments returns the appointments assigned to the calling
// trainer.
func (h *AppointmentHandler) GetMyTrainerAppointments(c *gin.Context) {
	callerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var trainer models.Trainer
	if err := h.DB.First(&trainer, "user_id = ?", callerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Trainer profile not found for this account")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	h.listAppointments(c, "trainer_id = ?", trainer.ID)
}

// GetAppointmentsForUserAndTrainer returns the appointments between one
// member and one trainer.
func (h *AppointmentHandler) GetAppointmentsForUserAndTrainer(c *gin.Context) {
	userID := c.Param("userId")
	trainerID := c.Param("trainerId")

	callerID, _ := middleware.GetUserIDFromContext(c)
	callerRole, _ := middleware.GetUserRoleFromContext(c)

	if !middleware.IsStaffOrAdmin(callerRole) && callerID != userID {
		// The trainer side may also list their own pairings.
		var trainer models.Trainer
		err := h.DB.First(&trainer, "id = ? AND user_id = ?", trainerID, callerID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.Forbidden(c, "You are not authorized to view these appointments")
			} else {
				utils.InternalServerError(c, "Database error: "+err.Error())
			}
			return
		}
	}

	h.listAppointments(c, "user_id = ? AND trainer_id = ?", userID, trainerID)
}

// UpdateAppointmentRequest is a partial update: only the provided fields are
// applied.
type UpdateAppointmentRequest struct {
	Date       *string                   `json:"date"`
	Notes      *string                   `json:"notes"`
	Exercises  *string                   `json:"exercises"`
	Status     *models.AppointmentStatus `json:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
	TimeSlotID *string                   `json:"timeSlotId" binding:"omitempty,uuid"`
}

// UpdateAppointment applies a general field update. Rejected once the
// appointment is COMPLETED or CANCELLED. Changing the time slot re-validates
// availability against the appointment's trainer.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var req UpdateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, err := h.loadAppointment(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	callerID, _ := middleware.GetUserIDFromContext(c)
	callerRole, _ := middleware.GetUserRoleFromContext(c)
	if !middleware.IsStaffOrAdmin(callerRole) && !appointment.IsParticipant(callerID) {
		utils.Forbidden(c, "You are not authorized to modify this appointment")
		return
	}

	if appointment.Status.IsTerminal() {
		utils.BadRequest(c, "Cannot modify an appointment that is already "+string(appointment.Status))
		return
	}

	newDate := appointment.Date
	if req.Date != nil {
		newDate, err = scheduling.ParseDate(*req.Date)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
	}

	slotChanged := req.TimeSlotID != nil && *req.TimeSlotID != appointment.TimeSlotID
	if slotChanged {
		var slot models.TimeSlot
		if err := h.DB.First(&slot, "id = ?", *req.TimeSlotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.NotFound(c, "Time slot not found")
			} else {
				utils.InternalServerError(c, "Database error verifying time slot: "+err.Error())
			}
			return
		}
		if !slot.IsActive {
			utils.BadRequest(c, "Time slot is not active")
			return
		}

		availability, err := scheduling.CheckAvailability(h.DB, appointment.TrainerID, newDate, slot.ID)
		if err != nil {
			utils.InternalServerError(c, "Failed to check availability: "+err.Error())
			return
		}
		if !availability.Available {
			utils.BadRequest(c, "Trainer is not available: "+availability.Reason)
			return
		}
	}

	if req.Status != nil && *req.Status != appointment.Status {
		if err := scheduling.ValidateTransition(appointment, *req.Status, callerID, callerRole); err != nil {
			h.respondTransitionError(c, err, *req.Status)
			return
		}
	}

	appointment.Date = newDate
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}
	if req.Exercises != nil {
		appointment.Exercises = req.Exercises
	}
	if req.TimeSlotID != nil {
		appointment.TimeSlotID = *req.TimeSlotID
	}

	if req.Status != nil && *req.Status == models.StatusConfirmed && appointment.Status != models.StatusConfirmed {
		if !h.confirmWithConflictCheck(c, appointment) {
			return
		}
	} else {
		if req.Status != nil {
			appointment.Status = *req.Status
		}
		if err := h.DB.Save(appointment).Error; err != nil {
			utils.InternalServerError(c, "Failed to update appointment: "+err.Error())
			return
		}
	}

	updated, err := h.loadAppointment(appointment.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to load updated appointment: "+err.Error())
		return
	}
	utils.Success(c, "Appointment updated successfully", updated)
}

// UpdateAppointmentStatusRequest represents the request body for a
// status-only update.
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
}

// UpdateAppointmentStatus moves the appointment through its lifecycle.
// Confirming and completing are reserved to the appointment's trainer;
// CANCELLED and COMPLETED are terminal.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, err := h.loadAppointment(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	callerID, _ := middleware.GetUserIDFromContext(c)
	callerRole, _ := middleware.GetUserRoleFromContext(c)

	if err := scheduling.ValidateTransition(appointment, req.Status, callerID, callerRole); err != nil {
		h.respondTransitionError(c, err, req.Status)
		return
	}

	if req.Status == models.StatusConfirmed && appointment.Status != models.StatusConfirmed {
		if !h.confirmWithConflictCheck(c, appointment) {
			return
		}
	} else {
		appointment.Status = req.Status
		if err := h.DB.Save(appointment).Error; err != nil {
			utils.InternalServerError(c, "Failed to update appointment status: "+err.Error())
			return
		}
	}

	utils.Success(c, "Appointment status updated successfully", appointment)
}

// confirmWithConflictCheck moves the appointment to CONFIRMED inside a
// transaction that re-checks for a competing confirmed appointment at the
// same (trainer, date, slot). Two PENDING bookings may coexist, but only one
// of them can ever be confirmed. Writes the error response itself and
// reports whether the confirmation went through.
func (h *AppointmentHandler) confirmWithConflictCheck(c *gin.Context, appointment *models.Appointment) bool {
	conflict := false
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Appointment{}).
			Where("trainer_id = ? AND date = ? AND time_slot_id = ? AND status = ? AND id <> ?",
				appointment.TrainerID, appointment.Date, appointment.TimeSlotID,
				models.StatusConfirmed, appointment.ID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			conflict = true
			return nil
		}
		appointment.Status = models.StatusConfirmed
		return tx.Save(appointment).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to confirm appointment: "+err.Error())
		return false
	}
	if conflict {
		utils.BadRequest(c, "Cannot confirm: "+scheduling.ReasonSlotConfirmed)
		return false
	}
	return true
}

func (h *AppointmentHandler) respondTransitionError(c *gin.Context, err error, target models.AppointmentStatus) {
	switch {
	case errors.Is(err, scheduling.ErrNotParticipant):
		utils.Forbidden(c, "You are not authorized to modify this appointment")
	case errors.Is(err, scheduling.ErrTrainerOnly):
		if target == models.StatusCompleted {
			utils.Forbidden(c, "Only the trainer can complete appointments")
		} else {
			utils.Forbidden(c, "Only the trainer can confirm appointments")
		}
	default:
		utils.BadRequest(c, err.Error())
	}
}

// CancelAppointment is the cancellation convenience endpoint for members and
// trainers.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	appointment, err := h.loadAppointment(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	callerID, _ := middleware.GetUserIDFromContext(c)
	callerRole, _ := middleware.GetUserRoleFromContext(c)
	if !middleware.IsStaffOrAdmin(callerRole) && !appointment.IsParticipant(callerID) {
		utils.Forbidden(c, "You are not authorized to cancel this appointment")
		return
	}

	switch appointment.Status {
	case models.StatusCompleted:
		utils.BadRequest(c, "Cannot cancel a completed appointment")
		return
	case models.StatusCancelled:
		utils.BadRequest(c, "Appointment is already cancelled")
		return
	}

	appointment.Status = models.StatusCancelled
	if err := h.DB.Save(appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to cancel appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment cancelled successfully", appointment)
}

// DeleteAppointment hard-deletes an appointment, bypassing the lifecycle
// rules. Staff and admin only (enforced at the route).
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id := c.Param("id")

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment deleted successfully", nil)
}

// TrainerStats summarizes a trainer's appointment counts for reporting.
type TrainerStats struct {
	Pending   int64  `json:"pending"`
	Confirmed int64  `json:"confirmed"`
	Cancelled int64  `json:"cancelled"`
	Completed int64  `json:"completed"`
	InRange   *int64 `json:"inRange,omitempty"` // only when from/to given
}

// GetTrainerStats returns appointment counts per status for a trainer, and
// optionally the number of appointments within ?from=&to= (inclusive).
func (h *AppointmentHandler) GetTrainerStats(c *gin.Context) {
	trainerID := c.Param("trainerId")

	var trainer models.Trainer
	if err := h.DB.First(&trainer, "id = ?", trainerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Trainer not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	callerID, _ := middleware.GetUserIDFromContext(c)
	callerRole, _ := middleware.GetUserRoleFromContext(c)
	if !middleware.IsStaffOrAdmin(callerRole) && trainer.UserID != callerID {
		utils.Forbidden(c, "You are not authorized to view this trainer's stats")
		return
	}

	var stats TrainerStats
	var err error
	for status, dest := range map[models.AppointmentStatus]*int64{
		models.StatusPending:   &stats.Pending,
		models.StatusConfirmed: &stats.Confirmed,
		models.StatusCancelled: &stats.Cancelled,
		models.StatusCompleted: &stats.Completed,
	} {
		*dest, err = scheduling.CountByTrainerAndStatus(h.DB, trainerID, status)
		if err != nil {
			utils.InternalServerError(c, "Failed to compute stats: "+err.Error())
			return
		}
	}

	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr != "" && toStr != "" {
		var from, to time.Time
		if from, err = scheduling.ParseDate(fromStr); err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		if to, err = scheduling.ParseDate(toStr); err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		inRange, err := scheduling.CountByTrainerDateRange(h.DB, trainerID, from, to)
		if err != nil {
			utils.InternalServerError(c, "Failed to compute stats: "+err.Error())
			return
		}
		stats.InRange = &inRange
	}

	utils.Success(c, "Trainer stats fetched successfully", stats)
}
