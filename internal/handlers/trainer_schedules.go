package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gym-app-server/internal/middleware"
	"gym-app-server/internal/models"
	"gym-app-server/internal/scheduling"
	"gym-app-server/internal/utils"
)

// TrainerScheduleHandler handles trainer weekly availability.
type TrainerScheduleHandler struct {
	DB *gorm.DB
}

// NewTrainerScheduleHandler creates a new TrainerScheduleHandler.
func NewTrainerScheduleHandler(db *gorm.DB) *TrainerScheduleHandler {
	return &TrainerScheduleHandler{DB: db}
}

func (h *TrainerScheduleHandler) findTrainer(c *gin.Context, trainerID string) *models.Trainer {
	var trainer models.Trainer
	if err := h.DB.First(&trainer, "id = ?", trainerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Trainer not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil
	}
	return &trainer
}

// ScheduleEntryRequest is one weekly availability entry.
type ScheduleEntryRequest struct {
	TimeSlotID  string           `json:"timeSlotId" binding:"required,uuid"`
	DayOfWeek   models.DayOfWeek `json:"dayOfWeek"`
	IsAvailable *bool            `json:"isAvailable"` // defaults to true
}

// CreateScheduleRequest represents the request body for creating a weekly
// schedule entry.
type CreateScheduleRequest struct {
	TrainerID string `json:"trainerId" binding:"required,uuid"`
	ScheduleEntryRequest
}

// CreateSchedule inserts a weekly availability entry. Inserts are not
// de-duplicated; the availability check tolerates duplicate rows. A trainer
// may only write their own rows, staff and admin anyone's.
func (h *TrainerScheduleHandler) CreateSchedule(c *gin.Context) {
	var req CreateScheduleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	trainer := h.findTrainer(c, req.TrainerID)
	if trainer == nil {
		return
	}

	callerID, _ := middleware.GetUserIDFromContext(c)
	callerRole, _ := middleware.GetUserRoleFromContext(c)
	if !middleware.IsStaffOrAdmin(callerRole) && trainer.UserID != callerID {
		utils.Forbidden(c, "Trainers can only manage their own schedule")
		return
	}

	var slot models.TimeSlot
	if err := h.DB.First(&slot, "id = ?", req.TimeSlotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Time slot not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	entry := models.TrainerSchedule{
		TrainerID:   trainer.ID,
		TimeSlotID:  slot.ID,
		DayOfWeek:   req.DayOfWeek,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		entry.IsAvailable = *req.IsAvailable
	}

	if err := h.DB.Create(&entry).Error; err != nil {
		utils.InternalServerError(c, "Failed to create schedule entry: "+err.Error())
		return
	}

	entry.TimeSlot = slot
	utils.Created(c, "Schedule entry created successfully", entry)
}

// GetWeeklySchedule lists a trainer's available weekly entries with their
// time slots resolved.
func (h *TrainerScheduleHandler) GetWeeklySchedule(c *gin.Context) {
	trainer := h.findTrainer(c, c.Param("trainerId"))
	if trainer == nil {
		return
	}

	var entries []models.TrainerSchedule
	err := h.DB.
		Preload("TimeSlot").
		Where("trainer_id = ? AND is_available = ?", trainer.ID, true).
		Order("day_of_week asc").
		Find(&entries).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch weekly schedule: "+err.Error())
		return
	}

	utils.Success(c, "Weekly schedule fetched successfully", entries)
}

// CheckAvailability answers whether (trainer, date, slot) is currently
// bookable: the trainer must work that weekday slot and no confirmed
// appointment may occupy it. Pending bookings do not block.
func (h *TrainerScheduleHandler) CheckAvailability(c *gin.Context) {
	trainer := h.findTrainer(c, c.Param("trainerId"))
	if trainer == nil {
		return
	}

	dateStr := c.Query("date")
	timeSlotID := c.Query("timeSlotId")
	if dateStr == "" || timeSlotID == "" {
		utils.BadRequest(c, "date and timeSlotId query parameters are required")
		return
	}

	date, err := scheduling.ParseDate(dateStr)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	availability, err := scheduling.CheckAvailability(h.DB, trainer.ID, date, timeSlotID)
	if err != nil {
		utils.InternalServerError(c, "Failed to check availability: "+err.Error())
		return
	}

	utils.Success(c, "Availability checked successfully", availability)
}

// ResetScheduleRequest represents the request body for the bulk schedule
// replace. Callers supply the complete desired entry set.
type ResetScheduleRequest struct {
	Entries []ScheduleEntryRequest `json:"entries" binding:"required,dive"`
}

// ResetSchedule deletes every schedule row of one trainer and reseeds from
// the given entries. Destructive administrative bulk operation, scoped
// strictly to the trainer in the path.
func (h *TrainerScheduleHandler) ResetSchedule(c *gin.Context) {
	var req ResetScheduleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	trainer := h.findTrainer(c, c.Param("trainerId"))
	if trainer == nil {
		return
	}

	entries := make([]models.TrainerSchedule, 0, len(req.Entries))
	for _, e := range req.Entries {
		entry := models.TrainerSchedule{
			TrainerID:   trainer.ID,
			TimeSlotID:  e.TimeSlotID,
			DayOfWeek:   e.DayOfWeek,
			IsAvailable: true,
		}
		if e.IsAvailable != nil {
			entry.IsAvailable = *e.IsAvailable
		}
		entries = append(entries, entry)
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trainer_id = ?", trainer.ID).Delete(&models.TrainerSchedule{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to reset schedule: "+err.Error())
		return
	}

	utils.Success(c, "Schedule reset successfully", entries)
}
