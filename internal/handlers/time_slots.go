package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gym-app-server/internal/models"
	"gym-app-server/internal/utils"
)

// TimeSlotHandler handles the registry of bookable time-of-day windows.
type TimeSlotHandler struct {
	DB *gorm.DB
}

// NewTimeSlotHandler creates a new TimeSlotHandler.
func NewTimeSlotHandler(db *gorm.DB) *TimeSlotHandler {
	return &TimeSlotHandler{DB: db}
}

// CreateTimeSlotRequest represents the request body for creating a time slot.
type CreateTimeSlotRequest struct {
	Name      string `json:"name" binding:"required"`
	StartTime string `json:"startTime" binding:"required"` // "HH:MM"
	EndTime   string `json:"endTime" binding:"required"`
	IsActive  *bool  `json:"isActive"`
}

// CreateTimeSlot creates a bookable window. Staff and admin only (enforced
// at the route). Overlap between slots is not validated; the registry trusts
// administrative input.
func (h *TimeSlotHandler) CreateTimeSlot(c *gin.Context) {
	var req CreateTimeSlotRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := models.ValidateClockTime(req.StartTime); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	if err := models.ValidateClockTime(req.EndTime); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	slot := models.TimeSlot{
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsActive:  true,
	}
	if req.IsActive != nil {
		slot.IsActive = *req.IsActive
	}

	if err := h.DB.Create(&slot).Error; err != nil {
		utils.InternalServerError(c, "Failed to create time slot: "+err.Error())
		return
	}

	utils.Created(c, "Time slot created successfully", slot)
}

// GetTimeSlots lists active slots ordered by start time.
// ?includeInactive=true returns deactivated slots as well.
func (h *TimeSlotHandler) GetTimeSlots(c *gin.Context) {
	query := h.DB.Order("start_time asc")
	if c.Query("includeInactive") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var slots []models.TimeSlot
	if err := query.Find(&slots).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch time slots: "+err.Error())
		return
	}

	utils.Success(c, "Time slots fetched successfully", slots)
}

// SetTimeSlotActiveRequest represents the request body for toggling a slot's
// active flag.
type SetTimeSlotActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// SetTimeSlotActive flips the active flag. Slots referenced by schedules or
// appointments are never hard-deleted; deactivation is the retirement path.
func (h *TimeSlotHandler) SetTimeSlotActive(c *gin.Context) {
	var req SetTimeSlotActiveRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var slot models.TimeSlot
	if err := h.DB.First(&slot, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Time slot not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	slot.IsActive = *req.IsActive
	if err := h.DB.Save(&slot).Error; err != nil {
		utils.InternalServerError(c, "Failed to update time slot: "+err.Error())
		return
	}

	utils.Success(c, "Time slot updated successfully", slot)
}
