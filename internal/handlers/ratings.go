package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gym-app-server/internal/middleware"
	"gym-app-server/internal/models"
	"gym-app-server/internal/utils"
)

// RatingHandler handles member ratings of completed appointments.
type RatingHandler struct {
	DB *gorm.DB
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(db *gorm.DB) *RatingHandler {
	return &RatingHandler{DB: db}
}

func (h *RatingHandler) findAppointment(c *gin.Context, appointmentID string) *models.Appointment {
	var appointment models.Appointment
	err := h.DB.Preload("Trainer").First(&appointment, "id = ?", appointmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil
	}
	return &appointment
}

// CreateRatingRequest represents the request body for rating an appointment.
type CreateRatingRequest struct {
	AppointmentID string `json:"appointmentId" binding:"required,uuid"`
	Score         int    `json:"score" binding:"required,min=1,max=5"`
	Comment       string `json:"comment"`
}

// CreateRating lets the booking member rate a completed appointment. One
// rating per appointment; later changes go through the update endpoint.
func (h *RatingHandler) CreateRating(c *gin.Context) {
	var req CreateRatingRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	callerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	appointment := h.findAppointment(c, req.AppointmentID)
	if appointment == nil {
		return
	}

	if appointment.UserID != callerID {
		utils.Forbidden(c, "Only the booking member can rate this appointment")
		return
	}
	if appointment.Status != models.StatusCompleted {
		utils.BadRequest(c, "Only completed appointments can be rated")
		return
	}

	var existing models.Rating
	err := h.DB.First(&existing, "appointment_id = ?", appointment.ID).Error
	if err == nil {
		utils.BadRequest(c, "Rating already exists for this appointment, use update instead")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	rating := models.Rating{
		AppointmentID: appointment.ID,
		UserID:        callerID,
		Score:         req.Score,
		Comment:       req.Comment,
	}
	if err := h.DB.Create(&rating).Error; err != nil {
		utils.InternalServerError(c, "Failed to create rating: "+err.Error())
		return
	}

	utils.Created(c, "Rating created successfully", rating)
}

// GetRating returns the member's rating of an appointment. Both participants
// (and staff/admin) may read it; the payload is always the booking member's
// rating regardless of who asks.
func (h *RatingHandler) GetRating(c *gin.Context) {
	appointment := h.findAppointment(c, c.Param("appointmentId"))
	if appointment == nil {
		return
	}

	callerID, _ := middleware.GetUserIDFromContext(c)
	callerRole, _ := middleware.GetUserRoleFromContext(c)
	if !middleware.IsStaffOrAdmin(callerRole) && !appointment.IsParticipant(callerID) {
		utils.Forbidden(c, "You are not authorized to view this rating")
		return
	}

	var rating models.Rating
	if err := h.DB.First(&rating, "appointment_id = ?", appointment.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "No rating exists for this appointment")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Rating fetched successfully", rating)
}

// UpdateRatingRequest represents the request body for updating a rating.
type UpdateRatingRequest struct {
	Score   *int    `json:"score" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

// UpdateRating lets the booking member revise their rating. Same ownership
// and status guards as create; fails if no rating exists yet.
func (h *RatingHandler) UpdateRating(c *gin.Context) {
	var req UpdateRatingRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	callerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	appointment := h.findAppointment(c, c.Param("appointmentId"))
	if appointment == nil {
		return
	}

	if appointment.UserID != callerID {
		utils.Forbidden(c, "Only the booking member can update this rating")
		return
	}
	if appointment.Status != models.StatusCompleted {
		utils.BadRequest(c, "Only completed appointments can be rated")
		return
	}

	var rating models.Rating
	if err := h.DB.First(&rating, "appointment_id = ?", appointment.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "No rating exists for this appointment yet")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.Score != nil {
		rating.Score = *req.Score
	}
	if req.Comment != nil {
		rating.Comment = *req.Comment
	}

	if err := h.DB.Save(&rating).Error; err != nil {
		utils.InternalServerError(c, "Failed to update rating: "+err.Error())
		return
	}

	utils.Success(c, "Rating updated successfully", rating)
}
