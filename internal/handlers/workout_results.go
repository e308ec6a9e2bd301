package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gym-app-server/internal/middleware"
	"gym-app-server/internal/models"
	"gym-app-server/internal/utils"
)

// WorkoutResultHandler handles trainer-recorded outcomes of completed
// appointments.
type WorkoutResultHandler struct {
	DB *gorm.DB
}

// NewWorkoutResultHandler creates a new WorkoutResultHandler.
func NewWorkoutResultHandler(db *gorm.DB) *WorkoutResultHandler {
	return &WorkoutResultHandler{DB: db}
}

func (h *WorkoutResultHandler) findAppointment(c *gin.Context, appointmentID string) *models.Appointment {
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

// WorkoutResultMetrics carries the result fields. All fields are optional on
// update; provided fields overwrite, omitted fields keep their prior value.
type WorkoutResultMetrics struct {
	CaloriesBurned            *int     `json:"caloriesBurned"`
	CurrentWeight             *float64 `json:"currentWeight"`
	BMI                       *float64 `json:"bmi"` // stored as submitted
	DurationMinutes           *int     `json:"durationMinutes"`
	CompletionPercentage      *int     `json:"completionPercentage" binding:"omitempty,min=0,max=100"`
	PerformanceNotes          *string  `json:"performanceNotes"`
	TrainerRating             *int     `json:"trainerRating" binding:"omitempty,min=1,max=5"`
	TrainerFeedback           *string  `json:"trainerFeedback"`
	HeartRateAvg              *int     `json:"heartRateAvg"`
	HeartRateMax              *int     `json:"heartRateMax"`
	CompletedExercises        *string  `json:"completedExercises"`
	NextSessionRecommendation *string  `json:"nextSessionRecommendation"`
}

func (m *WorkoutResultMetrics) applyTo(result *models.WorkoutResult) {
	if m.CaloriesBurned != nil {
		result.CaloriesBurned = *m.CaloriesBurned
	}
	if m.CurrentWeight != nil {
		result.CurrentWeight = *m.CurrentWeight
	}
	if m.BMI != nil {
		result.BMI = *m.BMI
	}
	if m.DurationMinutes != nil {
		result.DurationMinutes = *m.DurationMinutes
	}
	if m.CompletionPercentage != nil {
		result.CompletionPercentage = *m.CompletionPercentage
	}
	if m.PerformanceNotes != nil {
		result.PerformanceNotes = *m.PerformanceNotes
	}
	if m.TrainerRating != nil {
		result.TrainerRating = *m.TrainerRating
	}
	if m.TrainerFeedback != nil {
		result.TrainerFeedback = *m.TrainerFeedback
	}
	if m.HeartRateAvg != nil {
		result.HeartRateAvg = *m.HeartRateAvg
	}
	if m.HeartRateMax != nil {
		result.HeartRateMax = *m.HeartRateMax
	}
	if m.CompletedExercises != nil {
		result.CompletedExercises = *m.CompletedExercises
	}
	if m.NextSessionRecommendation != nil {
		result.NextSessionRecommendation = *m.NextSessionRecommendation
	}
}

// CreateWorkoutResultRequest represents the request body for recording a
// workout result.
type CreateWorkoutResultRequest struct {
	AppointmentID string `json:"appointmentId" binding:"required,uuid"`
	WorkoutResultMetrics
}

// CreateWorkoutResult lets the assigned trainer record the outcome of a
// completed appointment. One result per appointment; subsequent submissions
// must use the update endpoint.
func (h *WorkoutResultHandler) CreateWorkoutResult(c *gin.Context) {
	var req CreateWorkoutResultRequest
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

	if !appointment.IsTrainerUser(callerID) {
		utils.Forbidden(c, "Only the assigned trainer can record a workout result")
		return
	}
	if appointment.Status != models.StatusCompleted {
		utils.BadRequest(c, "Workout results can only be recorded for completed appointments")
		return
	}

	var existing models.WorkoutResult
	err := h.DB.First(&existing, "appointment_id = ?", appointment.ID).Error
	if err == nil {
		utils.BadRequest(c, "Workout result already exists for this appointment, use update instead")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	result := models.WorkoutResult{
		AppointmentID: appointment.ID,
		UserID:        appointment.UserID,
	}
	req.applyTo(&result)

	if err := h.DB.Create(&result).Error; err != nil {
		utils.InternalServerError(c, "Failed to create workout result: "+err.Error())
		return
	}

	utils.Created(c, "Workout result created successfully", result)
}

// GetWorkoutResult returns the workout result of an appointment. Accessible
// by either participant or staff/admin.
func (h *WorkoutResultHandler) GetWorkoutResult(c *gin.Context) {
	appointment := h.findAppointment(c, c.Param("appointmentId"))
	if appointment == nil {
		return
	}

	callerID, _ := middleware.GetUserIDFromContext(c)
	callerRole, _ := middleware.GetUserRoleFromContext(c)
	if !middleware.IsStaffOrAdmin(callerRole) && !appointment.IsParticipant(callerID) {
		utils.Forbidden(c, "You are not authorized to view this workout result")
		return
	}

	var result models.WorkoutResult
	if err := h.DB.First(&result, "appointment_id = ?", appointment.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "No workout result exists for this appointment")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Workout result fetched successfully", result)
}

// UpdateWorkoutResult merges the provided metric fields into the existing
// result. Fails if no result has been recorded yet.
func (h *WorkoutResultHandler) UpdateWorkoutResult(c *gin.Context) {
	var req WorkoutResultMetrics
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

	if !appointment.IsTrainerUser(callerID) {
		utils.Forbidden(c, "Only the assigned trainer can update a workout result")
		return
	}

	var result models.WorkoutResult
	if err := h.DB.First(&result, "appointment_id = ?", appointment.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "No workout result exists for this appointment yet")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	req.applyTo(&result)

	if err := h.DB.Save(&result).Error; err != nil {
		utils.InternalServerError(c, "Failed to update workout result: "+err.Error())
		return
	}

	utils.Success(c, "Workout result updated successfully", result)
}
