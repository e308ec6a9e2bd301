package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gym-app-server/internal/models"
	"gym-app-server/internal/utils"
)

// UserHandler handles user directory and admin user management requests.
type UserHandler struct {
	DB *gorm.DB
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// GetTrainers lists trainer profiles with their accounts. Available to any
// authenticated user so members can pick a trainer to book.
func (h *UserHandler) GetTrainers(c *gin.Context) {
	var trainers []models.Trainer
	if err := h.DB.Preload("User").Find(&trainers).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch trainers: "+err.Error())
		return
	}

	utils.Success(c, "Trainers fetched successfully", trainers)
}

// CreateTrainerRequest represents the request body for creating a trainer
// profile.
type CreateTrainerRequest struct {
	UserID          string `json:"userId" binding:"required,uuid"`
	Specialization  string `json:"specialization"`
	Bio             string `json:"bio"`
	YearsExperience int    `json:"yearsExperience" binding:"omitempty,min=0"`
}

// CreateTrainer attaches a trainer profile to an existing TRAINER account.
// Staff and admin only (enforced at the route).
func (h *UserHandler) CreateTrainer(c *gin.Context) {
	var req CreateTrainerRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	if user.Role != models.RoleTrainer {
		utils.BadRequest(c, "User does not have the TRAINER role")
		return
	}

	var existing models.Trainer
	if err := h.DB.First(&existing, "user_id = ?", user.ID).Error; err == nil {
		utils.BadRequest(c, "Trainer profile already exists for this user")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	trainer := models.Trainer{
		UserID:          user.ID,
		Specialization:  req.Specialization,
		Bio:             req.Bio,
		YearsExperience: req.YearsExperience,
	}
	if err := h.DB.Create(&trainer).Error; err != nil {
		utils.InternalServerError(c, "Failed to create trainer profile: "+err.Error())
		return
	}

	trainer.User = user
	utils.Created(c, "Trainer profile created successfully", trainer)
}

// GetUsers handles fetching all users (admin).
func (h *UserHandler) GetUsers(c *gin.Context) {
	var users []models.User
	if err := h.DB.Find(&users).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch users: "+err.Error())
		return
	}

	sanitizedUsers := make([]models.UserSanitized, len(users))
	for i, u := range users {
		sanitizedUsers[i] = u.Sanitize()
	}

	utils.Success(c, "Users fetched successfully", sanitizedUsers)
}

// GetUserByID handles fetching a single user by ID (admin).
func (h *UserHandler) GetUserByID(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "User fetched successfully", user.Sanitize())
}

// DeleteUser handles removing a user account (admin).
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete user: "+err.Error())
		return
	}

	utils.Success(c, "User deleted successfully", nil)
}
