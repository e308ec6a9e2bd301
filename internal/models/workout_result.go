package models

// WorkoutResult is the trainer's recorded outcome of a completed appointment.
// One result per appointment; later submissions update the existing row.
// UserID is a denormalized copy of the appointment's member for convenience.
type WorkoutResult struct {
	BaseModel
	AppointmentID             string  `gorm:"size:36;uniqueIndex" json:"appointmentId"`
	UserID                    string  `gorm:"size:36;index" json:"userId"`
	CaloriesBurned            int     `json:"caloriesBurned"`
	CurrentWeight             float64 `json:"currentWeight"`
	BMI                       float64 `json:"bmi"` // stored as submitted, not derived
	DurationMinutes           int     `json:"durationMinutes"`
	CompletionPercentage      int     `json:"completionPercentage"` // 0-100
	PerformanceNotes          string  `gorm:"type:text" json:"performanceNotes"`
	TrainerRating             int     `json:"trainerRating"` // trainer's 1-5 rating of the member
	TrainerFeedback           string  `gorm:"type:text" json:"trainerFeedback"`
	HeartRateAvg              int     `json:"heartRateAvg"`
	HeartRateMax              int     `json:"heartRateMax"`
	CompletedExercises        string  `gorm:"type:text" json:"completedExercises"`
	NextSessionRecommendation string  `gorm:"type:text" json:"nextSessionRecommendation"`

	// Relations
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
	User        User        `gorm:"foreignKey:UserID" json:"-"`
}
