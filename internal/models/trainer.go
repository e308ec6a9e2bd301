package models

// Trainer represents a personal trainer's profile. The account itself lives
// in the users table with RoleTrainer; this row carries the trainer-specific
// fields and is what appointments and weekly schedules reference.
type Trainer struct {
	BaseModel
	UserID          string `gorm:"size:36;uniqueIndex" json:"userId"`
	Specialization  string `gorm:"size:255" json:"specialization"`
	Bio             string `gorm:"type:text" json:"bio"`
	YearsExperience int    `gorm:"default:0" json:"yearsExperience"`

	// Relations
	User         User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Schedules    []TrainerSchedule `gorm:"foreignKey:TrainerID" json:"-"`
	Appointments []Appointment     `gorm:"foreignKey:TrainerID" json:"-"`
}
