package models

// Rating is the member's feedback for a completed appointment. At most one
// rating exists per appointment; a second create must be rejected and the
// update path used instead.
type Rating struct {
	BaseModel
	AppointmentID string `gorm:"size:36;uniqueIndex" json:"appointmentId"`
	UserID        string `gorm:"size:36;index" json:"userId"`
	Score         int    `gorm:"not null" json:"score"` // 1-5
	Comment       string `gorm:"type:text" json:"comment"`

	// Relations
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
	User        User        `gorm:"foreignKey:UserID" json:"-"`
}
