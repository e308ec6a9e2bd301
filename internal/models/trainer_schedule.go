package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DayOfWeek uses the Sunday-first indexing of time.Weekday: 0=SUNDAY through
// 6=SATURDAY. Availability checks derive it directly from a calendar date, so
// this ordering must not change.
type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var dayNames = [...]string{"SUNDAY", "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY"}

// DayOfWeekOf derives the schedule day index from a calendar date.
func DayOfWeekOf(date time.Time) DayOfWeek {
	return DayOfWeek(date.Weekday())
}

// ParseDayOfWeek converts an upper-case day name ("SUNDAY".."SATURDAY").
func ParseDayOfWeek(name string) (DayOfWeek, error) {
	for i, n := range dayNames {
		if n == name {
			return DayOfWeek(i), nil
		}
	}
	return 0, fmt.Errorf("invalid day of week %q", name)
}

func (d DayOfWeek) String() string {
	if d < Sunday || d > Saturday {
		return fmt.Sprintf("DayOfWeek(%d)", int(d))
	}
	return dayNames[d]
}

// MarshalJSON serializes the day as its name so API payloads read
// "MONDAY" rather than 1.
func (d DayOfWeek) MarshalJSON() ([]byte, error) {
	if d < Sunday || d > Saturday {
		return nil, fmt.Errorf("invalid day of week %d", int(d))
	}
	return json.Marshal(dayNames[d])
}

// UnmarshalJSON accepts either a day name or its numeric index.
func (d *DayOfWeek) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, err := ParseDayOfWeek(name)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}
	var idx int
	if err := json.Unmarshal(data, &idx); err != nil {
		return fmt.Errorf("day of week must be a name or an index 0-6")
	}
	if idx < int(Sunday) || idx > int(Saturday) {
		return fmt.Errorf("day of week index %d out of range 0-6", idx)
	}
	*d = DayOfWeek(idx)
	return nil
}

// TrainerSchedule is one recurring weekly availability entry: the trainer is
// nominally bookable for TimeSlot on DayOfWeek. (trainer, day, slot) is
// conceptually unique but not enforced by the schema; duplicate rows are
// tolerated by the availability check.
type TrainerSchedule struct {
	BaseModel
	TrainerID   string    `gorm:"size:36;index" json:"trainerId"`
	TimeSlotID  string    `gorm:"size:36;index" json:"timeSlotId"`
	DayOfWeek   DayOfWeek `gorm:"type:smallint;not null" json:"dayOfWeek"`
	IsAvailable bool      `gorm:"default:true" json:"isAvailable"`

	// Relations
	Trainer  Trainer  `gorm:"foreignKey:TrainerID" json:"-"`
	TimeSlot TimeSlot `gorm:"foreignKey:TimeSlotID" json:"timeSlot,omitempty"`
}
