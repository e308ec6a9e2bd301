package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gym-app-server/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection so every query sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.Migrate(db))
	return db
}

func seedTrainerWithSlot(t *testing.T, db *gorm.DB) (models.Trainer, models.TimeSlot) {
	t.Helper()
	user := models.User{Email: "trainer@gym.test", FirstName: "Tess", LastName: "Trainer", Role: models.RoleTrainer}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(&user).Error)

	trainer := models.Trainer{UserID: user.ID, Specialization: "Strength"}
	require.NoError(t, db.Create(&trainer).Error)

	slot := models.TimeSlot{Name: "Early Bird", StartTime: "07:00", EndTime: "08:30", IsActive: true}
	require.NoError(t, db.Create(&slot).Error)

	return trainer, slot
}

// 2025-06-02 is a Monday.
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func TestCheckAvailabilityNoSchedule(t *testing.T) {
	db := setupTestDB(t)
	trainer, slot := seedTrainerWithSlot(t, db)

	got, err := CheckAvailability(db, trainer.ID, monday, slot.ID)
	require.NoError(t, err)
	assert.False(t, got.Available)
	assert.Equal(t, ReasonNoSchedule, got.Reason)
}

func TestCheckAvailabilityWrongDay(t *testing.T) {
	db := setupTestDB(t)
	trainer, slot := seedTrainerWithSlot(t, db)

	entry := models.TrainerSchedule{TrainerID: trainer.ID, TimeSlotID: slot.ID, DayOfWeek: models.Tuesday, IsAvailable: true}
	require.NoError(t, db.Create(&entry).Error)

	got, err := CheckAvailability(db, trainer.ID, monday, slot.ID)
	require.NoError(t, err)
	assert.False(t, got.Available)
	assert.Equal(t, ReasonNoSchedule, got.Reason)
}

func TestCheckAvailabilityUnavailableEntryIgnored(t *testing.T) {
	db := setupTestDB(t)
	trainer, slot := seedTrainerWithSlot(t, db)

	entry := models.TrainerSchedule{TrainerID: trainer.ID, TimeSlotID: slot.ID, DayOfWeek: models.Monday, IsAvailable: false}
	require.NoError(t, db.Create(&entry).Error)

	got, err := CheckAvailability(db, trainer.ID, monday, slot.ID)
	require.NoError(t, err)
	assert.False(t, got.Available)
}

func TestCheckAvailabilityOpenSlot(t *testing.T) {
	db := setupTestDB(t)
	trainer, slot := seedTrainerWithSlot(t, db)

	entry := models.TrainerSchedule{TrainerID: trainer.ID, TimeSlotID: slot.ID, DayOfWeek: models.Monday, IsAvailable: true}
	require.NoError(t, db.Create(&entry).Error)

	got, err := CheckAvailability(db, trainer.ID, monday, slot.ID)
	require.NoError(t, err)
	assert.True(t, got.Available)
	assert.Empty(t, got.Reason)
}

func TestCheckAvailabilityDuplicateScheduleRowsTolerated(t *testing.T) {
	db := setupTestDB(t)
	trainer, slot := seedTrainerWithSlot(t, db)

	// Entries are upserted-by-insert, so the same (trainer, day, slot) can
	// exist more than once. Any available row must suffice.
	for i := 0; i < 3; i++ {
		entry := models.TrainerSchedule{TrainerID: trainer.ID, TimeSlotID: slot.ID, DayOfWeek: models.Monday, IsAvailable: true}
		require.NoError(t, db.Create(&entry).Error)
	}

	got, err := CheckAvailability(db, trainer.ID, monday, slot.ID)
	require.NoError(t, err)
	assert.True(t, got.Available)
}

func TestCheckAvailabilityPendingDoesNotBlock(t *testing.T) {
	db := setupTestDB(t)
	trainer, slot := seedTrainerWithSlot(t, db)

	entry := models.TrainerSchedule{TrainerID: trainer.ID, TimeSlotID: slot.ID, DayOfWeek: models.Monday, IsAvailable: true}
	require.NoError(t, db.Create(&entry).Error)

	member := models.User{Email: "member@gym.test", Role: models.RoleUser}
	require.NoError(t, member.SetPassword("password123"))
	require.NoError(t, db.Create(&member).Error)

	appt := models.Appointment{
		UserID: member.ID, TrainerID: trainer.ID, Date: monday,
		TimeSlotID: slot.ID, Status: models.StatusPending,
	}
	require.NoError(t, db.Create(&appt).Error)

	// Documented policy: only a confirmed appointment blocks the slot.
	got, err := CheckAvailability(db, trainer.ID, monday, slot.ID)
	require.NoError(t, err)
	assert.True(t, got.Available)
}

func TestCheckAvailabilityConfirmedBlocks(t *testing.T) {
	db := setupTestDB(t)
	trainer, slot := seedTrainerWithSlot(t, db)

	entry := models.TrainerSchedule{TrainerID: trainer.ID, TimeSlotID: slot.ID, DayOfWeek: models.Monday, IsAvailable: true}
	require.NoError(t, db.Create(&entry).Error)

	member := models.User{Email: "member@gym.test", Role: models.RoleUser}
	require.NoError(t, member.SetPassword("password123"))
	require.NoError(t, db.Create(&member).Error)

	appt := models.Appointment{
		UserID: member.ID, TrainerID: trainer.ID, Date: monday,
		TimeSlotID: slot.ID, Status: models.StatusConfirmed,
	}
	require.NoError(t, db.Create(&appt).Error)

	got, err := CheckAvailability(db, trainer.ID, monday, slot.ID)
	require.NoError(t, err)
	assert.False(t, got.Available)
	assert.Equal(t, ReasonSlotConfirmed, got.Reason)

	// A different day at the same slot stays open. 2025-06-09 is the
	// following Monday, so the weekly entry matches but no appointment does.
	nextMonday := monday.AddDate(0, 0, 7)
	got, err = CheckAvailability(db, trainer.ID, nextMonday, slot.ID)
	require.NoError(t, err)
	assert.True(t, got.Available)
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, monday, date)
	assert.Equal(t, "2025-06-02", FormatDate(date))

	_, err = ParseDate("06/02/2025")
	assert.Error(t, err)
}
