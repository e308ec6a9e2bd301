package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gym-app-server/internal/config"
	"gym-app-server/internal/models"
	"gym-app-server/internal/routes"
	"gym-app-server/internal/utils"
)

// 2025-06-02 is a Monday, 2025-06-03 a Tuesday.
const (
	mondayStr  = "2025-06-02"
	tuesdayStr = "2025-06-03"
)

var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection so every query sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, models.Migrate(db))

	cfg := &config.Config{
		Environment:               "development",
		JWTSecret:                 "test-secret",
		JWTRefreshSecret:          "test-refresh-secret",
		JWTExpirationMinutes:      15,
		JWTRefreshExpirationHours: 1,
		DefaultSessionLocation:    "Main Gym Floor",
	}

	router := gin.New()
	routes.SetupRoutes(router, db, cfg)

	return &testEnv{router: router, db: db, cfg: cfg}
}

func (e *testEnv) createUser(t *testing.T, email string, role models.Role) models.User {
	t.Helper()
	user := models.User{Email: email, FirstName: "Test", LastName: "User", Role: role}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, e.db.Create(&user).Error)
	return user
}

func (e *testEnv) createTrainer(t *testing.T, user models.User) models.Trainer {
	t.Helper()
	trainer := models.Trainer{UserID: user.ID, Specialization: "Strength"}
	require.NoError(t, e.db.Create(&trainer).Error)
	return trainer
}

func (e *testEnv) createSlot(t *testing.T, name, start, end string) models.TimeSlot {
	t.Helper()
	slot := models.TimeSlot{Name: name, StartTime: start, EndTime: end, IsActive: true}
	require.NoError(t, e.db.Create(&slot).Error)
	return slot
}

func (e *testEnv) createScheduleEntry(t *testing.T, trainer models.Trainer, slot models.TimeSlot, day models.DayOfWeek) models.TrainerSchedule {
	t.Helper()
	entry := models.TrainerSchedule{TrainerID: trainer.ID, TimeSlotID: slot.ID, DayOfWeek: day, IsAvailable: true}
	require.NoError(t, e.db.Create(&entry).Error)
	return entry
}

func (e *testEnv) token(t *testing.T, user models.User) string {
	t.Helper()
	access, _, err := utils.GenerateTokens(&user, e.cfg)
	require.NoError(t, err)
	return "Bearer " + access
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the envelope's data payload into out.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Status  int             `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data, "response has no data payload: %s", w.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

// bookingFixtures is the canonical setup: a member, a trainer working the
// Early Bird slot on Mondays, and a staff account.
type bookingFixtures struct {
	member      models.User
	trainerUser models.User
	staff       models.User
	trainer     models.Trainer
	slot        models.TimeSlot
}

func seedBookingFixtures(t *testing.T, e *testEnv) bookingFixtures {
	t.Helper()
	f := bookingFixtures{
		member:      e.createUser(t, "member@gym.test", models.RoleUser),
		trainerUser: e.createUser(t, "trainer@gym.test", models.RoleTrainer),
		staff:       e.createUser(t, "staff@gym.test", models.RoleStaff),
	}
	f.trainer = e.createTrainer(t, f.trainerUser)
	f.slot = e.createSlot(t, "Early Bird", "07:00", "08:30")
	e.createScheduleEntry(t, f.trainer, f.slot, models.Monday)
	return f
}

// createAppointment inserts an appointment row directly, bypassing the API,
// for tests that need a starting state.
func (e *testEnv) createAppointment(t *testing.T, f bookingFixtures, status models.AppointmentStatus) models.Appointment {
	t.Helper()
	appt := models.Appointment{
		UserID:     f.member.ID,
		TrainerID:  f.trainer.ID,
		Date:       monday,
		TimeSlotID: f.slot.ID,
		Status:     status,
		Location:   e.cfg.DefaultSessionLocation,
	}
	require.NoError(t, e.db.Create(&appt).Error)
	return appt
}

func apptPath(id string, suffix string) string {
	return fmt.Sprintf("/api/v1/appointments/%s%s", id, suffix)
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "unexpected status, body: %s", w.Body.String())
}

func reloadAppointment(t *testing.T, e *testEnv, id string) models.Appointment {
	t.Helper()
	var appt models.Appointment
	require.NoError(t, e.db.First(&appt, "id = ?", id).Error)
	return appt
}
