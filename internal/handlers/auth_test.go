package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym-app-server/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"firstName": "Ann",
		"lastName":  "Lee",
		"email":     "ann@gym.test",
		"password":  "supersecret",
	})
	requireStatus(t, w, http.StatusCreated)

	var registered models.UserSanitized
	decodeData(t, w, &registered)
	assert.Equal(t, models.RoleUser, registered.Role)
	assert.NotContains(t, w.Body.String(), "supersecret")

	// Duplicate email is rejected.
	w = e.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"firstName": "Ann",
		"lastName":  "Lee",
		"email":     "ann@gym.test",
		"password":  "supersecret",
	})
	requireStatus(t, w, http.StatusBadRequest)

	// Staff accounts cannot be self-registered.
	w = e.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"firstName": "Eve",
		"lastName":  "Adams",
		"email":     "eve@gym.test",
		"password":  "supersecret",
		"role":      "STAFF",
	})
	requireStatus(t, w, http.StatusBadRequest)

	w = e.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "ann@gym.test",
		"password": "supersecret",
	})
	requireStatus(t, w, http.StatusOK)

	var login struct {
		AccessToken  string               `json:"accessToken"`
		RefreshToken string               `json:"refreshToken"`
		User         models.UserSanitized `json:"user"`
	}
	decodeData(t, w, &login)
	require.NotEmpty(t, login.AccessToken)
	require.NotEmpty(t, login.RefreshToken)

	// The issued access token works against an authenticated route.
	w = e.do(t, http.MethodGet, "/api/v1/auth/profile", "Bearer "+login.AccessToken, nil)
	requireStatus(t, w, http.StatusOK)

	var profile models.UserSanitized
	decodeData(t, w, &profile)
	assert.Equal(t, "ann@gym.test", profile.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	e := newTestEnv(t)
	e.createUser(t, "ann@gym.test", models.RoleUser)

	w := e.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "ann@gym.test",
		"password": "wrong-password",
	})
	requireStatus(t, w, http.StatusUnauthorized)
}

func TestRefreshTokenRotation(t *testing.T) {
	e := newTestEnv(t)
	e.createUser(t, "ann@gym.test", models.RoleUser)

	w := e.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "ann@gym.test",
		"password": "password123",
	})
	requireStatus(t, w, http.StatusOK)

	var login struct {
		RefreshToken string `json:"refreshToken"`
	}
	decodeData(t, w, &login)

	w = e.do(t, http.MethodPost, "/api/v1/auth/refresh-token", "", map[string]interface{}{
		"refreshToken": login.RefreshToken,
	})
	requireStatus(t, w, http.StatusOK)

	var refreshed struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	decodeData(t, w, &refreshed)
	require.NotEmpty(t, refreshed.AccessToken)

	// The old token was rotated out and cannot be replayed.
	w = e.do(t, http.MethodPost, "/api/v1/auth/refresh-token", "", map[string]interface{}{
		"refreshToken": login.RefreshToken,
	})
	requireStatus(t, w, http.StatusUnauthorized)
}

func TestRoutesRequireAuthentication(t *testing.T) {
	e := newTestEnv(t)

	for _, path := range []string{
		"/api/v1/appointments/user/me",
		"/api/v1/training-time-slots",
		"/api/v1/users/trainers",
	} {
		w := e.do(t, http.MethodGet, path, "", nil)
		requireStatus(t, w, http.StatusUnauthorized)
	}
}

func TestCreateTrainerProfile(t *testing.T) {
	e := newTestEnv(t)
	staff := e.createUser(t, "staff@gym.test", models.RoleStaff)
	trainerUser := e.createUser(t, "trainer@gym.test", models.RoleTrainer)
	member := e.createUser(t, "member@gym.test", models.RoleUser)
	staffToken := e.token(t, staff)

	// The account must carry the TRAINER role first.
	w := e.do(t, http.MethodPost, "/api/v1/users/trainers", staffToken, map[string]interface{}{
		"userId": member.ID,
	})
	requireStatus(t, w, http.StatusBadRequest)

	w = e.do(t, http.MethodPost, "/api/v1/users/trainers", staffToken, map[string]interface{}{
		"userId":          trainerUser.ID,
		"specialization":  "Powerlifting",
		"yearsExperience": 7,
	})
	requireStatus(t, w, http.StatusCreated)

	var trainer models.Trainer
	decodeData(t, w, &trainer)
	assert.Equal(t, trainerUser.ID, trainer.UserID)
	assert.Equal(t, "Powerlifting", trainer.Specialization)

	// One profile per account.
	w = e.do(t, http.MethodPost, "/api/v1/users/trainers", staffToken, map[string]interface{}{
		"userId": trainerUser.ID,
	})
	requireStatus(t, w, http.StatusBadRequest)

	// The directory lists the new trainer to any authenticated user.
	var trainers []models.Trainer
	w = e.do(t, http.MethodGet, "/api/v1/users/trainers", e.token(t, member), nil)
	requireStatus(t, w, http.StatusOK)
	decodeData(t, w, &trainers)
	require.Len(t, trainers, 1)
	assert.Equal(t, "trainer@gym.test", trainers[0].User.Email)
}
