package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/spendtrack/spendtrack-services/db"
	"github.com/spendtrack/spendtrack-services/internal/authn"
	"github.com/spendtrack/spendtrack-services/models"
)

// RegisterService creates a new user with a hashed password.
func RegisterService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	// Decode the request payload
	var payload models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logger.Warn().Err(err).Msg("Invalid request payload")
		WriteError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if payload.Name == "" || payload.Email == "" || payload.Password == "" {
		WriteError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	// Reject already-registered emails before attempting the insert
	existing, err := svc.DB.GetUserByEmail(payload.Email)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to look up user by email")
		WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if existing != nil {
		WriteError(w, http.StatusBadRequest, "email already registered")
		return
	}

	hash, err := authn.HashPassword(payload.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	id, err := svc.DB.CreateUser(payload.Name, payload.Email, hash)
	if err != nil {
		// The unique constraint backstops the existence check above
		if errors.Is(err, db.ErrDuplicate) {
			WriteError(w, http.StatusBadRequest, "email already registered")
			return
		}
		logger.Error().Err(err).Msg("Failed to create user in database")
		WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	logger.Info().Int64("user_id", id).Msg("User registered successfully")

	if svc.Email != nil && svc.Config != nil && svc.Config.Email.Enabled {
		sendWelcomeEmail(r.Context(), svc, payload.Email, payload.Name)
	}

	var location = fmt.Sprintf("%s/%d", r.URL.Path, id)
	WriteResponse(w, http.StatusCreated, models.IDResponse{ID: id}, location)
}

// LoginService verifies credentials and issues a bearer token.
func LoginService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	var payload models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logger.Warn().Err(err).Msg("Invalid request payload")
		WriteError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if payload.Email == "" || payload.Password == "" {
		WriteError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := svc.DB.GetUserByEmail(payload.Email)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to look up user by email")
		WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil {
		WriteError(w, http.StatusNotFound, "user not found")
		return
	}

	if err := authn.CheckPassword(payload.Password, user.PasswordHash); err != nil {
		logger.Warn().Int64("user_id", user.ID).Msg("Password mismatch")
		WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := svc.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to issue token")
		WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	logger.Info().Int64("user_id", user.ID).Msg("User logged in successfully")
	WriteResponse(w, http.StatusOK, models.LoginResponse{UserID: user.ID, Token: token})
}
