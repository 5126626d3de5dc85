package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/spendtrack/spendtrack-services/db"
	"github.com/spendtrack/spendtrack-services/models"
)

// GetSpendingsService retrieves all spendings recorded by a user.
func GetSpendingsService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	userID, err := strconv.ParseInt(mux.Vars(r)["user-id"], 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	spendings, err := svc.DB.GetSpendingsByUser(userID)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to retrieve spendings")
		WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if spendings == nil {
		spendings = []models.Spending{}
	}

	logger.Info().Int("spending_count", len(spendings)).Msg("Successfully retrieved spendings")
	WriteResponse(w, http.StatusOK, spendings)
}

// CreateSpendingService records a new spending for a user.
func CreateSpendingService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	spending, ok := decodeSpending(w, r)
	if !ok {
		return
	}

	id, err := svc.DB.CreateSpending(spending)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		logger.Error().Err(err).Msg("Failed to create spending in database")
		WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	logger.Info().Int64("spending_id", id).Int64("user_id", spending.UserID).
		Msg("Spending created successfully")

	var location = fmt.Sprintf("%s/%d", r.URL.Path, id)
	WriteResponse(w, http.StatusCreated, models.IDResponse{ID: id}, location)
}

// UpdateSpendingService overwrites all fields of an existing spending.
func UpdateSpendingService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["spending-id"], 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid spending id")
		return
	}

	spending, ok := decodeSpending(w, r)
	if !ok {
		return
	}

	if err := svc.DB.UpdateSpending(id, spending); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "spending not found")
			return
		}
		logger.Error().Err(err).Int64("spending_id", id).Msg("Failed to update spending")
		WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	logger.Info().Int64("spending_id", id).Msg("Spending updated successfully")
	WriteResponse(w, http.StatusOK, models.IDResponse{ID: id})
}

// DeleteSpendingService removes a spending by id.
func DeleteSpendingService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["spending-id"], 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid spending id")
		return
	}

	if err := svc.DB.DeleteSpending(id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "spending not found")
			return
		}
		logger.Error().Err(err).Int64("spending_id", id).Msg("Failed to delete spending")
		WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	logger.Info().Int64("spending_id", id).Msg("Spending deleted successfully")
	WriteResponse(w, http.StatusOK, models.IDResponse{ID: id})
}

// decodeSpending decodes and validates a spending payload, writing the error
// response itself when validation fails.
func decodeSpending(w http.ResponseWriter, r *http.Request) (*models.Spending, bool) {
	var payload models.SpendingRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request payload")
		return nil, false
	}

	if payload.UserID == 0 || payload.Day == "" || payload.Value == 0 {
		WriteError(w, http.StatusBadRequest, "userId, day and a non-zero value are required")
		return nil, false
	}

	day, err := parseDay(payload.Day)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "day is not a valid timestamp")
		return nil, false
	}

	return &models.Spending{
		Name:   payload.Name,
		Day:    day,
		Value:  payload.Value,
		UserID: payload.UserID,
	}, true
}
