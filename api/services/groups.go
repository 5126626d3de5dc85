package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/spendtrack/spendtrack-services/api/middleware"
	"github.com/spendtrack/spendtrack-services/db"
	"github.com/spendtrack/spendtrack-services/internal/authn"
	"github.com/spendtrack/spendtrack-services/models"
)

// GetGroupsService retrieves all groups with their nested membership.
func GetGroupsService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	// Retrieve claims from the request context to identify the user
	_, ok := r.Context().Value(middleware.ClaimsKey).(authn.Claims)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	groups, err := svc.DB.GetGroups()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to retrieve groups from database")
		WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// Ensure groups is not nil, return an empty slice if no groups exist
	if groups == nil {
		groups = []models.Group{}
	}

	logger.Info().Int("group_count", len(groups)).Msg("Successfully retrieved groups")
	WriteResponse(w, http.StatusOK, groups)
}

// GetGroupService retrieves a single group by id, in the same list shape as
// the full listing.
func GetGroupService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	groupID, err := strconv.ParseInt(mux.Vars(r)["group-id"], 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	group, err := svc.DB.GetGroupByID(groupID)
	if err != nil {
		logger.Error().Err(err).Int64("group_id", groupID).Msg("Database error retrieving group")
		WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if group == nil {
		WriteError(w, http.StatusNotFound, "group not found")
		return
	}

	WriteResponse(w, http.StatusOK, []models.Group{*group})
}

// CreateGroupService creates a new group and makes the creating user its first
// member, atomically.
func CreateGroupService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	var payload models.CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logger.Warn().Err(err).Msg("Invalid request payload")
		WriteError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if payload.UserID == 0 || payload.Name == "" || payload.Password == "" {
		WriteError(w, http.StatusBadRequest, "userId, name and password are required")
		return
	}

	hash, err := authn.HashPassword(payload.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash group password")
		WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	groupID, err := svc.DB.CreateGroupWithOwner(payload.Name, hash, payload.UserID)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			WriteError(w, http.StatusBadRequest, "group name already exists")
			return
		}
		if errors.Is(err, db.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		logger.Error().Err(err).Msg("Failed to create group in database")
		WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	logger.Info().Int64("group_id", groupID).Int64("user_id", payload.UserID).
		Msg("Group created successfully")

	var location = fmt.Sprintf("%s/%d", r.URL.Path, groupID)
	WriteResponse(w, http.StatusCreated, models.IDResponse{ID: groupID}, location)
}

// JoinGroupService adds a user to a group after verifying the group password.
func JoinGroupService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	var payload models.JoinGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logger.Warn().Err(err).Msg("Invalid request payload")
		WriteError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if payload.UserID == 0 || payload.GroupID == 0 || payload.Password == "" {
		WriteError(w, http.StatusBadRequest, "userId, groupId and password are required")
		return
	}

	group, err := svc.DB.GetGroupByID(payload.GroupID)
	if err != nil {
		logger.Error().Err(err).Int64("group_id", payload.GroupID).Msg("Database error retrieving group")
		WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if group == nil {
		WriteError(w, http.StatusNotFound, "group not found")
		return
	}

	if err := authn.CheckPassword(payload.Password, group.PasswordHash); err != nil {
		logger.Warn().Int64("group_id", payload.GroupID).Msg("Group password mismatch")
		WriteError(w, http.StatusUnauthorized, "invalid group password")
		return
	}

	if err := svc.DB.SetUserGroup(payload.UserID, &payload.GroupID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		logger.Error().Err(err).Msg("Failed to update user group")
		WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	logger.Info().Int64("group_id", payload.GroupID).Int64("user_id", payload.UserID).
		Msg("User joined group")
	WriteResponse(w, http.StatusCreated, models.IDResponse{ID: payload.UserID})
}

// LeaveGroupService clears a user's group membership.
func LeaveGroupService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	var payload models.LeaveGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logger.Warn().Err(err).Msg("Invalid request payload")
		WriteError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if payload.UserID == 0 || payload.GroupID == 0 {
		WriteError(w, http.StatusBadRequest, "userId and groupId are required")
		return
	}

	group, err := svc.DB.GetGroupByID(payload.GroupID)
	if err != nil {
		logger.Error().Err(err).Int64("group_id", payload.GroupID).Msg("Database error retrieving group")
		WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if group == nil {
		WriteError(w, http.StatusNotFound, "group not found")
		return
	}

	if err := svc.DB.SetUserGroup(payload.UserID, nil); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		logger.Error().Err(err).Msg("Failed to update user group")
		WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	logger.Info().Int64("group_id", payload.GroupID).Int64("user_id", payload.UserID).
		Msg("User left group")
	WriteResponse(w, http.StatusCreated, models.IDResponse{ID: payload.UserID})
}
