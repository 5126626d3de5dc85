package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/spendtrack/spendtrack-services/api/middleware"
	"github.com/spendtrack/spendtrack-services/db"
	"github.com/spendtrack/spendtrack-services/internal/authn"
	"github.com/spendtrack/spendtrack-services/models"
)

// withClaims attaches authenticated claims the way the JWT middleware does.
func withClaims(r *http.Request) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.ClaimsKey, authn.Claims{
		UserID: 4,
		Email:  "dana@example.com",
	})
	return r.WithContext(ctx)
}

func TestGetGroupsService(t *testing.T) {

	mockDB := new(MockExpenseStore)
	svc := &Service{DB: mockDB}

	mockDB.On("GetGroups").Return([]models.Group{
		{
			ID:           2,
			Name:         "flatmates",
			PasswordHash: "$2a$10$secret-hash",
			Users: []models.GroupMember{
				{
					ID:    4,
					Name:  "Dana",
					Email: "dana@example.com",
					Spendings: []models.Spending{
						{ID: 11, Name: "groceries", Value: 23.5, UserID: 4},
					},
				},
			},
		},
	}, nil)

	r := withClaims(httptest.NewRequest(http.MethodGet, "/group", nil))
	w := httptest.NewRecorder()

	GetGroupsService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	body, _ := io.ReadAll(res.Body)

	var groups []models.Group
	assert.NoError(t, json.Unmarshal(body, &groups))
	assert.Len(t, groups, 1)
	assert.Equal(t, "flatmates", groups[0].Name)
	assert.Len(t, groups[0].Users, 1)
	assert.Len(t, groups[0].Users[0].Spendings, 1)

	// Password hashes must never leak into the listing
	assert.NotContains(t, string(body), "secret-hash")
}

func TestGetGroupsService_MissingClaims(t *testing.T) {

	mockDB := new(MockExpenseStore)
	svc := &Service{DB: mockDB}

	r := httptest.NewRequest(http.MethodGet, "/group", nil)
	w := httptest.NewRecorder()

	GetGroupsService(svc, w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockDB.AssertNotCalled(t, "GetGroups")
}

func TestGetGroupService_InvalidID(t *testing.T) {

	mockDB := new(MockExpenseStore)
	svc := &Service{DB: mockDB}

	r := withClaims(httptest.NewRequest(http.MethodGet, "/group/abc", nil))
	r = mux.SetURLVars(r, map[string]string{"group-id": "abc"})
	w := httptest.NewRecorder()

	GetGroupService(svc, w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetGroupService_NotFound(t *testing.T) {

	mockDB := new(MockExpenseStore)
	svc := &Service{DB: mockDB}

	mockDB.On("GetGroupByID", int64(99)).Return(nil, nil)

	r := withClaims(httptest.NewRequest(http.MethodGet, "/group/99", nil))
	r = mux.SetURLVars(r, map[string]string{"group-id": "99"})
	w := httptest.NewRecorder()

	GetGroupService(svc, w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateGroupService(t *testing.T) {

	mockDB := new(MockExpenseStore)
	svc := &Service{DB: mockDB}

	mockDB.On("CreateGroupWithOwner", "holiday", mock.AnythingOfType("string"), int64(4)).
		Return(int64(9), nil)

	requestBody, _ := json.Marshal(models.CreateGroupRequest{
		UserID:   4,
		Name:     "holiday",
		Password: "group-pass",
	})
	r := withClaims(httptest.NewRequest(http.MethodPost, "/group", bytes.NewReader(requestBody)))
	w := httptest.NewRecorder()

	CreateGroupService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var response models.IDResponse
	body, _ := io.ReadAll(res.Body)
	assert.NoError(t, json.Unmarshal(body, &response))
	assert.Equal(t, int64(9), response.ID)

	// The stored group password must be hashed
	storedHash := mockDB.Calls[0].Arguments.String(1)
	assert.NoError(t, authn.CheckPassword("group-pass", storedHash))

	mockDB.AssertExpectations(t)
}

func TestCreateGroupService_DuplicateName(t *testing.T) {

	mockDB := new(MockExpenseStore)
	svc := &Service{DB: mockDB}

	mockDB.On("CreateGroupWithOwner", "holiday", mock.AnythingOfType("string"), int64(4)).
		Return(int64(0), db.ErrDuplicate)

	requestBody, _ := json.Marshal(models.CreateGroupRequest{
		UserID:   4,
		Name:     "holiday",
		Password: "group-pass",
	})
	r := withClaims(httptest.NewRequest(http.MethodPost, "/group", bytes.NewReader(requestBody)))
	w := httptest.NewRecorder()

	CreateGroupService(svc, w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateGroupService_MissingFields(t *testing.T) {

	mockDB := new(MockExpenseStore)
	svc := &Service{DB: mockDB}

	requestBody, _ := json.Marshal(models.CreateGroupRequest{UserID: 4})
	r := withClaims(httptest.NewRequest(http.MethodPost, "/group", bytes.NewReader(requestBody)))
	w := httptest.NewRecorder()

	CreateGroupService(svc, w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockDB.AssertNotCalled(t, "CreateGroupWithOwner", mock.Anything, mock.Anything, mock.Anything)
}

func TestJoinGroupService(t *testing.T) {

	hash, err := authn.HashPassword("group-pass")
	assert.NoError(t, err)

	mockDB := new(MockExpenseStore)
	svc := &Service{DB: mockDB}

	mockDB.On("GetGroupByID", int64(2)).Return(&models.Group{
		ID:           2,
		Name:         "flatmates",
		PasswordHash: hash,
	}, nil)
	mockDB.On("SetUserGroup", int64(4), mock.MatchedBy(func(g *int64) bool {
		return g != nil && *g == 2
	})).Return(nil)

	requestBody, _ := json.Marshal(models.JoinGroupRequest{
		UserID:   4,
		GroupID:  2,
		Password: "group-pass",
	})
	r := withClaims(httptest.NewRequest(http.MethodPost, "/group/join", bytes.NewReader(requestBody)))
	w := httptest.NewRecorder()

	JoinGroupService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var response models.IDResponse
	body, _ := io.ReadAll(res.Body)
	assert.NoError(t, json.Unmarshal(body, &response))
	assert.Equal(t, int64(4), response.ID)

	mockDB.AssertExpectations(t)
}

func TestJoinGroupService_WrongPassword(t *testing.T) {

	hash, err := authn.HashPassword("group-pass")
	assert.NoError(t, err)

	mockDB := new(MockExpenseStore)
	svc := &Service{DB: mockDB}

	mockDB.On("GetGroupByID", int64(2)).Return(&models.Group{
		ID:           2,
		Name:         "flatmates",
		PasswordHash: hash,
	}, nil)

	requestBody, _ := json.Marshal(models.JoinGroupRequest{
		UserID:   4,
		GroupID:  2,
		Password: "wrong-pass",
	})
	r := withClaims(httptest.NewRequest(http.MethodPost, "/group/join", bytes.NewReader(requestBody)))
	w := httptest.NewRecorder()

	JoinGroupService(svc, w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockDB.AssertNotCalled(t, "SetUserGroup", mock.Anything, mock.Anything)
}

func TestJoinGroupService_GroupNotFound(t *testing.T) {

	mockDB := new(MockExpenseStore)
	svc := &Service{DB: mockDB}

	mockDB.On("GetGroupByID", int64(99)).Return(nil, nil)

	requestBody, _ := json.Marshal(models.JoinGroupRequest{
		UserID:   4,
		GroupID:  99,
		Password: "group-pass",
	})
	r := withClaims(httptest.NewRequest(http.MethodPost, "/group/join", bytes.NewReader(requestBody)))
	w := httptest.NewRecorder()

	JoinGroupService(svc, w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLeaveGroupService(t *testing.T) {

	mockDB := new(MockExpenseStore)
	svc := &Service{DB: mockDB}

	mockDB.On("GetGroupByID", int64(2)).Return(&models.Group{
		ID:   2,
		Name: "flatmates",
	}, nil)
	mockDB.On("SetUserGroup", int64(4), mock.MatchedBy(func(g *int64) bool {
		return g == nil
	})).Return(nil)

	requestBody, _ := json.Marshal(models.LeaveGroupRequest{UserID: 4, GroupID: 2})
	r := withClaims(httptest.NewRequest(http.MethodPost, "/group/leave", bytes.NewReader(requestBody)))
	w := httptest.NewRecorder()

	LeaveGroupService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var response models.IDResponse
	body, _ := io.ReadAll(res.Body)
	assert.NoError(t, json.Unmarshal(body, &response))
	assert.Equal(t, int64(4), response.ID)

	mockDB.AssertExpectations(t)
}

func TestLeaveGroupService_GroupNotFound(t *testing.T) {

	mockDB := new(MockExpenseStore)
	svc := &Service{DB: mockDB}

	mockDB.On("GetGroupByID", int64(99)).Return(nil, nil)

	requestBody, _ := json.Marshal(models.LeaveGroupRequest{UserID: 4, GroupID: 99})
	r := withClaims(httptest.NewRequest(http.MethodPost, "/group/leave", bytes.NewReader(requestBody)))
	w := httptest.NewRecorder()

	LeaveGroupService(svc, w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockDB.AssertNotCalled(t, "SetUserGroup", mock.Anything, mock.Anything)
}
