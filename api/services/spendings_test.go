package services

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/spendtrack/spendtrack-services/db"
	"github.com/spendtrack/spendtrack-services/models"
)

func TestGetSpendingsService(t *testing.T) {

	day := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	mockDB := new(MockExpenseStore)
	svc := &Service{DB: mockDB}

	mockDB.On("GetSpendingsByUser", int64(5)).Return([]models.Spending{
		{ID: 11, Name: "groceries", Day: day, Value: 23.5, UserID: 5},
	}, nil)

	r := withClaims(httptest.NewRequest(http.MethodGet, "/spending/5", nil))
	r = mux.SetURLVars(r, map[string]string{"user-id": "5"})
	w := httptest.NewRecorder()

	GetSpendingsService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var spendings []models.Spending
	body, _ := io.ReadAll(res.Body)
	assert.NoError(t, json.Unmarshal(body, &spendings))
	assert.Len(t, spendings, 1)
	assert.Equal(t, "groceries", spendings[0].Name)
	assert.Equal(t, 23.5, spendings[0].Value)
	assert.True(t, day.Equal(spendings[0].Day))
}

func TestGetSpendingsService_InvalidUserID(t *testing.T) {

	mockDB := new(MockExpenseStore)
	svc := &Service{DB: mockDB}

	r := withClaims(httptest.NewRequest(http.MethodGet, "/spending/abc", nil))
	r = mux.SetURLVars(r, map[string]string{"user-id": "abc"})
	w := httptest.NewRecorder()

	GetSpendingsService(svc, w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockDB.AssertNotCalled(t, "GetSpendingsByUser", mock.Anything)
}

func TestCreateSpendingService(t *testing.T) {

	mockDB := new(MockExpenseStore)
	svc := &Service{DB: mockDB}

	mockDB.On("CreateSpending", mock.MatchedBy(func(s *models.Spending) bool {
		return s.UserID == 5 && s.Value == 12.5 && s.Name == "pizza"
	})).Return(int64(21), nil)

	requestBody, _ := json.Marshal(models.SpendingRequest{
		UserID: 5,
		Day:    "2026-08-29T12:00:00Z",
		Value:  12.5,
		Name:   "pizza",
	})
	r := withClaims(httptest.NewRequest(http.MethodPost, "/spending", bytes.NewReader(requestBody)))
	w := httptest.NewRecorder()

	CreateSpendingService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var response models.IDResponse
	body, _ := io.ReadAll(res.Body)
	assert.NoError(t, json.Unmarshal(body, &response))
	assert.Equal(t, int64(21), response.ID)

	mockDB.AssertExpectations(t)
}

func TestCreateSpendingService_ZeroValue(t *testing.T) {

	mockDB := new(MockExpenseStore)
	svc := &Service{DB: mockDB}

	requestBody, _ := json.Marshal(models.SpendingRequest{
		UserID: 5,
		Day:    "2026-08-29T12:00:00Z",
		Value:  0,
	})
	r := withClaims(httptest.NewRequest(http.MethodPost, "/spending", bytes.NewReader(requestBody)))
	w := httptest.NewRecorder()

	CreateSpendingService(svc, w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockDB.AssertNotCalled(t, "CreateSpending", mock.Anything)
}

func TestCreateSpendingService_InvalidDay(t *testing.T) {

	mockDB := new(MockExpenseStore)
	svc := &Service{DB: mockDB}

	requestBody, _ := json.Marshal(models.SpendingRequest{
		UserID: 5,
		Day:    "not-a-date",
		Value:  12.5,
	})
	r := withClaims(httptest.NewRequest(http.MethodPost, "/spending", bytes.NewReader(requestBody)))
	w := httptest.NewRecorder()

	CreateSpendingService(svc, w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockDB.AssertNotCalled(t, "CreateSpending", mock.Anything)
}

func TestUpdateSpendingService(t *testing.T) {

	mockDB := new(MockExpenseStore)
	svc := &Service{DB: mockDB}

	mockDB.On("UpdateSpending", int64(21), mock.MatchedBy(func(s *models.Spending) bool {
		return s.UserID == 5 && s.Value == 40.0
	})).Return(nil)

	requestBody, _ := json.Marshal(models.SpendingRequest{
		UserID: 5,
		Day:    "2026-08-30",
		Value:  40.0,
		Name:   "train tickets",
	})
	r := withClaims(httptest.NewRequest(http.MethodPut, "/spending/21", bytes.NewReader(requestBody)))
	r = mux.SetURLVars(r, map[string]string{"spending-id": "21"})
	w := httptest.NewRecorder()

	UpdateSpendingService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response models.IDResponse
	body, _ := io.ReadAll(res.Body)
	assert.NoError(t, json.Unmarshal(body, &response))
	assert.Equal(t, int64(21), response.ID)

	mockDB.AssertExpectations(t)
}

func TestUpdateSpendingService_NotFound(t *testing.T) {

	mockDB := new(MockExpenseStore)
	svc := &Service{DB: mockDB}

	mockDB.On("UpdateSpending", int64(99), mock.Anything).Return(db.ErrNotFound)

	requestBody, _ := json.Marshal(models.SpendingRequest{
		UserID: 5,
		Day:    "2026-08-30",
		Value:  40.0,
	})
	r := withClaims(httptest.NewRequest(http.MethodPut, "/spending/99", bytes.NewReader(requestBody)))
	r = mux.SetURLVars(r, map[string]string{"spending-id": "99"})
	w := httptest.NewRecorder()

	UpdateSpendingService(svc, w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteSpendingService(t *testing.T) {

	mockDB := new(MockExpenseStore)
	svc := &Service{DB: mockDB}

	mockDB.On("DeleteSpending", int64(21)).Return(nil)

	r := withClaims(httptest.NewRequest(http.MethodDelete, "/spending/21", nil))
	r = mux.SetURLVars(r, map[string]string{"spending-id": "21"})
	w := httptest.NewRecorder()

	DeleteSpendingService(svc, w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response models.IDResponse
	body, _ := io.ReadAll(res.Body)
	assert.NoError(t, json.Unmarshal(body, &response))
	assert.Equal(t, int64(21), response.ID)

	mockDB.AssertExpectations(t)
}

func TestDeleteSpendingService_NotFound(t *testing.T) {

	mockDB := new(MockExpenseStore)
	svc := &Service{DB: mockDB}

	mockDB.On("DeleteSpending", int64(99)).Return(db.ErrNotFound)

	r := withClaims(httptest.NewRequest(http.MethodDelete, "/spending/99", nil))
	r = mux.SetURLVars(r, map[string]string{"spending-id": "99"})
	w := httptest.NewRecorder()

	DeleteSpendingService(svc, w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteSpendingService_InvalidID(t *testing.T) {

	mockDB := new(MockExpenseStore)
	svc := &Service{DB: mockDB}

	r := withClaims(httptest.NewRequest(http.MethodDelete, "/spending/abc", nil))
	r = mux.SetURLVars(r, map[string]string{"spending-id": "abc"})
	w := httptest.NewRecorder()

	DeleteSpendingService(svc, w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockDB.AssertNotCalled(t, "DeleteSpending", mock.Anything)
}
