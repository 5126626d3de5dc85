package services

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/mock"

	"github.com/spendtrack/spendtrack-services/models"
)

type MockExpenseStore struct {
	mock.Mock
}

type MockEmailClient struct {
	mock.Mock
}

func (m *MockEmailClient) SendEmail(ctx context.Context, input *sesv2.SendEmailInput, opts ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	args := m.Called(ctx, input, opts)
	return args.Get(0).(*sesv2.SendEmailOutput), args.Error(1)
}

func (m *MockExpenseStore) CreateUser(name, email, passwordHash string) (int64, error) {
	args := m.Called(name, email, passwordHash)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseStore) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockExpenseStore) GetUserByID(id int64) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockExpenseStore) SetUserGroup(userID int64, groupID *int64) error {
	args := m.Called(userID, groupID)
	return args.Error(0)
}

func (m *MockExpenseStore) GetGroups() ([]models.Group, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Group), args.Error(1)
}

func (m *MockExpenseStore) GetGroupByID(id int64) (*models.Group, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockExpenseStore) CreateGroupWithOwner(name, passwordHash string, ownerID int64) (int64, error) {
	args := m.Called(name, passwordHash, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseStore) GetSpendingsByUser(userID int64) ([]models.Spending, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Spending), args.Error(1)
}

func (m *MockExpenseStore) CreateSpending(s *models.Spending) (int64, error) {
	args := m.Called(s)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseStore) UpdateSpending(id int64, s *models.Spending) error {
	args := m.Called(id, s)
	return args.Error(0)
}

func (m *MockExpenseStore) DeleteSpending(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockExpenseStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
