package services

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"github.com/spendtrack/spendtrack-services/internal/appconfig"
	"github.com/spendtrack/spendtrack-services/internal/authn"
	"github.com/spendtrack/spendtrack-services/models"
)

// ExpenseStore is the persistence surface used by the request services.
// Implemented by *db.ExpenseDB and mocked in tests.
type ExpenseStore interface {
	CreateUser(name, email, passwordHash string) (int64, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id int64) (*models.User, error)
	SetUserGroup(userID int64, groupID *int64) error

	GetGroups() ([]models.Group, error)
	GetGroupByID(id int64) (*models.Group, error)
	CreateGroupWithOwner(name, passwordHash string, ownerID int64) (int64, error)

	GetSpendingsByUser(userID int64) ([]models.Spending, error)
	CreateSpending(s *models.Spending) (int64, error)
	UpdateSpending(id int64, s *models.Spending) error
	DeleteSpending(id int64) error

	Close() error
}

// EmailClient matches the sesv2 client surface used to send account emails.
type EmailClient interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Service contains all shared dependencies for handlers.
type Service struct {
	Config *appconfig.Config
	DB     ExpenseStore
	Tokens *authn.TokenService
	Email  EmailClient
}
