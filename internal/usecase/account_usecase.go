// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"passport/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateAccountInput defines the data required to create a new account.
type CreateAccountInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateAccountInput defines a partial account update. Nil fields are left
// untouched.
type UpdateAccountInput struct {
	ID       uuid.UUID
	Name     *string
	Email    *string
	Password *string
}

// CreateSessionInput defines the credentials required to open a session.
type CreateSessionInput struct {
	Email    string
	Password string
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) depends on.
//
// Read operations report absence as a nil account, not an error.
type AccountUsecase interface {
	CreateAccount(ctx context.Context, input *CreateAccountInput) (*entity.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetAccountByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	ListAccounts(ctx context.Context) ([]*entity.Account, error)
	UpdateAccount(ctx context.Context, input *UpdateAccountInput) (*entity.Account, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
	CreateSession(ctx context.Context, input *CreateSessionInput) (*entity.SessionGrant, error)
}
