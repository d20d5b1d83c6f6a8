// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"passport/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations for account persistence.
// The application layer depends on this interface, not the concrete implementation.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindAll retrieves every account, ordered by creation time.
	FindAll(ctx context.Context) ([]*entity.Account, error)

	// Create persists a new account. The store assigns the ID and timestamps.
	Create(ctx context.Context, account *entity.Account) error

	// Update modifies an existing account. Returns ErrAccountNotFound if the
	// id does not exist.
	Update(ctx context.Context, account *entity.Account) error

	// Delete removes an account by id. Returns ErrAccountNotFound if nothing
	// was removed.
	Delete(ctx context.Context, id uuid.UUID) error
}
