package service

import (
	"github.com/google/uuid"
)

// TokenService defines the interface for issuing and validating signed
// session tokens. This abstracts the token format from the use cases.
type TokenService interface {
	// Issue creates a signed token bound to the given account id.
	Issue(accountID uuid.UUID) (string, error)

	// Validate parses a token string and returns the account id it was
	// issued for, or an error if the signature does not verify.
	Validate(tokenString string) (uuid.UUID, error)
}
