// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the persisted user record. The PasswordHash field holds a
// salted bcrypt digest; the plaintext is never stored or returned.
type Account struct {
	ID           uuid.UUID // Store-assigned unique identifier.
	Name         string    // Display name.
	Email        string    // Login identifier, intended unique per account.
	PasswordHash string    // Salted one-way digest of the account password.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// PublicView returns a copy of the account with the password digest cleared.
// Every value that leaves the service boundary goes through this.
func (a *Account) PublicView() *Account {
	if a == nil {
		return nil
	}
	view := *a
	view.PasswordHash = ""

	return &view
}
