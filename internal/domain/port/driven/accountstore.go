// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"
	"errors"

	"github.com/offbeatjs/hacktoberfest-projects/internal/domain/model"
)

// ErrEncryptionKeyNotSet is returned by AccountStore operations when
// HACKTOBERFEST_SECRET_KEY has not been configured. Stored tokens cannot be
// read without it; callers treat the condition as "no stored token".
var ErrEncryptionKeyNotSet = errors.New("encryption key not configured: set HACKTOBERFEST_SECRET_KEY")

// AccountStore defines the driven port for linked GitHub accounts. The
// adapter layer is responsible for token encryption; this interface operates
// on plaintext values at the domain boundary.
type AccountStore interface {
	// Upsert stores or replaces the account for account.UserID. The identity
	// collaborator calls this after a completed OAuth exchange.
	Upsert(ctx context.Context, account model.Account) error

	// AccessToken returns the stored token for the given user, limited to a
	// single row. Returns ("", nil) if the user has no linked account, and
	// ErrEncryptionKeyNotSet if the store cannot decrypt.
	AccessToken(ctx context.Context, userID string) (string, error)
}
