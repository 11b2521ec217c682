package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/offbeatjs/hacktoberfest-projects/internal/domain/model"
	"github.com/offbeatjs/hacktoberfest-projects/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.AccountStore = (*AccountRepo)(nil)

// ErrEncryptionKeyNotSet is re-exported for callers that only import this package.
var ErrEncryptionKeyNotSet = driven.ErrEncryptionKeyNotSet

// AccountRepo is the SQLite implementation of the AccountStore port.
// Access tokens are encrypted with AES-256-GCM before write and decrypted
// after read, so a leaked database file does not leak GitHub credentials.
type AccountRepo struct {
	db  *DB
	key []byte // 32-byte AES-256 key; nil when encryption is disabled.
}

// NewAccountRepo creates a new AccountRepo. key must be 32 bytes for
// AES-256-GCM, or nil to disable account storage (all operations then return
// ErrEncryptionKeyNotSet).
func NewAccountRepo(db *DB, key []byte) *AccountRepo {
	return &AccountRepo{db: db, key: key}
}

// Upsert stores or replaces the account row for account.UserID.
func (r *AccountRepo) Upsert(ctx context.Context, account model.Account) error {
	encrypted, err := r.encrypt(account.AccessToken)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO accounts (user_id, login, access_token, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
			login = excluded.login,
			access_token = excluded.access_token,
			updated_at = CURRENT_TIMESTAMP`
	if _, err := r.db.Writer.ExecContext(ctx, query, account.UserID, account.Login, encrypted); err != nil {
		return fmt.Errorf("upsert account %q: %w", account.UserID, err)
	}
	return nil
}

// AccessToken returns the decrypted token for the given user, reading at
// most one row. Returns ("", nil) when the user has no linked account.
func (r *AccountRepo) AccessToken(ctx context.Context, userID string) (string, error) {
	if r.key == nil {
		return "", driven.ErrEncryptionKeyNotSet
	}

	const query = `SELECT access_token FROM accounts WHERE user_id = ? LIMIT 1`
	var encrypted string
	err := r.db.Reader.QueryRowContext(ctx, query, userID).Scan(&encrypted)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get account %q: %w", userID, err)
	}

	token, err := r.decrypt(encrypted)
	if err != nil {
		return "", fmt.Errorf("decrypt token for account %q: %w", userID, err)
	}
	return token, nil
}

// encrypt encrypts plaintext using AES-256-GCM and returns a base64-encoded
// string containing the nonce (12 bytes) prepended to the ciphertext.
func (r *AccountRepo) encrypt(plaintext string) (string, error) {
	if r.key == nil {
		return "", driven.ErrEncryptionKeyNotSet
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, producing: nonce || ciphertext || tag.
	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts a base64-encoded AES-256-GCM ciphertext.
func (r *AccountRepo) decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("gcm.Open: %w", err)
	}

	return string(plaintext), nil
}
