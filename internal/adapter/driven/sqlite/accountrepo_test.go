package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offbeatjs/hacktoberfest-projects/internal/domain/model"
	"github.com/offbeatjs/hacktoberfest-projects/internal/domain/port/driven"
)

func TestAccountRepo_UpsertAndAccessToken(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepo(db, testKey())
	ctx := context.Background()

	err := repo.Upsert(ctx, model.Account{UserID: "42", Login: "octocat", AccessToken: "gho_abc123"})
	require.NoError(t, err)

	token, err := repo.AccessToken(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "gho_abc123", token)
}

func TestAccountRepo_AccessTokenMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepo(db, testKey())
	ctx := context.Background()

	token, err := repo.AccessToken(ctx, "nonexistent")
	require.NoError(t, err)
	assert.Equal(t, "", token)
}

func TestAccountRepo_UpsertOverwrites(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepo(db, testKey())
	ctx := context.Background()

	err := repo.Upsert(ctx, model.Account{UserID: "42", Login: "octocat", AccessToken: "old-token"})
	require.NoError(t, err)

	err = repo.Upsert(ctx, model.Account{UserID: "42", Login: "octocat", AccessToken: "new-token"})
	require.NoError(t, err)

	token, err := repo.AccessToken(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "new-token", token)
}

func TestAccountRepo_TokenStoredEncrypted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepo(db, testKey())
	ctx := context.Background()

	err := repo.Upsert(ctx, model.Account{UserID: "42", AccessToken: "gho_secret"})
	require.NoError(t, err)

	var raw string
	err = db.Reader.QueryRowContext(ctx, `SELECT access_token FROM accounts WHERE user_id = ?`, "42").Scan(&raw)
	require.NoError(t, err)
	assert.NotEqual(t, "gho_secret", raw)
	assert.NotContains(t, raw, "gho_secret")
}

func TestAccountRepo_NilKey(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepo(db, nil)
	ctx := context.Background()

	err := repo.Upsert(ctx, model.Account{UserID: "42", AccessToken: "token"})
	assert.ErrorIs(t, err, driven.ErrEncryptionKeyNotSet)

	_, err = repo.AccessToken(ctx, "42")
	assert.ErrorIs(t, err, driven.ErrEncryptionKeyNotSet)
}
