package httphandler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httphandler "github.com/offbeatjs/hacktoberfest-projects/internal/adapter/driving/http"
)

const testSessionSecret = "test-session-secret"

func TestSessionToken_RoundTrip(t *testing.T) {
	token, err := httphandler.IssueSessionToken("42", "octocat", testSessionSecret, time.Hour)
	require.NoError(t, err)

	claims, err := httphandler.VerifySessionToken(token, testSessionSecret)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "octocat", claims.Login)
}

func TestVerifySessionToken_Expired(t *testing.T) {
	token, err := httphandler.IssueSessionToken("42", "octocat", testSessionSecret, -time.Minute)
	require.NoError(t, err)

	_, err = httphandler.VerifySessionToken(token, testSessionSecret)
	assert.ErrorIs(t, err, httphandler.ErrSessionExpired)
}

func TestVerifySessionToken_WrongSecret(t *testing.T) {
	token, err := httphandler.IssueSessionToken("42", "octocat", testSessionSecret, time.Hour)
	require.NoError(t, err)

	_, err = httphandler.VerifySessionToken(token, "some-other-secret")
	assert.ErrorIs(t, err, httphandler.ErrInvalidSession)
}

func TestVerifySessionToken_Garbage(t *testing.T) {
	_, err := httphandler.VerifySessionToken("not.a.jwt", testSessionSecret)
	assert.ErrorIs(t, err, httphandler.ErrInvalidSession)
}
