package httphandler

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// sessionCookie is the cookie set by the identity service at OAuth time.
const sessionCookie = "hf_session"

var (
	// ErrInvalidSession indicates a session token that failed verification.
	ErrInvalidSession = errors.New("invalid session token")
	// ErrSessionExpired indicates a session token past its expiry.
	ErrSessionExpired = errors.New("session token expired")
)

// SessionClaims are the JWT claims carried by the session cookie. The subject
// is the GitHub user ID.
type SessionClaims struct {
	Login string `json:"login,omitempty"`
	jwt.RegisteredClaims
}

// IssueSessionToken signs a session token for a user. The listing server only
// verifies tokens; issuance lives here so tests and the identity service share
// one definition of the claims.
func IssueSessionToken(userID, login, secret string, expiresIn time.Duration) (string, error) {
	claims := &SessionClaims{
		Login: login,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "hacktoberfest-projects",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifySessionToken validates a session token and returns its claims.
func VerifySessionToken(tokenString, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, ErrInvalidSession
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidSession
}

// sessionUserID extracts the visitor's user ID from the session cookie.
// Missing, malformed, or expired cookies all mean an anonymous visitor; the
// request proceeds either way.
func (h *Handler) sessionUserID(r *http.Request) string {
	if h.sessionSecret == "" {
		return ""
	}

	cookie, err := r.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return ""
	}

	claims, err := VerifySessionToken(cookie.Value, h.sessionSecret)
	if err != nil {
		return ""
	}

	return claims.Subject
}
