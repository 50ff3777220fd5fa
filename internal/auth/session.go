package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookie is the name of the HttpOnly cookie carrying the session token.
const SessionCookie = "rs_session"

// ErrInvalidSession is returned when a session token is missing, malformed,
// expired, or signed with the wrong key.
var ErrInvalidSession = errors.New("invalid session")

// Sessions issues and validates the server-side session tokens established
// after a successful provider login. Tokens are HS256-signed JWTs carried in
// an HttpOnly cookie: the browser cannot read them and the server needs no
// session table to verify them.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	secure bool
	issuer string
}

// NewSessions builds a session manager. secret should be at least 32 random
// bytes; an error is returned below 16 so a missing env var fails loudly at
// startup instead of silently signing with "".
func NewSessions(secret string, ttl time.Duration, secureCookies bool) (*Sessions, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: session secret must be at least 16 characters")
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Sessions{
		secret: []byte(secret),
		ttl:    ttl,
		secure: secureCookies,
		issuer: "go-recipe-backend",
	}, nil
}

// Issue creates a signed session token for userID.
func (s *Sessions) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    s.issuer,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing session token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a session token and returns the user ID it
// was issued for. Any failure maps to ErrInvalidSession; callers have no
// reason to distinguish a bad signature from an expired token.
func (s *Sessions) Validate(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithIssuer(s.issuer),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidSession
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidSession
	}
	return claims.Subject, nil
}

// Cookie wraps a session token in the HttpOnly cookie configuration used by
// the login callback. SameSite=Lax lets the cookie survive the provider's
// top-level redirect back to us while still blocking cross-site POSTs.
func (s *Sessions) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie returns an expired cookie that removes the session.
func (s *Sessions) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
