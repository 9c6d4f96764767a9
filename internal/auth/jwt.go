package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// --- Context Keys ---

// contextKey is a custom type used for context keys to avoid collisions.
type contextKey string

const (
	SessionIDKey contextKey = "sessionID"
)

const issuer = "claudechat-backend"

// ErrInvalidToken is returned for any token that fails parsing or validation.
var ErrInvalidToken = errors.New("invalid session token")

// --- JWT Claims ---

// SessionClaims binds a bearer token to exactly one page session.
type SessionClaims struct {
	SessionID uuid.UUID `json:"session_id"`
	jwt.RegisteredClaims
}

// NewSessionToken generates a signed access token for sessionID.
func NewSessionToken(sessionID uuid.UUID, jwtSecret string, expiration time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   sessionID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID.String()).Msg("error signing session token")
		return "", err
	}
	return signedToken, nil
}

// ParseSessionToken validates tokenString and returns the session it was issued for.
// Expired tokens are reported with jwt.ErrTokenExpired in the chain.
func ParseSessionToken(tokenString, jwtSecret string) (uuid.UUID, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.SessionID == uuid.Nil {
		return uuid.Nil, ErrInvalidToken
	}
	return claims.SessionID, nil
}
