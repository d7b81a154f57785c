package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func secretKey() []byte {
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("vendorportal-dev")
}

// SessionCookieName is the browser cookie carrying the signed portal session id.
const SessionCookieName = "portal_session"

// SessionTTL bounds how long a portal session cookie stays valid. The token
// store row carries the same expiry.
const SessionTTL = 7 * 24 * time.Hour

// NewSessionID mints the identifier that keys a browser session in the token
// store.
func NewSessionID() string {
	return uuid.NewString()
}

// GenerateSessionCookie signs a JWT carrying the session id, to be set as the
// portal session cookie.
func GenerateSessionCookie(sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": time.Now().Add(SessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secretKey())
	if err != nil {
		return "", err
	}
	return signed, nil
}

// ParseSessionCookie validates the cookie JWT and returns the session id.
func ParseSessionCookie(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secretKey(), nil
	})
	if err != nil {
		return "", fmt.Errorf("token parsing error: %w", err)
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("unexpected claims type")
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errors.New("session id missing from token")
	}
	return sid, nil
}
