package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Manager struct {
	secretKey string
	ttl       time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secretKey: secret, ttl: ttl}
}

type Claims struct {
	TutorID int `json:"id"`
	jwt.RegisteredClaims
}

// Sign issues a bearer token whose subject is the tutor id. One fixed TTL,
// one policy: interactive login sessions.
func (m *Manager) Sign(tutorID int) (string, error) {
	now := time.Now()
	claims := &Claims{
		TutorID: tutorID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(tutorID),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.secretKey))
}

// Parse fails closed: bad signature, malformed payload and past expiry all
// come back as an error, never as partial claims.
func (m *Manager) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(m.secretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}

func (m *Manager) TTL() time.Duration { return m.ttl }
