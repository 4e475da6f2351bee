package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/intask-dev/intask/internal/models"
)

// TTL is the fixed token lifetime.
const TTL = 24 * time.Hour

var (
	ErrExpired = errors.New("token expired")
	ErrInvalid = errors.New("invalid token")
)

// Claims is the signed token payload: subject id, role, team and issue time.
type Claims struct {
	UserID uint64      `json:"id"`
	Role   models.Role `json:"role"`
	TeamID *uint64     `json:"teamId"`
	jwt.RegisteredClaims
}

// Generate signs a token for the user, expiring 24 hours from issuance.
func Generate(secret string, user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		TeamID: user.TeamID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Parse verifies the signature and expiry and returns the claims.
func Parse(secret, raw string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	if !t.Valid {
		return nil, ErrInvalid
	}
	return claims, nil
}

// IssuedAt returns the token issue time, or the zero time if absent.
func (c *Claims) IssuedAtTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}
