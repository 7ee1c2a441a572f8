package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is the lifetime of an access token.
const TokenTTL = 24 * time.Hour

var jwtSecret []byte

func secret() ([]byte, error) {
	if jwtSecret == nil {
		s := os.Getenv("JWT_SECRET")
		if s == "" {
			return nil, errors.New("JWT_SECRET not set")
		}
		jwtSecret = []byte(s)
	}
	return jwtSecret, nil
}

// Claims carried by every access token. Role drives the admin checks in the
// middleware; UserID drives the self-only row checks in the handlers.
type Claims struct {
	UserID uuid.UUID `json:"userId"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken issues an HS256 JWT valid for TokenTTL.
func GenerateToken(userID uuid.UUID, role string) (string, error) {
	key, err := secret()
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ParseAndValidate validates signature and expiry and returns the claims.
func ParseAndValidate(tokenStr string) (*Claims, error) {
	key, err := secret()
	if err != nil {
		return nil, err
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("could not extract claims")
	}
	return claims, nil
}
