package util

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/healthplus/clinic-api/model"
)

// How long an issued login token stays valid.
const tokenLifetime = 7 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// TokenClaims are the identity claims carried by a login token.
type TokenClaims struct {
	UserID uint
	Email  string
	Role   string
}

// CreateLoginToken issues a signed HS256 token carrying the user's id, email
// and role, expiring after seven days.
func CreateLoginToken(user model.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(tokenLifetime).Unix(),
	})
	return token.SignedString(GetJWTSecretByte())
}

// ParseLoginToken verifies a token's signature and expiry and extracts the
// identity claims. Any malformed, expired or wrongly signed token yields
// ErrInvalidToken.
func ParseLoginToken(raw string) (TokenClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC signatures are acceptable; reject algorithm confusion.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return GetJWTSecretByte(), nil
	})
	if err != nil || !token.Valid {
		return TokenClaims{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, ErrInvalidToken
	}

	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return TokenClaims{}, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return TokenClaims{UserID: uint(id), Email: email, Role: role}, nil
}
