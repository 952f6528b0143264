package util

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/healthplus/clinic-api/model"
)

func TestCreateAndParseLoginToken(t *testing.T) {
	SetJWTSecret("token-test-secret")

	user := model.User{ID: 42, Email: "jane@example.com", Role: model.RoleDoctor}
	raw, err := CreateLoginToken(user)
	if err != nil {
		t.Fatalf("CreateLoginToken failed: %v", err)
	}

	claims, err := ParseLoginToken(raw)
	if err != nil {
		t.Fatalf("ParseLoginToken failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Email != "jane@example.com" {
		t.Errorf("expected email jane@example.com, got %s", claims.Email)
	}
	if claims.Role != model.RoleDoctor {
		t.Errorf("expected role %s, got %s", model.RoleDoctor, claims.Role)
	}
}

func TestParseLoginTokenWrongSecret(t *testing.T) {
	SetJWTSecret("secret-one")
	raw, err := CreateLoginToken(model.User{ID: 1, Email: "a@b.co", Role: model.RolePatient})
	if err != nil {
		t.Fatalf("CreateLoginToken failed: %v", err)
	}

	SetJWTSecret("secret-two")
	if _, err := ParseLoginToken(raw); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestParseLoginTokenExpired(t *testing.T) {
	SetJWTSecret("expiry-secret")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    uint(7),
		"email": "old@example.com",
		"role":  model.RolePatient,
		"exp":   time.Now().Add(-time.Minute).Unix(),
	})
	raw, err := token.SignedString(GetJWTSecretByte())
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if _, err := ParseLoginToken(raw); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseLoginTokenRejectsUnsignedAlg(t *testing.T) {
	SetJWTSecret("alg-secret")

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":    uint(9),
		"email": "none@example.com",
		"role":  model.RoleAdmin,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if _, err := ParseLoginToken(raw); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for alg=none token, got %v", err)
	}
}

func TestParseLoginTokenGarbage(t *testing.T) {
	SetJWTSecret("garbage-secret")
	if _, err := ParseLoginToken("not-a-token"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for garbage input, got %v", err)
	}
}
