package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/healthplus/clinic-api/model"
	"github.com/healthplus/clinic-api/util"
)

func runAuthRequest(t *testing.T, authorization string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	setGinTestMode()

	var captured *gin.Context
	r := gin.New()
	r.Use(RequireAuth())
	r.GET("/me", func(c *gin.Context) {
		captured = c.Copy()
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	r.ServeHTTP(w, req)
	return w, captured
}

func TestRequireAuthMissingHeader(t *testing.T) {
	w, _ := runAuthRequest(t, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing header, got %d", w.Code)
	}
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	w, _ := runAuthRequest(t, "Token abc.def.ghi")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-bearer header, got %d", w.Code)
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	util.SetJWTSecret("middleware-test-secret")
	w, _ := runAuthRequest(t, "Bearer not.a.token")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", w.Code)
	}
}

func TestRequireAuthValidTokenSetsClaims(t *testing.T) {
	util.SetJWTSecret("middleware-test-secret")
	token, err := util.CreateLoginToken(model.User{ID: 11, Email: "pat@example.com", Role: model.RolePatient})
	if err != nil {
		t.Fatalf("CreateLoginToken failed: %v", err)
	}

	w, captured := runAuthRequest(t, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for valid token, got %d: %s", w.Code, w.Body.String())
	}

	id, ok := GetUserID(captured)
	if !ok || id != 11 {
		t.Errorf("expected user id 11 in context, got %d (ok=%v)", id, ok)
	}
	role, ok := GetUserRole(captured)
	if !ok || role != model.RolePatient {
		t.Errorf("expected role %q in context, got %q (ok=%v)", model.RolePatient, role, ok)
	}
}

func TestRequireAuthTokenSignedWithOtherSecret(t *testing.T) {
	util.SetJWTSecret("secret-one")
	token, err := util.CreateLoginToken(model.User{ID: 3, Email: "x@example.com", Role: model.RolePatient})
	if err != nil {
		t.Fatalf("CreateLoginToken failed: %v", err)
	}

	util.SetJWTSecret("secret-two")
	w, _ := runAuthRequest(t, "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for token signed with old secret, got %d", w.Code)
	}
}
