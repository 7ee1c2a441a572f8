package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	jwtSecret = []byte("test-secret")

	id := uuid.New()
	token, err := GenerateToken(id, "store_manager")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseAndValidate(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != id {
		t.Fatalf("userId = %s, want %s", claims.UserID, id)
	}
	if claims.Role != "store_manager" {
		t.Fatalf("role = %q", claims.Role)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	jwtSecret = []byte("first-secret")
	token, err := GenerateToken(uuid.New(), RoleAdmin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	jwtSecret = []byte("second-secret")
	if _, err := ParseAndValidate(token); err == nil {
		t.Fatal("token signed with another secret was accepted")
	}
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	jwtSecret = []byte("test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler reached without a token")
	})
	rr := httptest.NewRecorder()
	Middleware(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestMiddlewareStoresIdentity(t *testing.T) {
	jwtSecret = []byte("test-secret")

	id := uuid.New()
	token, err := GenerateToken(id, RoleAdmin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var gotID uuid.UUID
	var gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = CallerID(r.Context())
		gotRole = CallerRole(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	Middleware(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if gotID != id || gotRole != RoleAdmin {
		t.Fatalf("context carried (%s, %q)", gotID, gotRole)
	}
}

func TestCanAccessUser(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	self := context.WithValue(context.Background(), CtxUserID, owner)
	self = context.WithValue(self, CtxRole, "trainer")
	if !CanAccessUser(self, owner) {
		t.Fatal("owner denied its own row")
	}
	if CanAccessUser(self, stranger) {
		t.Fatal("non-admin allowed another user's row")
	}

	admin := context.WithValue(context.Background(), CtxUserID, stranger)
	admin = context.WithValue(admin, CtxRole, RoleAdmin)
	if !CanAccessUser(admin, owner) {
		t.Fatal("admin denied another user's row")
	}
}
