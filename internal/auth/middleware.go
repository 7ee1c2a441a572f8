package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type ctxKey string

const (
	CtxUserID ctxKey = "userID"
	CtxRole   ctxKey = "role"
)

// RoleAdmin is the only role allowed past RequireAdmin and the only one that
// may read or write another user's rows.
const RoleAdmin = "admin"

// Middleware authenticates the Bearer token and stores the caller identity
// in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		claims, err := ParseAndValidate(raw)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), CtxUserID, claims.UserID)
		ctx = context.WithValue(ctx, CtxRole, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects callers whose token does not carry the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			http.Error(w, "forbidden (admin only)", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CallerID returns the authenticated user's ID from the request context.
func CallerID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(CtxUserID).(uuid.UUID)
	return id
}

// CallerRole returns the authenticated user's role from the request context.
func CallerRole(ctx context.Context) string {
	role, _ := ctx.Value(CtxRole).(string)
	return role
}

// IsAdmin reports whether the caller holds the admin role.
func IsAdmin(ctx context.Context) bool {
	return CallerRole(ctx) == RoleAdmin
}

// CanAccessUser is the row-level rule for user rows: a caller may touch its
// own row, admins may touch any.
func CanAccessUser(ctx context.Context, ownerID uuid.UUID) bool {
	return IsAdmin(ctx) || CallerID(ctx) == ownerID
}
