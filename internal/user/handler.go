package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/maxretail/training-api/internal/auth"
	"github.com/maxretail/training-api/internal/dberr"
	"github.com/maxretail/training-api/internal/utils"
)

// request DTOs
type registerRequest struct {
	Email           string     `json:"email"`
	Password        string     `json:"password"`
	Role            string     `json:"role"`
	StoreID         *uuid.UUID `json:"storeId"`
	ExperienceLevel int        `json:"experienceLevel"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Handler wires the DB and repository for user routes.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

// Register creates a new user with a bcrypt-hashed password.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}
	if !ValidRole(req.Role) {
		http.Error(w, "invalid role", http.StatusBadRequest)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "failed to process password", http.StatusInternalServerError)
		return
	}

	u := User{
		Email:           req.Email,
		PasswordHash:    hash,
		Role:            req.Role,
		StoreID:         req.StoreID,
		ExperienceLevel: req.ExperienceLevel,
		IsActive:        true,
	}
	if err := h.Repository.Create(h.DB, &u); err != nil {
		writeUserError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(u)
}

// Login verifies credentials and issues a JWT.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	u, err := h.Repository.GetByEmail(h.DB, req.Email)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if !u.IsActive {
		http.Error(w, "account deactivated", http.StatusUnauthorized)
		return
	}
	if !utils.CheckPassword(u.PasswordHash, req.Password) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken(u.ID, u.Role)
	if err != nil {
		http.Error(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// ListUsers returns every user (admins) or just the caller's own row.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if auth.IsAdmin(r.Context()) {
		users, err := h.Repository.ListAll(h.DB)
		if err != nil {
			http.Error(w, "failed to list users", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(users)
		return
	}

	// non-admins see only themselves
	u, err := h.Repository.GetByID(h.DB, auth.CallerID(r.Context()))
	if err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode([]User{*u})
}

// GetUser returns one user row, subject to the self-or-admin rule.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}
	if !auth.CanAccessUser(r.Context(), id) {
		http.Error(w, "access denied", http.StatusForbidden)
		return
	}

	u, err := h.Repository.GetByID(h.DB, id)
	if err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(u)
}

// UpdateUser changes a user's profile, subject to the self-or-admin rule.
// Role changes are admin-only.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}
	if !auth.CanAccessUser(r.Context(), id) {
		http.Error(w, "access denied", http.StatusForbidden)
		return
	}

	var updated User
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if !ValidRole(updated.Role) {
		http.Error(w, "invalid role", http.StatusBadRequest)
		return
	}
	if !auth.IsAdmin(r.Context()) {
		current, err := h.Repository.GetByID(h.DB, id)
		if err != nil {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		if updated.Role != current.Role {
			http.Error(w, "only admins may change roles", http.StatusForbidden)
			return
		}
	}

	if err := h.Repository.Update(h.DB, id, &updated); err != nil {
		writeUserError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("user updated"))
}

// ChangePassword rotates the caller's own password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	callerID := auth.CallerID(r.Context())

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.NewPassword == "" {
		http.Error(w, "new password is required", http.StatusBadRequest)
		return
	}

	u, err := h.Repository.GetByID(h.DB, callerID)
	if err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	if !utils.CheckPassword(u.PasswordHash, req.CurrentPassword) {
		http.Error(w, "current password is incorrect", http.StatusUnauthorized)
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		http.Error(w, "failed to process password", http.StatusInternalServerError)
		return
	}
	if err := h.Repository.UpdatePassword(h.DB, callerID, hash); err != nil {
		writeUserError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("password updated"))
}

// ResetPassword issues a temporary password for a user who lost theirs
// (admin only). The plaintext is returned once so the admin can hand it over;
// only the hash is stored.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}

	temp, err := utils.GenerateTemporaryPassword()
	if err != nil {
		http.Error(w, "failed to generate password", http.StatusInternalServerError)
		return
	}
	hash, err := utils.HashPassword(temp)
	if err != nil {
		http.Error(w, "failed to process password", http.StatusInternalServerError)
		return
	}
	if err := h.Repository.UpdatePassword(h.DB, id, hash); err != nil {
		writeUserError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"temporaryPassword": temp})
}

// ListByStore returns the users assigned to one store (admin only).
func (h *Handler) ListByStore(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid store ID", http.StatusBadRequest)
		return
	}
	users, err := h.Repository.ListByStore(h.DB, storeID)
	if err != nil {
		http.Error(w, "failed to list users", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

// DeleteUser removes a user and, through the cascade, every training session
// that belongs to them. Self-or-admin.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}
	if !auth.CanAccessUser(r.Context(), id) {
		http.Error(w, "access denied", http.StatusForbidden)
		return
	}

	if err := h.Repository.Delete(h.DB, id); err != nil {
		writeUserError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("user deleted"))
}

// Me returns the authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.Repository.GetByID(h.DB, auth.CallerID(r.Context()))
	if err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(u)
}

func writeUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dberr.ErrNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	case errors.Is(err, dberr.ErrDuplicateKey):
		http.Error(w, "email already registered", http.StatusConflict)
	case errors.Is(err, dberr.ErrInvalidEnumValue):
		http.Error(w, "invalid role", http.StatusBadRequest)
	case errors.Is(err, dberr.ErrForeignKeyViolation):
		http.Error(w, "referenced store does not exist", http.StatusBadRequest)
	case errors.Is(err, dberr.ErrNotNullViolation):
		http.Error(w, "missing required field", http.StatusBadRequest)
	default:
		http.Error(w, "failed to save user", http.StatusInternalServerError)
	}
}
