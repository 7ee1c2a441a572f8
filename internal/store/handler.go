package store

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/maxretail/training-api/internal/dberr"
)

type createStoreRequest struct {
	Name          string          `json:"name"`
	Location      string          `json:"location"`
	Region        *string         `json:"region"`
	ManagerID     *uuid.UUID      `json:"managerId"`
	StoreSize     string          `json:"storeSize"`
	TargetMetrics json.RawMessage `json:"targetMetrics"`
}

// Handler wires the DB and repository for store routes.
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

// CreateStore registers a new retail location (admin only, enforced by route).
func (h *Handler) CreateStore(w http.ResponseWriter, r *http.Request) {
	var req createStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Location == "" {
		http.Error(w, "name and location are required", http.StatusBadRequest)
		return
	}
	size := req.StoreSize
	if size == "" {
		size = SizeMedium
	}
	if !ValidSize(size) {
		http.Error(w, "invalid store size", http.StatusBadRequest)
		return
	}

	s := Store{
		Name:          req.Name,
		Location:      req.Location,
		Region:        req.Region,
		ManagerID:     req.ManagerID,
		StoreSize:     size,
		TargetMetrics: datatypes.JSON(req.TargetMetrics),
		IsActive:      true,
	}
	if err := h.Repository.Create(h.DB, &s); err != nil {
		writeStoreError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(s)
}

// ListStores returns every store; pass ?active=true for active ones only.
func (h *Handler) ListStores(w http.ResponseWriter, r *http.Request) {
	var (
		stores []Store
		err    error
	)
	if r.URL.Query().Get("active") == "true" {
		stores, err = h.Repository.ListActive(h.DB)
	} else {
		stores, err = h.Repository.ListAll(h.DB)
	}
	if err != nil {
		http.Error(w, "failed to list stores", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stores)
}

// GetStore returns one store by ID.
func (h *Handler) GetStore(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}
	s, err := h.Repository.GetByID(h.DB, id)
	if err != nil {
		http.Error(w, "store not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

// UpdateStore replaces the mutable fields of a store (admin only).
func (h *Handler) UpdateStore(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}
	var updated Store
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if updated.StoreSize != "" && !ValidSize(updated.StoreSize) {
		http.Error(w, "invalid store size", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Update(h.DB, id, &updated); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("store updated"))
}

// DeleteStore removes a store (admin only). Fails with 409 while users or KPI
// records still reference it.
func (h *Handler) DeleteStore(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Delete(h.DB, id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("store deleted"))
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dberr.ErrNotFound):
		http.Error(w, "store not found", http.StatusNotFound)
	case errors.Is(err, dberr.ErrDuplicateKey):
		http.Error(w, "store already exists", http.StatusConflict)
	case errors.Is(err, dberr.ErrForeignKeyViolation):
		http.Error(w, "store is still referenced", http.StatusConflict)
	case errors.Is(err, dberr.ErrInvalidEnumValue):
		http.Error(w, "invalid store size", http.StatusBadRequest)
	default:
		http.Error(w, "failed to save store", http.StatusInternalServerError)
	}
}
