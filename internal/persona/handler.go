package persona

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/maxretail/training-api/internal/dberr"
)

// Handler wires the DB and repository for persona routes.
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

// CreatePersona registers a new customer archetype (admin only).
func (h *Handler) CreatePersona(w http.ResponseWriter, r *http.Request) {
	var p Persona
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if p.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	p.ID = uuid.Nil
	p.IsActive = true

	if err := h.Repository.Create(h.DB, &p); err != nil {
		writePersonaError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

// ListPersonas returns all active personas.
func (h *Handler) ListPersonas(w http.ResponseWriter, r *http.Request) {
	personas, err := h.Repository.ListActive(h.DB)
	if err != nil {
		http.Error(w, "failed to list personas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(personas)
}

// GetPersona returns one persona by ID.
func (h *Handler) GetPersona(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}
	p, err := h.Repository.GetByID(h.DB, id)
	if err != nil {
		http.Error(w, "persona not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// UpdatePersona replaces a persona's fields (admin only).
func (h *Handler) UpdatePersona(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}
	var updated Persona
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Update(h.DB, id, &updated); err != nil {
		writePersonaError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("persona updated"))
}

// DeletePersona removes a persona and cascades its training scenarios
// (admin only).
func (h *Handler) DeletePersona(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Delete(h.DB, id); err != nil {
		writePersonaError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("persona deleted"))
}

func writePersonaError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dberr.ErrNotFound):
		http.Error(w, "persona not found", http.StatusNotFound)
	case errors.Is(err, dberr.ErrDuplicateKey):
		http.Error(w, "persona name already exists", http.StatusConflict)
	case errors.Is(err, dberr.ErrNotNullViolation):
		http.Error(w, "missing required field", http.StatusBadRequest)
	default:
		http.Error(w, "failed to save persona", http.StatusInternalServerError)
	}
}
