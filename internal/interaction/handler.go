package interaction

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/maxretail/training-api/internal/auth"
	"github.com/maxretail/training-api/internal/dberr"
	"github.com/maxretail/training-api/internal/session"
)

type createInteractionRequest struct {
	ScenarioID   *uuid.UUID      `json:"scenarioId"`
	Question     string          `json:"question"`
	UserResponse string          `json:"userResponse"`
	AIEvaluation json.RawMessage `json:"aiEvaluation"`
	Feedback     string          `json:"feedback"`
	ResponseTime int             `json:"responseTime"`
}

// Handler wires the DB and repositories for interaction routes.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Sessions   session.Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Sessions:   session.NewRepository(),
	}
}

// AddInteraction appends an exchange to the {id} session, assigning the next
// ordering position. Only the session owner (or an admin) may append, and
// only while the session is active.
func (h *Handler) AddInteraction(w http.ResponseWriter, r *http.Request) {
	s, ok := h.ownedSession(w, r)
	if !ok {
		return
	}
	if s.SessionStatus != session.StatusActive {
		http.Error(w, "session is not active", http.StatusConflict)
		return
	}

	var req createInteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.Question == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}

	order, err := h.Repository.NextOrder(h.DB, s.ID)
	if err != nil {
		http.Error(w, "failed to order interaction", http.StatusInternalServerError)
		return
	}

	i := TrainingInteraction{
		SessionID:        s.ID,
		ScenarioID:       req.ScenarioID,
		Question:         req.Question,
		UserResponse:     req.UserResponse,
		AIEvaluation:     datatypes.JSON(req.AIEvaluation),
		Feedback:         req.Feedback,
		InteractionOrder: order,
		ResponseTime:     req.ResponseTime,
	}
	if err := h.Repository.Create(h.DB, &i); err != nil {
		writeInteractionError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(i)
}

// ListInteractions returns the {id} session's exchanges in order.
func (h *Handler) ListInteractions(w http.ResponseWriter, r *http.Request) {
	s, ok := h.ownedSession(w, r)
	if !ok {
		return
	}
	interactions, err := h.Repository.ListBySession(h.DB, s.ID)
	if err != nil {
		http.Error(w, "failed to list interactions", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(interactions)
}

func (h *Handler) ownedSession(w http.ResponseWriter, r *http.Request) (*session.TrainingSession, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid session ID", http.StatusBadRequest)
		return nil, false
	}
	s, err := h.Sessions.GetByID(h.DB, id)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	if !auth.CanAccessUser(r.Context(), s.UserID) {
		http.Error(w, "access denied", http.StatusForbidden)
		return nil, false
	}
	return s, true
}

func writeInteractionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dberr.ErrForeignKeyViolation):
		http.Error(w, "referenced session or scenario does not exist", http.StatusBadRequest)
	case errors.Is(err, dberr.ErrNotNullViolation):
		http.Error(w, "missing required field", http.StatusBadRequest)
	default:
		http.Error(w, "failed to save interaction", http.StatusInternalServerError)
	}
}
