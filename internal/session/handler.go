package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/maxretail/training-api/internal/auth"
	"github.com/maxretail/training-api/internal/dberr"
	"github.com/maxretail/training-api/internal/persona"
	"github.com/maxretail/training-api/internal/scenario"
)

// request DTOs
type startSessionRequest struct {
	ScenarioID uuid.UUID `json:"scenarioId"`
}

type completeSessionRequest struct {
	Responses      json.RawMessage `json:"responses"`
	Scores         json.RawMessage `json:"scores"`
	CompletionTime int             `json:"completionTime"`
}

// Handler wires the DB and repositories for session routes.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Scenarios  scenario.Repository
	Personas   persona.Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Scenarios:  scenario.NewRepository(),
		Personas:   persona.NewRepository(),
	}
}

// StartSession opens a training session for the caller, snapshotting the
// chosen scenario so later catalog edits don't rewrite history.
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.ScenarioID == uuid.Nil {
		http.Error(w, "scenarioId is required", http.StatusBadRequest)
		return
	}

	sc, err := h.Scenarios.GetByID(h.DB, req.ScenarioID)
	if err != nil {
		http.Error(w, "scenario not found", http.StatusNotFound)
		return
	}
	p, err := h.Personas.GetByID(h.DB, sc.PersonaID)
	if err != nil {
		http.Error(w, "persona not found", http.StatusNotFound)
		return
	}

	snapshot, err := json.Marshal(map[string]interface{}{
		"scenarioId":   sc.ID,
		"title":        sc.Title,
		"description":  sc.Description,
		"kpiFocus":     sc.KpiFocus,
		"scenarioData": sc.ScenarioData,
	})
	if err != nil {
		http.Error(w, "failed to snapshot scenario", http.StatusInternalServerError)
		return
	}

	s := TrainingSession{
		UserID:          auth.CallerID(r.Context()),
		PersonaType:     p.Name,
		DifficultyLevel: sc.DifficultyLevel,
		ScenarioData:    datatypes.JSON(snapshot),
		SessionStatus:   StatusActive,
	}
	if err := h.Repository.Create(h.DB, &s); err != nil {
		writeSessionError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(s)
}

// ListSessions returns the caller's sessions; admins may pass ?userId= to
// inspect another trainee.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	userID := auth.CallerID(r.Context())
	if q := r.URL.Query().Get("userId"); q != "" && auth.IsAdmin(r.Context()) {
		id, err := uuid.Parse(q)
		if err != nil {
			http.Error(w, "invalid userId", http.StatusBadRequest)
			return
		}
		userID = id
	}

	sessions, err := h.Repository.ListByUser(h.DB, userID)
	if err != nil {
		http.Error(w, "failed to list sessions", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sessions)
}

// GetSession returns one session, subject to the self-or-admin rule.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.ownedSession(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

// CompleteSession records the outcome and moves the session to completed.
func (h *Handler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.ownedSession(w, r)
	if !ok {
		return
	}

	var req completeSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	err := h.Repository.Complete(h.DB, s.ID,
		datatypes.JSON(req.Responses), datatypes.JSON(req.Scores), req.CompletionTime)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("session completed"))
}

// AbandonSession moves the session to abandoned.
func (h *Handler) AbandonSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.ownedSession(w, r)
	if !ok {
		return
	}
	if err := h.Repository.Abandon(h.DB, s.ID); err != nil {
		writeSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("session abandoned"))
}

// DeleteSession removes a session and its interactions and transcript.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.ownedSession(w, r)
	if !ok {
		return
	}
	if err := h.Repository.Delete(h.DB, s.ID); err != nil {
		writeSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("session deleted"))
}

// NextDifficultyHandler suggests the caller's next difficulty from recent
// completed sessions; ?current= defaults to easy.
func (h *Handler) NextDifficultyHandler(w http.ResponseWriter, r *http.Request) {
	current := r.URL.Query().Get("current")
	if current == "" {
		current = scenario.DifficultyEasy
	}
	if !scenario.ValidDifficulty(current) {
		http.Error(w, "invalid difficulty level", http.StatusBadRequest)
		return
	}

	recent, err := h.Repository.ListCompletedByUser(h.DB, auth.CallerID(r.Context()), 5)
	if err != nil {
		http.Error(w, "failed to load history", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"nextDifficulty": NextDifficulty(current, recent),
	})
}

// LeaderboardHandler returns the top performers; ?limit= defaults to 10.
func (h *Handler) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			limit = n
		}
	}
	entries, err := Leaderboard(h.DB, limit)
	if err != nil {
		http.Error(w, "failed to build leaderboard", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// ownedSession loads the {id} session and enforces the self-or-admin rule.
func (h *Handler) ownedSession(w http.ResponseWriter, r *http.Request) (*TrainingSession, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return nil, false
	}
	s, err := h.Repository.GetByID(h.DB, id)
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

func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidTransition):
		http.Error(w, "session is not active", http.StatusConflict)
	case errors.Is(err, dberr.ErrNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
	case errors.Is(err, dberr.ErrForeignKeyViolation):
		http.Error(w, "referenced user does not exist", http.StatusBadRequest)
	case errors.Is(err, dberr.ErrInvalidEnumValue):
		http.Error(w, "invalid session status", http.StatusBadRequest)
	default:
		http.Error(w, "failed to save session", http.StatusInternalServerError)
	}
}
