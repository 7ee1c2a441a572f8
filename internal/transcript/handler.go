package transcript

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

type saveTranscriptRequest struct {
	FullTranscript json.RawMessage `json:"fullTranscript"`
	Summary        string          `json:"summary"`
	WordCount      int             `json:"wordCount"`
}

// Handler wires the DB and repositories for transcript routes.
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

// SaveTranscript stores (or replaces) the {id} session's transcript. The word
// count is derived from the payload when the caller doesn't supply one.
func (h *Handler) SaveTranscript(w http.ResponseWriter, r *http.Request) {
	s, ok := h.ownedSession(w, r)
	if !ok {
		return
	}

	var req saveTranscriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if len(req.FullTranscript) == 0 {
		http.Error(w, "fullTranscript is required", http.StatusBadRequest)
		return
	}

	t := TrainingTranscript{
		SessionID:      s.ID,
		FullTranscript: datatypes.JSON(req.FullTranscript),
		Summary:        req.Summary,
		WordCount:      req.WordCount,
	}
	if err := h.Repository.Upsert(h.DB, &t); err != nil {
		writeTranscriptError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(t)
}

// GetTranscript returns the {id} session's transcript.
func (h *Handler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	s, ok := h.ownedSession(w, r)
	if !ok {
		return
	}
	t, err := h.Repository.GetBySession(h.DB, s.ID)
	if err != nil {
		http.Error(w, "transcript not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(t)
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

func writeTranscriptError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dberr.ErrForeignKeyViolation):
		http.Error(w, "referenced session does not exist", http.StatusBadRequest)
	case errors.Is(err, dberr.ErrNotNullViolation):
		http.Error(w, "missing required field", http.StatusBadRequest)
	default:
		http.Error(w, "failed to save transcript", http.StatusInternalServerError)
	}
}
