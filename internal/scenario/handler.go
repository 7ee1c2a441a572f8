package scenario

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/maxretail/training-api/internal/dberr"
	"github.com/maxretail/training-api/internal/persona"
)

// Handler wires the DB and repositories for scenario routes.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Personas   persona.Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Personas:   persona.NewRepository(),
	}
}

// CreateScenario registers a new training scenario (admin only).
func (h *Handler) CreateScenario(w http.ResponseWriter, r *http.Request) {
	var s TrainingScenario
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if s.PersonaID == uuid.Nil || s.Title == "" {
		http.Error(w, "personaId and title are required", http.StatusBadRequest)
		return
	}
	if !ValidDifficulty(s.DifficultyLevel) {
		http.Error(w, "invalid difficulty level", http.StatusBadRequest)
		return
	}
	if len(s.ScenarioData) == 0 {
		http.Error(w, "scenarioData is required", http.StatusBadRequest)
		return
	}
	s.ID = uuid.Nil
	s.IsActive = true

	if err := h.Repository.Create(h.DB, &s); err != nil {
		writeScenarioError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(s)
}

// ListByPersona returns the scenarios of one persona, optionally filtered by
// ?difficulty=.
func (h *Handler) ListByPersona(w http.ResponseWriter, r *http.Request) {
	personaID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid persona ID", http.StatusBadRequest)
		return
	}

	difficulty := r.URL.Query().Get("difficulty")
	var scenarios []TrainingScenario
	if difficulty != "" {
		if !ValidDifficulty(difficulty) {
			http.Error(w, "invalid difficulty level", http.StatusBadRequest)
			return
		}
		scenarios, err = h.Repository.ListByPersonaAndDifficulty(h.DB, personaID, difficulty)
	} else {
		scenarios, err = h.Repository.ListByPersona(h.DB, personaID)
	}
	if err != nil {
		http.Error(w, "failed to list scenarios", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(scenarios)
}

// ListScenarios returns active scenarios across every persona for one
// ?difficulty= level.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	difficulty := r.URL.Query().Get("difficulty")
	if difficulty == "" {
		http.Error(w, "difficulty is required", http.StatusBadRequest)
		return
	}
	if !ValidDifficulty(difficulty) {
		http.Error(w, "invalid difficulty level", http.StatusBadRequest)
		return
	}

	scenarios, err := h.Repository.ListByDifficulty(h.DB, difficulty)
	if err != nil {
		http.Error(w, "failed to list scenarios", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(scenarios)
}

// GetScenario returns one scenario by ID.
func (h *Handler) GetScenario(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}
	s, err := h.Repository.GetByID(h.DB, id)
	if err != nil {
		http.Error(w, "scenario not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

// RandomScenario picks a random active scenario for ?persona=<name>&difficulty=<level>.
func (h *Handler) RandomScenario(w http.ResponseWriter, r *http.Request) {
	personaName := r.URL.Query().Get("persona")
	difficulty := r.URL.Query().Get("difficulty")
	if personaName == "" || difficulty == "" {
		http.Error(w, "persona and difficulty are required", http.StatusBadRequest)
		return
	}
	if !ValidDifficulty(difficulty) {
		http.Error(w, "invalid difficulty level", http.StatusBadRequest)
		return
	}

	p, err := h.Personas.GetByName(h.DB, personaName)
	if err != nil {
		http.Error(w, "persona not found", http.StatusNotFound)
		return
	}
	s, err := h.Repository.Random(h.DB, p.ID, difficulty)
	if err != nil {
		http.Error(w, "no scenario available for this persona and difficulty", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

// UpdateScenario replaces a scenario's fields (admin only).
func (h *Handler) UpdateScenario(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}
	var updated TrainingScenario
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if !ValidDifficulty(updated.DifficultyLevel) {
		http.Error(w, "invalid difficulty level", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Update(h.DB, id, &updated); err != nil {
		writeScenarioError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("scenario updated"))
}

// DeleteScenario removes a scenario (admin only).
func (h *Handler) DeleteScenario(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Delete(h.DB, id); err != nil {
		writeScenarioError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("scenario deleted"))
}

func writeScenarioError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dberr.ErrNotFound):
		http.Error(w, "scenario not found", http.StatusNotFound)
	case errors.Is(err, dberr.ErrForeignKeyViolation):
		http.Error(w, "referenced persona does not exist", http.StatusBadRequest)
	case errors.Is(err, dberr.ErrInvalidEnumValue):
		http.Error(w, "invalid difficulty level", http.StatusBadRequest)
	case errors.Is(err, dberr.ErrNotNullViolation):
		http.Error(w, "missing required field", http.StatusBadRequest)
	default:
		http.Error(w, "failed to save scenario", http.StatusInternalServerError)
	}
}
