package kpi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/maxretail/training-api/internal/auth"
	"github.com/maxretail/training-api/internal/dberr"
)

type createKpiRequest struct {
	UserID               *uuid.UUID `json:"userId"`
	StoreID              uuid.UUID  `json:"storeId"`
	Date                 string     `json:"date"`
	ConversionRate       float64    `json:"conversionRate"`
	AvgBillValue         float64    `json:"avgBillValue"`
	Footfall             int        `json:"footfall"`
	SalesTarget          float64    `json:"salesTarget"`
	ActualSales          float64    `json:"actualSales"`
	ReturnRate           float64    `json:"returnRate"`
	CustomerSatisfaction float64    `json:"customerSatisfaction"`
}

// Handler wires the DB and repository for KPI routes.
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

// CreateKpi ingests one daily KPI record. Non-admins may only write their own;
// admins may supply a userId.
func (h *Handler) CreateKpi(w http.ResponseWriter, r *http.Request) {
	var req createKpiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.StoreID == uuid.Nil || req.Date == "" {
		http.Error(w, "storeId and date are required", http.StatusBadRequest)
		return
	}

	userID := auth.CallerID(r.Context())
	if req.UserID != nil {
		if *req.UserID != userID && !auth.IsAdmin(r.Context()) {
			http.Error(w, "access denied", http.StatusForbidden)
			return
		}
		userID = *req.UserID
	}

	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	k := KpiData{
		UserID:               userID,
		StoreID:              req.StoreID,
		Date:                 datatypes.Date(day),
		ConversionRate:       req.ConversionRate,
		AvgBillValue:         req.AvgBillValue,
		Footfall:             req.Footfall,
		SalesTarget:          req.SalesTarget,
		ActualSales:          req.ActualSales,
		ReturnRate:           req.ReturnRate,
		CustomerSatisfaction: req.CustomerSatisfaction,
	}
	if err := h.Repository.Create(h.DB, &k); err != nil {
		writeKpiError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(k)
}

// ListKpis returns the requesting user's KPI records, optionally restricted
// by ?from= and ?to= (YYYY-MM-DD). Admins may pass ?userId=.
func (h *Handler) ListKpis(w http.ResponseWriter, r *http.Request) {
	records, ok := h.loadRecords(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

// KpiSummary returns aggregate metrics over the selected records.
func (h *Handler) KpiSummary(w http.ResponseWriter, r *http.Request) {
	records, ok := h.loadRecords(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Summarize(records))
}

// KpiInsights returns the rule-based reading of the selected records.
func (h *Handler) KpiInsights(w http.ResponseWriter, r *http.Request) {
	records, ok := h.loadRecords(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Analyze(records))
}

// ListByStore returns every KPI record of one store (admin only).
func (h *Handler) ListByStore(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid store ID", http.StatusBadRequest)
		return
	}
	records, err := h.Repository.ListByStore(h.DB, storeID)
	if err != nil {
		http.Error(w, "failed to list KPI data", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

func (h *Handler) loadRecords(w http.ResponseWriter, r *http.Request) ([]KpiData, bool) {
	userID := auth.CallerID(r.Context())
	if q := r.URL.Query().Get("userId"); q != "" {
		id, err := uuid.Parse(q)
		if err != nil {
			http.Error(w, "invalid userId", http.StatusBadRequest)
			return nil, false
		}
		if id != userID && !auth.IsAdmin(r.Context()) {
			http.Error(w, "access denied", http.StatusForbidden)
			return nil, false
		}
		userID = id
	}

	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr != "" || toStr != "" {
		from, err := parseDateOr(fromStr, time.Time{})
		if err != nil {
			http.Error(w, "from must be YYYY-MM-DD", http.StatusBadRequest)
			return nil, false
		}
		to, err := parseDateOr(toStr, time.Now())
		if err != nil {
			http.Error(w, "to must be YYYY-MM-DD", http.StatusBadRequest)
			return nil, false
		}
		records, err := h.Repository.ListByUserInRange(h.DB, userID, from, to)
		if err != nil {
			http.Error(w, "failed to list KPI data", http.StatusInternalServerError)
			return nil, false
		}
		return records, true
	}

	records, err := h.Repository.ListByUser(h.DB, userID)
	if err != nil {
		http.Error(w, "failed to list KPI data", http.StatusInternalServerError)
		return nil, false
	}
	return records, true
}

func parseDateOr(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	return time.Parse("2006-01-02", s)
}

func writeKpiError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dberr.ErrDuplicateKey):
		http.Error(w, "KPI record already exists for this user, store and date", http.StatusConflict)
	case errors.Is(err, dberr.ErrForeignKeyViolation):
		http.Error(w, "referenced user or store does not exist", http.StatusBadRequest)
	case errors.Is(err, dberr.ErrNotNullViolation):
		http.Error(w, "missing required field", http.StatusBadRequest)
	default:
		http.Error(w, "failed to save KPI record", http.StatusInternalServerError)
	}
}
