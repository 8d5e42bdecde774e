package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/guroosh/ledger/internal/domain"
	"github.com/guroosh/ledger/internal/ledger"
	"github.com/guroosh/ledger/internal/smsparse"
	"github.com/guroosh/ledger/internal/snapshot"
)

// Handler serves the ledger HTTP API.
type Handler struct {
	ledger    *ledger.Service
	snapshots *snapshot.Service
	profile   string
}

// NewHandler creates a new API handler.
func NewHandler(ledgerSvc *ledger.Service, snapshots *snapshot.Service, profile string) *Handler {
	if ledgerSvc == nil {
		panic("api.NewHandler: ledger service is nil")
	}
	return &Handler{ledger: ledgerSvc, snapshots: snapshots, profile: profile}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeResult maps a validated mutation outcome onto HTTP: rejected input is
// 422 with the reason, success is 200.
func writeResult(w http.ResponseWriter, res domain.Result) {
	status := http.StatusOK
	if !res.OK {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, res)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// GetReport handles GET /api/v1/report
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledger.BuildReport(r.Context())
	if err != nil {
		slog.Error("building report", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build report")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// GetCategories handles GET /api/v1/categories
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	st, err := h.ledger.Load(r.Context())
	if err != nil {
		slog.Error("loading state", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	writeJSON(w, http.StatusOK, st.Categories)
}

// GetGoals handles GET /api/v1/goals
func (h *Handler) GetGoals(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledger.BuildReport(r.Context())
	if err != nil {
		slog.Error("building report", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load goals")
		return
	}
	writeJSON(w, http.StatusOK, report.Goals)
}

// GetAssets handles GET /api/v1/assets
func (h *Handler) GetAssets(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledger.BuildReport(r.Context())
	if err != nil {
		slog.Error("building report", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load assets")
		return
	}
	writeJSON(w, http.StatusOK, report.Assets)
}

// AddCategory handles POST /api/v1/categories
func (h *Handler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.ledger.AddCategory(r.Context(), req.Name)
	if err != nil {
		slog.Error("adding category", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add category")
		return
	}
	writeResult(w, res)
}

// SetBudget handles POST /api/v1/budgets
func (h *Handler) SetBudget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CategoryID string             `json:"categoryId"`
		Limit      domain.LooseNumber `json:"limit"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.ledger.SetBudget(r.Context(), req.CategoryID, req.Limit)
	if err != nil {
		slog.Error("setting budget", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to set budget")
		return
	}
	writeResult(w, res)
}

// AddExpense handles POST /api/v1/expenses
func (h *Handler) AddExpense(w http.ResponseWriter, r *http.Request) {
	var req ledger.ExpenseInput
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.ledger.AddExpense(r.Context(), req)
	if err != nil {
		slog.Error("adding expense", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add expense")
		return
	}
	writeResult(w, res)
}

// AddGoal handles POST /api/v1/goals
func (h *Handler) AddGoal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string             `json:"name"`
		Target domain.LooseNumber `json:"target"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.ledger.AddGoal(r.Context(), req.Name, req.Target)
	if err != nil {
		slog.Error("adding goal", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add goal")
		return
	}
	writeResult(w, res)
}

// Deposit handles POST /api/v1/goals/{id}/deposits
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")
	var req struct {
		Amount domain.LooseNumber `json:"amount"`
		Note   string             `json:"note"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.ledger.Deposit(r.Context(), goalID, req.Amount, req.Note)
	if err != nil {
		slog.Error("depositing to goal", "goal_id", goalID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to record deposit")
		return
	}
	writeResult(w, res)
}

// AddAsset handles POST /api/v1/assets
func (h *Handler) AddAsset(w http.ResponseWriter, r *http.Request) {
	var req domain.Asset
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.ledger.AddAsset(r.Context(), req)
	if err != nil {
		slog.Error("adding asset", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add asset")
		return
	}
	writeResult(w, res)
}

// ParseSMS handles POST /api/v1/sms/parse
func (h *Handler) ParseSMS(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, smsparse.Parse(req.Text))
}

// GetLatestSnapshot handles GET /api/v1/snapshots/latest
func (h *Handler) GetLatestSnapshot(w http.ResponseWriter, r *http.Request) {
	s, err := h.snapshots.GetLatest(r.Context(), h.profile)
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no snapshots found")
			return
		}
		slog.Error("getting latest snapshot", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get snapshot")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// GetSnapshotByDate handles GET /api/v1/snapshots/{date}
func (h *Handler) GetSnapshotByDate(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse("2006-01-02", r.PathValue("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
		return
	}

	s, err := h.snapshots.GetByDate(r.Context(), h.profile, date)
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			writeError(w, http.StatusNotFound, "snapshot not found")
			return
		}
		slog.Error("getting snapshot by date", "date", date, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get snapshot")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// ListSnapshots handles GET /api/v1/snapshots
func (h *Handler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	limit := 30
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	snapshots, err := h.snapshots.List(r.Context(), h.profile, limit)
	if err != nil {
		slog.Error("listing snapshots", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list snapshots")
		return
	}
	if snapshots == nil {
		snapshots = []snapshot.Snapshot{}
	}
	writeJSON(w, http.StatusOK, snapshots)
}

// GenerateSnapshot handles POST /api/v1/snapshots/generate
func (h *Handler) GenerateSnapshot(w http.ResponseWriter, r *http.Request) {
	date := time.Now().UTC().Truncate(24 * time.Hour)
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	report, err := h.snapshots.Generate(r.Context(), h.profile, date)
	if err != nil {
		slog.Error("generating snapshot", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate snapshot")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
