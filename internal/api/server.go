package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/guroosh/ledger/internal/ledger"
	"github.com/guroosh/ledger/internal/snapshot"
)

// NewServer creates an HTTP server with all routes configured.
func NewServer(port string, ledgerSvc *ledger.Service, snapshots *snapshot.Service, profile, adminAPIKey string) *http.Server {
	handler := NewHandler(ledgerSvc, snapshots, profile)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/report", handler.GetReport)
	mux.HandleFunc("GET /api/v1/categories", handler.GetCategories)
	mux.HandleFunc("GET /api/v1/goals", handler.GetGoals)
	mux.HandleFunc("GET /api/v1/assets", handler.GetAssets)

	mux.HandleFunc("POST /api/v1/categories", handler.AddCategory)
	mux.HandleFunc("POST /api/v1/budgets", handler.SetBudget)
	mux.HandleFunc("POST /api/v1/expenses", handler.AddExpense)
	mux.HandleFunc("POST /api/v1/goals", handler.AddGoal)
	mux.HandleFunc("POST /api/v1/goals/{id}/deposits", handler.Deposit)
	mux.HandleFunc("POST /api/v1/assets", handler.AddAsset)
	mux.HandleFunc("POST /api/v1/sms/parse", handler.ParseSMS)

	mux.HandleFunc("GET /api/v1/snapshots/latest", handler.GetLatestSnapshot)
	mux.HandleFunc("GET /api/v1/snapshots/{date}", handler.GetSnapshotByDate)
	mux.HandleFunc("GET /api/v1/snapshots", handler.ListSnapshots)

	generateHandler := http.HandlerFunc(handler.GenerateSnapshot)
	if adminAPIKey != "" {
		mux.Handle("POST /api/v1/snapshots/generate", requireAuth(adminAPIKey, generateHandler))
	} else {
		mux.Handle("POST /api/v1/snapshots/generate", generateHandler)
	}

	return &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func requireAuth(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if !strings.HasPrefix(auth, "Bearer ") || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
