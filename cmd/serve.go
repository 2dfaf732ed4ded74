package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/deckscore/internal/analysis"
	"github.com/sells-group/deckscore/internal/kpi"
	"github.com/sells-group/deckscore/internal/scoring"
	"github.com/sells-group/deckscore/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scoring API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Post("/v1/score", handleScore)
		r.Post("/v1/consistency", handleConsistency)
		r.Post("/v1/analyze", handleAnalyze(st))
		r.Get("/v1/analyses", handleListAnalyses(st))
		r.Get("/v1/analyses/{id}", handleGetAnalysis(st))

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

type scoreRequest struct {
	KPIs map[string]any `json:"kpis"`
	Runs int            `json:"runs,omitempty"`
}

type analyzeRequest struct {
	KPIs     map[string]any `json:"kpis"`
	DeckText string         `json:"deckText,omitempty"`
	Save     bool           `json:"save,omitempty"`
}

func handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec := kpi.Normalize(req.KPIs)
	writeJSON(w, http.StatusOK, struct {
		Company kpi.Record     `json:"company"`
		Scores  scoring.Bundle `json:"scores"`
	}{rec, scoring.Score(rec)})
}

func handleConsistency(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	writeJSON(w, http.StatusOK, scoring.Verify(req.KPIs, req.Runs))
}

func handleAnalyze(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		// No source text means nothing to analyze; this is the one hard
		// precondition, matching the extraction gate on the CLI path.
		if strings.TrimSpace(req.DeckText) == "" {
			writeError(w, http.StatusBadRequest, "deckText is required")
			return
		}

		ctx := r.Context()
		rec := kpi.Normalize(req.KPIs)
		bundle := scoring.Score(rec)

		mkt := fetchMarket(ctx, rec.Sector)
		qual := runEnrichment(ctx, cfg, rec, mkt, req.DeckText)
		record := analysis.Merge(rec, bundle, qual)

		if req.Save {
			if err := st.SaveAnalysis(ctx, record); err != nil {
				zap.L().Error("save analysis failed", zap.String("id", record.ID), zap.Error(err))
				writeError(w, http.StatusInternalServerError, "failed to save analysis")
				return
			}
		}

		writeJSON(w, http.StatusOK, record)
	}
}

func handleListAnalyses(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		minScore, _ := strconv.Atoi(q.Get("min_score"))
		limit, _ := strconv.Atoi(q.Get("limit"))

		items, err := st.ListAnalyses(r.Context(), store.ListFilter{
			Company:       q.Get("company"),
			Sector:        q.Get("sector"),
			MinInvestment: minScore,
			Limit:         limit,
		})
		if err != nil {
			zap.L().Error("list analyses failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to list analyses")
			return
		}
		if items == nil {
			items = []store.Summary{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func handleGetAnalysis(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := st.GetAnalysis(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusNotFound, "analysis not found")
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
