package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/deckscore/internal/analysis"
	"github.com/sells-group/deckscore/internal/config"
	"github.com/sells-group/deckscore/internal/scoring"
	"github.com/sells-group/deckscore/internal/store"
)

func setupServeTest(t *testing.T) store.Store {
	t.Helper()
	cfg = &config.Config{}

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "serve.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(t.Context()))
	return st
}

func TestHandleScore(t *testing.T) {
	setupServeTest(t)

	t.Run("empty kpis yield baseline scores", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/score", bytes.NewBufferString(`{"kpis": {}}`))
		w := httptest.NewRecorder()
		handleScore(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Scores scoring.Bundle `json:"scores"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 50, resp.Scores.GrowthScore)
		assert.Equal(t, 75, resp.Scores.RiskScore)
		assert.Equal(t, 40, resp.Scores.InvestmentScore)
		assert.Equal(t, 0, resp.Scores.ConfidenceScore)
	})

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/score", bytes.NewBufferString(`not json`))
		w := httptest.NewRecorder()
		handleScore(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleConsistency(t *testing.T) {
	setupServeTest(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/consistency",
		bytes.NewBufferString(`{"kpis": {"revenue": "5 million"}, "runs": 3}`))
	w := httptest.NewRecorder()
	handleConsistency(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result scoring.VerifyResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Consistent)
	assert.Len(t, result.Runs, 3)
}

func TestHandleAnalyze_SavesRecord(t *testing.T) {
	st := setupServeTest(t)

	body := `{"kpis": {"companyName": "Acme", "sector": "Fintech", "revenue": "10 million"}, "deckText": "slides", "save": true}`
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	handleAnalyze(st)(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var rec analysis.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, "Acme", rec.Company.CompanyName)
	assert.NotEmpty(t, rec.ID)
	// No enrichment provider configured, so the fallback payload ships.
	assert.Equal(t, analysis.Fallback(), rec.Qualitative)

	stored, err := st.GetAnalysis(t.Context(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Scores, stored.Scores)
}

func TestHandleAnalyze_RequiresDeckText(t *testing.T) {
	st := setupServeTest(t)

	tests := []struct {
		name string
		body string
	}{
		{"absent", `{"kpis": {"companyName": "Acme"}}`},
		{"empty", `{"kpis": {"companyName": "Acme"}, "deckText": ""}`},
		{"whitespace only", `{"kpis": {"companyName": "Acme"}, "deckText": "  \n\t"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/analyze", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			handleAnalyze(st)(w, req)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "deckText")
		})
	}

	// Nothing reached the store.
	items, err := st.ListAnalyses(t.Context(), store.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestHandleAnalyze_InvalidBody(t *testing.T) {
	st := setupServeTest(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", bytes.NewBufferString(`not json`))
	w := httptest.NewRecorder()
	handleAnalyze(st)(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleListAndGetAnalyses(t *testing.T) {
	st := setupServeTest(t)

	body := `{"kpis": {"companyName": "Acme", "sector": "Fintech"}, "deckText": "slides", "save": true}`
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	handleAnalyze(st)(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/analyses?sector=Fintech", nil)
		w := httptest.NewRecorder()
		handleListAnalyses(st)(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var items []store.Summary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
		require.Len(t, items, 1)
		assert.Equal(t, "Acme", items[0].Company)
	})

	t.Run("list with no matches returns empty array", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/analyses?sector=Mining", nil)
		w := httptest.NewRecorder()
		handleListAnalyses(st)(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("get unknown id", func(t *testing.T) {
		r := chi.NewRouter()
		r.Get("/v1/analyses/{id}", handleGetAnalysis(st))

		req := httptest.NewRequest(http.MethodGet, "/v1/analyses/nope", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
