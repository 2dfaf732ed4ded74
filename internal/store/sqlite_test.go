package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/deckscore/internal/analysis"
	"github.com/sells-group/deckscore/internal/config"
	"github.com/sells-group/deckscore/internal/kpi"
	"github.com/sells-group/deckscore/internal/scoring"
)

func configStore(driver, pathOrURL string) config.StoreConfig {
	cfg := config.StoreConfig{Driver: driver}
	if driver == "postgres" {
		cfg.DatabaseURL = pathOrURL
	} else {
		cfg.Path = pathOrURL
	}
	return cfg
}

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func newTestRecord(company, sector string) *analysis.Record {
	rec := kpi.Record{CompanyName: company, Sector: sector, Revenue: "10 million"}
	return &analysis.Record{
		ID:          uuid.New().String(),
		Timestamp:   time.Now().UTC().Truncate(time.Second),
		Company:     rec,
		Scores:      scoring.Score(rec),
		Qualitative: analysis.Fallback(),
	}
}

func TestSQLite_SaveAndGet(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	rec := newTestRecord("Acme", "Fintech")
	require.NoError(t, s.SaveAnalysis(ctx, rec))

	got, err := s.GetAnalysis(ctx, rec.ID)
	require.NoError(t, err)

	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Company, got.Company)
	assert.Equal(t, rec.Scores, got.Scores)
	assert.Equal(t, rec.Qualitative, got.Qualitative)
}

func TestSQLite_GetNotFound(t *testing.T) {
	s := newTestSQLite(t)

	_, err := s.GetAnalysis(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLite_DuplicateIDRejected(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	rec := newTestRecord("Acme", "Fintech")
	require.NoError(t, s.SaveAnalysis(ctx, rec))
	require.Error(t, s.SaveAnalysis(ctx, rec))
}

func TestSQLite_ListAnalyses(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	a := newTestRecord("Acme", "Fintech")
	b := newTestRecord("Bolt", "Logistics")
	c := newTestRecord("Acme", "Fintech")
	for _, rec := range []*analysis.Record{a, b, c} {
		require.NoError(t, s.SaveAnalysis(ctx, rec))
	}

	t.Run("no filter returns all", func(t *testing.T) {
		items, err := s.ListAnalyses(ctx, ListFilter{})
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("filter by company", func(t *testing.T) {
		items, err := s.ListAnalyses(ctx, ListFilter{Company: "Acme"})
		require.NoError(t, err)
		assert.Len(t, items, 2)
		for _, it := range items {
			assert.Equal(t, "Acme", it.Company)
		}
	})

	t.Run("filter by sector", func(t *testing.T) {
		items, err := s.ListAnalyses(ctx, ListFilter{Sector: "Logistics"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Bolt", items[0].Company)
	})

	t.Run("limit applies", func(t *testing.T) {
		items, err := s.ListAnalyses(ctx, ListFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("min investment filter", func(t *testing.T) {
		items, err := s.ListAnalyses(ctx, ListFilter{MinInvestment: 101})
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("no match", func(t *testing.T) {
		items, err := s.ListAnalyses(ctx, ListFilter{Company: "Ghost"})
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestSQLite_MigrateIdempotent(t *testing.T) {
	s := newTestSQLite(t)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestNew_DriverSelection(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		st, err := New(context.Background(), configStore("sqlite", filepath.Join(t.TempDir(), "x.db")))
		require.NoError(t, err)
		defer st.Close()
		assert.IsType(t, &SQLiteStore{}, st)
	})

	t.Run("postgres without url", func(t *testing.T) {
		_, err := New(context.Background(), configStore("postgres", ""))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database_url")
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := New(context.Background(), configStore("mongo", ""))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown driver")
	})
}
