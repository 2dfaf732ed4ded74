package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgres_SaveAnalysis(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	rec := newTestRecord("Acme", "Fintech")
	payload, err := json.Marshal(rec)
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO analyses`).
		WithArgs(rec.ID, "Acme", "Fintech", rec.Scores.InvestmentScore, payload, rec.Timestamp).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.SaveAnalysis(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetAnalysis(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	rec := newTestRecord("Acme", "Fintech")
	payload, err := json.Marshal(rec)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT payload FROM analyses WHERE id = \$1`).
		WithArgs(rec.ID).
		WillReturnRows(pgxmock.NewRows([]string{"payload"}).AddRow(payload))

	got, err := s.GetAnalysis(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Scores, got.Scores)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetAnalysis_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT payload FROM analyses WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetAnalysis(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListAnalyses(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT id, company, sector, investment_score, created_at FROM analyses`).
		WithArgs("Fintech", 100).
		WillReturnRows(pgxmock.NewRows([]string{"id", "company", "sector", "investment_score", "created_at"}).
			AddRow("id-1", "Acme", "Fintech", 72, now).
			AddRow("id-2", "Bolt", "Fintech", 55, now))

	items, err := s.ListAnalyses(context.Background(), ListFilter{Sector: "Fintech"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Acme", items[0].Company)
	assert.Equal(t, 72, items[0].InvestmentScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS analyses`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
