// Package store persists completed analyses behind a driver-agnostic
// interface with SQLite and Postgres backends.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/deckscore/internal/analysis"
	"github.com/sells-group/deckscore/internal/config"
)

// ListFilter specifies criteria for listing analyses.
type ListFilter struct {
	Company       string `json:"company,omitempty"`
	Sector        string `json:"sector,omitempty"`
	MinInvestment int    `json:"min_investment,omitempty"`
	Limit         int    `json:"limit,omitempty"`
	Offset        int    `json:"offset,omitempty"`
}

// Summary is the listing view of a stored analysis.
type Summary struct {
	ID              string    `json:"id"`
	Company         string    `json:"company"`
	Sector          string    `json:"sector"`
	InvestmentScore int       `json:"investmentScore"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Store defines the persistence interface for analyses.
type Store interface {
	SaveAnalysis(ctx context.Context, rec *analysis.Record) error
	GetAnalysis(ctx context.Context, id string) (*analysis.Record, error)
	ListAnalyses(ctx context.Context, filter ListFilter) ([]Summary, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// New creates a Store based on config.
func New(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		path := cfg.Path
		if path == "" {
			path = "deckscore.db"
		}
		return NewSQLite(path)
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, eris.New("store: postgres driver requires database_url")
		}
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
