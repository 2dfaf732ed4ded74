package analysis

import (
	"time"

	"github.com/google/uuid"

	"github.com/sells-group/deckscore/internal/kpi"
	"github.com/sells-group/deckscore/internal/scoring"
)

// Merge combines deterministic scores with a sanitized qualitative payload
// into the final analysis record. The id and timestamp are the only
// nondeterministic fields and are attached here, after all scoring is done.
func Merge(rec kpi.Record, bundle scoring.Bundle, qual Qualitative) *Record {
	return &Record{
		ID:          uuid.New().String(),
		Timestamp:   time.Now().UTC(),
		Company:     rec,
		Scores:      bundle,
		Qualitative: qual,
	}
}
