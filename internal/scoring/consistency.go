package scoring

// DefaultVerifyRuns is the number of scoring passes the verifier performs
// when the caller does not specify one.
const DefaultVerifyRuns = 5

// VerifyResult reports the outcome of a consistency verification.
type VerifyResult struct {
	Runs       []Bundle `json:"runs"`
	Consistent bool     `json:"consistent"`
}

// Verify re-runs normalization and scoring on the identical raw input and
// compares every run field-wise for exact equality. A false Consistent means
// nondeterminism crept into the kernel (key-order dependence, float
// summation order, unseeded randomness) and is a defect, not a data problem.
func Verify(raw map[string]any, runs int) VerifyResult {
	if runs < 2 {
		runs = DefaultVerifyRuns
	}

	results := make([]Bundle, runs)
	for i := range results {
		results[i] = ScoreRaw(raw)
	}

	consistent := true
	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			consistent = false
			break
		}
	}

	return VerifyResult{Runs: results, Consistent: consistent}
}
