// Package ranking determines the best candidate among a scored batch.
package ranking

import (
	"errors"

	"github.com/jonathan/cv-analyzer/internal/types"
)

// ErrNoCandidates signals an empty scoring batch. Callers present a neutral
// "no candidates" state instead of treating this as a fault.
var ErrNoCandidates = errors.New("no candidates to rank")

// Rank preserves the upload order of the results and designates the best
// candidate via a linear scan over total scores. The first maximum wins on
// ties, so ranking is stable for a fixed input order.
func Rank(results []types.CandidateResult) (*types.RankedSet, error) {
	if len(results) == 0 {
		return nil, ErrNoCandidates
	}

	best := 0
	for i, result := range results {
		if result.TotalScore > results[best].TotalScore {
			best = i
		}
	}

	return &types.RankedSet{Candidates: results, Best: best}, nil
}
