package evaluator

import (
	"pit-strategy/internal/analysis"
	"pit-strategy/internal/model"
)

// Result is the ranked outcome of one evaluation, best strategy first.
type Result struct {
	Race    model.RaceParams
	Ranking []model.RankedResult
	Samples []analysis.SampleSummary
}

func (r *Result) Empty() bool { return r == nil || len(r.Ranking) == 0 }

// Best returns the top ranked strategy, or false when nothing was evaluated.
func (r *Result) Best() (model.RankedResult, bool) {
	if r.Empty() {
		return model.RankedResult{}, false
	}
	return r.Ranking[0], true
}

func (r *Result) Comparisons() []analysis.Comparison {
	if r == nil {
		return nil
	}
	return analysis.Compare(r.Ranking)
}
