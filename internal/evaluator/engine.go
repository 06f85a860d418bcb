package evaluator

import (
	"fmt"

	"pit-strategy/internal/analysis"
	"pit-strategy/internal/model"
	"pit-strategy/internal/strategy"
)

type Engine struct {
	table strategy.Table
}

func New(table strategy.Table) *Engine { return &Engine{table: table} }

// NewDefault returns an engine using strategy.DefaultTable.
func NewDefault() *Engine { return New(strategy.DefaultTable()) }

func (e *Engine) Table() strategy.Table { return e.table }

// Run evaluates every strategy that has lap times and ranks them from best to
// worst. No lap times at all is not an error: the ranking is empty.
func (e *Engine) Run(race model.RaceParams, samples model.LapSamples) (*Result, error) {
	if err := e.table.Validate(); err != nil {
		return nil, fmt.Errorf("strategy table invalid: %w", err)
	}
	if err := race.Validate(); err != nil {
		return nil, err
	}
	if err := samples.Validate(); err != nil {
		return nil, err
	}

	ids := samples.Evaluated()
	results := make([]model.RankedResult, 0, len(ids))
	for _, id := range ids {
		results = append(results, model.RankedResult{
			Strategy: id,
			Result:   e.table.Evaluate(id, race, samples[id]),
		})
	}

	return &Result{
		Race:    race,
		Ranking: analysis.Rank(results),
		Samples: analysis.SummarizeAll(samples),
	}, nil
}
