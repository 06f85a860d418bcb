package analysis

import (
	"sort"
	"time"

	"pit-strategy/internal/model"
	"pit-strategy/internal/strategy"
)

// Rank sorts results descending by LapsAtZero. Whole laps are not used since
// rounding can hide small differences in pace. Ties keep canonical strategy
// order.
func Rank(results []model.RankedResult) []model.RankedResult {
	out := make([]model.RankedResult, len(results))
	copy(out, results)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Result.LapsAtZero != out[j].Result.LapsAtZero {
			return out[i].Result.LapsAtZero > out[j].Result.LapsAtZero
		}
		return out[i].Strategy.Order() < out[j].Strategy.Order()
	})
	return out
}

// Comparison is a ranked result with its gap to the fastest strategy.
type Comparison struct {
	model.RankedResult
	Rank    int
	Fastest bool
	// TimeDifference is how much longer this strategy takes to cover the
	// fastest strategy's laps at zero. Zero for the fastest.
	TimeDifference time.Duration
}

// Compare computes gaps for an already ranked slice.
func Compare(ranked []model.RankedResult) []Comparison {
	out := make([]Comparison, 0, len(ranked))
	if len(ranked) == 0 {
		return out
	}
	fastestLaps := ranked[0].Result.LapsAtZero
	fastestTime := scale(ranked[0].Result.NormalisedLapTime, fastestLaps)
	for i, r := range ranked {
		c := Comparison{RankedResult: r, Rank: i + 1, Fastest: i == 0}
		if i > 0 {
			c.TimeDifference = scale(r.Result.NormalisedLapTime, fastestLaps) - fastestTime
		}
		out = append(out, c)
	}
	return out
}

func scale(d time.Duration, laps float64) time.Duration {
	return strategy.RoundMicros(float64(d) * laps)
}
