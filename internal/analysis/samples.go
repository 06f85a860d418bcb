package analysis

import (
	"time"

	"pit-strategy/internal/model"
)

// SampleSummary describes the practice laps behind a strategy. A wide spread
// means the mean is a poor estimate; more consistent laps give better data.
type SampleSummary struct {
	Strategy model.StrategyID
	Count    int
	Min      time.Duration
	Max      time.Duration
	Mean     time.Duration
	Spread   time.Duration
}

func Summarize(id model.StrategyID, laps []time.Duration) SampleSummary {
	s := SampleSummary{Strategy: id, Count: len(laps)}
	if len(laps) == 0 {
		return s
	}
	var sum time.Duration
	s.Min, s.Max = laps[0], laps[0]
	for _, l := range laps {
		sum += l
		if l < s.Min {
			s.Min = l
		}
		if l > s.Max {
			s.Max = l
		}
	}
	s.Mean = sum / time.Duration(len(laps))
	s.Spread = s.Max - s.Min
	return s
}

// SummarizeAll summarizes every strategy with samples, in canonical order.
func SummarizeAll(samples model.LapSamples) []SampleSummary {
	ids := samples.Evaluated()
	out := make([]SampleSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, Summarize(id, samples[id]))
	}
	return out
}
