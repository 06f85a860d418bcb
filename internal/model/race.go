package model

import (
	"strconv"
	"time"
)

const (
	DefaultRaceDuration = 60 * time.Minute
	DefaultPitLaneLoss  = 10 * time.Second
)

// RaceParams are the event-level inputs shared by every strategy.
//
// LitresPerLap has no default: it depends on the car and the circuit.
type RaceParams struct {
	RaceDuration time.Duration
	LitresPerLap float64
	// PitLaneLoss is how much longer driving through the pit lane takes
	// compared to staying on track.
	PitLaneLoss time.Duration
}

// LapSamples maps a strategy to its observed practice lap times.
type LapSamples map[StrategyID][]time.Duration

// Validate checks the race parameters. A zero LitresPerLap is reported as a
// missing argument rather than an invalid one.
func (p RaceParams) Validate() error {
	if p.LitresPerLap == 0 {
		return &MissingArgumentError{Name: "litres-per-lap"}
	}
	if p.LitresPerLap < 0 {
		return &InvalidArgumentError{Name: "litres-per-lap", Reason: "must be > 0"}
	}
	if p.RaceDuration <= 0 {
		return &InvalidArgumentError{Name: "race-time", Reason: "must be > 0"}
	}
	if p.PitLaneLoss < 0 {
		return &InvalidArgumentError{Name: "time-lost-driving-through-pits", Reason: "must be >= 0"}
	}
	return nil
}

// Validate rejects non-positive lap times. Strategies without samples are
// allowed and simply skipped by the evaluator.
func (s LapSamples) Validate() error {
	for id, laps := range s {
		for i, lap := range laps {
			if lap <= 0 {
				return &InvalidArgumentError{
					Name:   string(id),
					Reason: "lap time #" + strconv.Itoa(i+1) + " must be > 0",
				}
			}
		}
	}
	return nil
}

// Evaluated returns the strategies that have at least one sample, in
// canonical order.
func (s LapSamples) Evaluated() []StrategyID {
	out := make([]StrategyID, 0, len(s))
	for _, id := range AllStrategies() {
		if len(s[id]) > 0 {
			out = append(out, id)
		}
	}
	return out
}

// Add appends lap times for a strategy.
func (s LapSamples) Add(id StrategyID, laps ...time.Duration) {
	s[id] = append(s[id], laps...)
}
