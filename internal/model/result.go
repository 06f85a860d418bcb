package model

import "time"

// StrategyResult is the outcome of evaluating a single strategy.
type StrategyResult struct {
	// LapsAtZero is the fractional lap count when the clock hits zero. It is
	// the ranking key since whole-lap rounding hides small differences.
	LapsAtZero        float64
	TotalLaps         int
	TotalFuel         int // litres, rounded up
	NormalisedLapTime time.Duration
	TotalTime         time.Duration
	// PitStopTime is stationary time plus the pit lane loss.
	PitStopTime time.Duration

	// Intermediate values, kept so reports can explain the numbers.
	AverageLapTime  time.Duration
	AdjustedLapTime time.Duration
	NaiveLaps       int
	NaiveFuel       int
	ExtraFuelLap    bool
}

// RankedResult pairs a strategy with its result.
type RankedResult struct {
	Strategy StrategyID
	Result   StrategyResult
}
