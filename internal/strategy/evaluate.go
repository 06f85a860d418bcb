package strategy

import (
	"math"
	"time"

	"pit-strategy/internal/model"
)

// Evaluate computes the result of running strategy id for a race, given its
// practice lap times. laps must not be empty.
func (t Table) Evaluate(id model.StrategyID, race model.RaceParams, laps []time.Duration) model.StrategyResult {
	avg := MeanLapTime(laps)
	adjusted := t.ApplyDeterioration(id, avg)

	// Pessimistic since pit time is not accounted for yet, but it gives the
	// fuel (and so the refuel time) a baseline.
	naiveLaps := CountLaps(race.RaceDuration, adjusted)
	naiveFuel := t.Fuel(race.LitresPerLap, naiveLaps)

	pitStop := t.PitStopTime(id, naiveFuel)
	lost := t.RaceStartLoss + race.PitLaneLoss + pitStop
	lapTime := adjusted + RoundMicros(float64(lost)/float64(naiveLaps))

	lapsAtZero := float64(race.RaceDuration) / float64(lapTime)
	totalLaps := int(math.Ceil(lapsAtZero))

	extra := t.NeedsExtraLap(lapsAtZero)
	fuelLaps := totalLaps
	if extra {
		fuelLaps++
	}

	return model.StrategyResult{
		LapsAtZero:        lapsAtZero,
		TotalLaps:         totalLaps,
		TotalFuel:         t.Fuel(race.LitresPerLap, fuelLaps),
		NormalisedLapTime: lapTime,
		TotalTime:         lapTime * time.Duration(totalLaps),
		PitStopTime:       pitStop + race.PitLaneLoss,

		AverageLapTime:  avg,
		AdjustedLapTime: adjusted,
		NaiveLaps:       naiveLaps,
		NaiveFuel:       naiveFuel,
		ExtraFuelLap:    extra,
	}
}

// RoundMicros converts nanoseconds to a Duration rounded half-to-even to
// whole microseconds. Every derived time is kept at microsecond resolution,
// the precision lap times are entered and printed with.
func RoundMicros(ns float64) time.Duration {
	return time.Duration(math.RoundToEven(ns/1e3)) * time.Microsecond
}

// MeanLapTime is the arithmetic mean of laps, to the microsecond.
func MeanLapTime(laps []time.Duration) time.Duration {
	if len(laps) == 0 {
		return 0
	}
	var sum time.Duration
	for _, l := range laps {
		sum += l
	}
	return RoundMicros(float64(sum) / float64(len(laps)))
}

// ApplyDeterioration bumps lapTime by half the strategy's deterioration, so
// 2% over 30 minutes adds 1% to the average.
func (t Table) ApplyDeterioration(id model.StrategyID, lapTime time.Duration) time.Duration {
	pct := t.Deterioration[id]
	onePercent := RoundMicros(float64(lapTime) / 100)
	return lapTime + RoundMicros(float64(onePercent)*(pct/2))
}

// CountLaps is the number of laps started before the clock expires.
func CountLaps(race, lapTime time.Duration) int {
	return int(math.Ceil(float64(race) / float64(lapTime)))
}

// Fuel is the litres needed for laps, including the safety buffer, rounded up.
func (t Table) Fuel(litresPerLap float64, laps int) int {
	return int(math.Ceil(litresPerLap*float64(laps) + t.FuelSafetyBufferLitres))
}

// NeedsExtraLap reports whether the car crosses the line close enough to the
// clock expiring that a slightly faster pace would give one more lap.
func (t Table) NeedsExtraLap(lapsAtZero float64) bool {
	return math.Ceil(lapsAtZero)-lapsAtZero <= t.ExtraLapThreshold
}
