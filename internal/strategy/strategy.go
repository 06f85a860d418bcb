package strategy

import (
	"errors"
	"fmt"
	"time"

	"pit-strategy/internal/model"
)

const (
	DefaultTyreChangeTime         = 20 * time.Second
	DefaultFillTimePerLitre       = 190 * time.Millisecond
	DefaultFuelSafetyBufferLitres = 1.0
	DefaultRaceStartLoss          = 3 * time.Second

	// DefaultExtraLapThreshold: when the race clock expires within this
	// fraction of a lap from the line, carry fuel for one more lap in case
	// the pace allows it. A heuristic, not a measurement.
	DefaultExtraLapThreshold = 0.15
)

// Table holds the fixed costs and tyre figures used by the evaluator. It is
// read-only once built; pass it by value.
//
// The tyre change and refuel times were timed frame by frame from a
// recording. Deterioration is the lap time loss in percent over a 30 minute
// stint. Only half of it is applied to the average, as a mid-race estimate;
// it is not scaled by race length.
type Table struct {
	TyreChangeTime         time.Duration
	FillTimePerLitre       time.Duration
	FuelSafetyBufferLitres float64
	ExtraLapThreshold      float64
	RaceStartLoss          time.Duration
	Deterioration          map[model.StrategyID]float64
}

// DefaultTable returns the stock figures: soft 50 measured at Road Atlanta
// (1.4%), medium 99 at Brands Hatch second stint (0.4%).
func DefaultTable() Table {
	return Table{
		TyreChangeTime:         DefaultTyreChangeTime,
		FillTimePerLitre:       DefaultFillTimePerLitre,
		FuelSafetyBufferLitres: DefaultFuelSafetyBufferLitres,
		ExtraLapThreshold:      DefaultExtraLapThreshold,
		RaceStartLoss:          DefaultRaceStartLoss,
		Deterioration: map[model.StrategyID]float64{
			model.StrategySoft50: 1.4,
			model.StrategyMed50:  0.4,
			model.StrategyMed99:  0.4,
		},
	}
}

func (t Table) Validate() error {
	if t.TyreChangeTime < 0 {
		return errors.New("tyre change time must be >= 0")
	}
	if t.FillTimePerLitre < 0 {
		return errors.New("fill time per litre must be >= 0")
	}
	if t.FuelSafetyBufferLitres < 0 {
		return errors.New("fuel safety buffer must be >= 0")
	}
	if t.ExtraLapThreshold < 0 || t.ExtraLapThreshold >= 1 {
		return errors.New("extra lap threshold must be in [0, 1)")
	}
	if t.RaceStartLoss < 0 {
		return errors.New("race start loss must be >= 0")
	}
	for _, id := range model.AllStrategies() {
		d, ok := t.Deterioration[id]
		if !ok {
			return fmt.Errorf("missing deterioration for %s", id)
		}
		if d < 0 {
			return fmt.Errorf("deterioration for %s must be >= 0", id)
		}
	}
	return nil
}

// RefillTime is how long pumping the given litres takes.
func (t Table) RefillTime(litres int) time.Duration {
	return time.Duration(litres) * t.FillTimePerLitre
}

// PitStopTime is the stationary time of the single mandatory stop, given the
// fuel the car needs for the whole race.
func (t Table) PitStopTime(id model.StrategyID, litres int) time.Duration {
	switch id {
	case model.StrategySoft50:
		// Half the fuel while new softs go on; the slower job sets the time.
		half := RoundMicros(float64(t.RefillTime(litres)) / 2)
		if half > t.TyreChangeTime {
			return half
		}
		return t.TyreChangeTime
	case model.StrategyMed50:
		// Half the fuel, tyres stay on.
		return RoundMicros(float64(t.RefillTime(litres)) / 2)
	case model.StrategyMed99:
		// Started nearly full; one litre to satisfy the stop.
		return t.FillTimePerLitre
	default:
		panic(fmt.Errorf("unsupported strategy: %q", id))
	}
}
