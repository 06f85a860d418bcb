package report

import (
	"fmt"
	"io"

	"pit-strategy/internal/evaluator"
	"pit-strategy/internal/model"
)

// WriteText prints the ranking for humans, best strategy first. An empty
// ranking prints a plain message instead of a table.
func WriteText(w io.Writer, res *evaluator.Result) error {
	if res.Empty() {
		_, err := fmt.Fprintf(w, "Nothing to rank: %s.\n", model.ErrNoStrategies)
		return err
	}

	p := &printer{w: w}
	p.printf("From best to worst strategy for a race lasting %s:\n\n", model.FormatClock(res.Race.RaceDuration))
	for _, c := range res.Comparisons() {
		r := c.Result
		p.printf("%s:\n", c.Strategy)
		p.printf("Laps at 0 seconds: %.2f\n", r.LapsAtZero)
		if !c.Fastest {
			p.printf("Time difference from fastest: %s\n", model.FormatClock(c.TimeDifference))
		}
		p.printf("Total laps: %d\n", r.TotalLaps)
		p.printf("Total fuel: %d\n", r.TotalFuel)
		p.printf("Normalised lap time: %s\n", model.FormatClock(r.NormalisedLapTime))
		p.printf("Total time: %s\n", model.FormatClock(r.TotalTime))
		p.printf("Pit stop time: %s\n\n", model.FormatClock(r.PitStopTime))
	}
	return p.err
}

// printer remembers the first write error so callers check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
