package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"pit-strategy/internal/evaluator"
	"pit-strategy/internal/model"
)

var csvHeader = []string{
	"rank",
	"strategy",
	"laps_at_zero",
	"time_difference_from_fastest",
	"total_laps",
	"total_fuel_litres",
	"normalised_lap_time",
	"total_time",
	"pit_stop_time",
	"average_lap_time",
	"adjusted_lap_time",
	"extra_fuel_lap",
}

// WriteCSV writes one row per ranked strategy. Durations use MM:SS.ffffff so
// they can be fed back into the CLI.
func WriteCSV(out io.Writer, res *evaluator.Result) error {
	w := csv.NewWriter(out)

	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, c := range res.Comparisons() {
		r := c.Result
		row := []string{
			strconv.Itoa(c.Rank),
			string(c.Strategy),
			fmtFloat(r.LapsAtZero),
			fmtDuration(c.TimeDifference),
			strconv.Itoa(r.TotalLaps),
			strconv.Itoa(r.TotalFuel),
			fmtDuration(r.NormalisedLapTime),
			fmtDuration(r.TotalTime),
			fmtDuration(r.PitStopTime),
			fmtDuration(r.AverageLapTime),
			fmtDuration(r.AdjustedLapTime),
			strconv.FormatBool(r.ExtraFuelLap),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtDuration(d time.Duration) string {
	return model.FormatLapTime(d)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
