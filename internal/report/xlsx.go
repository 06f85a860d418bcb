package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"pit-strategy/internal/evaluator"
	"pit-strategy/internal/model"
)

const (
	strategySheet = "Strategies"
	lapsSheet     = "Practice laps"
)

// WriteXLSX saves the ranking as a spreadsheet with one sheet for the ranked
// strategies and one for the practice lap summary.
func WriteXLSX(path string, res *evaluator.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", strategySheet); err != nil {
		return err
	}

	title := fmt.Sprintf("From best to worst strategy for a race lasting %s", model.FormatClock(res.Race.RaceDuration))
	if res.Empty() {
		title = "Nothing to rank: " + model.ErrNoStrategies.Error()
	}
	if err := f.SetCellValue(strategySheet, "A1", title); err != nil {
		return err
	}

	header := make([]interface{}, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(strategySheet, "A3", &header); err != nil {
		return err
	}

	for i, c := range res.Comparisons() {
		r := c.Result
		row := []interface{}{
			c.Rank,
			string(c.Strategy),
			r.LapsAtZero,
			fmtDuration(c.TimeDifference),
			r.TotalLaps,
			r.TotalFuel,
			fmtDuration(r.NormalisedLapTime),
			model.FormatClock(r.TotalTime),
			fmtDuration(r.PitStopTime),
			fmtDuration(r.AverageLapTime),
			fmtDuration(r.AdjustedLapTime),
			r.ExtraFuelLap,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(strategySheet, cell, &row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(lapsSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(lapsSheet, "A1", &[]interface{}{"strategy", "laps", "min", "max", "mean", "spread"}); err != nil {
		return err
	}
	for i, s := range res.Samples {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			string(s.Strategy),
			s.Count,
			fmtDuration(s.Min),
			fmtDuration(s.Max),
			fmtDuration(s.Mean),
			fmtDuration(s.Spread),
		}
		if err := f.SetSheetRow(lapsSheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
