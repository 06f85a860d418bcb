package report

import (
	"encoding/json"
	"io"
	"time"

	"pit-strategy/internal/analysis"
	"pit-strategy/internal/evaluator"
	"pit-strategy/internal/model"
)

// Document is the structured form of a result, shared by the JSON writer
// and the HTTP API.
type Document struct {
	Race     RaceDoc     `json:"race"`
	Rankings []RankDoc   `json:"rankings"`
	Samples  []SampleDoc `json:"samples,omitempty"`
	Message  string      `json:"message,omitempty"`
}

type RaceDoc struct {
	Duration     string  `json:"duration"`
	Minutes      float64 `json:"minutes"`
	LitresPerLap float64 `json:"litres_per_lap"`
	PitLaneLoss  string  `json:"time_lost_driving_through_pits"`
}

type RankDoc struct {
	Rank                  int     `json:"rank"`
	Strategy              string  `json:"strategy"`
	LapsAtZero            float64 `json:"laps_at_zero"`
	TimeDifference        string  `json:"time_difference_from_fastest,omitempty"`
	TotalLaps             int     `json:"total_laps"`
	TotalFuel             int     `json:"total_fuel_litres"`
	NormalisedLapTime     string  `json:"normalised_lap_time"`
	NormalisedLapTimeSecs float64 `json:"normalised_lap_time_seconds"`
	TotalTime             string  `json:"total_time"`
	PitStopTime           string  `json:"pit_stop_time"`
	ExtraFuelLap          bool    `json:"extra_fuel_lap"`
}

type SampleDoc struct {
	Strategy string `json:"strategy"`
	Count    int    `json:"count"`
	Min      string `json:"min"`
	Max      string `json:"max"`
	Mean     string `json:"mean"`
	Spread   string `json:"spread"`
}

func NewDocument(res *evaluator.Result) Document {
	doc := Document{
		Race: RaceDoc{
			Duration:     model.FormatClock(res.Race.RaceDuration),
			Minutes:      res.Race.RaceDuration.Minutes(),
			LitresPerLap: res.Race.LitresPerLap,
			PitLaneLoss:  model.FormatLapTime(res.Race.PitLaneLoss),
		},
		Rankings: []RankDoc{},
	}
	if res.Empty() {
		doc.Message = model.ErrNoStrategies.Error()
	}
	for _, c := range res.Comparisons() {
		doc.Rankings = append(doc.Rankings, newRankDoc(c))
	}
	for _, s := range res.Samples {
		doc.Samples = append(doc.Samples, SampleDoc{
			Strategy: string(s.Strategy),
			Count:    s.Count,
			Min:      model.FormatLapTime(s.Min),
			Max:      model.FormatLapTime(s.Max),
			Mean:     model.FormatLapTime(s.Mean),
			Spread:   model.FormatLapTime(s.Spread),
		})
	}
	return doc
}

func newRankDoc(c analysis.Comparison) RankDoc {
	r := c.Result
	d := RankDoc{
		Rank:                  c.Rank,
		Strategy:              string(c.Strategy),
		LapsAtZero:            r.LapsAtZero,
		TotalLaps:             r.TotalLaps,
		TotalFuel:             r.TotalFuel,
		NormalisedLapTime:     model.FormatLapTime(r.NormalisedLapTime),
		NormalisedLapTimeSecs: r.NormalisedLapTime.Round(time.Microsecond).Seconds(),
		TotalTime:             model.FormatClock(r.TotalTime),
		PitStopTime:           model.FormatLapTime(r.PitStopTime),
		ExtraFuelLap:          r.ExtraFuelLap,
	}
	if !c.Fastest {
		d.TimeDifference = model.FormatClock(c.TimeDifference)
	}
	return d
}

func WriteJSON(w io.Writer, res *evaluator.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(res))
}
