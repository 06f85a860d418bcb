package models

// EvaluateRequest is the body of POST /api/v1/evaluate. Durations use the
// MM:SS.ffffff format accepted by the CLI.
type EvaluateRequest struct {
	RaceMinutes  int                 `json:"race_minutes,omitempty" binding:"gte=0"`   // default: 60
	LitresPerLap float64             `json:"litres_per_lap" binding:"gte=0"`            // required
	PitLaneLoss  string              `json:"time_lost_driving_through_pits,omitempty"` // default: 00:10.000000
	Laps         map[string][]string `json:"laps"`
	// TuningID names a file in the tuning directory (see GET /api/v1/tunings).
	TuningID string `json:"tuning_id,omitempty"`
}
