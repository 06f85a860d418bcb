package models

import "pit-strategy/internal/report"

// EvaluateResponse is the ranked result, best strategy first.
type EvaluateResponse struct {
	report.Document
	Cached bool `json:"cached"`
}

// StrategyInfo describes one of the supported strategies.
type StrategyInfo struct {
	ID                   string  `json:"id"`
	Description          string  `json:"description"`
	PitStop              string  `json:"pit_stop"`
	DeteriorationPercent float64 `json:"deterioration_percent"`
}

// TuningInfo represents a tuning preset file.
type TuningInfo struct {
	ID   string `json:"id"`
	File string `json:"file"`
	// Values that differ from the built-in defaults.
	Overrides map[string]interface{} `json:"overrides,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
