package model

import (
	"errors"
	"fmt"
)

// ErrNoStrategies is reported by output layers when no strategy had any lap
// times, so the ranking is empty.
var ErrNoStrategies = errors.New("no lap times supplied for any strategy")

// ParseError reports a duration that does not match MM:SS.ffffff.
type ParseError struct {
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid time %q, expected MM:SS.ffffff: %s", e.Value, e.Reason)
}

// MissingArgumentError reports a required input that was not supplied.
type MissingArgumentError struct {
	Name string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("--%s is required", e.Name)
}

// InvalidArgumentError reports a supplied input outside its allowed range.
type InvalidArgumentError struct {
	Name   string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Name, e.Reason)
}
