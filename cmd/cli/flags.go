package main

import (
	"strings"
	"time"

	"pit-strategy/internal/model"
)

// lapTimes is a repeatable MM:SS.ffffff flag.
type lapTimes []time.Duration

func (l *lapTimes) String() string {
	if l == nil {
		return ""
	}
	parts := make([]string, len(*l))
	for i, d := range *l {
		parts[i] = model.FormatLapTime(d)
	}
	return strings.Join(parts, ",")
}

func (l *lapTimes) Set(s string) error {
	d, err := model.ParseLapTime(s)
	if err != nil {
		return err
	}
	*l = append(*l, d)
	return nil
}

// lapTime is a single MM:SS.ffffff flag.
type lapTime time.Duration

func (l *lapTime) String() string {
	if l == nil {
		return ""
	}
	return model.FormatLapTime(time.Duration(*l))
}

func (l *lapTime) Set(s string) error {
	d, err := model.ParseLapTime(s)
	if err != nil {
		return err
	}
	*l = lapTime(d)
	return nil
}
