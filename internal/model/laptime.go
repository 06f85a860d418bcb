package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseLapTime parses a lap time written as MM:SS.ffffff, e.g. 01:45.235000.
// The fractional part may have 1-6 digits and is read as a decimal fraction
// of a second, so 01:45.5 is 1m45.5s. Surrounding whitespace is rejected.
func ParseLapTime(s string) (time.Duration, error) {
	raw := s
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, &ParseError{Value: raw, Reason: "missing minutes separator"}
	}
	secParts := strings.Split(parts[1], ".")
	if len(secParts) != 2 {
		return 0, &ParseError{Value: raw, Reason: "missing fractional seconds"}
	}

	m, err := parseDigits(parts[0], 1, 2)
	if err != nil {
		return 0, &ParseError{Value: raw, Reason: "minutes " + err.Error()}
	}
	sec, err := parseDigits(secParts[0], 1, 2)
	if err != nil {
		return 0, &ParseError{Value: raw, Reason: "seconds " + err.Error()}
	}
	frac := secParts[1]
	if _, err := parseDigits(frac, 1, 6); err != nil {
		return 0, &ParseError{Value: raw, Reason: "fraction " + err.Error()}
	}
	if m > 59 {
		return 0, &ParseError{Value: raw, Reason: "minutes out of range"}
	}
	if sec > 59 {
		return 0, &ParseError{Value: raw, Reason: "seconds out of range"}
	}
	us, _ := strconv.Atoi(frac + strings.Repeat("0", 6-len(frac)))

	return time.Duration(m)*time.Minute +
		time.Duration(sec)*time.Second +
		time.Duration(us)*time.Microsecond, nil
}

func parseDigits(s string, minLen, maxLen int) (int, error) {
	if len(s) < minLen || len(s) > maxLen {
		return 0, fmt.Errorf("must have %d-%d digits", minLen, maxLen)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("must be numeric")
		}
	}
	return strconv.Atoi(s)
}

// FormatLapTime renders d as MM:SS.ffffff, the inverse of ParseLapTime for
// durations under an hour. Longer durations keep counting minutes.
func FormatLapTime(d time.Duration) string {
	sign, us := splitMicros(d)
	m := us / int64(time.Minute/time.Microsecond)
	us -= m * int64(time.Minute/time.Microsecond)
	sec := us / 1e6
	us -= sec * 1e6
	return fmt.Sprintf("%s%02d:%02d.%06d", sign, m, sec, us)
}

// FormatClock renders d as H:MM:SS with a .ffffff suffix when there is a
// sub-second part.
func FormatClock(d time.Duration) string {
	sign, us := splitMicros(d)
	h := us / int64(time.Hour/time.Microsecond)
	us -= h * int64(time.Hour/time.Microsecond)
	m := us / int64(time.Minute/time.Microsecond)
	us -= m * int64(time.Minute/time.Microsecond)
	sec := us / 1e6
	us -= sec * 1e6
	if us == 0 {
		return fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, sec)
	}
	return fmt.Sprintf("%s%d:%02d:%02d.%06d", sign, h, m, sec, us)
}

func splitMicros(d time.Duration) (string, int64) {
	d = d.Round(time.Microsecond)
	if d < 0 {
		return "-", int64(-d / time.Microsecond)
	}
	return "", int64(d / time.Microsecond)
}
