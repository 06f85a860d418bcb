package model

import "fmt"

// StrategyID names one of the supported tyre compound + starting fuel
// combinations. Keep these values stable; they are used as CLI flags, YAML
// keys and JSON fields.
type StrategyID string

const (
	// Start on softs with 50% fuel, pit for 50% fuel and new softs.
	StrategySoft50 StrategyID = "soft-50"
	// Start on mediums with 50% fuel, pit for 50% fuel and keep the tyres.
	StrategyMed50 StrategyID = "med-50"
	// Start on mediums with ~99% fuel, pit for a single litre.
	StrategyMed99 StrategyID = "med-99"
)

// AllStrategies returns the supported strategies in canonical order.
func AllStrategies() []StrategyID {
	return []StrategyID{StrategySoft50, StrategyMed50, StrategyMed99}
}

func ParseStrategyID(s string) (StrategyID, error) {
	for _, id := range AllStrategies() {
		if string(id) == s {
			return id, nil
		}
	}
	return "", &InvalidArgumentError{
		Name:   "strategy",
		Reason: fmt.Sprintf("unknown strategy %q (expected one of soft-50, med-50, med-99)", s),
	}
}

func (s StrategyID) String() string { return string(s) }

// Order is the position of s in AllStrategies, used to break ranking ties.
func (s StrategyID) Order() int {
	for i, id := range AllStrategies() {
		if id == s {
			return i
		}
	}
	return len(AllStrategies())
}
