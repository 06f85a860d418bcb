package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pit-strategy/internal/model"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestLoadSession(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "session.yaml", `
race_minutes: 45
litres_per_lap: 2.8
time_lost_driving_through_pits: "00:12.500000"
laps:
  soft-50: ["01:30.000000", "01:30.500000"]
  med-99: ["01:31.000000"]
`)
	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	race, err := c.ToRace()
	if err != nil {
		t.Fatalf("ToRace: %v", err)
	}
	if race.RaceDuration != 45*time.Minute || race.LitresPerLap != 2.8 || race.PitLaneLoss != 12500*time.Millisecond {
		t.Errorf("race = %+v", race)
	}
	samples, err := c.ToSamples()
	if err != nil {
		t.Fatalf("ToSamples: %v", err)
	}
	if len(samples[model.StrategySoft50]) != 2 || len(samples[model.StrategyMed99]) != 1 {
		t.Errorf("samples = %v", samples)
	}
}

func TestToRaceDefaults(t *testing.T) {
	race, err := (&Config{}).ToRace()
	if err != nil {
		t.Fatalf("ToRace: %v", err)
	}
	if race.RaceDuration != time.Hour || race.PitLaneLoss != 10*time.Second || race.LitresPerLap != 0 {
		t.Errorf("defaults = %+v", race)
	}
}

func TestLoadRejectsBadLapTime(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "session.yaml", `
litres_per_lap: 3
laps:
  med-50: ["1m30s"]
`)
	_, err := Load(p)
	var pe *model.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Value != "1m30s" {
		t.Errorf("ParseError.Value = %q", pe.Value)
	}
}

func TestLoadRejectsUnknownStrategy(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "session.yaml", `
laps:
  hard-100: ["01:30.000000"]
`)
	if _, err := Load(p); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}

func TestTuningFileMerge(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tuning.yaml", `
tuning:
  tyre_change_time: "00:18.000000"
  fill_time_per_litre_ms: 200
  deterioration:
    soft-50: 2.0
    med-50: 0.6
`)
	p := writeFile(t, dir, "session.yaml", `
litres_per_lap: 3
tuning_file: tuning.yaml
tuning:
  fill_time_per_litre_ms: 180
  deterioration:
    med-50: 0.5
`)
	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	tb, err := c.Tuning.ToTable()
	if err != nil {
		t.Fatalf("ToTable: %v", err)
	}
	if tb.TyreChangeTime != 18*time.Second {
		t.Errorf("TyreChangeTime = %v; want 18s", tb.TyreChangeTime)
	}
	if tb.FillTimePerLitre != 180*time.Millisecond {
		t.Errorf("FillTimePerLitre = %v; want 180ms", tb.FillTimePerLitre)
	}
	if tb.Deterioration[model.StrategySoft50] != 2.0 || tb.Deterioration[model.StrategyMed50] != 0.5 {
		t.Errorf("Deterioration = %v", tb.Deterioration)
	}
	if tb.Deterioration[model.StrategyMed99] != 0.4 {
		t.Errorf("med-99 deterioration should keep default, got %v", tb.Deterioration[model.StrategyMed99])
	}
	if tb.RaceStartLoss != 3*time.Second || tb.ExtraLapThreshold != 0.15 {
		t.Errorf("defaults lost: %+v", tb)
	}
}

func TestTuningRejectsThreshold(t *testing.T) {
	if _, err := (TuningConfig{ExtraLapThreshold: 1.5}).ToTable(); err == nil {
		t.Errorf("expected error for threshold >= 1")
	}
}
