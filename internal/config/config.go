package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pit-strategy/internal/model"
	"pit-strategy/internal/strategy"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk session shape (YAML). Everything in it can also be
// given on the command line; flags win.
type Config struct {
	RaceMinutes  int     `yaml:"race_minutes"`
	LitresPerLap float64 `yaml:"litres_per_lap"`
	// MM:SS.ffffff
	PitLaneLoss string              `yaml:"time_lost_driving_through_pits"`
	Laps        map[string][]string `yaml:"laps"`

	// Optional: load tuning from a separate YAML (e.g. one per game build).
	// If both TuningFile and Tuning are provided, Tuning overrides TuningFile.
	TuningFile string       `yaml:"tuning_file"`
	Tuning     TuningConfig `yaml:"tuning"`
}

// TuningConfig overrides the fixed costs of strategy.DefaultTable. Zero
// values keep the default.
type TuningConfig struct {
	TyreChangeTime         string             `yaml:"tyre_change_time"`
	FillTimePerLitreMS     float64            `yaml:"fill_time_per_litre_ms"`
	FuelSafetyBufferLitres float64            `yaml:"fuel_safety_buffer_litres"`
	ExtraLapThreshold      float64            `yaml:"extra_lap_threshold"`
	RaceStartLoss          string             `yaml:"race_start_loss"`
	Deterioration          map[string]float64 `yaml:"deterioration"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.TuningFile != "" {
		tuningPath := c.TuningFile
		if !filepath.IsAbs(tuningPath) {
			// Relative to the config file first, then to cwd.
			cand := filepath.Join(filepath.Dir(path), tuningPath)
			if _, err := os.Stat(cand); err == nil {
				tuningPath = cand
			}
		}
		loaded, err := LoadTuningFile(tuningPath)
		if err != nil {
			return nil, err
		}
		c.Tuning = MergeTuning(loaded, c.Tuning)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.RaceMinutes < 0 {
		return errors.New("race_minutes must be > 0")
	}
	if c.LitresPerLap < 0 {
		return errors.New("litres_per_lap must be > 0")
	}
	if c.PitLaneLoss != "" {
		if _, err := model.ParseLapTime(c.PitLaneLoss); err != nil {
			return fmt.Errorf("time_lost_driving_through_pits: %w", err)
		}
	}
	if _, err := c.ToSamples(); err != nil {
		return err
	}
	if _, err := c.Tuning.ToTable(); err != nil {
		return fmt.Errorf("tuning invalid: %w", err)
	}
	return nil
}

// ToRace converts the race section, applying defaults for anything unset.
// LitresPerLap is left at zero when absent so the caller can report it.
func (c *Config) ToRace() (model.RaceParams, error) {
	race := model.RaceParams{
		RaceDuration: model.DefaultRaceDuration,
		LitresPerLap: c.LitresPerLap,
		PitLaneLoss:  model.DefaultPitLaneLoss,
	}
	if c.RaceMinutes > 0 {
		race.RaceDuration = time.Duration(c.RaceMinutes) * time.Minute
	}
	if c.PitLaneLoss != "" {
		d, err := model.ParseLapTime(c.PitLaneLoss)
		if err != nil {
			return race, err
		}
		race.PitLaneLoss = d
	}
	return race, nil
}

func (c *Config) ToSamples() (model.LapSamples, error) {
	out := model.LapSamples{}
	for key, laps := range c.Laps {
		id, err := model.ParseStrategyID(key)
		if err != nil {
			return nil, fmt.Errorf("laps: %w", err)
		}
		for _, s := range laps {
			d, err := model.ParseLapTime(s)
			if err != nil {
				return nil, fmt.Errorf("laps.%s: %w", key, err)
			}
			out.Add(id, d)
		}
	}
	return out, nil
}

// ToTable overlays the tuning onto strategy.DefaultTable and validates it.
func (t TuningConfig) ToTable() (strategy.Table, error) {
	tb := strategy.DefaultTable()
	if t.TyreChangeTime != "" {
		d, err := model.ParseLapTime(t.TyreChangeTime)
		if err != nil {
			return tb, fmt.Errorf("tyre_change_time: %w", err)
		}
		tb.TyreChangeTime = d
	}
	if t.FillTimePerLitreMS != 0 {
		tb.FillTimePerLitre = strategy.RoundMicros(t.FillTimePerLitreMS * float64(time.Millisecond))
	}
	if t.FuelSafetyBufferLitres != 0 {
		tb.FuelSafetyBufferLitres = t.FuelSafetyBufferLitres
	}
	if t.ExtraLapThreshold != 0 {
		tb.ExtraLapThreshold = t.ExtraLapThreshold
	}
	if t.RaceStartLoss != "" {
		d, err := model.ParseLapTime(t.RaceStartLoss)
		if err != nil {
			return tb, fmt.Errorf("race_start_loss: %w", err)
		}
		tb.RaceStartLoss = d
	}
	for key, pct := range t.Deterioration {
		id, err := model.ParseStrategyID(key)
		if err != nil {
			return tb, fmt.Errorf("deterioration: %w", err)
		}
		tb.Deterioration[id] = pct
	}
	if err := tb.Validate(); err != nil {
		return tb, err
	}
	return tb, nil
}

type tuningFileWrapper struct {
	Tuning TuningConfig `yaml:"tuning"`
}

// LoadTuningFile reads a YAML file with a top-level tuning section.
func LoadTuningFile(path string) (TuningConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return TuningConfig{}, err
	}
	var w tuningFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return TuningConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Tuning, nil
}

// MergeTuning overlays non-zero fields from override onto base.
func MergeTuning(base, override TuningConfig) TuningConfig {
	out := base
	if override.TyreChangeTime != "" {
		out.TyreChangeTime = override.TyreChangeTime
	}
	if override.FillTimePerLitreMS != 0 {
		out.FillTimePerLitreMS = override.FillTimePerLitreMS
	}
	if override.FuelSafetyBufferLitres != 0 {
		out.FuelSafetyBufferLitres = override.FuelSafetyBufferLitres
	}
	if override.ExtraLapThreshold != 0 {
		out.ExtraLapThreshold = override.ExtraLapThreshold
	}
	if override.RaceStartLoss != "" {
		out.RaceStartLoss = override.RaceStartLoss
	}
	if len(override.Deterioration) > 0 {
		merged := make(map[string]float64, len(base.Deterioration)+len(override.Deterioration))
		for k, v := range base.Deterioration {
			merged[k] = v
		}
		for k, v := range override.Deterioration {
			merged[k] = v
		}
		out.Deterioration = merged
	}
	return out
}
