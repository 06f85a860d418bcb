package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"pit-strategy/internal/api/models"
	"pit-strategy/internal/config"
	"pit-strategy/internal/strategy"
)

// TuningHandler serves tuning presets: YAML files with a top-level tuning
// section, one per file.
type TuningHandler struct {
	dir string
	log *log.Logger
}

// NewTuningHandler uses TUNING_DIR, or ./examples/tunings under the working
// directory.
func NewTuningHandler(l *log.Logger) *TuningHandler {
	dir := os.Getenv("TUNING_DIR")
	if dir == "" {
		dir = filepath.Join("examples", "tunings")
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	l.WithField("dir", dir).Info("tuning directory")
	return &TuningHandler{dir: dir, log: l}
}

func (h *TuningHandler) Dir() string { return h.dir }

// ListTunings handles GET /api/v1/tunings
func (h *TuningHandler) ListTunings(c *gin.Context) {
	tunings := []models.TuningInfo{}

	entries, err := os.ReadDir(h.dir)
	if err != nil {
		h.log.WithError(err).WithField("dir", h.dir).Warn("cannot read tuning directory")
		c.JSON(http.StatusOK, gin.H{"tunings": tunings})
		return
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".yaml")
		t, err := h.Load(id)
		if err != nil {
			h.log.WithError(err).WithField("file", e.Name()).Warn("skipping tuning file")
			continue
		}
		tunings = append(tunings, models.TuningInfo{
			ID:        id,
			File:      filepath.Join(h.dir, e.Name()),
			Overrides: overrides(t),
		})
	}

	c.JSON(http.StatusOK, gin.H{"tunings": tunings})
}

// Load reads and validates the tuning preset with the given id.
func (h *TuningHandler) Load(id string) (config.TuningConfig, error) {
	if id == "" || filepath.Base(id) != id || strings.HasPrefix(id, ".") {
		return config.TuningConfig{}, fmt.Errorf("invalid tuning id %q", id)
	}
	t, err := config.LoadTuningFile(filepath.Join(h.dir, id+".yaml"))
	if err != nil {
		return config.TuningConfig{}, err
	}
	if _, err := t.ToTable(); err != nil {
		return config.TuningConfig{}, err
	}
	return t, nil
}

// Table resolves a tuning id to a strategy table. An empty id is the default
// table.
func (h *TuningHandler) Table(id string) (strategy.Table, error) {
	if id == "" {
		return strategy.DefaultTable(), nil
	}
	t, err := h.Load(id)
	if err != nil {
		return strategy.Table{}, err
	}
	return t.ToTable()
}

func overrides(t config.TuningConfig) map[string]interface{} {
	out := map[string]interface{}{}
	if t.TyreChangeTime != "" {
		out["tyre_change_time"] = t.TyreChangeTime
	}
	if t.FillTimePerLitreMS != 0 {
		out["fill_time_per_litre_ms"] = t.FillTimePerLitreMS
	}
	if t.FuelSafetyBufferLitres != 0 {
		out["fuel_safety_buffer_litres"] = t.FuelSafetyBufferLitres
	}
	if t.ExtraLapThreshold != 0 {
		out["extra_lap_threshold"] = t.ExtraLapThreshold
	}
	if t.RaceStartLoss != "" {
		out["race_start_loss"] = t.RaceStartLoss
	}
	if len(t.Deterioration) > 0 {
		out["deterioration"] = t.Deterioration
	}
	return out
}
