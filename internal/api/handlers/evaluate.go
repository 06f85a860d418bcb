package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"pit-strategy/internal/api/models"
	"pit-strategy/internal/cache"
	"pit-strategy/internal/config"
	"pit-strategy/internal/evaluator"
	"pit-strategy/internal/model"
	"pit-strategy/internal/report"
	"pit-strategy/internal/strategy"
)

// EvaluateHandler ranks strategies for a request.
type EvaluateHandler struct {
	tunings *TuningHandler
	cache   *cache.ResultCache
	log     *log.Logger
}

// NewEvaluateHandler creates a handler. A nil cache disables memoisation.
func NewEvaluateHandler(tunings *TuningHandler, c *cache.ResultCache, l *log.Logger) *EvaluateHandler {
	return &EvaluateHandler{tunings: tunings, cache: c, log: l}
}

// Evaluate handles POST /api/v1/evaluate
func (h *EvaluateHandler) Evaluate(c *gin.Context) {
	var req models.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, "INVALID_REQUEST", err, nil)
		return
	}

	// Keyed on the resolved table: presets are re-read per request.
	table, err := h.tunings.Table(req.TuningID)
	if err != nil {
		abortWithError(c, "INVALID_TUNING", err, map[string]interface{}{"tuning_id": req.TuningID})
		return
	}
	key, err := cache.Key(struct {
		Request models.EvaluateRequest
		Table   strategy.Table
	}{req, table})
	if err != nil {
		abortWithError(c, "INVALID_REQUEST", err, nil)
		return
	}
	if res, ok := h.cache.Get(key); ok {
		c.JSON(http.StatusOK, models.EvaluateResponse{Document: report.NewDocument(res), Cached: true})
		return
	}

	session := config.Config{
		RaceMinutes:  req.RaceMinutes,
		LitresPerLap: req.LitresPerLap,
		PitLaneLoss:  req.PitLaneLoss,
		Laps:         req.Laps,
	}
	race, err := session.ToRace()
	if err != nil {
		abortWithError(c, "", err, nil)
		return
	}
	samples, err := session.ToSamples()
	if err != nil {
		abortWithError(c, "", err, nil)
		return
	}
	res, err := evaluator.New(table).Run(race, samples)
	if err != nil {
		abortWithError(c, "", err, nil)
		return
	}
	h.cache.Set(key, res)

	fields := log.Fields{"strategies": len(res.Ranking)}
	if best, ok := res.Best(); ok {
		fields["best"] = best.Strategy
		fields["laps_at_zero"] = best.Result.LapsAtZero
	}
	h.log.WithFields(fields).Debug("evaluated")

	c.JSON(http.StatusOK, models.EvaluateResponse{Document: report.NewDocument(res)})
}

// abortWithError maps domain errors to 400 responses. code overrides the
// derived error code when set.
func abortWithError(c *gin.Context, code string, err error, details map[string]interface{}) {
	var (
		parseErr   *model.ParseError
		missingErr *model.MissingArgumentError
		invalidErr *model.InvalidArgumentError
	)
	derived := "INVALID_REQUEST"
	switch {
	case errors.As(err, &parseErr):
		derived = "INVALID_TIME"
		details = merge(details, map[string]interface{}{"value": parseErr.Value})
	case errors.As(err, &missingErr):
		derived = "MISSING_ARGUMENT"
		details = merge(details, map[string]interface{}{"argument": missingErr.Name})
	case errors.As(err, &invalidErr):
		derived = "INVALID_ARGUMENT"
		details = merge(details, map[string]interface{}{"argument": invalidErr.Name})
	}
	if code == "" {
		code = derived
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
			Details: details,
		},
	})
}

func merge(a, b map[string]interface{}) map[string]interface{} {
	if a == nil {
		return b
	}
	for k, v := range b {
		a[k] = v
	}
	return a
}
