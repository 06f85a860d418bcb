package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"pit-strategy/internal/api/models"
	"pit-strategy/internal/cache"
)

func testRouter(t *testing.T) (*gin.Engine, *cache.ResultCache) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	t.Setenv("TUNING_DIR", dir)
	body := "tuning:\n  tyre_change_time: \"00:30.000000\"\n"
	if err := os.WriteFile(filepath.Join(dir, "slow-crew.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write tuning: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("tuning:\n  extra_lap_threshold: 3\n"), 0o644); err != nil {
		t.Fatalf("write tuning: %v", err)
	}

	l := log.New()
	l.SetOutput(io.Discard)
	c := cache.New(time.Minute)
	t.Cleanup(c.Close)
	return NewRouter(l, c), c
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _ := testRouter(t)
	w := do(t, r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}

func TestListStrategies(t *testing.T) {
	r, _ := testRouter(t)
	w := do(t, r, http.MethodGet, "/api/v1/strategies", nil)
	var resp struct {
		Strategies []models.StrategyInfo `json:"strategies"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Strategies) != 3 || resp.Strategies[0].ID != "soft-50" || resp.Strategies[0].DeteriorationPercent != 1.4 {
		t.Errorf("strategies = %+v", resp.Strategies)
	}
}

func TestListTuningsSkipsInvalid(t *testing.T) {
	r, _ := testRouter(t)
	w := do(t, r, http.MethodGet, "/api/v1/tunings", nil)
	var resp struct {
		Tunings []models.TuningInfo `json:"tunings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Tunings) != 1 || resp.Tunings[0].ID != "slow-crew" {
		t.Errorf("tunings = %+v", resp.Tunings)
	}
}

func TestEvaluate(t *testing.T) {
	r, c := testRouter(t)
	req := models.EvaluateRequest{
		LitresPerLap: 3.0,
		Laps: map[string][]string{
			"med-50": {"01:31.200000", "01:31.000000"},
			"med-99": {"01:31.200000", "01:31.000000"},
		},
	}
	w := do(t, r, http.MethodPost, "/api/v1/evaluate", req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var resp models.EvaluateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Rankings) != 2 || resp.Rankings[0].Strategy != "med-99" {
		t.Errorf("rankings = %+v", resp.Rankings)
	}
	if resp.Cached {
		t.Errorf("first response should not be cached")
	}
	if c.Len() != 1 {
		t.Errorf("cache len = %d; want 1", c.Len())
	}

	w = do(t, r, http.MethodPost, "/api/v1/evaluate", req)
	resp = models.EvaluateResponse{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Cached || len(resp.Rankings) != 2 {
		t.Errorf("second response = %+v", resp)
	}
}

func TestEvaluateWithTuning(t *testing.T) {
	r, _ := testRouter(t)
	base := models.EvaluateRequest{
		LitresPerLap: 3.0,
		Laps:         map[string][]string{"soft-50": {"01:30.000000"}},
	}
	tuned := base
	tuned.TuningID = "slow-crew"

	var a, b models.EvaluateResponse
	_ = json.Unmarshal(do(t, r, http.MethodPost, "/api/v1/evaluate", base).Body.Bytes(), &a)
	_ = json.Unmarshal(do(t, r, http.MethodPost, "/api/v1/evaluate", tuned).Body.Bytes(), &b)
	if a.Rankings[0].PitStopTime != "00:30.000000" || b.Rankings[0].PitStopTime != "00:40.000000" {
		t.Errorf("pit stop times = %s / %s", a.Rankings[0].PitStopTime, b.Rankings[0].PitStopTime)
	}

	tuned.TuningID = "../etc/passwd"
	w := do(t, r, http.MethodPost, "/api/v1/evaluate", tuned)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", w.Code)
	}
}

func TestEvaluateEditedTuning(t *testing.T) {
	r, _ := testRouter(t)
	req := models.EvaluateRequest{
		LitresPerLap: 3.0,
		Laps:         map[string][]string{"soft-50": {"01:30.000000"}},
		TuningID:     "slow-crew",
	}

	var first, second models.EvaluateResponse
	_ = json.Unmarshal(do(t, r, http.MethodPost, "/api/v1/evaluate", req).Body.Bytes(), &first)
	if first.Rankings[0].PitStopTime != "00:40.000000" {
		t.Fatalf("pit stop time = %s; want 00:40.000000", first.Rankings[0].PitStopTime)
	}

	body := "tuning:\n  tyre_change_time: \"00:45.000000\"\n"
	path := filepath.Join(os.Getenv("TUNING_DIR"), "slow-crew.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write tuning: %v", err)
	}

	_ = json.Unmarshal(do(t, r, http.MethodPost, "/api/v1/evaluate", req).Body.Bytes(), &second)
	if second.Cached {
		t.Errorf("edited tuning served from cache")
	}
	if second.Rankings[0].PitStopTime != "00:55.000000" {
		t.Errorf("pit stop time = %s; want 00:55.000000", second.Rankings[0].PitStopTime)
	}
}

func TestEvaluateEmpty(t *testing.T) {
	r, _ := testRouter(t)
	w := do(t, r, http.MethodPost, "/api/v1/evaluate", models.EvaluateRequest{LitresPerLap: 3.0})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp models.EvaluateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Rankings) != 0 || resp.Message == "" {
		t.Errorf("response = %+v", resp)
	}
}

func TestEvaluateErrors(t *testing.T) {
	r, _ := testRouter(t)
	cases := []struct {
		name string
		req  models.EvaluateRequest
		code string
	}{
		{"missing litres", models.EvaluateRequest{Laps: map[string][]string{"med-50": {"01:30.000000"}}}, "MISSING_ARGUMENT"},
		{"bad lap", models.EvaluateRequest{LitresPerLap: 3, Laps: map[string][]string{"med-50": {"90s"}}}, "INVALID_TIME"},
		{"bad pit loss", models.EvaluateRequest{LitresPerLap: 3, PitLaneLoss: "10"}, "INVALID_TIME"},
		{"unknown strategy", models.EvaluateRequest{LitresPerLap: 3, Laps: map[string][]string{"hard-1": {"01:30.000000"}}}, "INVALID_ARGUMENT"},
		{"negative litres", models.EvaluateRequest{LitresPerLap: -1}, "INVALID_REQUEST"},
	}
	for _, c := range cases {
		w := do(t, r, http.MethodPost, "/api/v1/evaluate", c.req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d; want 400", c.name, w.Code)
			continue
		}
		var resp models.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Errorf("%s: decode: %v", c.name, err)
			continue
		}
		if resp.Error.Code != c.code {
			t.Errorf("%s: code = %s; want %s (%s)", c.name, resp.Error.Code, c.code, resp.Error.Message)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	r, _ := testRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/evaluate", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q; want *", got)
	}
}
