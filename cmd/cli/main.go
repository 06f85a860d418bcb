// Command cli ranks the pit strategies of a one-stop endurance race (RD GT3
// rules: one mandatory stop, 60 minutes by default).
//
// Track position is not modelled; a theoretically slower strategy can still
// be the better choice if it keeps you out of traffic.
//
// To collect lap times for each strategy:
//
//  1. Do 3 warm up laps on softs and adjust setup as necessary.
//  2. Do 3 warm up laps on mediums and adjust setup as necessary.
//  3. Do 5 laps on softs, 50% fuel.
//  4. Do 5 laps on mediums, 50% fuel.
//  5. Do 5 laps on mediums, ~99% fuel.
//
// Consistent laps give better data.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterbourgon/ff"
	log "github.com/sirupsen/logrus"

	"pit-strategy/internal/config"
	"pit-strategy/internal/evaluator"
	"pit-strategy/internal/model"
	"pit-strategy/internal/report"
	"pit-strategy/internal/strategy"
)

const envPrefix = "PIT_STRATEGY"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "rank":
			return cmdRank(args[1:], stdout, stderr)
		case "strategies":
			return cmdStrategies(stdout)
		case "help":
			usage(stderr)
			return 0
		}
	}
	return cmdRank(args, stdout, stderr)
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  cli [rank] --litres-per-lap 3.0 --soft-50 01:30.000000 --soft-50 01:30.500000 --med-99 01:31.000000")
	fmt.Fprintln(w, "  cli rank --config session.yaml --format xlsx --out results/strategies.xlsx")
	fmt.Fprintln(w, "  cli strategies")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "notes:")
	fmt.Fprintln(w, "  - lap times are MM:SS.ffffff, each strategy flag may be repeated")
	fmt.Fprintln(w, "  - strategies without lap times are skipped")
	fmt.Fprintln(w, "  - -l, -p and -t are short for --litres-per-lap, --time-lost-driving-through-pits and --race-time")
	fmt.Fprintf(w, "  - flags can also be set from %s_* environment variables\n", envPrefix)
}

func cmdRank(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rank", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		litresPerLap float64
		pitLaneLoss  = lapTime(model.DefaultPitLaneLoss)
		raceMinutes  = int(model.DefaultRaceDuration / time.Minute)
		samples      = map[model.StrategyID]*lapTimes{}
	)
	fs.Float64Var(&litresPerLap, "litres-per-lap", 0, "litres per lap, -l (required)")
	fs.Var(&pitLaneLoss, "time-lost-driving-through-pits", "how much longer it takes to drive through the pits than be on track, -p")
	fs.IntVar(&raceMinutes, "race-time", raceMinutes, "total race minutes, -t")
	for _, id := range model.AllStrategies() {
		samples[id] = &lapTimes{}
		fs.Var(samples[id], string(id), "lap time on "+string(id)+" (repeatable)")
	}
	cfgPath := fs.String("config", "", "optional session YAML; flags override it")
	formatName := fs.String("format", string(report.FormatText), "output format: text, csv, json or xlsx")
	outPath := fs.String("out", "", "output file (required for xlsx; default stdout)")
	debug := fs.Bool("debug", false, "debug logging")

	if err := ff.Parse(fs, expandShorthands(args), ff.WithEnvVarPrefix(envPrefix)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage(stderr)
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	logger := newLogger(stderr, *debug)

	format, err := report.ParseFormat(*formatName)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	race := model.RaceParams{
		RaceDuration: model.DefaultRaceDuration,
		PitLaneLoss:  model.DefaultPitLaneLoss,
	}
	laps := model.LapSamples{}
	table := strategy.DefaultTable()

	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(stderr, "config: %v\n", err)
			return 2
		}
		if race, err = cfg.ToRace(); err != nil {
			fmt.Fprintf(stderr, "config: %v\n", err)
			return 2
		}
		if laps, err = cfg.ToSamples(); err != nil {
			fmt.Fprintf(stderr, "config: %v\n", err)
			return 2
		}
		if table, err = cfg.Tuning.ToTable(); err != nil {
			fmt.Fprintf(stderr, "config: %v\n", err)
			return 2
		}
		logger.WithField("path", *cfgPath).Debug("loaded session config")
	}

	if set["litres-per-lap"] {
		race.LitresPerLap = litresPerLap
	}
	if set["time-lost-driving-through-pits"] {
		race.PitLaneLoss = time.Duration(pitLaneLoss)
	}
	if set["race-time"] || *cfgPath == "" {
		race.RaceDuration = time.Duration(raceMinutes) * time.Minute
	}
	for id, l := range samples {
		if len(*l) > 0 {
			laps[id] = *l
		}
	}

	res, err := evaluator.New(table).Run(race, laps)
	if err != nil {
		fmt.Fprintln(stderr, err)
		var missing *model.MissingArgumentError
		if errors.As(err, &missing) {
			usage(stderr)
			fs.PrintDefaults()
		}
		return 2
	}

	for _, r := range res.Ranking {
		logger.WithFields(log.Fields{
			"strategy":     r.Strategy,
			"average_lap":  model.FormatLapTime(r.Result.AverageLapTime),
			"adjusted_lap": model.FormatLapTime(r.Result.AdjustedLapTime),
			"naive_laps":   r.Result.NaiveLaps,
			"naive_fuel":   r.Result.NaiveFuel,
			"extra_lap":    r.Result.ExtraFuelLap,
		}).Debug("evaluated strategy")
	}
	if res.Empty() {
		logger.Warn(model.ErrNoStrategies)
	}

	if err := writeResult(stdout, *outPath, format, res); err != nil {
		fmt.Fprintf(stderr, "write %s: %v\n", format, err)
		return 1
	}
	if *outPath != "" {
		logger.WithFields(log.Fields{"path": *outPath, "format": format}).Info("wrote result")
	}
	return 0
}

// shorthands maps single-letter flags to the long names. Only the long names
// are registered, since ff skips the environment only for the name typed.
var shorthands = map[string]string{
	"l": "litres-per-lap",
	"p": "time-lost-driving-through-pits",
	"t": "race-time",
}

// expandShorthands rewrites -l, --l, -l=v and --l=v (and p, t) to their long
// names, up to a "--" terminator.
func expandShorthands(args []string) []string {
	out := make([]string, 0, len(args))
	for i, a := range args {
		if a == "--" {
			return append(out, args[i:]...)
		}
		name := strings.TrimLeft(a, "-")
		if name == a || len(a)-len(name) > 2 {
			out = append(out, a)
			continue
		}
		value := ""
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			name, value = name[:eq], name[eq:]
		}
		if long, ok := shorthands[name]; ok {
			a = "--" + long + value
		}
		out = append(out, a)
	}
	return out
}

func writeResult(stdout io.Writer, path string, format report.Format, res *evaluator.Result) error {
	if path == "" || format == report.FormatXLSX {
		if path != "" {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
		}
		return report.Write(stdout, path, format, res)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.Write(f, path, format, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func cmdStrategies(w io.Writer) int {
	tb := strategy.DefaultTable()
	fmt.Fprintf(w, "%-8s %-14s %s\n", "strategy", "deterioration", "pit stop")
	for _, id := range model.AllStrategies() {
		var pit string
		switch id {
		case model.StrategySoft50:
			pit = fmt.Sprintf("max(half refuel, %s tyre change)", tb.TyreChangeTime)
		case model.StrategyMed50:
			pit = "half refuel"
		case model.StrategyMed99:
			pit = fmt.Sprintf("one litre (%s)", tb.FillTimePerLitre)
		}
		fmt.Fprintf(w, "%-8s %-14s %s\n", id, fmt.Sprintf("%.1f%%/30min", tb.Deterioration[id]), pit)
	}
	return 0
}

func newLogger(w io.Writer, debug bool) *log.Logger {
	l := log.New()
	l.SetOutput(w)
	l.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if debug {
		l.SetLevel(log.DebugLevel)
	} else {
		l.SetLevel(log.InfoLevel)
	}
	return l
}
