// Package main tunes a density profile with CMA-ES so that its generated
// fields hit target coverage, sparkle and size statistics.
//
// Usage: go run ./cmd/tune -tier medium -coverage 0.4 -sparkle 0.2 -size 2 -output tune-out
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/glowfield/config"
	"github.com/pthm-cable/glowfield/particles"
)

// EvalRow is one line of the evaluation log.
type EvalRow struct {
	Eval             int     `csv:"eval"`
	Fitness          float64 `csv:"fitness"`
	Count            int     `csv:"count"`
	MaxSize          float64 `csv:"max_size"`
	SparkleFrequency float64 `csv:"sparkle_frequency"`
	Coverage         float64 `csv:"coverage"`
	SparkleFraction  float64 `csv:"sparkle_fraction"`
	SizeMean         float64 `csv:"size_mean"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	tierName := flag.String("tier", "medium", "Density tier to tune")
	coverage := flag.Float64("coverage", 0.35, "Target coverage of the stats grid")
	sparkle := flag.Float64("sparkle", 0.2, "Target sparkle fraction")
	size := flag.Float64("size", 2.0, "Target mean particle size in px")
	seeds := flag.Int("seeds", 5, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 300, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *outputDir == "" {
		fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fatal("failed to create output directory", "error", err)
	}

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		fatal("failed to load config", "error", err)
	}
	tier, err := particles.ParseTier(*tierName)
	if err != nil {
		fatal("invalid tier", "error", err)
	}
	base := baseCfg.Derived.Profiles.MustGet(tier)

	params := NewParamVector(tier, base)

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	target := Targets{Coverage: *coverage, SparkleFraction: *sparkle, SizeMean: *size}
	evaluator := NewFitnessEvaluator(params, base, evalSeeds, baseCfg.Telemetry.CoverageBins, target)

	dim := params.Dim()
	initX := params.Normalize(params.DefaultVector())

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return evaluator.Evaluate(params.Denormalize(x))
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential evaluation
	}

	popSize := *population
	if popSize == 0 {
		// Auto-size: 4 + floor(3*ln(n))
		popSize = 4 + int(3*math.Log(float64(dim)))
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	var rows []EvalRow
	evalCount := 0
	bestFitness := math.Inf(1)
	var bestParams []float64
	startTime := time.Now()

	// Wrap the function to log evaluations
	originalFunc := problem.Func
	problem.Func = func(x []float64) float64 {
		fitness := originalFunc(x)
		evalCount++

		clamped := params.Clamp(params.Denormalize(x))
		if fitness < bestFitness {
			bestFitness = fitness
			bestParams = clamped
		}

		profile := params.Profile(base, clamped)
		stats := evaluator.LastStats()
		rows = append(rows, EvalRow{
			Eval:             evalCount,
			Fitness:          fitness,
			Count:            profile.Count,
			MaxSize:          profile.MaxSize,
			SparkleFrequency: profile.SparkleFrequency,
			Coverage:         stats.Coverage,
			SparkleFraction:  stats.SparkleFraction,
			SizeMean:         stats.SizeMean,
		})

		elapsed := time.Since(startTime)
		remaining := time.Duration(*maxEvals-evalCount) * (elapsed / time.Duration(evalCount))
		if evalCount%20 == 0 {
			slog.Info("eval",
				"n", evalCount,
				"fitness", fitness,
				"best", bestFitness,
				"elapsed", formatDuration(elapsed),
				"eta", formatDuration(remaining),
			)
		}
		return fitness
	}

	slog.Info("starting CMA-ES", "tier", tier, "params", dim, "population", popSize, "max_evals", *maxEvals, "seeds", *seeds)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		slog.Warn("optimization ended", "error", err)
	}

	// Use best params found (may be from any evaluation, not just final)
	if bestParams == nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	best := params.Profile(base, bestParams)

	slog.Info("optimization complete",
		"evals", evalCount,
		"duration", formatDuration(time.Since(startTime)),
		"fitness", bestFitness,
		"count", best.Count,
		"max_size", best.MaxSize,
		"sparkle_frequency", best.SparkleFrequency,
	)

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	if err := writeLog(logPath, rows); err != nil {
		slog.Error("failed to write log", "error", err)
	}

	// Save best config
	bestCfg, err := config.Load(*configPath)
	if err != nil {
		fatal("failed to reload config", "error", err)
	}
	bestCfg.Density[string(tier)] = best

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		slog.Error("failed to write best config", "error", err)
	} else {
		slog.Info("best config saved", "path", configOutPath)
	}
}

func writeLog(path string, rows []EvalRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create tune log: %w", err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("write tune log: %w", err)
	}
	return nil
}

func fatal(msg string, args ...any) {
	slog.Error(msg, args...)
	os.Exit(1)
}
