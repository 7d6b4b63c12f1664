// Package bench runs the connected-components engine over a fixed matrix
// across repeated trials, checks that repeated trials agree on the
// component count, and assembles a report. Grounded on the reference
// benchmark_cc trial loop: run n_trials times, time each, bail with a
// distinct exit signal if any trial disagrees with the first.
package bench

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dimgerasimou/csc-components/cscmat"
	"github.com/dimgerasimou/csc-components/engine"
	"github.com/dimgerasimou/csc-components/stats"
	"github.com/dimgerasimou/csc-components/substrate"
	"github.com/dimgerasimou/csc-components/sysinfo"
)

// ErrTrialMismatch is returned when two trials of the same configuration
// disagree on the component count — the reference implementation's exit
// code 2, a signal of a concurrency bug rather than an I/O or usage error.
var ErrTrialMismatch = fmt.Errorf("bench: component count disagreement between trials")

// Config describes one engine configuration to benchmark.
type Config struct {
	Name        string
	Variant     engine.Variant
	Parallelism substrate.Mode
	Threads     int
	Trials      int
}

// Result holds one configuration's outcome.
type Result struct {
	Config    Config
	Count     int
	Durations []time.Duration
	Stats     stats.Summary
	PeakRSS   uint64
}

// Run executes cfg.Trials invocations of engine.CountComponents against
// view, verifying every trial reports the same component count. It returns
// ErrTrialMismatch (wrapped with the disagreeing counts) if any trial
// diverges from the first.
func Run(log *zap.Logger, view *cscmat.View, cfg Config) (Result, error) {
	if cfg.Trials <= 0 {
		cfg.Trials = 1
	}

	sampler, err := sysinfo.NewPeakRSSSampler()
	if err != nil {
		return Result{}, fmt.Errorf("bench: %s: %w", cfg.Name, err)
	}
	sampler.Start(10 * time.Millisecond)

	durations := make([]time.Duration, cfg.Trials)
	var first int

	for i := 0; i < cfg.Trials; i++ {
		start := time.Now()
		count := engine.CountComponents(view, cfg.Threads, cfg.Variant, cfg.Parallelism)
		durations[i] = time.Since(start)

		if i == 0 {
			first = count
		} else if count != first {
			log.Error("trial mismatch",
				zap.String("config", cfg.Name),
				zap.Int("trial", i),
				zap.Int("first_count", first),
				zap.Int("this_count", count),
			)
			sampler.Stop()
			return Result{}, fmt.Errorf("%w: config %q, trial %d got %d, trial 0 got %d",
				ErrTrialMismatch, cfg.Name, i, count, first)
		}

		log.Debug("trial complete",
			zap.String("config", cfg.Name),
			zap.Int("trial", i),
			zap.Duration("elapsed", durations[i]),
		)
	}

	peak := sampler.Stop()

	summary, err := stats.Summarize(durations, view.NNZ)
	if err != nil {
		return Result{}, fmt.Errorf("bench: %s: %w", cfg.Name, err)
	}

	return Result{
		Config:    cfg,
		Count:     first,
		Durations: durations,
		Stats:     summary,
		PeakRSS:   peak,
	}, nil
}

// RunAll runs every config in sequence and returns their results in config
// order, stopping at the first error. It does not compute speedup or
// efficiency; BuildReport does that from the returned results.
func RunAll(log *zap.Logger, view *cscmat.View, configs []Config) ([]Result, error) {
	results := make([]Result, 0, len(configs))
	baselines := make(map[engine.Variant]stats.Summary)

	for _, cfg := range configs {
		res, err := Run(log, view, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Parallelism == substrate.Sequential {
			if _, ok := baselines[cfg.Variant]; !ok {
				baselines[cfg.Variant] = res.Stats
			}
		}
		results = append(results, res)
	}
	return results, nil
}

// Speedup returns the speedup of res against baseline (the sequential
// baseline summary for its variant), and the corresponding efficiency.
func Speedup(res Result, baseline stats.Summary) (speedup, efficiency float64) {
	speedup = res.Stats.Speedup(baseline)
	efficiency = res.Stats.Efficiency(speedup, res.Config.Threads)
	return
}
