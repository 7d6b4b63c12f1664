// Package stats computes the summary statistics the benchmark driver
// reports for a run of trial timings.
package stats

import (
	"fmt"
	"time"

	extstats "github.com/montanaflynn/stats"
)

// Summary holds the aggregate statistics over one configuration's trials.
type Summary struct {
	Mean       time.Duration
	Median     time.Duration
	Min        time.Duration
	Max        time.Duration
	StdDev     time.Duration
	Throughput float64 // edges processed per second, using Mean
}

// Summarize computes a Summary over the given per-trial durations and the
// edge count processed in each trial. It returns an error if durations is
// empty or if the underlying statistics library rejects the sample (it
// never does for a non-empty slice of finite values, but the error is
// propagated rather than discarded).
func Summarize(durations []time.Duration, nnz uint64) (Summary, error) {
	if len(durations) == 0 {
		return Summary{}, fmt.Errorf("stats: no trials to summarize")
	}

	samples := make([]float64, len(durations))
	for i, d := range durations {
		samples[i] = d.Seconds()
	}

	mean, err := extstats.Mean(samples)
	if err != nil {
		return Summary{}, fmt.Errorf("stats: mean: %w", err)
	}
	median, err := extstats.Median(samples)
	if err != nil {
		return Summary{}, fmt.Errorf("stats: median: %w", err)
	}
	min, err := extstats.Min(samples)
	if err != nil {
		return Summary{}, fmt.Errorf("stats: min: %w", err)
	}
	max, err := extstats.Max(samples)
	if err != nil {
		return Summary{}, fmt.Errorf("stats: max: %w", err)
	}
	stddev, err := extstats.StandardDeviation(samples)
	if err != nil {
		return Summary{}, fmt.Errorf("stats: stddev: %w", err)
	}

	var throughput float64
	if mean > 0 {
		throughput = float64(nnz) / mean
	}

	return Summary{
		Mean:       secondsToDuration(mean),
		Median:     secondsToDuration(median),
		Min:        secondsToDuration(min),
		Max:        secondsToDuration(max),
		StdDev:     secondsToDuration(stddev),
		Throughput: throughput,
	}, nil
}

// Speedup returns baseline.Mean / s.Mean, 0 if s.Mean is 0.
func (s Summary) Speedup(baseline Summary) float64 {
	if s.Mean <= 0 {
		return 0
	}
	return float64(baseline.Mean) / float64(s.Mean)
}

// Efficiency returns speedup / threads, 0 if threads <= 0.
func (s Summary) Efficiency(speedup float64, threads int) float64 {
	if threads <= 0 {
		return 0
	}
	return speedup / float64(threads)
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
