package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dimgerasimou/csc-components/cscmat"
	"github.com/dimgerasimou/csc-components/engine"
	"github.com/dimgerasimou/csc-components/substrate"
	"github.com/dimgerasimou/csc-components/sysinfo"
)

// MatrixInfo describes the input matrix in a report.
type MatrixInfo struct {
	Path  string `json:"path"`
	NRows uint64 `json:"nrows"`
	NCols uint64 `json:"ncols"`
	NNZ   uint64 `json:"nnz"`
}

// BenchmarkInfo describes the run's shared parameters.
type BenchmarkInfo struct {
	Trials         int `json:"trials"`
	ThreadsRequest int `json:"threads_requested"`
}

// ResultEntry is one configuration's reportable outcome.
type ResultEntry struct {
	Algorithm   string  `json:"algorithm"`
	Parallelism string  `json:"parallelism"`
	Components  int     `json:"components"`
	MeanMs      float64 `json:"mean_ms"`
	MedianMs    float64 `json:"median_ms"`
	MinMs       float64 `json:"min_ms"`
	MaxMs       float64 `json:"max_ms"`
	StdDevMs    float64 `json:"stddev_ms"`
	Throughput  float64 `json:"throughput_edges_per_sec"`
	PeakRSS     uint64  `json:"peak_rss_bytes"`
	Speedup     float64 `json:"speedup"`
	Efficiency  float64 `json:"efficiency"`
}

// Report is the top-level JSON object emitted by the driver.
type Report struct {
	SysInfo       sysinfo.Info  `json:"sys_info"`
	MatrixInfo    MatrixInfo    `json:"matrix_info"`
	BenchmarkInfo BenchmarkInfo `json:"benchmark_info"`
	Results       []ResultEntry `json:"results"`
}

// algorithmName returns the human-readable name for a Result's variant.
func algorithmName(res Result) string {
	switch res.Config.Variant {
	case engine.Propagation:
		return "propagation"
	case engine.UnionFind:
		return "unionfind"
	default:
		return "unknown"
	}
}

// BuildReport assembles a Report from a matrix, the shared run parameters,
// and the collected results, computing speedup/efficiency against the
// sequential baseline of each result's own variant.
func BuildReport(path string, view *cscmat.View, threadsRequested, trials int, results []Result) Report {
	baselines := make(map[int]Result)
	for _, r := range results {
		if r.Config.Parallelism == substrate.Sequential {
			if _, ok := baselines[int(r.Config.Variant)]; !ok {
				baselines[int(r.Config.Variant)] = r
			}
		}
	}

	entries := make([]ResultEntry, 0, len(results))
	for _, r := range results {
		var speedup, efficiency float64
		if base, ok := baselines[int(r.Config.Variant)]; ok {
			speedup, efficiency = Speedup(r, base.Stats)
		}
		entries = append(entries, ResultEntry{
			Algorithm:   algorithmName(r),
			Parallelism: r.Config.Parallelism.String(),
			Components:  r.Count,
			MeanMs:      msOf(r.Stats.Mean),
			MedianMs:    msOf(r.Stats.Median),
			MinMs:       msOf(r.Stats.Min),
			MaxMs:       msOf(r.Stats.Max),
			StdDevMs:    msOf(r.Stats.StdDev),
			Throughput:  r.Stats.Throughput,
			PeakRSS:     r.PeakRSS,
			Speedup:     speedup,
			Efficiency:  efficiency,
		})
	}

	return Report{
		SysInfo: sysinfo.Collect(),
		MatrixInfo: MatrixInfo{
			Path:  path,
			NRows: view.NRows,
			NCols: view.NCols,
			NNZ:   view.NNZ,
		},
		BenchmarkInfo: BenchmarkInfo{
			Trials:         trials,
			ThreadsRequest: threadsRequested,
		},
		Results: entries,
	}
}

// WriteJSON writes the report as indented JSON to w.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText writes the report as a human-readable table to w, matching the
// reference driver's one-line-per-configuration console output.
func (r Report) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "matrix: %s (nrows=%d, ncols=%d, nnz=%d)\n",
		r.MatrixInfo.Path, r.MatrixInfo.NRows, r.MatrixInfo.NCols, r.MatrixInfo.NNZ); err != nil {
		return err
	}
	for _, e := range r.Results {
		if _, err := fmt.Fprintf(w, "[%s/%s] components=%d mean=%.3fms stddev=%.3fms speedup=%.2fx eff=%.2f peak_rss=%dB\n",
			e.Algorithm, e.Parallelism, e.Components, e.MeanMs, e.StdDevMs, e.Speedup, e.Efficiency, e.PeakRSS); err != nil {
			return err
		}
	}
	return nil
}

func msOf(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
