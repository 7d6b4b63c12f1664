// Package sysinfo gathers host and process information for benchmark
// reports: CPU count, Go runtime version, and peak resident-set-size
// sampled across a trial's execution.
package sysinfo

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// Info describes the host the benchmark ran on, reported verbatim in the
// driver's sys_info JSON block.
type Info struct {
	OS     string `json:"os"`
	Arch   string `json:"arch"`
	NumCPU int    `json:"num_cpu"`
	GoVer  string `json:"go_version"`
}

// Collect returns a static snapshot of the current host.
func Collect() Info {
	return Info{
		OS:     runtime.GOOS,
		Arch:   runtime.GOARCH,
		NumCPU: runtime.NumCPU(),
		GoVer:  runtime.Version(),
	}
}

// PeakRSSSampler polls this process's resident-set size at a fixed interval
// and tracks the maximum observed value, since Go exposes no direct "peak
// RSS" counter the way /usr/bin/time does.
type PeakRSSSampler struct {
	mu     sync.Mutex
	peak   uint64
	proc   *process.Process
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPeakRSSSampler constructs a sampler bound to the current process.
func NewPeakRSSSampler() (*PeakRSSSampler, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("sysinfo: locate self process: %w", err)
	}
	return &PeakRSSSampler{proc: p}, nil
}

// Start begins sampling every interval in a background goroutine. Stop must
// be called to release it.
func (s *PeakRSSSampler) Start(interval time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		s.sampleOnce()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sampleOnce()
			}
		}
	}()
}

func (s *PeakRSSSampler) sampleOnce() {
	mem, err := s.proc.MemoryInfo()
	if err != nil {
		return
	}
	s.mu.Lock()
	if mem.RSS > s.peak {
		s.peak = mem.RSS
	}
	s.mu.Unlock()
}

// Stop halts sampling and returns the peak RSS observed in bytes.
func (s *PeakRSSSampler) Stop() uint64 {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
	s.sampleOnce()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.peak
}
