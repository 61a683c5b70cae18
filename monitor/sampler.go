// Package monitor implements the sampling core: the process tracker, the
// fixed-cadence sampler loop, and the concurrent annotation listener. The
// only state shared between the loop and the listener is the time series'
// append lock.
package monitor

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"procscope/collector"
	"procscope/config"
	"procscope/logger"
	"procscope/models"
)

// MetricSource is the set of probes the sampler draws from each tick. Every
// probe is independently fallible; a failed probe contributes the zero value
// for its field. MemoryMB doubles as the liveness probe: its failure voids
// the whole tick.
type MetricSource interface {
	Resolve(target string) (int32, error)
	MemoryMB(pid int32) (float64, error)
	CPUPercent(pid int32) (float64, error)
	GPU(ctx context.Context) (collector.GPUSample, error)
	SwapMB() (float64, error)
	Pressure(ctx context.Context) (models.PressureLevel, error)
}

// Sampler drives the fixed-interval collection loop and is the sole writer
// of samples.
type Sampler struct {
	source   MetricSource
	tracker  *Tracker
	series   *models.TimeSeries
	interval time.Duration
	maxDur   time.Duration
	status   io.Writer
	notify   func(msg string, args ...any)

	waitingLogged bool
}

// NewSampler builds a sampler for target. The interval must lie within
// [config.MinInterval, config.MaxInterval] and maxDuration, when nonzero,
// must be at least one interval; out-of-range values are rejected before
// anything runs.
func NewSampler(source MetricSource, series *models.TimeSeries, target string, interval, maxDuration time.Duration) (*Sampler, error) {
	if interval < config.MinInterval || interval > config.MaxInterval {
		return nil, fmt.Errorf("interval %s out of range [%s, %s]", interval, config.MinInterval, config.MaxInterval)
	}
	if maxDuration != 0 && maxDuration < interval {
		return nil, fmt.Errorf("duration %s must be at least one interval (%s)", maxDuration, interval)
	}
	return &Sampler{
		source:   source,
		tracker:  NewTracker(target, source.Resolve),
		series:   series,
		interval: interval,
		maxDur:   maxDuration,
		status:   os.Stdout,
		notify:   logger.Info,
	}, nil
}

// Tracker exposes the process tracker, e.g. for pre-resolving the target at
// session start.
func (s *Sampler) Tracker() *Tracker { return s.tracker }

// Run drives ticks until the configured duration elapses or ctx is
// cancelled. Cancellation is checked at tick boundaries, so an in-flight
// tick always finishes; the series is returned on every path.
func (s *Sampler) Run(ctx context.Context) *models.TimeSeries {
	start := time.Now()
	for n := 1; ; n++ {
		if ctx.Err() != nil {
			break
		}
		if s.maxDur > 0 && time.Since(start) >= s.maxDur {
			logger.Info("duration reached", "duration", s.maxDur)
			break
		}

		s.sampleOnce(ctx, start)

		// Drift-free schedule: sleep to the next tick boundary measured
		// from the loop start. When a tick overruns its interval, skip to
		// the next future boundary instead of firing catch-up ticks.
		next := start.Add(time.Duration(n) * s.interval)
		for !next.After(time.Now()) {
			n++
			next = start.Add(time.Duration(n) * s.interval)
		}
		select {
		case <-ctx.Done():
			return s.series
		case <-time.After(time.Until(next)):
		}
	}
	return s.series
}

// sampleOnce performs one tick: resolve, probe, append. Ticks without a
// resolvable target or without readable target memory append nothing.
func (s *Sampler) sampleOnce(ctx context.Context, start time.Time) {
	if !s.tracker.EnsureResolved() {
		if !s.waitingLogged {
			s.notify("waiting for target to start", "name", s.tracker.target)
			s.waitingLogged = true
		}
		return
	}
	s.waitingLogged = false

	pid := s.tracker.PID()
	memMB, err := s.source.MemoryMB(pid)
	if err != nil {
		retryPID, ok := s.tracker.OnProbeFailure()
		if !ok {
			return
		}
		// One retry against the re-resolved pid, then give up on the tick.
		memMB, err = s.source.MemoryMB(retryPID)
		if err != nil {
			return
		}
		pid = retryPID
	}
	s.tracker.MarkAlive()

	sample := models.MetricSample{Timestamp: time.Now(), MemoryMB: memMB}
	if cpu, err := s.source.CPUPercent(pid); err == nil {
		sample.CPUPercent = cpu
	}
	if gpu, err := s.source.GPU(ctx); err == nil {
		sample.GPUPercent = gpu.ActivePercent
		sample.GPUPowerMW = gpu.PowerMW
		sample.ANEPowerMW = gpu.ANEPowerMW
	}
	if swap, err := s.source.SwapMB(); err == nil {
		sample.SwapUsedMB = swap
	}
	if level, err := s.source.Pressure(ctx); err == nil {
		sample.Pressure = level
	}

	s.series.Append(sample)
	s.printStatus(sample, start)
}

// printStatus rewrites the single-line live summary. ANE power only shows
// while it is drawing.
func (s *Sampler) printStatus(sample models.MetricSample, start time.Time) {
	ane := ""
	if sample.ANEPowerMW > 0 {
		ane = fmt.Sprintf(" | ANE:%4.1fW", sample.ANEPowerMW/1000)
	}
	fmt.Fprintf(s.status, "\r[%5.1fm] Mem:%5.1fGB | GPU:%5.1f%% | CPU:%4.0f%% | Pwr:%4.1fW%s | #%d",
		time.Since(start).Minutes(), sample.MemoryMB/1024, sample.GPUPercent,
		sample.CPUPercent, sample.GPUPowerMW/1000, ane, s.series.Len())
}
