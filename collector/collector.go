// Package collector implements the metric probes: gopsutil-based process
// and swap inspection plus exec-based macOS tools (powermetrics,
// memory_pressure, system_profiler, ioreg). Every probe is independently
// fallible and independently timed out; callers default the metric and move
// on when a probe errors.
package collector

import (
	"context"
	"os/exec"
	"time"

	"procscope/models"
)

// Source bundles the live probes behind the interfaces the monitor package
// consumes. The zero value is ready to use.
type Source struct{}

// Resolve looks up the target process by display name.
func (Source) Resolve(target string) (int32, error) { return FindProcess(target) }

// MemoryMB probes resident memory of the target and its descendants.
func (Source) MemoryMB(pid int32) (float64, error) { return ProcessMemoryMB(pid) }

// CPUPercent probes CPU usage of the target and its descendants.
func (Source) CPUPercent(pid int32) (float64, error) { return ProcessCPUPercent(pid) }

// GPU probes system-wide GPU and ANE figures.
func (Source) GPU(ctx context.Context) (GPUSample, error) { return GPUMetrics(ctx) }

// SwapMB probes system swap usage.
func (Source) SwapMB() (float64, error) { return SwapUsedMB() }

// Pressure probes the system memory pressure level.
func (Source) Pressure(ctx context.Context) (models.PressureLevel, error) {
	return MemoryPressure(ctx)
}

// runCommand executes an external tool under a timeout and returns its
// stdout. A timed-out or failed tool reads as a failed probe for the tick,
// never a fatal error.
func runCommand(ctx context.Context, timeout time.Duration, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, name, args...).Output()
	return string(out), err
}
