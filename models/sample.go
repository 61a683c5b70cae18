package models

import "time"

// PressureLevel is the macOS memory pressure ordinal.
type PressureLevel int

const (
	PressureNormal PressureLevel = iota
	PressureWarning
	PressureCritical
)

// String returns the human-readable level name.
func (p PressureLevel) String() string {
	switch p {
	case PressureWarning:
		return "Warning"
	case PressureCritical:
		return "Critical"
	default:
		return "Normal"
	}
}

// MetricSample holds the measurements of a single tick. A sample is
// immutable once appended; failed probes leave their field at the zero
// value (PressureNormal for Pressure).
type MetricSample struct {
	Timestamp  time.Time
	MemoryMB   float64 // target RSS + descendants, megabytes
	CPUPercent float64 // target + descendants, 100 = one full core
	GPUPercent float64 // system-wide GPU HW active residency
	GPUPowerMW float64
	ANEPowerMW float64
	SwapUsedMB float64
	Pressure   PressureLevel
}

// Annotation is an operator label anchored to a sample index.
type Annotation struct {
	SampleIndex int
	Label       string
}
