package collector

import (
	"context"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/mem"

	"procscope/models"
)

const pressureTimeout = 2 * time.Second

// MemoryPressure reports the system memory pressure level via the macOS
// memory_pressure tool.
func MemoryPressure(ctx context.Context) (models.PressureLevel, error) {
	out, err := runCommand(ctx, pressureTimeout, "memory_pressure")
	if err != nil {
		return models.PressureNormal, err
	}
	return parsePressure(out), nil
}

func parsePressure(out string) models.PressureLevel {
	lower := strings.ToLower(out)
	switch {
	case strings.Contains(lower, "critical"):
		return models.PressureCritical
	case strings.Contains(lower, "warn"):
		return models.PressureWarning
	default:
		return models.PressureNormal
	}
}

// SwapUsedMB returns system swap usage in megabytes.
func SwapUsedMB() (float64, error) {
	swap, err := mem.SwapMemory()
	if err != nil {
		return 0, err
	}
	return float64(swap.Used) / (1024 * 1024), nil
}
