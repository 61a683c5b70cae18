package collector

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// powermetrics gets a wide timeout: with the samplers unfiltered it takes
// several seconds to emit one sample.
const powermetricsTimeout = 10 * time.Second

// The samplers stay unfiltered on purpose: the ANE power line is only
// present in the default sampler set.
var powermetricsArgs = []string{"-i", "100", "-n", "1"}

// GPUSample is one powermetrics reading: system-wide GPU activity plus GPU
// and ANE power draw.
type GPUSample struct {
	ActivePercent float64
	PowerMW       float64
	ANEPowerMW    float64
}

var (
	gpuResidencyRe = regexp.MustCompile(`GPU HW active residency:\s+([\d.]+)%`)
	gpuPowerRe     = regexp.MustCompile(`GPU Power:\s+([\d.]+)\s*mW`)
	anePowerRe     = regexp.MustCompile(`ANE Power:\s+([\d.]+)\s*mW`)
)

// GPUMetrics runs powermetrics for a single sample and parses the GPU and
// ANE figures out of its text output.
func GPUMetrics(ctx context.Context) (GPUSample, error) {
	out, err := runCommand(ctx, powermetricsTimeout, "powermetrics", powermetricsArgs...)
	if err != nil {
		return GPUSample{}, err
	}
	return parseGPUSample(out), nil
}

// parseGPUSample scans powermetrics output line by line. "GPU Power:" is
// matched as a line prefix so "ANE Power:" and "Combined Power:" lines do
// not shadow it.
func parseGPUSample(out string) GPUSample {
	var sample GPUSample
	for _, line := range strings.Split(out, "\n") {
		if m := gpuResidencyRe.FindStringSubmatch(line); m != nil {
			sample.ActivePercent = parseFloat(m[1])
		}
		if strings.HasPrefix(strings.TrimSpace(line), "GPU Power:") {
			if m := gpuPowerRe.FindStringSubmatch(line); m != nil {
				sample.PowerMW = parseFloat(m[1])
			}
		}
		if m := anePowerRe.FindStringSubmatch(line); m != nil {
			sample.ANEPowerMW = parseFloat(m[1])
		}
	}
	return sample
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
