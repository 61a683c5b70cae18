package collector

import (
	"context"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"

	"procscope/logger"
	"procscope/models"
)

const inventoryTimeout = 10 * time.Second

// Every Apple Silicon generation so far ships a 16-core ANE.
const aneCoreCount = 16

var (
	coreSplitRe = regexp.MustCompile(`(\d+)\s*\((\d+)\s*performance\s+and\s+(\d+)\s*efficiency\)`)
	numberRe    = regexp.MustCompile(`(\d+)`)
	ramRe       = regexp.MustCompile(`(\d+)\s*GB`)
	gpuCoresRe  = regexp.MustCompile(`=\s*(\d+)`)
)

// Inventory gathers chip, core, and RAM identification once at session
// start. Every lookup is best-effort; pieces that cannot be detected stay
// zero and drop out of the formatted summary.
func Inventory(ctx context.Context, target string) models.SystemInfo {
	info := models.SystemInfo{
		TargetName: target,
		ANECores:   aneCoreCount,
	}
	info.Hostname, _ = os.Hostname()

	if out, err := runCommand(ctx, inventoryTimeout, "system_profiler", "SPHardwareDataType"); err == nil {
		parseHardwareProfile(out, &info)
	} else {
		logger.Warn("hardware inventory unavailable", "error", err)
	}

	if out, err := runCommand(ctx, inventoryTimeout, "ioreg", "-l"); err == nil {
		info.GPUCores = parseGPUCoreCount(out)
	}

	// Portable fallbacks when system_profiler told us nothing.
	if info.Chip == "" {
		if cpus, err := cpu.Info(); err == nil && len(cpus) > 0 {
			info.Chip = cpus[0].ModelName
		}
	}
	if info.CPUCores == 0 {
		if n, err := cpu.Counts(true); err == nil {
			info.CPUCores = n
		}
	}
	return info
}

// parseHardwareProfile pulls chip name, core counts, and RAM out of
// system_profiler SPHardwareDataType text, e.g.
// "Total Number of Cores: 14 (10 performance and 4 efficiency)".
func parseHardwareProfile(out string, info *models.SystemInfo) {
	for _, raw := range strings.Split(out, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "Chip:"):
			info.Chip = strings.TrimSpace(strings.TrimPrefix(line, "Chip:"))
		case strings.Contains(line, "Total Number of Cores:"):
			_, corePart, _ := strings.Cut(line, ":")
			if m := coreSplitRe.FindStringSubmatch(corePart); m != nil {
				info.CPUCores = parseInt(m[1])
				info.CPUPerfCores = parseInt(m[2])
				info.CPUEffCores = parseInt(m[3])
			} else if m := numberRe.FindStringSubmatch(corePart); m != nil {
				info.CPUCores = parseInt(m[1])
			}
		case strings.HasPrefix(line, "Memory:"):
			if m := ramRe.FindStringSubmatch(line); m != nil {
				info.RAMGB = parseInt(m[1])
			}
		}
	}
}

// parseGPUCoreCount finds the gpu-core-count entry in ioreg -l output.
func parseGPUCoreCount(out string) int {
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(strings.ToLower(line), "gpu-core-count") {
			if m := gpuCoresRe.FindStringSubmatch(line); m != nil {
				return parseInt(m[1])
			}
		}
	}
	return 0
}

// AppVersion reads CFBundleShortVersionString from the .app bundle the pid
// was launched from. Empty when the target is not a bundled application or
// the lookup fails.
func AppVersion(ctx context.Context, pid int32) string {
	p, err := process.NewProcess(pid)
	if err != nil {
		return ""
	}
	exe, err := p.Exe()
	if err != nil {
		return ""
	}
	bundle := bundleRoot(exe)
	if bundle == "" {
		return ""
	}
	out, err := runCommand(ctx, inventoryTimeout, "defaults", "read", bundle+"/Contents/Info", "CFBundleShortVersionString")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// bundleRoot walks an executable path like
// /Applications/Foo.app/Contents/MacOS/Foo up to the .app directory.
func bundleRoot(exe string) string {
	idx := strings.Index(exe, ".app/")
	if idx < 0 {
		return ""
	}
	return exe[:idx+len(".app")]
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}
