package models

import (
	"fmt"
	"strings"
)

// SystemInfo is the machine and target metadata resolved once at session
// start. Fields left zero were not detectable and are omitted from the
// formatted summary.
type SystemInfo struct {
	Hostname      string `json:"hostname"`
	Chip          string `json:"chip"`
	CPUCores      int    `json:"cpuCores"`
	CPUPerfCores  int    `json:"cpuPerfCores"`
	CPUEffCores   int    `json:"cpuEffCores"`
	GPUCores      int    `json:"gpuCores"`
	ANECores      int    `json:"aneCores"`
	RAMGB         int    `json:"ramGb"`
	TargetName    string `json:"targetName"`
	TargetVersion string `json:"targetVersion,omitempty"`
}

// Summary formats the detected hardware as a single display line, e.g.
// "Apple M4 Pro • 14-core CPU (10P + 4E) • 20-core GPU • 16-core Neural Engine • 48 GB RAM".
func (s SystemInfo) Summary() string {
	var parts []string
	if s.Chip != "" {
		parts = append(parts, s.Chip)
	}
	switch {
	case s.CPUPerfCores > 0 && s.CPUEffCores > 0:
		parts = append(parts, fmt.Sprintf("%d-core CPU (%dP + %dE)", s.CPUCores, s.CPUPerfCores, s.CPUEffCores))
	case s.CPUCores > 0:
		parts = append(parts, fmt.Sprintf("%d-core CPU", s.CPUCores))
	}
	if s.GPUCores > 0 {
		parts = append(parts, fmt.Sprintf("%d-core GPU", s.GPUCores))
	}
	if s.ANECores > 0 {
		parts = append(parts, fmt.Sprintf("%d-core Neural Engine", s.ANECores))
	}
	if s.RAMGB > 0 {
		parts = append(parts, fmt.Sprintf("%d GB RAM", s.RAMGB))
	}
	return strings.Join(parts, " • ")
}

// Target formats the monitored application name with its version when known.
func (s SystemInfo) Target() string {
	if s.TargetVersion != "" {
		return s.TargetName + " " + s.TargetVersion
	}
	return s.TargetName
}
