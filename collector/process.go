package collector

import (
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// CPU measurement windows. Percent blocks for the window so the reading is
// an actual usage figure rather than a since-start average.
const (
	cpuSampleWindow      = 100 * time.Millisecond
	cpuChildSampleWindow = 50 * time.Millisecond
)

// FindProcess searches the live process list for the first process whose
// display name contains target and returns its pid.
func FindProcess(target string) (int32, error) {
	procs, err := process.Processes()
	if err != nil {
		return 0, err
	}
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		if strings.Contains(name, target) {
			return p.Pid, nil
		}
	}
	return 0, fmt.Errorf("no process matching %q", target)
}

// ProcessMemoryMB returns the resident set size of pid plus all of its
// descendants, in megabytes. An error means the target itself is gone or
// unreadable; individually unreadable descendants are skipped.
func ProcessMemoryMB(pid int32) (float64, error) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return 0, err
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		return 0, err
	}
	total := mem.RSS
	for _, child := range descendants(p) {
		cm, err := child.MemoryInfo()
		if err != nil {
			continue
		}
		total += cm.RSS
	}
	return float64(total) / (1024 * 1024), nil
}

// ProcessCPUPercent measures CPU usage of pid plus its descendants over a
// short window. 100 means one full core.
func ProcessCPUPercent(pid int32) (float64, error) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return 0, err
	}
	total, err := p.Percent(cpuSampleWindow)
	if err != nil {
		return 0, err
	}
	for _, child := range descendants(p) {
		c, err := child.Percent(cpuChildSampleWindow)
		if err != nil {
			continue
		}
		total += c
	}
	return total, nil
}

// descendants walks the child tree breadth-first. Children that disappear
// mid-walk are skipped.
func descendants(p *process.Process) []*process.Process {
	seen := map[int32]bool{p.Pid: true}
	queue := []*process.Process{p}
	var out []*process.Process
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		children, err := cur.Children()
		if err != nil {
			continue
		}
		for _, c := range children {
			if seen[c.Pid] {
				continue
			}
			seen[c.Pid] = true
			out = append(out, c)
			queue = append(queue, c)
		}
	}
	return out
}
