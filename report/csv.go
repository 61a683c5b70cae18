// Package report consumes a finished time series and emits the run's flat
// outputs: a CSV file and a multi-panel HTML chart. It holds no scheduling
// or concurrency logic and reads the series only through snapshot copies.
package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"procscope/models"
)

// ErrNoData is returned when a report is requested for an empty series.
var ErrNoData = errors.New("no samples collected")

// WriteCSV writes the finished series to path. See RenderCSV for the format.
func WriteCSV(path string, info models.SystemInfo, series *models.TimeSeries) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := RenderCSV(f, info, series); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// RenderCSV writes comment headers identifying the target and machine
// (the host line is omitted when the hostname could not be detected),
// a column header, then one row per sample with its elapsed seconds since
// the first sample and any annotation attached to its index. Rendering is
// a pure function of the series: repeated calls produce identical bytes.
func RenderCSV(w io.Writer, info models.SystemInfo, series *models.TimeSeries) error {
	samples := series.Samples()
	if len(samples) == 0 {
		return ErrNoData
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# procscope resource monitor\n")
	fmt.Fprintf(bw, "# Target: %s\n", info.Target())
	fmt.Fprintf(bw, "# System: %s\n", info.Summary())
	if info.Hostname != "" {
		fmt.Fprintf(bw, "# Host: %s\n", info.Hostname)
	}
	fmt.Fprintf(bw, "# Recorded: %s\n", samples[0].Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(bw, "timestamp,elapsed_seconds,memory_mb,cpu_percent,gpu_percent,gpu_power_mw,ane_power_mw,swap_mb,memory_pressure,annotation")

	labels := annotationLookup(series.Annotations())
	start := samples[0].Timestamp
	for i, s := range samples {
		fmt.Fprintf(bw, "%s,%.1f,%.1f,%.1f,%.1f,%.1f,%.1f,%.1f,%d,%s\n",
			s.Timestamp.Format(time.RFC3339),
			s.Timestamp.Sub(start).Seconds(),
			s.MemoryMB, s.CPUPercent, s.GPUPercent, s.GPUPowerMW, s.ANEPowerMW,
			s.SwapUsedMB, int(s.Pressure), labels[i])
	}
	return bw.Flush()
}

// annotationLookup maps sample index to label; when several annotations
// share an index the last one wins.
func annotationLookup(annotations []models.Annotation) map[int]string {
	labels := make(map[int]string, len(annotations))
	for _, a := range annotations {
		labels[a.SampleIndex] = a.Label
	}
	return labels
}
