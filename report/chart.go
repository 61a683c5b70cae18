package report

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"procscope/models"
)

// WriteChart renders the multi-panel session chart to an HTML file at path.
func WriteChart(path string, info models.SystemInfo, series *models.TimeSeries) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := RenderChart(f, info, series); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// RenderChart writes five stacked panels over elapsed minutes: memory (with
// swap overlaid when any was used), GPU activity, CPU, GPU power, and ANE
// power. Annotations appear as labeled vertical mark lines on the memory
// panel. Rendering is a pure function of the series.
func RenderChart(w io.Writer, info models.SystemInfo, series *models.TimeSeries) error {
	samples := series.Samples()
	if len(samples) == 0 {
		return ErrNoData
	}

	start := samples[0].Timestamp
	minutes := make([]string, len(samples))
	memGB := make([]opts.LineData, len(samples))
	swapGB := make([]opts.LineData, len(samples))
	gpuPct := make([]opts.LineData, len(samples))
	cpuPct := make([]opts.LineData, len(samples))
	gpuW := make([]opts.LineData, len(samples))
	aneW := make([]opts.LineData, len(samples))
	maxSwapGB := 0.0
	for i, s := range samples {
		minutes[i] = fmt.Sprintf("%.2f", s.Timestamp.Sub(start).Minutes())
		memGB[i] = opts.LineData{Value: s.MemoryMB / 1024}
		swapGB[i] = opts.LineData{Value: s.SwapUsedMB / 1024}
		gpuPct[i] = opts.LineData{Value: s.GPUPercent}
		cpuPct[i] = opts.LineData{Value: s.CPUPercent}
		gpuW[i] = opts.LineData{Value: s.GPUPowerMW / 1000}
		aneW[i] = opts.LineData{Value: s.ANEPowerMW / 1000}
		if s.SwapUsedMB/1024 > maxSwapGB {
			maxSwapGB = s.SwapUsedMB / 1024
		}
	}

	marks := make([]opts.MarkLineNameXAxisItem, 0, len(series.Annotations()))
	for _, a := range series.Annotations() {
		marks = append(marks, opts.MarkLineNameXAxisItem{
			Name:  a.Label,
			XAxis: minutes[a.SampleIndex],
		})
	}

	durationMin := samples[len(samples)-1].Timestamp.Sub(start).Minutes()
	title := fmt.Sprintf("%s resource usage - %.1f minute session", info.Target(), durationMin)

	memLine := newPanel("Memory (GB)", minutes)
	memLine.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title:    title,
		Subtitle: info.Summary() + "\n" + statsLine(samples),
	}))
	memLine.AddSeries("Target Memory (GB)", memGB, charts.WithMarkLineNameXAxisItemOpts(marks...))
	if maxSwapGB > 0.01 {
		memLine.AddSeries("System Swap (GB)", swapGB)
	}

	gpuLine := newPanel("GPU (%)", minutes)
	gpuLine.AddSeries("GPU Active (System)", gpuPct)

	cpuLine := newPanel("CPU (%)", minutes)
	cpuLine.AddSeries("Target CPU (%)", cpuPct)

	pwrLine := newPanel("GPU Power (W)", minutes)
	pwrLine.AddSeries("GPU Power (System)", gpuW)

	aneLine := newPanel("ANE Power (W)", minutes)
	aneLine.AddSeries("ANE Power (System)", aneW)

	page := components.NewPage()
	page.PageTitle = "procscope " + info.TargetName
	page.AddCharts(memLine, gpuLine, cpuLine, pwrLine, aneLine)
	return page.Render(w)
}

func newPanel(yName string, xs []string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1100px", Height: "300px"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time (minutes)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
	)
	line.SetXAxis(xs)
	return line
}

// statsLine summarizes the session for the chart subtitle.
func statsLine(samples []models.MetricSample) string {
	var memSum, gpuSum, cpuSum, pwrSum, aneSum float64
	var memMax, gpuMax, cpuMax, pwrMax, aneMax, swapMax float64
	for _, s := range samples {
		memSum += s.MemoryMB / 1024
		gpuSum += s.GPUPercent
		cpuSum += s.CPUPercent
		pwrSum += s.GPUPowerMW / 1000
		aneSum += s.ANEPowerMW / 1000
		memMax = max(memMax, s.MemoryMB/1024)
		gpuMax = max(gpuMax, s.GPUPercent)
		cpuMax = max(cpuMax, s.CPUPercent)
		pwrMax = max(pwrMax, s.GPUPowerMW/1000)
		aneMax = max(aneMax, s.ANEPowerMW/1000)
		swapMax = max(swapMax, s.SwapUsedMB/1024)
	}
	n := float64(len(samples))
	return fmt.Sprintf(
		"Memory: avg %.1f GB, max %.1f GB | GPU: avg %.0f%%, max %.0f%% | CPU: avg %.0f%%, max %.0f%% | GPU Power: avg %.1f W, max %.1f W | ANE: avg %.1f W, max %.1f W | Max Swap: %.2f GB",
		memSum/n, memMax, gpuSum/n, gpuMax, cpuSum/n, cpuMax, pwrSum/n, pwrMax, aneSum/n, aneMax, swapMax)
}
