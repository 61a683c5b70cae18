package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"procscope/collector"
	"procscope/config"
	"procscope/logger"
	"procscope/models"
	"procscope/monitor"
	"procscope/report"
)

// runMonitor wires one session together: inventory, banner, probe
// self-test, signal handling, the sampler and annotation listener, and the
// final reports.
func runMonitor(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			fmt.Println("\n\nStopping...")
			logger.Info("signal received, finishing current tick", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	source := collector.Source{}
	info := collector.Inventory(ctx, cfg.ProcessName)

	series := models.NewTimeSeries()
	sampler, err := monitor.NewSampler(source, series, cfg.ProcessName, cfg.Interval, cfg.Duration)
	if err != nil {
		return err
	}

	printBanner(cfg, info)

	if os.Geteuid() != 0 {
		fmt.Println("WARNING: not running as root; GPU/ANE monitoring requires sudo.")
		fmt.Println()
	}

	// Pre-resolve so the run starts with a pid and the target version.
	if sampler.Tracker().EnsureResolved() {
		info.TargetVersion = collector.AppVersion(ctx, sampler.Tracker().PID())
		fmt.Printf("Found %s (PID %d)\n", cfg.ProcessName, sampler.Tracker().PID())
	} else {
		fmt.Printf("%s not running, waiting for it to start...\n", cfg.ProcessName)
	}

	selfTest(ctx, source)

	fmt.Println()
	fmt.Println("Recording started...")
	fmt.Println(strings.Repeat("-", 60))

	listener := monitor.NewAnnotationListener(series, os.Stdin, os.Stdout)
	go listener.Run(ctx)

	series = sampler.Run(ctx)
	cancel()

	fmt.Printf("\nCollected %d samples, %d annotations.\n", series.Len(), series.AnnotationCount())
	if series.Len() == 0 {
		fmt.Println("No data collected.")
		return nil
	}

	csvPath := cfg.OutputBase + ".csv"
	if err := report.WriteCSV(csvPath, info, series); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	fmt.Println("Data saved to:", csvPath)

	chartPath := cfg.OutputBase + ".html"
	if err := report.WriteChart(chartPath, info, series); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	fmt.Println("Chart saved to:", chartPath)
	return nil
}

func printBanner(cfg *config.Config, info models.SystemInfo) {
	fmt.Println("╭─ procscope resource monitor ─────────────────────────────╮")
	fmt.Println("╰──────────────────────────────────────────────────────────╯")
	fmt.Println()
	fmt.Printf("  System:   %s\n", info.Summary())
	fmt.Printf("  Target:   %s\n", cfg.ProcessName)
	fmt.Printf("  Interval: %s\n", cfg.Interval)
	if cfg.Duration > 0 {
		fmt.Printf("  Duration: %s\n", cfg.Duration)
	}
	fmt.Printf("  Output:   %s.*\n", cfg.OutputBase)
	fmt.Println()
	fmt.Println("  Controls:")
	fmt.Println("    - type a note and press Enter to annotate the current sample")
	fmt.Println("    - press Ctrl+C to stop and write the report")
	fmt.Println()
}

// selfTest runs each system probe once before recording so a broken probe
// shows up immediately instead of as silent zeros in the output.
func selfTest(ctx context.Context, source collector.Source) {
	if gpu, err := source.GPU(ctx); err == nil {
		fmt.Printf("✓ GPU monitoring active (current: %.1f%%, %.0f mW; ANE %.0f mW)\n",
			gpu.ActivePercent, gpu.PowerMW, gpu.ANEPowerMW)
	} else {
		fmt.Println("✗ GPU monitoring unavailable:", err)
	}
	if level, err := source.Pressure(ctx); err == nil {
		fmt.Println("✓ Memory pressure:", level)
	}
	if swap, err := source.SwapMB(); err == nil {
		fmt.Printf("✓ Swap monitoring active (current: %.0f MB)\n", swap)
	}
}
