package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"procscope/logger"
)

// Sampling interval bounds. Configurations outside this range are rejected
// before the sampler starts.
const (
	MinInterval = 100 * time.Millisecond
	MaxInterval = 3600 * time.Second
)

// Config holds the run configuration.
type Config struct {
	ProcessName string        // display-name substring of the target process
	Interval    time.Duration // sampling interval
	Duration    time.Duration // maximum run duration, 0 = until interrupted
	OutputBase  string        // base path for the .csv and .html outputs
}

// Load builds the configuration from viper, which the command layer has
// already bound to flags, environment (PROCSCOPE_*), and an optional config
// file. A .env file in the working directory is honored first.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded .env file")
	}

	cfg := &Config{
		ProcessName: viper.GetString("process"),
		Interval:    secondsDuration(viper.GetFloat64("interval")),
		Duration:    secondsDuration(viper.GetFloat64("duration")),
		OutputBase:  viper.GetString("output"),
	}
	if cfg.OutputBase == "" {
		cfg.OutputBase = DefaultOutputBase(time.Now())
	}
	return cfg
}

// Validate rejects configurations the sampler must not start with.
func (c *Config) Validate() error {
	if c.ProcessName == "" {
		return errors.New("target process name is required (--process)")
	}
	if c.Interval < MinInterval || c.Interval > MaxInterval {
		return fmt.Errorf("interval %s out of range [%s, %s]", c.Interval, MinInterval, MaxInterval)
	}
	if c.Duration != 0 && c.Duration < c.Interval {
		return fmt.Errorf("duration %s must be at least one interval (%s)", c.Duration, c.Interval)
	}
	return nil
}

// DefaultOutputBase derives the timestamped output base used when --output
// is not given.
func DefaultOutputBase(now time.Time) string {
	return "procscope_" + now.Format("20060102_150405")
}

func secondsDuration(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}
