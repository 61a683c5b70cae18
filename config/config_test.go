package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		ProcessName: "Phocus",
		Interval:    2 * time.Second,
		OutputBase:  "out",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"minimum interval", func(c *Config) { c.Interval = MinInterval }, false},
		{"maximum interval", func(c *Config) { c.Interval = MaxInterval }, false},
		{"interval too small", func(c *Config) { c.Interval = 50 * time.Millisecond }, true},
		{"interval too large", func(c *Config) { c.Interval = MaxInterval + time.Second }, true},
		{"missing process", func(c *Config) { c.ProcessName = "" }, true},
		{"duration below interval", func(c *Config) { c.Duration = time.Second }, true},
		{"duration equals interval", func(c *Config) { c.Duration = 2 * time.Second }, false},
		{"no duration", func(c *Config) { c.Duration = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("process", "Phocus")
	viper.Set("interval", 0.5)
	viper.Set("duration", 30.0)
	viper.Set("output", "session1")

	cfg := Load()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Phocus", cfg.ProcessName)
	assert.Equal(t, 500*time.Millisecond, cfg.Interval)
	assert.Equal(t, 30*time.Second, cfg.Duration)
	assert.Equal(t, "session1", cfg.OutputBase)
}

func TestLoadDefaultsOutputBase(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("process", "Phocus")
	viper.Set("interval", 2.0)

	cfg := Load()
	assert.NotEmpty(t, cfg.OutputBase)
	assert.Contains(t, cfg.OutputBase, "procscope_")
}

func TestDefaultOutputBase(t *testing.T) {
	now := time.Date(2026, 8, 24, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "procscope_20260824_150405", DefaultOutputBase(now))
}
