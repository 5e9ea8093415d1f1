package cmd

import (
	"fmt"
	"os"
	"time"

	"expeditor/internal/core/domain/services"

	"gopkg.in/yaml.v3"
)

// DispatchConfig holds the operator-managed dispatch parameters, loaded from
// a YAML settings file. It implements commands.DispatchSettings.
type DispatchConfig struct {
	Buffer struct {
		Enabled              bool `yaml:"enabled"`
		LowMaxOrders         int  `yaml:"lowMaxOrders"`
		LowTimerMinutes      int  `yaml:"lowTimerMinutes"`
		MediumMaxOrders      int  `yaml:"mediumMaxOrders"`
		MediumTimerMinutes   int  `yaml:"mediumTimerMinutes"`
		HighTimerMinutes     int  `yaml:"highTimerMinutes"`
		MaxBufferTimeMinutes int  `yaml:"maxBufferTimeMinutes"`
	} `yaml:"buffer"`

	StaticBuffer struct {
		WeekdayMinutes int `yaml:"weekdayMinutes"`
		WeekendMinutes int `yaml:"weekendMinutes"`
	} `yaml:"staticBuffer"`

	BakeMinutes int `yaml:"bakeMinutes"`

	Grouping struct {
		RadiusKm            float64 `yaml:"radiusKm"`
		MaxGroupSize        int     `yaml:"maxGroupSize"`
		GroupTimeoutMinutes int     `yaml:"groupTimeoutMinutes"`
	} `yaml:"grouping"`
}

// DefaultDispatchConfig returns the settings used when no file is configured.
func DefaultDispatchConfig() *DispatchConfig {
	cfg := &DispatchConfig{}

	cfg.Buffer.Enabled = true
	cfg.Buffer.LowMaxOrders = 5
	cfg.Buffer.LowTimerMinutes = 5
	cfg.Buffer.MediumMaxOrders = 15
	cfg.Buffer.MediumTimerMinutes = 10
	cfg.Buffer.HighTimerMinutes = 15
	cfg.Buffer.MaxBufferTimeMinutes = 20

	cfg.StaticBuffer.WeekdayMinutes = 10
	cfg.StaticBuffer.WeekendMinutes = 15

	cfg.BakeMinutes = 8

	cfg.Grouping.RadiusKm = 2.5
	cfg.Grouping.MaxGroupSize = 3
	cfg.Grouping.GroupTimeoutMinutes = 10

	return cfg
}

// LoadDispatchConfig reads the settings file, overlaying the defaults.
// An empty path yields the defaults unchanged.
func LoadDispatchConfig(path string) (*DispatchConfig, error) {
	cfg := DefaultDispatchConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dispatch settings: %w", err)
	}

	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing dispatch settings: %w", err)
	}

	return cfg, nil
}

// BufferSettings returns the dynamic buffer band configuration.
func (c *DispatchConfig) BufferSettings() services.BufferSettings {
	return services.BufferSettings{
		Enabled:              c.Buffer.Enabled,
		LowMaxOrders:         c.Buffer.LowMaxOrders,
		LowTimerMinutes:      c.Buffer.LowTimerMinutes,
		MediumMaxOrders:      c.Buffer.MediumMaxOrders,
		MediumTimerMinutes:   c.Buffer.MediumTimerMinutes,
		HighTimerMinutes:     c.Buffer.HighTimerMinutes,
		MaxBufferTimeMinutes: c.Buffer.MaxBufferTimeMinutes,
	}
}

// StaticBufferTimeout returns the per-day fallback buffer hold, longer on
// weekends when delivery volume peaks.
func (c *DispatchConfig) StaticBufferTimeout(now time.Time) time.Duration {
	switch now.Weekday() {
	case time.Saturday, time.Sunday:
		return time.Duration(c.StaticBuffer.WeekendMinutes) * time.Minute
	default:
		return time.Duration(c.StaticBuffer.WeekdayMinutes) * time.Minute
	}
}

// BakeDuration returns the configured oven time for estimated exit.
func (c *DispatchConfig) BakeDuration() time.Duration {
	return time.Duration(c.BakeMinutes) * time.Minute
}

// GroupingRadiusKm returns the maximum distance between a dropoff point and
// a group centroid.
func (c *DispatchConfig) GroupingRadiusKm() float64 {
	return c.Grouping.RadiusKm
}

// MaxGroupSize returns the delivery group member cap.
func (c *DispatchConfig) MaxGroupSize() int {
	return c.Grouping.MaxGroupSize
}

// GroupTimeout returns how long a waiting group may age before the timeout
// job dispatches it.
func (c *DispatchConfig) GroupTimeout() time.Duration {
	return time.Duration(c.Grouping.GroupTimeoutMinutes) * time.Minute
}
