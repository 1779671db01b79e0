// Package config loads the host simulator configuration with viper.
//
// Values come from, in increasing priority: built-in defaults, the config
// file (JSON or YAML, picked by extension) and BLINKY_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"blinky/core"
)

// SimConfig is the configuration of the host simulator
type SimConfig struct {
	Mode           string `mapstructure:"mode"` // "task" or "timer"
	ButtonPin      uint32 `mapstructure:"button_pin"`
	LEDPin         uint32 `mapstructure:"led_pin"`
	LEDActiveLow   bool   `mapstructure:"led_active_low"`
	SamplePeriodMS uint32 `mapstructure:"sample_period_ms"`
	TogglePeriodMS uint32 `mapstructure:"toggle_period_ms"`
	Debug          bool   `mapstructure:"debug"`
}

const (
	configKeyMode           = "mode"
	configKeyButtonPin      = "button_pin"
	configKeyLEDPin         = "led_pin"
	configKeyLEDActiveLow   = "led_active_low"
	configKeySamplePeriodMS = "sample_period_ms"
	configKeyTogglePeriodMS = "toggle_period_ms"
	configKeyDebug          = "debug"

	envPrefix = "BLINKY"

	defaultMode = "task"

	// Pico wiring: button on GPIO15, on-board LED on GPIO25
	defaultButtonPin = 15
	defaultLEDPin    = 25
)

// ErrUnknownMode is returned for a mode other than "task" or "timer"
var ErrUnknownMode = errors.New("unknown driver mode")

// newViper creates a viper instance with defaults and environment overrides
func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault(configKeyMode, defaultMode)
	v.SetDefault(configKeyButtonPin, defaultButtonPin)
	v.SetDefault(configKeyLEDPin, defaultLEDPin)
	v.SetDefault(configKeyLEDActiveLow, false)
	v.SetDefault(configKeySamplePeriodMS, core.DefaultSamplePeriodMS)
	v.SetDefault(configKeyTogglePeriodMS, core.DefaultTogglePeriodMS)
	v.SetDefault(configKeyDebug, false)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	return v
}

// LoadConfig parses a JSON configuration and fills in defaults
func LoadConfig(jsonData []byte) (*SimConfig, error) {
	v := newViper()
	v.SetConfigType("json")

	if err := v.ReadConfig(bytes.NewReader(jsonData)); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return fromViper(v)
}

// LoadFile reads and parses a configuration file
func LoadFile(path string) (*SimConfig, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return fromViper(v)
}

// fromViper decodes the merged values and validates them
func fromViper(v *viper.Viper) (*SimConfig, error) {
	var config SimConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	applyDefaults(&config)

	if _, err := config.DriverMode(); err != nil {
		return nil, err
	}
	return &config, nil
}

// applyDefaults fills in values that were given but unusable
func applyDefaults(config *SimConfig) {
	if config.Mode == "" {
		config.Mode = defaultMode
	}
	if config.ButtonPin == 0 && config.LEDPin == 0 {
		config.ButtonPin = defaultButtonPin
		config.LEDPin = defaultLEDPin
	}
	if config.SamplePeriodMS == 0 {
		config.SamplePeriodMS = core.DefaultSamplePeriodMS
	}
	if config.TogglePeriodMS == 0 {
		config.TogglePeriodMS = core.DefaultTogglePeriodMS
	}
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *SimConfig {
	config := &SimConfig{}
	applyDefaults(config)
	return config
}

// DriverMode maps the mode string to the core driver mode
func (c *SimConfig) DriverMode() (core.DriverMode, error) {
	switch c.Mode {
	case "task":
		return core.ModeTask, nil
	case "timer":
		return core.ModeTimer, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, c.Mode)
}

// CoreConfig converts the simulator configuration to core.Config
func (c *SimConfig) CoreConfig() (core.Config, error) {
	mode, err := c.DriverMode()
	if err != nil {
		return core.Config{}, err
	}

	cfg := core.DefaultConfig()
	cfg.ButtonPin = core.GPIOPin(c.ButtonPin)
	cfg.LEDPin = core.GPIOPin(c.LEDPin)
	cfg.LEDActiveLow = c.LEDActiveLow
	cfg.SamplePeriod = core.TimerFromMS(c.SamplePeriodMS)
	cfg.TogglePeriod = core.TimerFromMS(c.TogglePeriodMS)
	cfg.Mode = mode
	return cfg, nil
}

// Give the writer time to finish before re-reading the file
const delayBetweenEventAndReload = 50 * time.Millisecond

// WatchFile loads path, then calls onChange with the new configuration each
// time the file is rewritten with different values. Reload failures are
// logged and the previous values stay in effect. The watch lasts for the
// life of the process.
func WatchFile(path string, logger *zap.SugaredLogger, onChange func(*SimConfig)) (*SimConfig, error) {
	logger = logger.Named("config")

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	current, err := fromViper(v)
	if err != nil {
		return nil, err
	}

	last := *current
	v.OnConfigChange(func(event fsnotify.Event) {
		if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}

		<-time.After(delayBetweenEventAndReload)
		if err := v.ReadInConfig(); err != nil {
			logger.Warnw("Failed to reload config file", "path", path, "error", err)
			return
		}
		reloaded, err := fromViper(v)
		if err != nil {
			logger.Warnw("Invalid config after reload", "path", path, "error", err)
			return
		}
		if *reloaded == last {
			return
		}

		last = *reloaded
		logger.Infow("Reloaded config", "path", path, "config", reloaded)
		onChange(reloaded)
	})
	v.WatchConfig()

	logger.Debugw("Watching config file", "path", path)
	return current, nil
}
