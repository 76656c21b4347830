// internal/config/config.go

// Package config provides configuration loading, defaults and validation
// for the UPS monitor.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration structure.
type Config struct {
	Device  DeviceConfig  `yaml:"device"`
	Monitor MonitorConfig `yaml:"monitor"`
	Mail    MailConfig    `yaml:"mail"`
	Log     LogConfig     `yaml:"log"`
}

// ---- DEVICE ----

// DeviceConfig selects and parameterizes the UPS connection.
type DeviceConfig struct {
	// Kind is "hid" (USB) or "serial" (RS-232).
	Kind string `yaml:"kind"`

	// HID selection. Zero values fall back to the stock controller ids.
	VendorID  uint16 `yaml:"vendor_id"`
	ProductID uint16 `yaml:"product_id"`

	// Serial line parameters, used when kind is "serial".
	SerialPort string `yaml:"serial_port"`
	BaudRate   int    `yaml:"baud_rate"`

	// Per-read deadline for device responses.
	ReadTimeoutMs int `yaml:"read_timeout_ms"`
}

// Device kinds.
const (
	KindHID    = "hid"
	KindSerial = "serial"
)

// ---- MONITOR ----

// MonitorConfig defines polling and shutdown behaviour. Delays are in the
// unit their name carries.
type MonitorConfig struct {
	PollDelay                    int     `yaml:"poll_delay"`                      // seconds between polls
	UtilityFailedPollDelay       int     `yaml:"utility_failed_poll_delay"`       // seconds between polls while utility is failed
	CommunicationFailedPollDelay int     `yaml:"communication_failed_poll_delay"` // seconds before the manual reconnect retry
	SecondsToShutdown            int     `yaml:"seconds_to_shutdown"`             // utility-failed countdown start
	BatteryLowThreshold          int     `yaml:"battery_low_threshold"`           // percent
	MinutesToShutdown            float64 `yaml:"minutes_to_shutdown"`             // UPS output-off delay
	MinutesToRestart             int     `yaml:"minutes_to_restart"`              // 0 means no auto-restart

	// DryRun logs shutdown decisions instead of executing them.
	DryRun bool `yaml:"dry_run"`
}

// ---- MAIL ----

// MailConfig configures the SMTP notifier. An empty host disables mail and
// alerts go to the log only.
type MailConfig struct {
	Host string   `yaml:"host"`
	Port int      `yaml:"port"`
	User string   `yaml:"user"`
	Pass string   `yaml:"pass"`
	From string   `yaml:"from"`
	To   []string `yaml:"to"`

	// MachineID prefixes alert subjects. Defaults to the hostname.
	MachineID string `yaml:"machine_id"`
}

// ---- LOG ----

// LogConfig controls log output.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// Load reads and parses a YAML configuration file, merging it over the
// defaults. A missing file yields the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnvOverrides updates cfg in place from environment variables, so
// credentials can be kept out of the config file.
// Recognized variables:
//   - UPSMON_MAIL_USER overrides cfg.Mail.User
//   - UPSMON_MAIL_PASS overrides cfg.Mail.Pass
func ApplyEnvOverrides(cfg *Config) {
	if user := os.Getenv("UPSMON_MAIL_USER"); user != "" {
		cfg.Mail.User = user
	}
	if pass := os.Getenv("UPSMON_MAIL_PASS"); pass != "" {
		cfg.Mail.Pass = pass
	}
}
