// internal/config/validate.go
package config

import (
	"fmt"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	// ------------------------------------------------------------
	// DEVICE
	// ------------------------------------------------------------

	switch cfg.Device.Kind {
	case KindHID:
		// Zero vendor/product ids fall back to the stock controller.
	case KindSerial:
		if cfg.Device.SerialPort == "" {
			return fmt.Errorf("config: device kind %q requires serial_port", KindSerial)
		}
	default:
		return fmt.Errorf("config: unknown device kind %q", cfg.Device.Kind)
	}

	if cfg.Device.ReadTimeoutMs <= 0 {
		return fmt.Errorf("config: read_timeout_ms must be > 0")
	}

	// ------------------------------------------------------------
	// MONITOR
	// ------------------------------------------------------------

	if cfg.Monitor.PollDelay <= 0 {
		return fmt.Errorf("config: poll_delay must be > 0")
	}
	if cfg.Monitor.UtilityFailedPollDelay <= 0 {
		return fmt.Errorf("config: utility_failed_poll_delay must be > 0")
	}
	if cfg.Monitor.CommunicationFailedPollDelay <= 0 {
		return fmt.Errorf("config: communication_failed_poll_delay must be > 0")
	}
	if cfg.Monitor.SecondsToShutdown <= 0 {
		return fmt.Errorf("config: seconds_to_shutdown must be > 0")
	}
	if cfg.Monitor.BatteryLowThreshold < 0 || cfg.Monitor.BatteryLowThreshold > 100 {
		return fmt.Errorf("config: battery_low_threshold must be 0-100")
	}
	if cfg.Monitor.MinutesToShutdown < 0 {
		return fmt.Errorf("config: minutes_to_shutdown must be >= 0")
	}
	if cfg.Monitor.MinutesToRestart < 0 || cfg.Monitor.MinutesToRestart > 9999 {
		return fmt.Errorf("config: minutes_to_restart must be 0-9999")
	}

	// ------------------------------------------------------------
	// MAIL (opt-in: empty host means log-only alerts)
	// ------------------------------------------------------------

	if cfg.Mail.Host != "" {
		if cfg.Mail.From == "" {
			return fmt.Errorf("config: mail host is set but from is empty")
		}
		if len(cfg.Mail.To) == 0 {
			return fmt.Errorf("config: mail host is set but to is empty")
		}
		if cfg.Mail.Port <= 0 || cfg.Mail.Port > 65535 {
			return fmt.Errorf("config: mail port %d out of range", cfg.Mail.Port)
		}
	}

	// ------------------------------------------------------------
	// LOG
	// ------------------------------------------------------------

	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", cfg.Log.Level)
	}

	return nil
}
