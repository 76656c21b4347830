// internal/config/defaults.go
package config

// Defaults returns a new Config populated with the stock monitoring
// behaviour. Each call returns a distinct instance.
func Defaults() *Config {
	return &Config{
		Device: DeviceConfig{
			Kind:          KindHID,
			ReadTimeoutMs: 500,
		},
		Monitor: MonitorConfig{
			PollDelay:                    10,
			UtilityFailedPollDelay:       1,
			CommunicationFailedPollDelay: 2,
			SecondsToShutdown:            30,
			BatteryLowThreshold:          50,
			MinutesToShutdown:            2.0,
			MinutesToRestart:             0,
		},
		Mail: MailConfig{
			Port: 587,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
