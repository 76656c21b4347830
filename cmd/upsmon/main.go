// cmd/upsmon/main.go
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/zacharyrs/ups/internal/config"
	"github.com/zacharyrs/ups/internal/driver"
	"github.com/zacharyrs/ups/internal/monitor"
	"github.com/zacharyrs/ups/internal/notify"
	"github.com/zacharyrs/ups/internal/power"
	"github.com/zacharyrs/ups/internal/transport"
)

func main() {
	configPath := flag.String("config", "/etc/upsmon/config.yaml", "path to the YAML configuration file")
	oneshot := flag.String("cmd", "", "run one device command and exit: selftest, cancel-shutdown or toggle-beeper")
	flag.Parse()

	// --------------------
	// Load + validate config
	// --------------------

	logger := newLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(logger, "config load failed", err)
	}
	config.ApplyEnvOverrides(cfg)
	if err := config.Validate(cfg); err != nil {
		fatal(logger, "config validation failed", err)
	}

	logger = newLogger(cfg.Log.Level)

	// --------------------
	// Device startup: any failure here is fatal. The monitoring loop
	// must not start against an unverified device.
	// --------------------

	opener, err := transport.Build(cfg.Device)
	if err != nil {
		fatal(logger, "transport build failed", err)
	}

	drv := driver.New(opener, logger)
	if err := drv.Connect(); err != nil {
		fatal(logger, "device connect failed", err)
	}
	if err := drv.ReadRatings(); err != nil {
		fatal(logger, "ratings query failed", err)
	}
	if err := drv.RefreshStatus(); err != nil {
		fatal(logger, "initial status query failed", err)
	}

	if *oneshot != "" {
		runCommand(logger, drv, *oneshot)
		return
	}

	// --------------------
	// Notifier + monitor
	// --------------------

	var notifier monitor.Notifier
	if cfg.Mail.Host != "" {
		mailer, err := notify.NewMailer(cfg.Mail, logger)
		if err != nil {
			fatal(logger, "mailer setup failed", err)
		}
		notifier = mailer
	} else {
		logger.Warn("no mail host configured, alerts go to the log only")
		notifier = notify.NewLogNotifier(logger)
	}

	mon := monitor.New(monitor.Config{
		PollDelay:                    time.Duration(cfg.Monitor.PollDelay) * time.Second,
		UtilityFailedPollDelay:       time.Duration(cfg.Monitor.UtilityFailedPollDelay) * time.Second,
		CommunicationFailedPollDelay: time.Duration(cfg.Monitor.CommunicationFailedPollDelay) * time.Second,
		SecondsToShutdown:            cfg.Monitor.SecondsToShutdown,
		BatteryLowThreshold:          cfg.Monitor.BatteryLowThreshold,
		MinutesToShutdown:            cfg.Monitor.MinutesToShutdown,
		MinutesToRestart:             cfg.Monitor.MinutesToRestart,
		DryRun:                       cfg.Monitor.DryRun,
	}, drv, notifier, power.SystemShutdown{}, logger)

	logger.Info("UPS monitor running and connected",
		"rated_output_voltage", drv.Snapshot().RatedOutputVoltage,
		"rated_battery_voltage", drv.Snapshot().RatedBatteryVoltage,
	)

	if err := mon.Run(context.Background()); err != nil {
		fatal(logger, "monitor stopped", err)
	}
}

// runCommand executes a single device command for the -cmd flag.
func runCommand(logger *slog.Logger, drv *driver.Driver, name string) {
	var err error
	switch name {
	case "selftest":
		err = drv.SelfTest()
	case "cancel-shutdown":
		err = drv.CancelShutdown()
	case "toggle-beeper":
		err = drv.ToggleBeeper()
	default:
		logger.Error("unknown command", "cmd", name)
		os.Exit(2)
	}

	if err != nil {
		fatal(logger, "command failed", err)
	}
	logger.Info("command sent", "cmd", name)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "err", err)
	os.Exit(1)
}
