// internal/monitor/monitor.go

// Package monitor runs the polling loop and the alert/shutdown decision
// state machine.
package monitor

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/zacharyrs/ups/internal/status"
)

// StatusSource is the UPS the monitor polls.
type StatusSource interface {
	RefreshStatus() error
	Connect() error
	Shutdown(delayMinutes float64, restartMinutes int) error
	Snapshot() *status.Snapshot
}

// Notifier delivers a fire-and-forget operator alert.
type Notifier interface {
	Send(subject, body string)
}

// HostShutdown powers off the host. Not expected to return under normal
// operation.
type HostShutdown interface {
	Execute() error
}

// State of the decision machine.
type State int

const (
	// StateNormal polls at the base interval.
	StateNormal State = iota

	// StateUtilityFailed polls at the short interval while the shutdown
	// countdown runs.
	StateUtilityFailed

	// StateShuttingDown is terminal. It is never exited.
	StateShuttingDown
)

// Config is the runtime behaviour of the monitor.
type Config struct {
	PollDelay                    time.Duration
	UtilityFailedPollDelay       time.Duration
	CommunicationFailedPollDelay time.Duration
	SecondsToShutdown            int
	BatteryLowThreshold          int // percent
	MinutesToShutdown            float64
	MinutesToRestart             int

	// DryRun logs shutdown decisions instead of executing them.
	DryRun bool
}

// Monitor drives the decision state machine over one UPS.
// Single-threaded: Run is its only entry point at runtime.
type Monitor struct {
	cfg    Config
	ups    StatusSource
	notify Notifier
	host   HostShutdown
	log    *slog.Logger

	// sleep is swapped out in tests.
	sleep func(time.Duration)

	state     State
	countdown time.Duration
}

// New creates a monitor in StateNormal with a full countdown.
func New(cfg Config, ups StatusSource, notifier Notifier, host HostShutdown, logger *slog.Logger) *Monitor {
	return &Monitor{
		cfg:       cfg,
		ups:       ups,
		notify:    notifier,
		host:      host,
		log:       logger,
		sleep:     time.Sleep,
		state:     StateNormal,
		countdown: time.Duration(cfg.SecondsToShutdown) * time.Second,
	}
}

// State returns the current machine state.
func (m *Monitor) State() State {
	return m.state
}

// cycle runs one poll cycle and returns the delay before the next.
// The delay is meaningless once the state is StateShuttingDown.
func (m *Monitor) cycle() time.Duration {
	if err := m.ups.RefreshStatus(); err != nil {
		if !m.recover(err) {
			m.state = StateShuttingDown
			return 0
		}
	}

	snap := m.ups.Snapshot()
	m.log.Debug("status refreshed",
		"mode", snap.Mode.String(),
		"capacity", snap.RemainingCapacity,
		"utility_failed", snap.UtilityFailed,
	)

	delay := m.cfg.PollDelay
	if snap.UtilityFailed {
		delay = m.cfg.UtilityFailedPollDelay
		m.countdown -= delay

		if m.state == StateNormal {
			m.state = StateUtilityFailed
			m.notify.Send("Utility failed.", snap.Summary())
		}

		if m.countdown <= 0 {
			m.notify.Send("Utility failed - shutting down.", fmt.Sprintf(
				"UPS reports %ds remaining; output off in %.1f min.\n%s",
				snap.SecondsToEmpty, m.cfg.MinutesToShutdown, snap.Summary(),
			))
			m.state = StateShuttingDown
			return 0
		}

		m.log.Warn("utility failed", "shutdown_in", m.countdown)
	} else {
		m.countdown = time.Duration(m.cfg.SecondsToShutdown) * time.Second

		if m.state == StateUtilityFailed {
			m.state = StateNormal
			m.notify.Send("Utility restored.", snap.Summary())
		}
	}

	// Immediate shutdown triggers, checked regardless of utility state.
	switch {
	case snap.Fault:
		m.notify.Send("Fault detected - shutting down.", snap.Summary())
		m.state = StateShuttingDown
		return 0
	case snap.Overloaded:
		m.notify.Send("UPS overloaded - shutting down.", snap.Summary())
		m.state = StateShuttingDown
		return 0
	case snap.ReplaceBattery:
		m.notify.Send("Battery needs replacement - shutting down.", snap.Summary())
		m.state = StateShuttingDown
		return 0
	}

	if snap.RemainingCapacity < m.cfg.BatteryLowThreshold {
		if snap.Charging {
			m.notify.Send("Battery low capacity.", snap.Summary())
		} else {
			m.notify.Send("Battery low capacity and not charging - shutting down.", snap.Summary())
			m.state = StateShuttingDown
			return 0
		}
	}

	return delay
}

// recover handles a failed status refresh: notify, wait, reconnect and try
// once more. Reports whether monitoring can continue.
func (m *Monitor) recover(cause error) bool {
	m.notify.Send(
		fmt.Sprintf("UPS communication failed - retrying in %s.", m.cfg.CommunicationFailedPollDelay),
		cause.Error(),
	)
	m.sleep(m.cfg.CommunicationFailedPollDelay)

	err := m.ups.Connect()
	if err == nil {
		err = m.ups.RefreshStatus()
	}
	if err != nil {
		m.notify.Send("UPS communication failed - shutting down.", err.Error())
		return false
	}

	m.notify.Send("UPS communication restored.", m.ups.Snapshot().Summary())
	return true
}
