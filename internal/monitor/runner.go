// internal/monitor/runner.go
package monitor

import "context"

// Run polls until the machine reaches StateShuttingDown, then arms the UPS
// output-off timer and powers off the host. Context cancellation exists for
// orderly teardown in tests; StateShuttingDown is the only planned exit.
func (m *Monitor) Run(ctx context.Context) error {
	for m.state != StateShuttingDown {
		delay := m.cycle()
		if m.state == StateShuttingDown {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		m.sleep(delay)
	}

	return m.shutdown()
}

// shutdown is the terminal action. It never rolls back.
func (m *Monitor) shutdown() error {
	if m.cfg.DryRun {
		m.log.Info("dry run: skipping UPS and host shutdown")
		return nil
	}

	if err := m.ups.Shutdown(m.cfg.MinutesToShutdown, m.cfg.MinutesToRestart); err != nil {
		m.log.Error("failed to arm UPS shutdown timer", "err", err)
	} else {
		m.log.Info("UPS output off armed", "minutes", m.cfg.MinutesToShutdown)
	}

	m.log.Info("shutting down host")
	return m.host.Execute()
}
