// internal/driver/driver.go

// Package driver implements the UPS command/response protocol over a
// report transport: framing, bounded-retry reception, reconnect-on-timeout
// and the status, ratings and control commands.
package driver

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/zacharyrs/ups/internal/status"
	"github.com/zacharyrs/ups/internal/transport"
)

// extendedReplyLength is the documented total length of the QI reply,
// which carries no terminator.
const extendedReplyLength = 48

// Driver owns the device handle and the telemetry snapshot.
// Not safe for concurrent use; the monitoring loop is its only caller.
type Driver struct {
	open  transport.Opener
	dev   transport.Transport
	log   *slog.Logger
	retry retryPolicy

	status status.Snapshot
}

// New creates a disconnected driver. Call Connect before any exchange.
func New(open transport.Opener, logger *slog.Logger) *Driver {
	return &Driver{
		open: open,
		log:  logger,
		retry: retryPolicy{
			attempts: retryAttempts,
			pause:    reconnectPause,
			sleep:    time.Sleep,
		},
	}
}

// Snapshot returns the live telemetry snapshot. The driver overwrites it in
// place on every successful status refresh.
func (d *Driver) Snapshot() *status.Snapshot {
	return &d.status
}

// Connect (re)acquires the device: the old handle is dropped wholesale, a
// new one is opened, and the protocol identity is verified. An identity
// mismatch is fatal and never retried.
func (d *Driver) Connect() error {
	if d.dev != nil {
		_ = d.dev.Close()
		d.dev = nil
	}

	dev, err := d.open()
	if err != nil {
		return &TransportError{Op: "open device", Err: err}
	}
	d.dev = dev

	if err := d.send("M"); err != nil {
		return fmt.Errorf("driver: protocol version query: %w", err)
	}
	res, err := d.receive(0)
	if err != nil {
		return fmt.Errorf("driver: protocol version reply: %w", err)
	}
	if len(res) == 0 || res[0] != protocolID {
		return ErrIdentity
	}

	return nil
}

// Close releases the device handle.
func (d *Driver) Close() error {
	if d.dev == nil {
		return nil
	}
	err := d.dev.Close()
	d.dev = nil
	return err
}

// ReadRatings queries the rated values. Queried once at startup; ratings do
// not change at runtime.
func (d *Driver) ReadRatings() error {
	fields, err := d.exchange("F", 0)
	if err != nil {
		return err
	}
	return status.ApplyRatings(&d.status, fields)
}

// RefreshStatus runs the short and the extended status query and updates
// the snapshot.
func (d *Driver) RefreshStatus() error {
	fields, err := d.exchange("QS", 0)
	if err != nil {
		return err
	}
	if err := status.ApplyShortStatus(&d.status, fields); err != nil {
		return err
	}

	fields, err = d.exchange("QI", extendedReplyLength)
	if err != nil {
		return err
	}
	return status.ApplyExtendedStatus(&d.status, fields)
}

// Shutdown arms the UPS output-off timer. delayMinutes below one minute is
// sent in tenths (".3" = 18 s), otherwise as whole minutes.
// restartMinutes of 0 disables the auto-restart.
func (d *Driver) Shutdown(delayMinutes float64, restartMinutes int) error {
	var cmd string
	if delayMinutes < 1 {
		cmd = fmt.Sprintf("S.%dR%04d", int(delayMinutes*10), restartMinutes)
	} else {
		cmd = fmt.Sprintf("S%02dR%04d", int(delayMinutes), restartMinutes)
	}
	return d.send(cmd)
}

// SelfTest starts the ten-second battery self test.
func (d *Driver) SelfTest() error {
	return d.send("T")
}

// CancelShutdown clears a pending output-off timer.
func (d *Driver) CancelShutdown() error {
	return d.send("C")
}

// ToggleBeeper toggles the audible alarm.
func (d *Driver) ToggleBeeper() error {
	return d.send("Q")
}

// ---- exchange ----

// exchange performs one logical command/response round trip under the
// retry policy and splits the reply into positional fields.
func (d *Driver) exchange(cmd string, expect int) ([][]byte, error) {
	var raw []byte

	op := func() error {
		if err := d.send(cmd); err != nil {
			return err
		}
		var err error
		raw, err = d.receive(expect)
		return err
	}

	if err := d.retry.run(op, d.Connect); err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("driver: empty %s reply: %w", cmd, ErrProtocol)
	}

	return splitFields(raw), nil
}

// splitFields drops the reply marker ('#' or '(') and splits the rest on
// the separator. Splitting is positional: consecutive separators yield
// empty runs, so downstream field indices stay fixed.
func splitFields(raw []byte) [][]byte {
	return bytes.Split(raw[1:], []byte{separator})
}

func (d *Driver) send(cmd string) error {
	if d.dev == nil {
		return ErrNoDevice
	}
	return send(d.dev, d.log, cmd)
}

func (d *Driver) receive(expect int) ([]byte, error) {
	if d.dev == nil {
		return nil, ErrNoDevice
	}
	return receive(d.dev, expect)
}
