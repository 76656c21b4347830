// internal/transport/transport.go

// Package transport provides access to the UPS over USB HID or an RS-232
// serial line.
package transport

// Transport moves fixed-size reports between the driver and the device.
//
// ReadReport fills p with the next report and returns its length. A return
// of (0, nil) means no report arrived within the configured read timeout.
// WriteReport sends one report; the first byte is the reserved report
// selector and is always zero.
type Transport interface {
	ReadReport(p []byte) (int, error)
	WriteReport(p []byte) (int, error)
	Close() error
}

// Opener acquires a fresh device handle. ONE attempt per call.
// The driver discards the old handle and calls the opener on reconnect.
type Opener func() (Transport, error)
