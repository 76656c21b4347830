// internal/transport/serial.go
package transport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/goburrow/serial"
)

// SerialConfig selects the serial line for UPS units wired over RS-232.
// The protocol is the same; only the physical layer differs.
type SerialConfig struct {
	Address     string // e.g. /dev/ttyS0
	BaudRate    int
	DataBits    int
	StopBits    int
	Parity      string
	ReadTimeout time.Duration
}

func applySerialDefaults(cfg *SerialConfig) {
	// 2400 8N1 per the protocol documentation.
	if cfg.BaudRate == 0 {
		cfg.BaudRate = 2400
	}
	if cfg.DataBits == 0 {
		cfg.DataBits = 8
	}
	if cfg.StopBits == 0 {
		cfg.StopBits = 1
	}
	if cfg.Parity == "" {
		cfg.Parity = "N"
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 500 * time.Millisecond
	}
}

type serialTransport struct {
	port io.ReadWriteCloser
}

// OpenSerial opens the configured serial port.
func OpenSerial(cfg SerialConfig) (Transport, error) {
	applySerialDefaults(&cfg)

	if cfg.Address == "" {
		return nil, errors.New("transport: serial address required")
	}

	port, err := serial.Open(&serial.Config{
		Address:  cfg.Address,
		BaudRate: cfg.BaudRate,
		DataBits: cfg.DataBits,
		StopBits: cfg.StopBits,
		Parity:   cfg.Parity,
		Timeout:  cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("transport: open serial %s: %w", cfg.Address, err)
	}

	return &serialTransport{port: port}, nil
}

// ReadReport maps the serial timeout error onto the zero-length-read
// convention shared with the HID transport.
func (t *serialTransport) ReadReport(p []byte) (int, error) {
	n, err := t.port.Read(p)
	if errors.Is(err, serial.ErrTimeout) {
		return 0, nil
	}
	return n, err
}

// WriteReport strips the reserved report selector and any zero padding:
// the serial line carries the ASCII payload only.
func (t *serialTransport) WriteReport(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	payload := bytes.TrimRight(p[1:], "\x00")
	if len(payload) == 0 {
		return len(p), nil
	}
	if _, err := t.port.Write(payload); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (t *serialTransport) Close() error {
	return t.port.Close()
}
