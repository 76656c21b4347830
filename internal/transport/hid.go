// internal/transport/hid.go
package transport

import (
	"fmt"
	"time"

	"github.com/sstallion/go-hid"
)

// Default vendor/product id of the USB controller found in Megatec-protocol
// UPS units.
const (
	DefaultVendorID  uint16 = 0x0665
	DefaultProductID uint16 = 0x5161
)

// HIDConfig selects the USB device and bounds each read.
type HIDConfig struct {
	VendorID    uint16
	ProductID   uint16
	ReadTimeout time.Duration
}

type hidTransport struct {
	dev     *hid.Device
	timeout time.Duration
}

// OpenHID opens the first HID device matching cfg.
func OpenHID(cfg HIDConfig) (Transport, error) {
	if err := hid.Init(); err != nil {
		return nil, fmt.Errorf("transport: hid init: %w", err)
	}

	dev, err := hid.OpenFirst(cfg.VendorID, cfg.ProductID)
	if err != nil {
		return nil, fmt.Errorf("transport: open hid %04x:%04x: %w", cfg.VendorID, cfg.ProductID, err)
	}

	return &hidTransport{dev: dev, timeout: cfg.ReadTimeout}, nil
}

// ReadReport returns (0, nil) on timeout, matching hid_read_timeout.
func (t *hidTransport) ReadReport(p []byte) (int, error) {
	return t.dev.ReadWithTimeout(p, t.timeout)
}

func (t *hidTransport) WriteReport(p []byte) (int, error) {
	return t.dev.Write(p)
}

func (t *hidTransport) Close() error {
	return t.dev.Close()
}
