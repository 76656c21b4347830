// internal/transport/builder.go
package transport

import (
	"fmt"
	"time"

	"github.com/zacharyrs/ups/internal/config"
)

// Build returns an Opener for the configured device.
// The opener makes ONE acquisition attempt per call; retry belongs to the
// driver's reconnect logic.
func Build(dev config.DeviceConfig) (Opener, error) {
	timeout := time.Duration(dev.ReadTimeoutMs) * time.Millisecond

	switch dev.Kind {
	case config.KindHID:
		cfg := HIDConfig{
			VendorID:    dev.VendorID,
			ProductID:   dev.ProductID,
			ReadTimeout: timeout,
		}
		if cfg.VendorID == 0 {
			cfg.VendorID = DefaultVendorID
		}
		if cfg.ProductID == 0 {
			cfg.ProductID = DefaultProductID
		}
		return func() (Transport, error) { return OpenHID(cfg) }, nil

	case config.KindSerial:
		cfg := SerialConfig{
			Address:     dev.SerialPort,
			BaudRate:    dev.BaudRate,
			ReadTimeout: timeout,
		}
		return func() (Transport, error) { return OpenSerial(cfg) }, nil

	default:
		return nil, fmt.Errorf("transport: unknown device kind %q", dev.Kind)
	}
}
