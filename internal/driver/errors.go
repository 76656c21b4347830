// internal/driver/errors.go
package driver

import (
	"errors"
	"fmt"
)

// The closed set of driver failure kinds. Timeout is the only kind the
// retry policy recovers from; every other kind aborts the exchange.
var (
	// ErrTimeout means the device produced no report within the per-read
	// deadline. Recovered by reconnecting and retrying the command.
	ErrTimeout = errors.New("driver: device read timed out")

	// ErrNoDevice means an operation ran without an open handle.
	// This is a programming precondition violation, not a device fault.
	ErrNoDevice = errors.New("driver: no open device")

	// ErrProtocol means a response never completed within the bounded
	// read budget.
	ErrProtocol = errors.New("driver: response never completed")

	// ErrIdentity means the device did not answer the version query with
	// the expected protocol identifier. Fatal: the device is not ours.
	ErrIdentity = errors.New("driver: unexpected protocol identifier")
)

// TransportError wraps a device IO failure not explained by a timeout.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("driver: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
