// internal/driver/retry.go
package driver

import (
	"errors"
	"time"
)

// Retry behaviour for timed-out exchanges.
const (
	retryAttempts  = 3
	reconnectPause = 200 * time.Millisecond
)

// retryPolicy retries a timed-out exchange after reconnecting the device.
// Non-timeout errors abort immediately: a protocol or hardware fault is not
// fixed by resending the same command.
type retryPolicy struct {
	attempts int
	pause    time.Duration
	sleep    func(time.Duration)
}

// run invokes op up to the attempt ceiling. Each timeout except the last
// triggers reconnect and a short pause before the next attempt. The last
// timeout is surfaced to the caller; reconnect failures surface as-is.
func (p retryPolicy) run(op func() error, reconnect func() error) error {
	var err error
	for attempt := 0; attempt < p.attempts; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrTimeout) {
			return err
		}
		if attempt == p.attempts-1 {
			break
		}
		if rerr := reconnect(); rerr != nil {
			return rerr
		}
		if p.sleep != nil {
			p.sleep(p.pause)
		}
	}
	return err
}
