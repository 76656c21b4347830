// internal/driver/codec.go
package driver

import (
	"log/slog"

	"github.com/zacharyrs/ups/internal/transport"
)

// The device speaks ASCII over fixed-size HID reports.
const (
	terminator = 0x0D // carriage return ends variable-length replies
	separator  = 0x20 // space between reply fields
	protocolID = 0x48 // 'H', expected answer to the version query

	// maxPayload is the report payload size; longer messages are chunked.
	maxPayload = 8

	// maxReadLoops bounds every read loop (drain and receive).
	maxReadLoops = 20
)

// send drains stale reports, then writes cmd as a sequence of reports
// followed by a terminator report. Writes are not acknowledged.
func send(t transport.Transport, log *slog.Logger, cmd string) error {
	// Drain anything left over from a prior aborted exchange, so the
	// response we read next belongs to the command we are about to send.
	buf := make([]byte, maxPayload)
	for i := 0; i < maxReadLoops; i++ {
		n, err := t.ReadReport(buf)
		if err != nil {
			return &TransportError{Op: "drain", Err: err}
		}
		if n == 0 {
			break
		}
		if i == maxReadLoops-1 {
			log.Warn("reports still pending on device after drain")
		}
	}

	raw := []byte(cmd)
	for off := 0; off < len(raw); off += maxPayload {
		end := off + maxPayload
		if end > len(raw) {
			end = len(raw)
		}

		// One reserved selector byte, then the payload left-aligned.
		report := make([]byte, maxPayload+1)
		copy(report[1:], raw[off:end])

		if _, err := t.WriteReport(report); err != nil {
			return &TransportError{Op: "write", Err: err}
		}
	}

	if _, err := t.WriteReport([]byte{0, terminator}); err != nil {
		return &TransportError{Op: "write terminator", Err: err}
	}

	return nil
}

// receive accumulates payload bytes from successive reports until a
// terminator arrives, or the accumulator reaches expect bytes for replies
// documented without a terminator (expect == 0 disables the length stop).
// A zero-length read is a timeout; exhausting the loop budget without a
// stop condition is a protocol error.
func receive(t transport.Transport, expect int) ([]byte, error) {
	var out []byte
	buf := make([]byte, maxPayload)

	for i := 0; i < maxReadLoops; i++ {
		n, err := t.ReadReport(buf)
		if err != nil {
			return nil, &TransportError{Op: "read", Err: err}
		}
		if n == 0 {
			return nil, ErrTimeout
		}

		for _, c := range buf[:n] {
			if c == terminator {
				return out, nil
			}
			out = append(out, c)
			if expect > 0 && len(out) == expect {
				return out, nil
			}
		}
	}

	return nil, ErrProtocol
}
