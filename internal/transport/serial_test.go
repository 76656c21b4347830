// internal/transport/serial_test.go
package transport

import (
	"testing"
	"time"

	"github.com/goburrow/serial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fake serial port ----

type fakePort struct {
	reads  [][]byte // per-call data; nil entry simulates a timeout
	writes [][]byte
	closed bool
}

func (f *fakePort) Read(p []byte) (int, error) {
	if len(f.reads) == 0 {
		return 0, serial.ErrTimeout
	}
	r := f.reads[0]
	f.reads = f.reads[1:]
	if r == nil {
		return 0, serial.ErrTimeout
	}
	return copy(p, r), nil
}

func (f *fakePort) Write(p []byte) (int, error) {
	f.writes = append(f.writes, append([]byte(nil), p...))
	return len(p), nil
}

func (f *fakePort) Close() error {
	f.closed = true
	return nil
}

// ---- tests ----

func TestSerialReadReport_TimeoutMapsToZeroLengthRead(t *testing.T) {
	tr := &serialTransport{port: &fakePort{}}

	buf := make([]byte, 8)
	n, err := tr.ReadReport(buf)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSerialReadReport_Data(t *testing.T) {
	tr := &serialTransport{port: &fakePort{reads: [][]byte{[]byte("(120.0")}}}

	buf := make([]byte, 8)
	n, err := tr.ReadReport(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("(120.0"), buf[:n])
}

func TestSerialWriteReport_StripsSelectorAndPadding(t *testing.T) {
	port := &fakePort{}
	tr := &serialTransport{port: port}

	// A full report: selector byte, 2 payload bytes, zero padding.
	_, err := tr.WriteReport([]byte{0, 'Q', 'S', 0, 0, 0, 0, 0, 0})
	require.NoError(t, err)

	require.Len(t, port.writes, 1)
	assert.Equal(t, []byte("QS"), port.writes[0])
}

func TestSerialWriteReport_TerminatorReport(t *testing.T) {
	port := &fakePort{}
	tr := &serialTransport{port: port}

	_, err := tr.WriteReport([]byte{0, 0x0D})
	require.NoError(t, err)

	require.Len(t, port.writes, 1)
	assert.Equal(t, []byte{0x0D}, port.writes[0])
}

func TestSerialDefaults(t *testing.T) {
	cfg := SerialConfig{Address: "/dev/ttyS0"}
	applySerialDefaults(&cfg)

	assert.Equal(t, 2400, cfg.BaudRate)
	assert.Equal(t, 8, cfg.DataBits)
	assert.Equal(t, 1, cfg.StopBits)
	assert.Equal(t, "N", cfg.Parity)
	assert.Equal(t, 500*time.Millisecond, cfg.ReadTimeout)
}

func TestOpenSerial_RequiresAddress(t *testing.T) {
	_, err := OpenSerial(SerialConfig{})
	require.Error(t, err)
}
