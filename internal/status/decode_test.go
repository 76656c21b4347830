// internal/status/decode_test.go
package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(ss ...string) [][]byte {
	out := make([][]byte, 0, len(ss))
	for _, s := range ss {
		out = append(out, []byte(s))
	}
	return out
}

func TestApplyRatings(t *testing.T) {
	var s Snapshot
	err := ApplyRatings(&s, fields("230.0", "004", "12.00", "50.0"))
	require.NoError(t, err)

	assert.Equal(t, 230.0, s.RatedOutputVoltage)
	assert.Equal(t, 4, s.RatedOutputCurrent)
	assert.Equal(t, 12.0, s.RatedBatteryVoltage)
	assert.Equal(t, 50.0, s.RatedOutputFrequency)
}

func TestApplyRatings_NonNumeric(t *testing.T) {
	var s Snapshot
	err := ApplyRatings(&s, fields("230.0", "xx", "12.00", "50.0"))

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "rated output current", perr.Field)
}

func TestApplyShortStatus(t *testing.T) {
	var s Snapshot
	err := ApplyShortStatus(&s, fields(
		"120.0", "0.0", "120.0", "50", "60.0", "12.0", "0", "10000001",
	))
	require.NoError(t, err)

	assert.Equal(t, 120.0, s.InputVoltage)
	assert.Equal(t, 0.0, s.InputFaultVoltage)
	assert.Equal(t, 120.0, s.OutputVoltage)
	assert.Equal(t, 50, s.OutputLoad)
	assert.Equal(t, 60.0, s.OutputFrequency)
	assert.Equal(t, 12.0, s.BatteryVoltage)

	// Flag offsets: 0 = utility failed, 6 = shutdown active.
	assert.True(t, s.UtilityFailed)
	assert.False(t, s.ShutdownActive)
}

func TestApplyShortStatus_FlagStringTooShort(t *testing.T) {
	var s Snapshot
	err := ApplyShortStatus(&s, fields(
		"120.0", "0.0", "120.0", "50", "60.0", "12.0", "0", "100",
	))

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestApplyShortStatus_TooFewFields(t *testing.T) {
	var s Snapshot
	err := ApplyShortStatus(&s, fields("120.0", "0.0"))
	require.ErrorIs(t, err, errTooFewFields)
}

func TestApplyExtendedStatus(t *testing.T) {
	var s Snapshot
	err := ApplyExtendedStatus(&s, fields(
		"100", "0480", "60.0", "1.5", "120.0", "0", "0", "0000000300102",
	))
	require.NoError(t, err)

	assert.Equal(t, 100, s.RemainingCapacity)
	assert.Equal(t, 480, s.SecondsToEmpty)
	assert.Equal(t, 60.0, s.InputFrequency)
	assert.Equal(t, 1.5, s.OutputCurrent)

	// Flag offsets: 7 = test result, 8 = overloaded, 9 = replace battery,
	// 10 = charging, 12 = mode.
	assert.Equal(t, TestError, s.TestResult)
	assert.False(t, s.Overloaded)
	assert.False(t, s.ReplaceBattery)
	assert.True(t, s.Charging)
	assert.Equal(t, ModeLine, s.Mode)
	assert.False(t, s.Fault)
}

func TestApplyExtendedStatus_ReservedCodesDefault(t *testing.T) {
	var s Snapshot
	err := ApplyExtendedStatus(&s, fields(
		"100", "0480", "60.0", "1.5", "120.0", "0", "0", "00000009001Z9",
	))
	require.NoError(t, err)

	// Reserved codes never error: they map to the default variants.
	assert.Equal(t, NoTest, s.TestResult)
	assert.Equal(t, ModeIdle, s.Mode)
}

func TestApplyExtendedStatus_FaultMode(t *testing.T) {
	var s Snapshot
	err := ApplyExtendedStatus(&s, fields(
		"100", "0480", "60.0", "1.5", "120.0", "0", "0", "0000000000105",
	))
	require.NoError(t, err)

	assert.Equal(t, ModeFault, s.Mode)
	assert.True(t, s.Fault)
}

func TestApplyExtendedStatus_CapacityOutOfRange(t *testing.T) {
	var s Snapshot
	err := ApplyExtendedStatus(&s, fields(
		"101", "0480", "60.0", "1.5", "120.0", "0", "0", "0000000000102",
	))

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "remaining capacity", perr.Field)
}

func TestParseErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &ParseError{Field: "f", Value: "v", Err: cause}
	assert.ErrorIs(t, err, cause)
}
