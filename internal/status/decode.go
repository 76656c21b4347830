// internal/status/decode.go
package status

import (
	"errors"
	"fmt"
	"strconv"
)

// Positional layout of the query replies.
// Offsets are fixed by the wire protocol and MUST NOT be configurable.

// ---- RATINGS REPLY (F) ----

const (
	fRatedOutputVoltage = 0
	fRatedOutputCurrent = 1
	fRatedBatteryVolts  = 2
	fRatedOutputFreq    = 3

	fFieldCount = 4
)

// ---- SHORT STATUS REPLY (QS) ----

const (
	qsInputVoltage      = 0
	qsInputFaultVoltage = 1
	qsOutputVoltage     = 2
	qsOutputLoad        = 3
	qsOutputFrequency   = 4
	qsBatteryVoltage    = 5
	qsFlags             = 7

	qsFieldCount = 8

	// Character offsets inside the QS flag string.
	qsFlagUtilityFailed  = 0
	qsFlagShutdownActive = 6
)

// ---- EXTENDED STATUS REPLY (QI) ----

const (
	qiRemainingCapacity = 0
	qiSecondsToEmpty    = 1
	qiInputFrequency    = 2
	qiOutputCurrent     = 3
	qiFlags             = 7

	qiFieldCount = 8

	// Character offsets inside the QI flag string.
	qiFlagTestResult     = 7
	qiFlagOverloaded     = 8
	qiFlagReplaceBattery = 9
	qiFlagCharging       = 10
	qiFlagMode           = 12
)

var errTooFewFields = errors.New("too few fields")

// ParseError reports a reply field that could not be decoded.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("status: decode %s from %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ApplyRatings decodes an F reply into the rated fields of s.
// No IO. No side effects beyond s.
func ApplyRatings(s *Snapshot, fields [][]byte) error {
	if err := checkFields("F", fields, fFieldCount); err != nil {
		return err
	}

	var err error
	if s.RatedOutputVoltage, err = parseFloat("rated output voltage", fields[fRatedOutputVoltage]); err != nil {
		return err
	}
	if s.RatedOutputCurrent, err = parseInt("rated output current", fields[fRatedOutputCurrent]); err != nil {
		return err
	}
	if s.RatedBatteryVoltage, err = parseFloat("rated battery voltage", fields[fRatedBatteryVolts]); err != nil {
		return err
	}
	if s.RatedOutputFrequency, err = parseFloat("rated output frequency", fields[fRatedOutputFreq]); err != nil {
		return err
	}

	return nil
}

// ApplyShortStatus decodes a QS reply into s.
func ApplyShortStatus(s *Snapshot, fields [][]byte) error {
	if err := checkFields("QS", fields, qsFieldCount); err != nil {
		return err
	}

	var err error
	if s.InputVoltage, err = parseFloat("input voltage", fields[qsInputVoltage]); err != nil {
		return err
	}
	if s.InputFaultVoltage, err = parseFloat("input fault voltage", fields[qsInputFaultVoltage]); err != nil {
		return err
	}
	if s.OutputVoltage, err = parseFloat("output voltage", fields[qsOutputVoltage]); err != nil {
		return err
	}
	if s.OutputLoad, err = parseInt("output load", fields[qsOutputLoad]); err != nil {
		return err
	}
	if s.OutputFrequency, err = parseFloat("output frequency", fields[qsOutputFrequency]); err != nil {
		return err
	}
	if s.BatteryVoltage, err = parseFloat("battery voltage", fields[qsBatteryVoltage]); err != nil {
		return err
	}

	flags := fields[qsFlags]
	if len(flags) <= qsFlagShutdownActive {
		return &ParseError{Field: "QS flags", Value: string(flags), Err: errors.New("flag string too short")}
	}
	s.UtilityFailed = flags[qsFlagUtilityFailed] == '1'
	s.ShutdownActive = flags[qsFlagShutdownActive] == '1'

	return nil
}

// ApplyExtendedStatus decodes a QI reply into s.
func ApplyExtendedStatus(s *Snapshot, fields [][]byte) error {
	if err := checkFields("QI", fields, qiFieldCount); err != nil {
		return err
	}

	var err error
	if s.RemainingCapacity, err = parseInt("remaining capacity", fields[qiRemainingCapacity]); err != nil {
		return err
	}
	if s.RemainingCapacity < 0 || s.RemainingCapacity > 100 {
		return &ParseError{
			Field: "remaining capacity",
			Value: string(fields[qiRemainingCapacity]),
			Err:   errors.New("percent out of range"),
		}
	}
	if s.SecondsToEmpty, err = parseInt("seconds to empty", fields[qiSecondsToEmpty]); err != nil {
		return err
	}
	if s.SecondsToEmpty < 0 {
		return &ParseError{
			Field: "seconds to empty",
			Value: string(fields[qiSecondsToEmpty]),
			Err:   errors.New("negative runtime"),
		}
	}
	if s.InputFrequency, err = parseFloat("input frequency", fields[qiInputFrequency]); err != nil {
		return err
	}
	if s.OutputCurrent, err = parseFloat("output current", fields[qiOutputCurrent]); err != nil {
		return err
	}

	flags := fields[qiFlags]
	if len(flags) <= qiFlagMode {
		return &ParseError{Field: "QI flags", Value: string(flags), Err: errors.New("flag string too short")}
	}
	s.TestResult = testResultFromCode(flags[qiFlagTestResult])
	s.Overloaded = flags[qiFlagOverloaded] == '1'
	s.ReplaceBattery = flags[qiFlagReplaceBattery] == '1'
	s.Charging = flags[qiFlagCharging] == '1'
	s.Mode = modeFromCode(flags[qiFlagMode])

	// The protocol has no dedicated fault flag; the mode code carries it.
	s.Fault = s.Mode == ModeFault

	return nil
}

// testResultFromCode maps a wire code to a TestResult.
// Codes outside '1'..'5' are reserved by the protocol and map to NoTest.
func testResultFromCode(c byte) TestResult {
	switch c {
	case '1':
		return TestPassed
	case '2':
		return TestWarning
	case '3':
		return TestError
	case '4':
		return TestAborted
	case '5':
		return TestInProgress
	default:
		return NoTest
	}
}

// modeFromCode maps a wire code to a Mode.
// Codes outside '1'..'5' are reserved by the protocol and map to ModeIdle.
func modeFromCode(c byte) Mode {
	switch c {
	case '1':
		return ModeStandby
	case '2':
		return ModeLine
	case '3':
		return ModeInverting
	case '4':
		return ModeSelfTest
	case '5':
		return ModeFault
	default:
		return ModeIdle
	}
}

func checkFields(reply string, fields [][]byte, want int) error {
	if len(fields) < want {
		return &ParseError{
			Field: reply + " reply",
			Value: strconv.Itoa(len(fields)) + " fields",
			Err:   errTooFewFields,
		}
	}
	return nil
}

func parseFloat(name string, raw []byte) (float64, error) {
	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return 0, &ParseError{Field: name, Value: string(raw), Err: err}
	}
	return v, nil
}

func parseInt(name string, raw []byte) (int, error) {
	v, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0, &ParseError{Field: name, Value: string(raw), Err: err}
	}
	return v, nil
}
