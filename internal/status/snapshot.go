// internal/status/snapshot.go
package status

// TestResult is the self-test result reported in the extended status reply.
type TestResult int

const (
	NoTest TestResult = iota
	TestPassed
	TestWarning
	TestError
	TestAborted
	TestInProgress
)

// String returns a human-readable test result name.
func (t TestResult) String() string {
	switch t {
	case TestPassed:
		return "passed"
	case TestWarning:
		return "warning"
	case TestError:
		return "error"
	case TestAborted:
		return "aborted"
	case TestInProgress:
		return "in progress"
	default:
		return "no test"
	}
}

// Mode is the operating mode reported in the extended status reply.
type Mode int

const (
	ModeIdle Mode = iota
	ModeStandby
	ModeLine
	ModeInverting
	ModeSelfTest
	ModeFault
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeStandby:
		return "standby"
	case ModeLine:
		return "on line"
	case ModeInverting:
		return "inverting"
	case ModeSelfTest:
		return "self test"
	case ModeFault:
		return "fault"
	default:
		return "idle"
	}
}

// Snapshot is the last-known state of the UPS.
// One instance lives for the process lifetime, owned by the driver,
// and is overwritten in place on every successful status refresh.
type Snapshot struct {
	InputVoltage      float64
	InputFrequency    float64
	InputFaultVoltage float64

	OutputVoltage   float64
	OutputCurrent   float64
	OutputFrequency float64
	OutputLoad      int

	RatedOutputVoltage   float64
	RatedOutputCurrent   int
	RatedOutputFrequency float64

	BatteryVoltage    float64
	RemainingCapacity int // percent, 0-100
	SecondsToEmpty    int

	RatedBatteryVoltage float64

	UtilityFailed bool
	Charging      bool

	ShutdownActive bool

	Fault          bool
	Overloaded     bool
	ReplaceBattery bool

	TestResult TestResult
	Mode       Mode
}
