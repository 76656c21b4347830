// internal/status/render.go
package status

import (
	"fmt"
	"strings"
)

// Summary renders the snapshot as readable multi-line text.
// Used for notification bodies and debug logging.
func (s *Snapshot) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "input: %.1fV %.1fHz (fault %.1fV)\n",
		s.InputVoltage, s.InputFrequency, s.InputFaultVoltage)
	fmt.Fprintf(&b, "output: %.1fV %.1fA %.1fHz load %d%% (rated %.1fV %dA %.1fHz)\n",
		s.OutputVoltage, s.OutputCurrent, s.OutputFrequency, s.OutputLoad,
		s.RatedOutputVoltage, s.RatedOutputCurrent, s.RatedOutputFrequency)
	fmt.Fprintf(&b, "battery: %.2fV (rated %.2fV) capacity %d%% runtime %ds\n",
		s.BatteryVoltage, s.RatedBatteryVoltage, s.RemainingCapacity, s.SecondsToEmpty)
	fmt.Fprintf(&b, "mode: %s, test: %s\n", s.Mode, s.TestResult)
	fmt.Fprintf(&b, "utility failed: %t, charging: %t, shutdown active: %t\n",
		s.UtilityFailed, s.Charging, s.ShutdownActive)
	fmt.Fprintf(&b, "fault: %t, overloaded: %t, replace battery: %t\n",
		s.Fault, s.Overloaded, s.ReplaceBattery)

	return b.String()
}
