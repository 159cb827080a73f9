// Package trace provides dispatch-trace recording for the simulation kernel.
// This package has no dependencies on sim/; it stores pure data types and
// satisfies sim.Tracer structurally.
package trace

import (
	"fmt"
	"strconv"
	"strings"
)

// DispatchRecord captures a single process resumption made by the run loop.
type DispatchRecord struct {
	Clock     int64  `yaml:"clock"`
	Seq       uint64 `yaml:"seq"`
	ProcessID int64  `yaml:"process_id"`
	Process   string `yaml:"process"`
}

// Kind returns the process name with any trailing "-<number>" instance suffix
// removed, e.g. "rx-12" -> "rx".
func (r DispatchRecord) Kind() string {
	i := strings.LastIndex(r.Process, "-")
	if i <= 0 {
		return r.Process
	}
	if _, err := strconv.Atoi(r.Process[i+1:]); err != nil {
		return r.Process
	}
	return r.Process[:i]
}

func (r DispatchRecord) String() string {
	return fmt.Sprintf("%07d/%d %s#%d", r.Clock, r.Seq, r.Process, r.ProcessID)
}
