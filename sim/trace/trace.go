package trace

// TraceLevel controls the verbosity of dispatch tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDispatch captures every process resumption.
	TraceLevelDispatch TraceLevel = "dispatch"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:     true,
	TraceLevelDispatch: true,
	"":                 true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level      TraceLevel
	MaxRecords int // 0 = unbounded; further dispatches are counted but not stored
}

// SimulationTrace collects dispatch records during a simulation.
type SimulationTrace struct {
	Config     TraceConfig
	Dispatches []DispatchRecord
	Truncated  int // dispatches not stored because MaxRecords was reached
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:     config,
		Dispatches: make([]DispatchRecord, 0),
	}
}

// RecordDispatch appends a dispatch record.
func (st *SimulationTrace) RecordDispatch(record DispatchRecord) {
	if st.Config.Level != TraceLevelDispatch {
		return
	}
	if st.Config.MaxRecords > 0 && len(st.Dispatches) >= st.Config.MaxRecords {
		st.Truncated++
		return
	}
	st.Dispatches = append(st.Dispatches, record)
}

// OnDispatch implements sim.Tracer.
func (st *SimulationTrace) OnDispatch(tick int64, seq uint64, procID int64, procName string) {
	st.RecordDispatch(DispatchRecord{Clock: tick, Seq: seq, ProcessID: procID, Process: procName})
}
