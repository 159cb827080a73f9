package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDispatches  int
	FirstClock       int64
	LastClock        int64
	BusiestClock     int64          // tick with the most dispatches (earliest on ties)
	BusiestCount     int            // dispatches at BusiestClock
	KindDistribution map[string]int // process kind → dispatch count
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		KindDistribution: make(map[string]int),
	}
	if st == nil || len(st.Dispatches) == 0 {
		return summary
	}

	summary.TotalDispatches = len(st.Dispatches)
	summary.FirstClock = st.Dispatches[0].Clock
	summary.LastClock = st.Dispatches[len(st.Dispatches)-1].Clock

	// dispatches arrive in clock order, so a run of equal clocks is one tick
	runClock, runCount := st.Dispatches[0].Clock, 0
	for _, d := range st.Dispatches {
		summary.KindDistribution[d.Kind()]++
		if d.Clock != runClock {
			runClock, runCount = d.Clock, 0
		}
		runCount++
		if runCount > summary.BusiestCount {
			summary.BusiestClock, summary.BusiestCount = runClock, runCount
		}
	}
	return summary
}
