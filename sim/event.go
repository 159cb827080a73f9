package sim

// Event is a pending process resumption.
// Events are ordered by (Time, Seq); Seq is assigned by the simulator in
// scheduling order, so events due at the same tick resume FIFO.
type Event struct {
	Time int64    // Due time (in ticks)
	Seq  uint64   // Insertion sequence, unique per simulator
	Proc *Process // Process to resume
}

// EventQueue implements heap.Interface and orders events by (Time, Seq).
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []*Event

func (eq EventQueue) Len() int { return len(eq) }

func (eq EventQueue) Less(i, j int) bool {
	if eq[i].Time != eq[j].Time {
		return eq[i].Time < eq[j].Time
	}
	return eq[i].Seq < eq[j].Seq
}

func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(*Event))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*eq = old[0 : n-1]
	return item
}
