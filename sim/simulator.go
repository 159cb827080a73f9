// sim/simulator.go
package sim

import (
	"container/heap"
	"errors"

	"github.com/sirupsen/logrus"
)

// Tracer observes every dispatch made by the run loop.
// Implementations must not mutate simulation state.
type Tracer interface {
	OnDispatch(tick int64, seq uint64, procID int64, procName string)
}

// Simulator is the core object that holds simulated time and the event loop.
//
// Concurrency is cooperative: exactly one process step runs at a time, on the
// goroutine that called Run. Resources and containers are only touched from
// within those steps, so none of them carry locks.
type Simulator struct {
	Clock int64
	// EventQueue has every pending process resumption
	EventQueue EventQueue
	// Tracer, if set, is told about each dispatch before the process resumes
	Tracer Tracer
	// Steps counts dispatched events
	Steps int64

	nextSeq uint64
	nextPID int64
}

func NewSimulator() *Simulator {
	return &Simulator{
		EventQueue: make(EventQueue, 0),
	}
}

// Now returns the current simulated time.
func (sim *Simulator) Now() int64 {
	return sim.Clock
}

// NewProcess creates a process without scheduling it.
// Resources may still park it, which is how fire-and-forget requests are issued.
func (sim *Simulator) NewProcess(name string, b Behavior) *Process {
	sim.nextPID++
	return &Process{ID: sim.nextPID, Name: name, behavior: b}
}

// Spawn creates a process and schedules its first step at the current tick.
func (sim *Simulator) Spawn(name string, b Behavior) *Process {
	p := sim.NewProcess(name, b)
	sim.wake(p)
	return p
}

// ScheduleAfter queues p to be resumed at Now()+delta.
func (sim *Simulator) ScheduleAfter(delta int64, p *Process) error {
	if p == nil {
		return newSimError("scheduler", sim.Clock, errNilProcess)
	}
	if delta < 0 {
		return newSimError(p.String(), sim.Clock, ErrInvalidDelta)
	}
	sim.nextSeq++
	heap.Push(&sim.EventQueue, &Event{Time: sim.Clock + delta, Seq: sim.nextSeq, Proc: p})
	return nil
}

// wake resumes p at the current tick, behind everything already due now.
func (sim *Simulator) wake(p *Process) {
	sim.nextSeq++
	heap.Push(&sim.EventQueue, &Event{Time: sim.Clock, Seq: sim.nextSeq, Proc: p})
}

// Step dispatches the earliest pending event.
// It returns false when the queue is empty.
func (sim *Simulator) Step() (bool, error) {
	if len(sim.EventQueue) == 0 {
		return false, nil
	}
	ev := heap.Pop(&sim.EventQueue).(*Event)
	p := ev.Proc
	if p.done {
		return true, nil
	}
	// advance the clock; the heap never yields an earlier time
	sim.Clock = ev.Time
	sim.Steps++
	if sim.Tracer != nil {
		sim.Tracer.OnDispatch(sim.Clock, ev.Seq, p.ID, p.Name)
	}
	logrus.Debugf("[tick %07d] Resuming %s", sim.Clock, p)

	y, err := p.behavior.Resume(sim, p)
	if err != nil {
		var se *SimError
		if !errors.As(err, &se) {
			err = newSimError(p.String(), sim.Clock, err)
		}
		return true, err
	}
	switch y.Kind {
	case YieldTimeout:
		return true, sim.ScheduleAfter(y.Delay, p)
	case YieldWait:
		return true, nil
	default:
		p.done = true
		return true, p.exitScope()
	}
}

// Run dispatches events until the terminal process completes.
// Everything still pending at that instant is abandoned: it is neither resumed
// nor given a chance to release what it holds. A nil terminal process runs the
// queue dry.
func (sim *Simulator) Run(until *Process) error {
	for until == nil || !until.done {
		ok, err := sim.Step()
		if err != nil {
			logrus.Errorf("[tick %07d] Simulation aborted: %v", sim.Clock, err)
			return err
		}
		if !ok {
			if until == nil {
				break
			}
			return newSimError("scheduler", sim.Clock, ErrDeadlock)
		}
	}
	logrus.Infof("[tick %07d] Simulation ended after %d steps, %d events abandoned", sim.Clock, sim.Steps, len(sim.EventQueue))
	return nil
}
