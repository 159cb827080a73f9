package sim

import "fmt"

// YieldKind says why a process step handed control back to the simulator.
type YieldKind int

const (
	// YieldTimeout resumes the process after Yield.Delay ticks.
	YieldTimeout YieldKind = iota
	// YieldWait parks the process on a resource; the resource resumes it once granted.
	YieldWait
	// YieldDone completes the process.
	YieldDone
)

func (k YieldKind) String() string {
	switch k {
	case YieldTimeout:
		return "timeout"
	case YieldWait:
		return "wait"
	case YieldDone:
		return "done"
	default:
		return fmt.Sprintf("YieldKind(%d)", int(k))
	}
}

// Yield is the wake condition returned by every process step.
type Yield struct {
	Kind  YieldKind
	Delay int64
}

// Timeout asks to be resumed after delay ticks.
func Timeout(delay int64) Yield { return Yield{Kind: YieldTimeout, Delay: delay} }

// Wait parks the process until a Resource or Container it queued on resumes it.
func Wait() Yield { return Yield{Kind: YieldWait} }

// Done completes the process.
func Done() Yield { return Yield{Kind: YieldDone} }

// Behavior is the body of a process, written as an explicit state machine.
// Resume runs one step: from the current state up to the next yield point.
type Behavior interface {
	Resume(sim *Simulator, p *Process) (Yield, error)
}

// BehaviorFunc adapts a plain function to Behavior.
type BehaviorFunc func(sim *Simulator, p *Process) (Yield, error)

// Resume calls f(sim, p).
func (f BehaviorFunc) Resume(sim *Simulator, p *Process) (Yield, error) {
	return f(sim, p)
}

// Process is the resume token handed to the scheduler and to resources.
type Process struct {
	ID   int64
	Name string

	behavior Behavior
	done     bool
	held     []*Request // scoped acquisitions, released when the process completes
}

// Done reports whether the process has completed.
func (p *Process) Done() bool {
	return p.done
}

func (p *Process) String() string {
	return fmt.Sprintf("%s#%d", p.Name, p.ID)
}

func (p *Process) hold(req *Request) {
	p.held = append(p.held, req)
}

// exitScope releases every acquisition still held by the process.
func (p *Process) exitScope() error {
	for _, req := range p.held {
		if req.released {
			continue
		}
		if err := req.resource.Release(req); err != nil {
			return err
		}
	}
	p.held = nil
	return nil
}
