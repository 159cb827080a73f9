package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Resource is a bounded-concurrency gate with a FIFO wait queue.
// With capacity 1 it is a fair binary lock: grants follow arrival order and a
// later request never overtakes an earlier one.
type Resource struct {
	name     string
	sim      *Simulator
	capacity int
	held     int
	waitQ    WaitQueue[*Request]
}

// Request is the acquisition handle returned by Resource.Request.
type Request struct {
	resource *Resource
	proc     *Process
	granted  bool
	released bool
}

// Granted reports whether the request currently holds a slot.
func (r *Request) Granted() bool {
	return r.granted && !r.released
}

// Release gives the slot back. Equivalent to r's resource Release(r).
func (r *Request) Release() error {
	return r.resource.Release(r)
}

// NewResource creates a resource with the given number of slots (must be >= 1).
func NewResource(sim *Simulator, name string, capacity int) *Resource {
	if capacity < 1 {
		panic(fmt.Sprintf("NewResource %q: capacity must be >= 1, got %d", name, capacity))
	}
	return &Resource{name: name, sim: sim, capacity: capacity}
}

// Name returns the name of the resource.
func (r *Resource) Name() string { return r.name }

// Capacity returns the number of slots.
func (r *Resource) Capacity() int { return r.capacity }

// Held returns the number of granted, unreleased requests.
func (r *Resource) Held() int { return r.held }

// Waiting returns the number of queued requests.
func (r *Resource) Waiting() int { return r.waitQ.Len() }

// Request asks for a slot on behalf of p. A free slot is granted immediately
// (Granted() is true on return); otherwise the request is queued and p is
// resumed once it reaches the head of the queue and a slot frees up.
// The handle is scoped to p: if p completes while still holding it, the
// simulator releases it.
func (r *Resource) Request(p *Process) *Request {
	req := &Request{resource: r, proc: p}
	p.hold(req)
	if r.held < r.capacity && r.waitQ.Len() == 0 {
		req.granted = true
		r.held++
		return req
	}
	r.waitQ.Enqueue(req)
	logrus.Debugf("[tick %07d] %s: %s queued behind %d", r.sim.Now(), r.name, p, r.waitQ.Len()-1)
	return req
}

// Release frees the slot held by req and grants it to the head of the wait
// queue. Releasing a request that is still queued withdraws it. Releasing the
// same handle twice fails with ErrDoubleRelease.
func (r *Resource) Release(req *Request) error {
	if req == nil || req.resource != r {
		return newSimError(r.name, r.sim.Now(), fmt.Errorf("%w: %w", ErrDoubleRelease, errForeignRequest))
	}
	if req.released {
		return newSimError(r.name, r.sim.Now(), fmt.Errorf("%w: %s released twice", ErrDoubleRelease, req.proc))
	}
	req.released = true
	if !req.granted {
		r.waitQ.RemoveFunc(func(q *Request) bool { return q == req })
		return nil
	}
	r.held--
	for r.held < r.capacity {
		next, ok := r.waitQ.Dequeue()
		if !ok {
			break
		}
		next.granted = true
		r.held++
		r.sim.wake(next.proc)
	}
	return nil
}

func (r *Request) String() string {
	return r.proc.String()
}

func (r *Resource) String() string {
	return fmt.Sprintf("%s{held=%d/%d waiting=%s}", r.name, r.held, r.capacity, &r.waitQ)
}
