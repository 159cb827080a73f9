package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// containerWaiter is a queued put or get: the process to resume and the amount
// it asked for. Amounts are granted whole, never partially.
type containerWaiter struct {
	proc   *Process
	amount int64
}

// Container is a level-based shared resource bounded by a capacity.
//
// Put and get waiters are each served strictly in arrival order. There is no
// priority across the two kinds: a queued get may be served before an older
// queued put whenever the level already covers it.
type Container struct {
	name     string
	sim      *Simulator
	level    int64
	capacity int64
	putQ     WaitQueue[containerWaiter]
	getQ     WaitQueue[containerWaiter]
}

// NewContainer creates an empty container; capacity must be positive.
func NewContainer(sim *Simulator, name string, capacity int64) *Container {
	if capacity <= 0 {
		panic(fmt.Sprintf("NewContainer %q: capacity must be > 0, got %d", name, capacity))
	}
	return &Container{name: name, sim: sim, capacity: capacity}
}

// Name returns the name of the container.
func (c *Container) Name() string { return c.name }

// Level returns the current level.
func (c *Container) Level() int64 { return c.level }

// Capacity returns the maximum level.
func (c *Container) Capacity() int64 { return c.capacity }

// PutWaiters returns the number of queued puts.
func (c *Container) PutWaiters() int { return c.putQ.Len() }

// GetWaiters returns the number of queued gets.
func (c *Container) GetWaiters() int { return c.getQ.Len() }

// Percent returns the level as a percentage of capacity.
func (c *Container) Percent() float64 {
	return 100 * float64(c.level) / float64(c.capacity)
}

// Put adds amount on behalf of p. It returns true if the put was applied
// immediately; false means p is queued and will be resumed once the put lands.
func (c *Container) Put(p *Process, amount int64) (bool, error) {
	if err := c.check(p, amount); err != nil {
		return false, err
	}
	if c.putQ.Len() == 0 && c.level+amount <= c.capacity {
		c.level += amount
		c.settle()
		return true, nil
	}
	c.putQ.Enqueue(containerWaiter{proc: p, amount: amount})
	logrus.Debugf("[tick %07d] %s: put(%d) by %s queued at level %d", c.sim.Now(), c.name, amount, p, c.level)
	return false, nil
}

// Get removes amount on behalf of p. It returns true if the get was applied
// immediately; false means p is queued and will be resumed once the get lands.
func (c *Container) Get(p *Process, amount int64) (bool, error) {
	if err := c.check(p, amount); err != nil {
		return false, err
	}
	if c.getQ.Len() == 0 && c.level >= amount {
		c.level -= amount
		c.settle()
		return true, nil
	}
	c.getQ.Enqueue(containerWaiter{proc: p, amount: amount})
	logrus.Debugf("[tick %07d] %s: get(%d) by %s queued at level %d", c.sim.Now(), c.name, amount, p, c.level)
	return false, nil
}

func (c *Container) check(p *Process, amount int64) error {
	if p == nil {
		return newSimError(c.name, c.sim.Now(), errNilProcess)
	}
	if amount <= 0 {
		return newSimError(c.name, c.sim.Now(), fmt.Errorf("%w: got %d from %s", ErrInvalidAmount, amount, p))
	}
	if amount > c.capacity {
		return newSimError(c.name, c.sim.Now(), fmt.Errorf("%w: %d > %d from %s", ErrUnsatisfiable, amount, c.capacity, p))
	}
	return nil
}

// settle serves queued puts and gets, each kind in arrival order, until
// neither queue head can be satisfied.
func (c *Container) settle() {
	for progress := true; progress; {
		progress = false
		for {
			w, ok := c.putQ.Peek()
			if !ok || c.level+w.amount > c.capacity {
				break
			}
			c.putQ.Dequeue()
			c.level += w.amount
			c.sim.wake(w.proc)
			progress = true
		}
		for {
			w, ok := c.getQ.Peek()
			if !ok || c.level < w.amount {
				break
			}
			c.getQ.Dequeue()
			c.level -= w.amount
			c.sim.wake(w.proc)
			progress = true
		}
	}
}
