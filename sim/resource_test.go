package sim

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// holder requests r, records the grant tick, holds the slot for hold ticks and
// completes; the slot is released at scope exit.
func holder(r *Resource, grants *[]string, name string, hold int64) Behavior {
	state := 0
	return BehaviorFunc(func(sim *Simulator, p *Process) (Yield, error) {
		switch state {
		case 0:
			state = 1
			if !r.Request(p).Granted() {
				return Wait(), nil
			}
			fallthrough
		case 1:
			*grants = append(*grants, fmt.Sprintf("%s@%d", name, sim.Now()))
			state = 2
			return Timeout(hold), nil
		}
		return Done(), nil
	})
}

func TestResource_Request_FreeSlot_GrantedImmediately(t *testing.T) {
	sim := NewSimulator()
	r := NewResource(sim, "gate", 1)
	p := sim.NewProcess("p", nil)

	req := r.Request(p)

	assert.True(t, req.Granted())
	assert.Equal(t, 1, r.Held())
	assert.Equal(t, 0, r.Waiting())
}

func TestResource_Capacity1_GrantsInArrivalOrder(t *testing.T) {
	// GIVEN a binary gate and four processes arriving at tick 0 in order
	sim := NewSimulator()
	r := NewResource(sim, "gate", 1)
	var grants []string
	var last *Process
	for i := 0; i < 4; i++ {
		name := fmt.Sprintf("r%d", i)
		last = sim.Spawn(name, holder(r, &grants, name, 2))
	}

	// WHEN run until the last one finishes
	require.NoError(t, sim.Run(last))

	// THEN each is granted in arrival order, one hold period apart
	assert.Equal(t, []string{"r0@0", "r1@2", "r2@4", "r3@6"}, grants)
	assert.Equal(t, 0, r.Held())
}

func TestResource_Capacity2_TwoHoldersAtOnce(t *testing.T) {
	sim := NewSimulator()
	r := NewResource(sim, "gate", 2)
	var grants []string
	var last *Process
	for i := 0; i < 4; i++ {
		name := fmt.Sprintf("r%d", i)
		last = sim.Spawn(name, holder(r, &grants, name, 3))
	}

	require.NoError(t, sim.Run(last))

	assert.Equal(t, []string{"r0@0", "r1@0", "r2@3", "r3@3"}, grants)
}

func TestResource_Release_Twice_DoubleRelease(t *testing.T) {
	// GIVEN a granted request that has been released
	sim := NewSimulator()
	r := NewResource(sim, "gate", 1)
	req := r.Request(sim.NewProcess("first", nil))
	require.NoError(t, req.Release())

	// WHEN other requests come and go in between
	for i := 0; i < 3; i++ {
		other := r.Request(sim.NewProcess(fmt.Sprintf("other%d", i), nil))
		require.NoError(t, other.Release())
	}

	// THEN releasing the old handle again still fails
	err := req.Release()
	assert.ErrorIs(t, err, ErrDoubleRelease)
	assert.Equal(t, 0, r.Held())
}

func TestResource_Release_ForeignRequest_DoubleRelease(t *testing.T) {
	sim := NewSimulator()
	a := NewResource(sim, "a", 1)
	b := NewResource(sim, "b", 1)
	req := a.Request(sim.NewProcess("p", nil))

	assert.ErrorIs(t, b.Release(req), ErrDoubleRelease)
	assert.ErrorIs(t, b.Release(nil), ErrDoubleRelease)
	assert.Equal(t, 1, a.Held())
}

func TestResource_Release_QueuedRequest_Withdraws(t *testing.T) {
	// GIVEN a held gate with two queued requests
	sim := NewSimulator()
	r := NewResource(sim, "gate", 1)
	owner := r.Request(sim.NewProcess("owner", nil))
	second := r.Request(sim.NewProcess("second", nil))
	third := r.Request(sim.NewProcess("third", nil))
	require.Equal(t, 2, r.Waiting())

	// WHEN the second withdraws and the owner releases
	require.NoError(t, second.Release())
	require.NoError(t, owner.Release())

	// THEN the third is granted and the withdrawn one never is
	assert.True(t, third.Granted())
	assert.False(t, second.Granted())
	assert.Equal(t, 0, r.Waiting())
	assert.Equal(t, 1, r.Held())
}

func TestResource_ScopeExit_ReleasesHeldSlot(t *testing.T) {
	// GIVEN a process that acquires and completes without releasing
	sim := NewSimulator()
	r := NewResource(sim, "gate", 1)
	p := sim.Spawn("p", BehaviorFunc(func(sim *Simulator, p *Process) (Yield, error) {
		r.Request(p)
		return Done(), nil
	}))

	require.NoError(t, sim.Run(p))

	// THEN the simulator released it exactly once
	assert.Equal(t, 0, r.Held())
}

func TestResource_String(t *testing.T) {
	sim := NewSimulator()
	r := NewResource(sim, "gate", 1)
	r.Request(sim.NewProcess("a", nil))
	r.Request(sim.NewProcess("b", nil))
	assert.Equal(t, "gate{held=1/1 waiting=[b#2]}", r.String())
}

func TestNewResource_ZeroCapacity_Panics(t *testing.T) {
	assert.Panics(t, func() { NewResource(NewSimulator(), "gate", 0) })
}
