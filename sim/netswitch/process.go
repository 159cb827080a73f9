package netswitch

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/switch-sim/sim"
)

// Each behavior below is a small state machine; the state names the next
// thing to do when the scheduler resumes it.

const (
	rxAcquire = iota
	rxPut
	rxRecord
)

// rxProcess posts one packet: RX gate, put(1), sample, then the gate is
// released at scope exit.
type rxProcess struct {
	sw    *Switch
	num   int64
	state int
}

func (r *rxProcess) Resume(s *sim.Simulator, p *sim.Process) (sim.Yield, error) {
	switch r.state {
	case rxAcquire:
		req := r.sw.RXGate.Request(p)
		r.state = rxPut
		if !req.Granted() {
			return sim.Wait(), nil
		}
		fallthrough
	case rxPut:
		logrus.Infof("[tick %07d] Packet %d was posted", s.Now(), r.num)
		ok, err := r.sw.FIFO.Put(p, 1)
		if err != nil {
			return sim.Yield{}, err
		}
		r.state = rxRecord
		if !ok {
			return sim.Wait(), nil
		}
		fallthrough
	case rxRecord:
		smp := r.sw.sample(s, SourceRX, r.num)
		logrus.Infof("[tick %07d] RX %d done PUT packet, fifo level %d (%.1f%%)", s.Now(), r.num, smp.Level, smp.Percent)
	}
	return sim.Done(), nil
}

const (
	txAcquire = iota
	txSample
	txDone
)

// txProcess transmits one packet. Only the sample is taken under the TX gate;
// the get(1) happens after the release.
type txProcess struct {
	sw    *Switch
	num   int64
	state int
	req   *sim.Request
}

func (t *txProcess) Resume(s *sim.Simulator, p *sim.Process) (sim.Yield, error) {
	switch t.state {
	case txAcquire:
		t.req = t.sw.TXGate.Request(p)
		t.state = txSample
		if !t.req.Granted() {
			return sim.Wait(), nil
		}
		fallthrough
	case txSample:
		smp := t.sw.sample(s, SourceTX, t.num)
		logrus.Infof("[tick %07d] TX %d done GET packet, fifo level %d (%.1f%%)", s.Now(), t.num, smp.Level, smp.Percent)
		if err := t.req.Release(); err != nil {
			return sim.Yield{}, err
		}
		ok, err := t.sw.FIFO.Get(p, 1)
		if err != nil {
			return sim.Yield{}, err
		}
		t.state = txDone
		if !ok {
			return sim.Wait(), nil
		}
		fallthrough
	case txDone:
		logrus.Debugf("[tick %07d] TX %d took packet, fifo level %d", s.Now(), t.num, t.sw.FIFO.Level())
	}
	return sim.Done(), nil
}

// dropAction is the parked side of a corrective get(1) that could not be
// served at the tick it was issued. It only runs when the container resumes it.
type dropAction struct {
	sw     *Switch
	issued int64
}

func (d *dropAction) Resume(s *sim.Simulator, p *sim.Process) (sim.Yield, error) {
	d.sw.recordDrop(s, d.issued, true)
	return sim.Done(), nil
}

// monitor samples the FIFO once per tick and bleeds off one unit for every
// tick it finds the level at or above the threshold. It never completes.
type monitor struct {
	sw *Switch
}

func (m *monitor) Resume(s *sim.Simulator, p *sim.Process) (sim.Yield, error) {
	smp := m.sw.sample(s, SourceMonitor, -1)
	if smp.Level >= m.sw.cfg.OverflowThreshold {
		logrus.Warnf("[tick %07d] Buffer overflow! Smash it (level %d >= %d)", s.Now(), smp.Level, m.sw.cfg.OverflowThreshold)
		if err := m.sw.drop(s); err != nil {
			return sim.Yield{}, err
		}
	}
	return sim.Timeout(1), nil
}

// generator spawns count processes, one every interval ticks, then completes
// one interval after the last spawn.
type generator struct {
	name     string
	count    int64
	interval int64
	spawned  int64
	spawn    func(s *sim.Simulator, num int64)
	// onFinish, if set, is called with the wall time spent in the spawn loop
	onFinish func(elapsed time.Duration)
	started  time.Time
}

func (g *generator) Resume(s *sim.Simulator, p *sim.Process) (sim.Yield, error) {
	if g.spawned == 0 {
		g.started = time.Now()
	}
	if g.spawned >= g.count {
		elapsed := time.Since(g.started)
		logrus.Infof("[tick %07d] %s finished after %d spawns", s.Now(), g.name, g.spawned)
		if g.onFinish != nil {
			g.onFinish(elapsed)
		}
		return sim.Done(), nil
	}
	g.spawn(s, g.spawned)
	g.spawned++
	return sim.Timeout(g.interval), nil
}
