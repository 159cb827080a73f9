package netswitch

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/switch-sim/sim"
)

// DropAmount is the number of units each corrective drop removes, however far
// past the threshold the level is.
const DropAmount = 1

// Switch is the shared buffer between the producer (RX) and consumer (TX)
// populations, with one gate per population and an overflow monitor.
type Switch struct {
	cfg     Config
	sink    MetricsSink
	RXGate  *sim.Resource  // serializes producers
	TXGate  *sim.Resource  // serializes consumers
	FIFO    *sim.Container // the buffer
	Monitor *sim.Process

	drops int64 // drop actions issued so far
}

// NewSwitch builds the switch on s and starts its monitor at the current tick.
// cfg must already be validated.
func NewSwitch(s *sim.Simulator, cfg Config, sink MetricsSink) *Switch {
	sw := &Switch{
		cfg:    cfg,
		sink:   sink,
		RXGate: sim.NewResource(s, "rx-gate", cfg.MutexSlots),
		TXGate: sim.NewResource(s, "tx-gate", cfg.MutexSlots),
		FIFO:   sim.NewContainer(s, "fifo", cfg.BufferCapacity),
	}
	sw.Monitor = s.Spawn("monitor", &monitor{sw: sw})
	return sw
}

// StartRX starts the producer generator and returns its process.
func (sw *Switch) StartRX(s *sim.Simulator) *sim.Process {
	g := &generator{
		name:     "rx-generator",
		count:    sw.cfg.RXCount,
		interval: sw.cfg.RXInterval,
		spawn: func(s *sim.Simulator, num int64) {
			s.Spawn(fmt.Sprintf("rx-%d", num), &rxProcess{sw: sw, num: num})
		},
		onFinish: func(elapsed time.Duration) {
			logrus.Infof("Duration of one simulation time unit: %.7fs", elapsed.Seconds())
			sw.sink.RecordRXDuration(elapsed)
		},
	}
	return s.Spawn(g.name, g)
}

// StartTX starts the consumer generator and returns its process.
func (sw *Switch) StartTX(s *sim.Simulator) *sim.Process {
	g := &generator{
		name:     "tx-generator",
		count:    sw.cfg.TXCount,
		interval: sw.cfg.TXInterval,
		spawn: func(s *sim.Simulator, num int64) {
			s.Spawn(fmt.Sprintf("tx-%d", num), &txProcess{sw: sw, num: num})
		},
	}
	return s.Spawn(g.name, g)
}

func (sw *Switch) sample(s *sim.Simulator, source string, num int64) LevelSample {
	smp := LevelSample{
		Tick:    s.Now(),
		Source:  source,
		Num:     num,
		Level:   sw.FIFO.Level(),
		Percent: sw.FIFO.Percent(),
	}
	sw.sink.RecordSample(smp)
	return smp
}

// drop issues one fire-and-forget get(DropAmount). If the FIFO can serve it
// now it is applied in the caller's step; otherwise a drop process is parked
// on the FIFO and completes whenever the level allows.
func (sw *Switch) drop(s *sim.Simulator) error {
	sw.drops++
	d := &dropAction{sw: sw, issued: s.Now()}
	p := s.NewProcess(fmt.Sprintf("drop-%d", sw.drops), d)
	ok, err := sw.FIFO.Get(p, DropAmount)
	if err != nil {
		return err
	}
	if ok {
		sw.recordDrop(s, d.issued, false)
	}
	return nil
}

func (sw *Switch) recordDrop(s *sim.Simulator, issued int64, deferred bool) {
	sw.sink.RecordDrop(DropRecord{
		Issued:     issued,
		Completed:  s.Now(),
		LevelAfter: sw.FIFO.Level(),
		Deferred:   deferred,
	})
}

// Result is the outcome of one Run.
type Result struct {
	Config     Config
	EndTick    int64
	Steps      int64
	FinalLevel int64
	Abandoned  int // events still pending when the terminal process completed
	Metrics    *Metrics
}

// Run executes one switch simulation from tick 0 until the RX generator
// completes. tracer may be nil.
func Run(cfg Config, tracer sim.Tracer) (*Result, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid switch config: %w", err)
	}

	s := sim.NewSimulator()
	if tracer != nil {
		s.Tracer = tracer
	}
	m := NewMetrics()
	sw := NewSwitch(s, cfg, m)
	rx := sw.StartRX(s)
	sw.StartTX(s)

	logrus.Infof("Starting switch simulation: capacity=%d threshold=%d rx=%d every %d ticks, tx=%d every %d ticks",
		cfg.BufferCapacity, cfg.OverflowThreshold, cfg.RXCount, cfg.RXInterval, cfg.TXCount, cfg.TXInterval)
	if err := s.Run(rx); err != nil {
		return nil, err
	}
	return &Result{
		Config:     cfg,
		EndTick:    s.Now(),
		Steps:      s.Steps,
		FinalLevel: sw.FIFO.Level(),
		Abandoned:  s.EventQueue.Len(),
		Metrics:    m,
	}, nil
}
