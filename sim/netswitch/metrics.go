// Tracks the buffer level samples, drops and the RX spawn-loop wall time.

package netswitch

import (
	"fmt"
	"io"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample sources.
const (
	SourceRX      = "rx"
	SourceTX      = "tx"
	SourceMonitor = "monitor"
)

// LevelSample is one observation of the FIFO level.
type LevelSample struct {
	Tick    int64   `yaml:"tick"`
	Source  string  `yaml:"source"` // rx, tx or monitor
	Num     int64   `yaml:"num"`    // producer/consumer number; -1 for the monitor
	Level   int64   `yaml:"level"`
	Percent float64 `yaml:"percent"` // level as a percentage of capacity
}

// DropRecord is one corrective get(1) issued by the overflow monitor.
type DropRecord struct {
	Issued     int64 `yaml:"issued"`      // tick the monitor saw the overflow
	Completed  int64 `yaml:"completed"`   // tick the unit was removed
	LevelAfter int64 `yaml:"level_after"` // FIFO level right after the removal
	Deferred   bool  `yaml:"deferred"`    // true if the get had to queue
}

// MetricsSink receives every metric the switch processes emit.
type MetricsSink interface {
	RecordSample(s LevelSample)
	RecordDrop(d DropRecord)
	RecordRXDuration(d time.Duration)
}

// Metrics is the default MetricsSink; it keeps everything in memory in
// emission order.
type Metrics struct {
	Samples    []LevelSample
	Drops      []DropRecord
	RXDuration time.Duration // wall time of the RX spawn loop; not deterministic
}

func NewMetrics() *Metrics {
	return &Metrics{
		Samples: make([]LevelSample, 0),
		Drops:   make([]DropRecord, 0),
	}
}

func (m *Metrics) RecordSample(s LevelSample) { m.Samples = append(m.Samples, s) }

func (m *Metrics) RecordDrop(d DropRecord) { m.Drops = append(m.Drops, d) }

func (m *Metrics) RecordRXDuration(d time.Duration) { m.RXDuration = d }

// SamplesFrom returns the samples emitted by one source, in order.
func (m *Metrics) SamplesFrom(source string) []LevelSample {
	out := make([]LevelSample, 0)
	for _, s := range m.Samples {
		if s.Source == source {
			out = append(out, s)
		}
	}
	return out
}

// FirstDrop returns the earliest drop, if any.
func (m *Metrics) FirstDrop() (DropRecord, bool) {
	if len(m.Drops) == 0 {
		return DropRecord{}, false
	}
	return m.Drops[0], true
}

// Summary aggregates the level percentages seen by one source.
type Summary struct {
	Source        string        `yaml:"source"`
	Samples       int           `yaml:"samples"`
	MeanPercent   float64       `yaml:"mean_percent"`
	StdDevPercent float64       `yaml:"stddev_percent"`
	P95Percent    float64       `yaml:"p95_percent"`
	MaxPercent    float64       `yaml:"max_percent"`
	Drops         int           `yaml:"drops"`
	DeferredDrops int           `yaml:"deferred_drops"`
	RXDuration    time.Duration `yaml:"rx_duration"`
}

// Summarize computes level statistics over the samples of one source.
func (m *Metrics) Summarize(source string) Summary {
	sum := Summary{Source: source, Drops: len(m.Drops), RXDuration: m.RXDuration}
	for _, d := range m.Drops {
		if d.Deferred {
			sum.DeferredDrops++
		}
	}
	samples := m.SamplesFrom(source)
	sum.Samples = len(samples)
	if len(samples) == 0 {
		return sum
	}
	x := make([]float64, len(samples))
	for i, s := range samples {
		x[i] = s.Percent
	}
	sort.Float64s(x)
	if len(x) > 1 {
		sum.MeanPercent, sum.StdDevPercent = stat.MeanStdDev(x, nil)
	} else {
		sum.MeanPercent = x[0]
	}
	sum.P95Percent = stat.Quantile(0.95, stat.Empirical, x, nil)
	sum.MaxPercent = floats.Max(x)
	return sum
}

// Print displays the aggregated metrics at the end of the simulation.
func (m *Metrics) Print(w io.Writer, endTick int64) {
	fmt.Fprintln(w, "=== Switch Metrics ===")
	fmt.Fprintf(w, "Simulation ended at  : %d ticks\n", endTick)
	for _, source := range []string{SourceRX, SourceTX, SourceMonitor} {
		s := m.Summarize(source)
		if s.Samples == 0 {
			continue
		}
		fmt.Fprintf(w, "%-8s level (%%)  : mean %.2f  stddev %.2f  p95 %.2f  max %.2f  (%d samples)\n",
			source, s.MeanPercent, s.StdDevPercent, s.P95Percent, s.MaxPercent, s.Samples)
	}
	fmt.Fprintf(w, "Drops                : %d\n", len(m.Drops))
	if d, ok := m.FirstDrop(); ok {
		fmt.Fprintf(w, "First drop           : tick %d, level after %d\n", d.Completed, d.LevelAfter)
	}
	fmt.Fprintf(w, "RX spawn loop        : %.7fs\n", m.RXDuration.Seconds())
}
