package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/switch-sim/sim/netswitch"
	"github.com/inference-sim/switch-sim/sim/trace"
)

// Report is the results file handed to downstream plotting tools.
// Everything except RunID and RXDurationSeconds is deterministic for a given config.
type Report struct {
	RunID             string                  `yaml:"run_id"`
	Config            netswitch.Config        `yaml:"config"`
	EndTick           int64                   `yaml:"end_tick"`
	Steps             int64                   `yaml:"steps"`
	FinalLevel        int64                   `yaml:"final_level"`
	Abandoned         int                     `yaml:"abandoned_events"`
	RXDurationSeconds float64                 `yaml:"rx_duration_seconds"`
	Summaries         []netswitch.Summary     `yaml:"summaries"`
	Samples           []netswitch.LevelSample `yaml:"samples"`
	Drops             []netswitch.DropRecord  `yaml:"drops"`
	Trace             *TraceReport            `yaml:"trace,omitempty"`
}

// TraceReport is the dispatch trace summary included when tracing is on.
type TraceReport struct {
	TotalDispatches  int            `yaml:"total_dispatches"`
	BusiestClock     int64          `yaml:"busiest_clock"`
	BusiestCount     int            `yaml:"busiest_count"`
	KindDistribution map[string]int `yaml:"kind_distribution"`
}

// newReport assembles a report for res; st may be nil.
func newReport(res *netswitch.Result, st *trace.SimulationTrace) *Report {
	r := &Report{
		RunID:             uuid.NewString(),
		Config:            res.Config,
		EndTick:           res.EndTick,
		Steps:             res.Steps,
		FinalLevel:        res.FinalLevel,
		Abandoned:         res.Abandoned,
		RXDurationSeconds: res.Metrics.RXDuration.Seconds(),
		Samples:           res.Metrics.Samples,
		Drops:             res.Metrics.Drops,
	}
	for _, source := range []string{netswitch.SourceRX, netswitch.SourceTX, netswitch.SourceMonitor} {
		r.Summaries = append(r.Summaries, res.Metrics.Summarize(source))
	}
	if st != nil {
		sum := trace.Summarize(st)
		r.Trace = &TraceReport{
			TotalDispatches:  sum.TotalDispatches,
			BusiestClock:     sum.BusiestClock,
			BusiestCount:     sum.BusiestCount,
			KindDistribution: sum.KindDistribution,
		}
	}
	return r
}

// saveReport writes r as YAML to path.
func saveReport(r *Report, path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
