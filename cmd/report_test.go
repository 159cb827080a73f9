package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/switch-sim/sim/netswitch"
	"github.com/inference-sim/switch-sim/sim/trace"
)

func TestNewReport_CarriesRunAndTraceSummary(t *testing.T) {
	// GIVEN a traced small run
	cfg := netswitch.DefaultConfig()
	cfg.Horizon = 30
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDispatch})
	res, err := netswitch.Run(cfg, st)
	require.NoError(t, err)

	// WHEN a report is built
	r := newReport(res, st)

	// THEN it has a v4 run id, one summary per source and the trace summary
	id, err := uuid.Parse(r.RunID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), id.Version())
	assert.Len(t, r.Summaries, 3)
	assert.Equal(t, int64(29), r.EndTick)
	require.NotNil(t, r.Trace)
	assert.Equal(t, int(res.Steps), r.Trace.TotalDispatches)
	assert.Equal(t, 30, r.Trace.KindDistribution["rx-generator"], "rx generator resumes once per spawn plus once to finish")
}

func TestNewReport_UntracedRun_OmitsTrace(t *testing.T) {
	cfg := netswitch.DefaultConfig()
	cfg.Horizon = 10
	res, err := netswitch.Run(cfg, nil)
	require.NoError(t, err)

	r := newReport(res, nil)

	assert.Nil(t, r.Trace)
	assert.NotEqual(t, r.RunID, newReport(res, nil).RunID, "each report gets its own run id")
}

func TestSaveReport_WritesYAML(t *testing.T) {
	cfg := netswitch.DefaultConfig()
	cfg.Horizon = 10
	res, err := netswitch.Run(cfg, nil)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "results.yaml")

	require.NoError(t, saveReport(newReport(res, nil), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "run_id:")
	assert.Contains(t, out, "end_tick: 9")
	assert.Contains(t, out, "source: monitor")
	assert.NotContains(t, out, "trace:")
}
