package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/switch-sim/sim/netswitch"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSwitchConfig_EmptyPath_ReturnsDefaults(t *testing.T) {
	cfg, err := loadSwitchConfig("")
	require.NoError(t, err)
	assert.Equal(t, netswitch.DefaultConfig(), cfg)
}

func TestLoadSwitchConfig_PartialFile_KeepsDefaultsForMissingFields(t *testing.T) {
	// GIVEN a file that only sets capacity and threshold
	path := writeFile(t, "switch.yaml", "buffer_capacity: 50\noverflow_threshold: 5\n")

	// WHEN loaded
	cfg, err := loadSwitchConfig(path)

	// THEN those fields are overridden and the rest keep their defaults
	require.NoError(t, err)
	assert.Equal(t, int64(50), cfg.BufferCapacity)
	assert.Equal(t, int64(5), cfg.OverflowThreshold)
	assert.Equal(t, int64(300), cfg.Horizon)
	assert.Equal(t, int64(2), cfg.TXInterval)
}

func TestLoadSwitchConfig_UnknownField_Fails(t *testing.T) {
	// GIVEN a typo in a field name
	path := writeFile(t, "switch.yaml", "buffer_capacty: 50\n")

	_, err := loadSwitchConfig(path)

	assert.Error(t, err, "strict parsing must reject unknown fields")
}

func TestLoadSwitchConfig_MissingFile_Fails(t *testing.T) {
	_, err := loadSwitchConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyFlagOverrides_OnlyChangedFlags(t *testing.T) {
	// GIVEN a flag set where only --tx-interval was passed
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int64Var(&txInterval, "tx-interval", 2, "")
	flags.Int64Var(&bufferCapacity, "buffer-capacity", 1000, "")
	require.NoError(t, flags.Parse([]string{"--tx-interval=3"}))

	cfg := netswitch.DefaultConfig()
	cfg.BufferCapacity = 77 // as if read from a file

	// WHEN overrides are applied
	applyFlagOverrides(flags, &cfg)

	// THEN the passed flag wins and the file value survives
	assert.Equal(t, int64(3), cfg.TXInterval)
	assert.Equal(t, int64(77), cfg.BufferCapacity)
}

func TestMarshalConfig_RoundTripsThroughLoader(t *testing.T) {
	want := netswitch.DefaultConfig().WithDefaults()
	data, err := marshalConfig(want)
	require.NoError(t, err)
	assert.Contains(t, string(data), "overflow_threshold: 100")

	got, err := loadSwitchConfig(writeFile(t, "defaults.yaml", string(data)))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
