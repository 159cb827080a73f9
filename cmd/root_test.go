package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsCommand_PrintsDerivedConfig(t *testing.T) {
	// GIVEN the root command writing to a buffer
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"defaults"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	// WHEN `defaults` runs
	require.NoError(t, rootCmd.Execute())

	// THEN the YAML has every field, with derived generator counts
	out := buf.String()
	assert.Contains(t, out, "horizon: 300")
	assert.Contains(t, out, "buffer_capacity: 1000")
	assert.Contains(t, out, "rx_count: 299")
	assert.Contains(t, out, "tx_count: 300")
}

func TestRunCmd_FlagDefaultsMatchConfigDefaults(t *testing.T) {
	for name, want := range map[string]string{
		"horizon":            "300",
		"buffer-capacity":    "1000",
		"overflow-threshold": "100",
		"mutex-slots":        "1",
		"rx-interval":        "1",
		"tx-interval":        "2",
		"trace":              "none",
	} {
		f := runCmd.Flags().Lookup(name)
		require.NotNil(t, f, "flag %s", name)
		assert.Equal(t, want, f.DefValue, "flag %s", name)
	}
}
