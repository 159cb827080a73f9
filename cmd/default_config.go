package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/switch-sim/sim/netswitch"
)

// loadSwitchConfig parses a switch config YAML file over the defaults.
// Uses strict field checking: typos must cause errors.
func loadSwitchConfig(path string) (netswitch.Config, error) {
	cfg := netswitch.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// applyFlagOverrides copies flag values onto cfg, but only for flags the user
// actually set, so file values survive untouched defaults.
func applyFlagOverrides(flags *pflag.FlagSet, cfg *netswitch.Config) {
	if flags.Changed("horizon") {
		cfg.Horizon = horizon
	}
	if flags.Changed("buffer-capacity") {
		cfg.BufferCapacity = bufferCapacity
	}
	if flags.Changed("overflow-threshold") {
		cfg.OverflowThreshold = overflowThreshold
	}
	if flags.Changed("mutex-slots") {
		cfg.MutexSlots = mutexSlots
	}
	if flags.Changed("rx-interval") {
		cfg.RXInterval = rxInterval
	}
	if flags.Changed("tx-interval") {
		cfg.TXInterval = txInterval
	}
	if flags.Changed("rx-count") {
		cfg.RXCount = rxCount
	}
	if flags.Changed("tx-count") {
		cfg.TXCount = txCount
	}
}

// marshalConfig renders cfg the way config files are written.
func marshalConfig(cfg netswitch.Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
