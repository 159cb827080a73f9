package netswitch

import "fmt"

// Config holds the tunables of one switch simulation.
// Zero RXCount/TXCount fall back to Horizon-1 and Horizon (see WithDefaults).
type Config struct {
	Horizon           int64 `yaml:"horizon"`            // ticks the generators are sized for
	BufferCapacity    int64 `yaml:"buffer_capacity"`    // FIFO capacity in packets (must be > 0)
	OverflowThreshold int64 `yaml:"overflow_threshold"` // level at which the monitor starts dropping
	MutexSlots        int   `yaml:"mutex_slots"`        // slots per RX/TX gate
	RXInterval        int64 `yaml:"rx_interval"`        // ticks between producer spawns
	TXInterval        int64 `yaml:"tx_interval"`        // ticks between consumer spawns
	RXCount           int64 `yaml:"rx_count,omitempty"` // producers to spawn
	TXCount           int64 `yaml:"tx_count,omitempty"` // consumers to spawn
}

// DefaultConfig returns the reference switch: a 1000-packet buffer bled off
// above 100 packets, one producer per tick and one consumer every two ticks.
func DefaultConfig() Config {
	return Config{
		Horizon:           300,
		BufferCapacity:    1000,
		OverflowThreshold: 100,
		MutexSlots:        1,
		RXInterval:        1,
		TXInterval:        2,
	}
}

// WithDefaults fills in the derived generator counts.
func (c Config) WithDefaults() Config {
	if c.RXCount == 0 {
		c.RXCount = c.Horizon - 1
	}
	if c.TXCount == 0 {
		c.TXCount = c.Horizon
	}
	return c
}

// Validate checks the config after WithDefaults has been applied.
func (c Config) Validate() error {
	if c.BufferCapacity <= 0 {
		return fmt.Errorf("buffer_capacity must be positive, got %d", c.BufferCapacity)
	}
	if c.OverflowThreshold <= 0 || c.OverflowThreshold > c.BufferCapacity {
		return fmt.Errorf("overflow_threshold must be in (0, %d], got %d", c.BufferCapacity, c.OverflowThreshold)
	}
	if c.MutexSlots < 1 {
		return fmt.Errorf("mutex_slots must be >= 1, got %d", c.MutexSlots)
	}
	if c.RXInterval < 1 || c.TXInterval < 1 {
		return fmt.Errorf("rx_interval and tx_interval must be >= 1, got %d and %d", c.RXInterval, c.TXInterval)
	}
	// a terminal generator with nothing to spawn would end the run before it starts
	if c.RXCount < 1 {
		return fmt.Errorf("rx_count must be >= 1, got %d (horizon %d)", c.RXCount, c.Horizon)
	}
	if c.TXCount < 0 {
		return fmt.Errorf("tx_count must not be negative, got %d", c.TXCount)
	}
	return nil
}

// ThresholdFraction returns the overflow threshold as a fraction of capacity.
func (c Config) ThresholdFraction() float64 {
	if c.BufferCapacity == 0 {
		return 0
	}
	return float64(c.OverflowThreshold) / float64(c.BufferCapacity)
}
