// Package testutil provides shared test infrastructure for the switch simulator.
// It loads the scenario fixtures in testdata/scenarios.yaml used by sim/ sub-package tests.
package testutil

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"gopkg.in/yaml.v3"
)

// ScenarioFile represents the structure of testdata/scenarios.yaml.
type ScenarioFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Scenario is one switch configuration plus the outcome it must produce.
// Fields mirror netswitch.Config; they are duplicated here so that netswitch's
// own tests can import this package.
type Scenario struct {
	Name              string              `yaml:"name"`
	Horizon           int64               `yaml:"horizon"`
	BufferCapacity    int64               `yaml:"buffer_capacity"`
	OverflowThreshold int64               `yaml:"overflow_threshold"`
	MutexSlots        int                 `yaml:"mutex_slots"`
	RXInterval        int64               `yaml:"rx_interval"`
	TXInterval        int64               `yaml:"tx_interval"`
	Expect            ScenarioExpectation `yaml:"expect"`
}

// ScenarioExpectation holds the expected outcome; -1 means "no drop expected".
type ScenarioExpectation struct {
	EndTick             int64 `yaml:"end_tick"`
	FirstDropTick       int64 `yaml:"first_drop_tick"`
	LevelAfterFirstDrop int64 `yaml:"level_after_first_drop"`
	RXSamples           int   `yaml:"rx_samples"`
}

// LoadScenarios loads the scenario fixtures from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadScenarios(t *testing.T) []Scenario {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "scenarios.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read scenarios: %v", err)
	}

	var file ScenarioFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		t.Fatalf("Failed to parse scenarios: %v", err)
	}
	if len(file.Scenarios) == 0 {
		t.Fatal("scenarios.yaml contains no scenarios")
	}
	return file.Scenarios
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
