package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/switch-sim/sim"
	"github.com/inference-sim/switch-sim/sim/netswitch"
	"github.com/inference-sim/switch-sim/sim/trace"
)

var (
	// CLI flags for the switch model
	configPath        string // YAML config file (optional)
	horizon           int64  // Ticks the generators are sized for
	bufferCapacity    int64  // FIFO capacity in packets
	overflowThreshold int64  // Level at which the monitor starts dropping
	mutexSlots        int    // Slots per RX/TX gate
	rxInterval        int64  // Ticks between producer spawns
	txInterval        int64  // Ticks between consumer spawns
	rxCount           int64  // Producers to spawn (0 = horizon-1)
	txCount           int64  // Consumers to spawn (0 = horizon)

	// CLI flags for output
	logLevel    string // Log verbosity level
	traceLevel  string // Dispatch trace level
	resultsPath string // YAML results file (optional)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "switch-sim",
	Short: "Discrete-event simulator for a capacity-bounded switch buffer",
}

// runCmd executes the simulation using parameters from the config file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the switch simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s (valid: none, dispatch)", traceLevel)
		}

		cfg, err := loadSwitchConfig(configPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		applyFlagOverrides(cmd.Flags(), &cfg)

		var st *trace.SimulationTrace
		var tracer sim.Tracer
		if trace.TraceLevel(traceLevel) == trace.TraceLevelDispatch {
			st = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDispatch})
			tracer = st
		}

		res, err := netswitch.Run(cfg, tracer)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		res.Metrics.Print(os.Stdout, res.EndTick)

		report := newReport(res, st)
		if report.Trace != nil {
			fmt.Printf("Dispatches           : %d (busiest tick %d with %d)\n",
				report.Trace.TotalDispatches, report.Trace.BusiestClock, report.Trace.BusiestCount)
		}
		if resultsPath != "" {
			if err := saveReport(report, resultsPath); err != nil {
				logrus.Fatalf("%v", err)
			}
			logrus.Infof("Results written to %s (run %s)", resultsPath, report.RunID)
		}
		logrus.Info("Simulation complete.")
	},
}

// defaultsCmd prints the default configuration as YAML
var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default switch configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := marshalConfig(netswitch.DefaultConfig().WithDefaults())
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := netswitch.DefaultConfig()

	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a switch config YAML file")
	runCmd.Flags().Int64Var(&horizon, "horizon", defaults.Horizon, "Simulation horizon (in ticks)")
	runCmd.Flags().Int64Var(&bufferCapacity, "buffer-capacity", defaults.BufferCapacity, "FIFO capacity in packets")
	runCmd.Flags().Int64Var(&overflowThreshold, "overflow-threshold", defaults.OverflowThreshold, "FIFO level that triggers a drop")
	runCmd.Flags().IntVar(&mutexSlots, "mutex-slots", defaults.MutexSlots, "Slots per RX/TX gate")
	runCmd.Flags().Int64Var(&rxInterval, "rx-interval", defaults.RXInterval, "Ticks between producer spawns")
	runCmd.Flags().Int64Var(&txInterval, "tx-interval", defaults.TXInterval, "Ticks between consumer spawns")
	runCmd.Flags().Int64Var(&rxCount, "rx-count", 0, "Producers to spawn (0 = horizon-1)")
	runCmd.Flags().Int64Var(&txCount, "tx-count", 0, "Consumers to spawn (0 = horizon)")

	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Dispatch trace level (none, dispatch)")
	runCmd.Flags().StringVar(&resultsPath, "results-path", "", "Write a YAML results report to this path")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(defaultsCmd)
}
