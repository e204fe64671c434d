package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/onebrainlab/vrepsim"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "vrepctl",
		Short: "Control a V-REP simulation over the remote API",
		Long: `vrepctl talks to a running V-REP remote API server.

It can start and stop simulations, advance them step by step, and query
scene objects, without writing any simulator-side code.`,
	}

	// Global flags
	rootCmd.PersistentFlags().String("addr", "127.0.0.1", "Remote API server address")
	rootCmd.PersistentFlags().Int("port", vrepsim.DefaultPort, "Remote API server port")
	rootCmd.PersistentFlags().String("config", "", "YAML config file (overrides addr/port flags)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(
		newVersionCmd(),
		newInfoCmd(),
		newStartCmd(),
		newStopCmd(),
		newStepCmd(),
		newPoseCmd(),
		newDriveCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// connect builds a simulator from the global flags and connects it. The
// returned func disconnects.
func connect(cmd *cobra.Command) (*vrepsim.Simulator, func(), error) {
	cfg := vrepsim.DefaultConfig()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := vrepsim.LoadConfig(path)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	} else {
		cfg.Addr, _ = cmd.Flags().GetString("addr")
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}

	logger := zap.NewNop()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, nil, err
		}
	}

	sim, err := vrepsim.NewSimulator(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := sim.Connect(cmd.Context()); err != nil {
		return nil, nil, err
	}
	return sim, sim.Disconnect, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("vrepctl version %s\n", version)
		},
	}
}
