package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print simulator and scene information",
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, done, err := connect(cmd)
			if err != nil {
				return err
			}
			defer done()
			ctx := cmd.Context()

			version, err := sim.Version(ctx)
			if err != nil {
				return err
			}
			engine, err := sim.DynamicsEngineName(ctx)
			if err != nil {
				return err
			}
			simDt, err := sim.SimulationDt(ctx)
			if err != nil {
				return err
			}
			dynDt, err := sim.DynamicsEngineDt(ctx)
			if err != nil {
				return err
			}
			scene, err := sim.ScenePath(ctx)
			if err != nil {
				return err
			}
			started, err := sim.Started(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("version:          %s\n", version)
			fmt.Printf("dynamics engine:  %s (dt %gs)\n", engine, dynDt)
			fmt.Printf("simulation dt:    %gs\n", simDt)
			fmt.Printf("scene:            %s\n", scene)
			fmt.Printf("started:          %t\n", started)
			return nil
		},
	}
}

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start a simulation in synchronous operation mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, done, err := connect(cmd)
			if err != nil {
				return err
			}
			defer done()
			return sim.StartSimulation(cmd.Context())
		},
	}
}

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, done, err := connect(cmd)
			if err != nil {
				return err
			}
			defer done()
			return sim.StopSimulation(cmd.Context())
		},
	}
}

func newStepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "step [n]",
		Short: "Trigger n simulation steps (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := 1
			if len(args) == 1 {
				var err error
				n, err = strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("step count must be a positive integer, got %q", args[0])
				}
			}

			sim, done, err := connect(cmd)
			if err != nil {
				return err
			}
			defer done()

			for i := 0; i < n; i++ {
				if err := sim.TriggerStep(cmd.Context()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
