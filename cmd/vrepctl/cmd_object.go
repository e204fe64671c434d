package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/onebrainlab/vrepsim"
)

func newPoseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pose <object>",
		Short: "Print the pose of a scene object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, done, err := connect(cmd)
			if err != nil {
				return err
			}
			defer done()
			ctx := cmd.Context()

			obj, err := vrepsim.NewSceneObject(ctx, sim, args[0])
			if err != nil {
				return err
			}
			position, err := obj.Position(ctx, nil)
			if err != nil {
				return err
			}
			euler, err := obj.Orientation(ctx, nil)
			if err != nil {
				return err
			}

			fmt.Printf("object:      %s (handle %d)\n", obj.Name(), obj.Handle())
			fmt.Printf("position:    [%g, %g, %g]\n", position.X, position.Y, position.Z)
			fmt.Printf("orientation: [%g, %g, %g]\n", euler[0], euler[1], euler[2])
			return nil
		},
	}
}

func newDriveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drive <robot> <left> <right>",
		Short: "Set the wheel velocities of a Pioneer P3-DX robot",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("left velocity must be a number, got %q", args[1])
			}
			right, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("right velocity must be a number, got %q", args[2])
			}

			leftMotor, _ := cmd.Flags().GetString("left-motor")
			rightMotor, _ := cmd.Flags().GetString("right-motor")

			sim, done, err := connect(cmd)
			if err != nil {
				return err
			}
			defer done()
			ctx := cmd.Context()

			bot, err := vrepsim.NewPioneerBot(ctx, sim, args[0], nil,
				[]string{leftMotor, rightMotor})
			if err != nil {
				return err
			}
			return bot.SetWheelVelocities(ctx, left, right)
		},
	}
	cmd.Flags().String("left-motor", "Pioneer_p3dx_leftMotor", "Left wheel motor name")
	cmd.Flags().String("right-motor", "Pioneer_p3dx_rightMotor", "Right wheel motor name")
	return cmd
}
