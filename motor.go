package vrepsim

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// Motor is the interface to a motorized joint.
type Motor struct {
	SceneObject
}

// NewMotor wraps the motorized joint with the given name.
func NewMotor(ctx context.Context, sim *Simulator, name string) (*Motor, error) {
	obj, err := NewSceneObject(ctx, sim, name)
	if err != nil {
		return nil, err
	}
	return &Motor{SceneObject: *obj}, nil
}

// SetVelocity sets the joint target velocity, in rad/s for revolute joints
// and m/s for prismatic ones.
func (m *Motor) SetVelocity(ctx context.Context, velocity float64) error {
	op := fmt.Sprintf("set velocity of %s", m.name)
	api, err := m.api(op)
	if err != nil {
		return err
	}
	code, err := api.SetJointTargetVelocity(ctx, m.handle, velocity)
	if err != nil || !code.Ok() {
		return &SimulationError{Op: op, Code: code, Cause: err}
	}
	return nil
}

// MotorArray is the interface to a group of motorized joints addressed
// together.
type MotorArray []*Motor

// NewMotorArray wraps the motorized joints with the given names, in order.
func NewMotorArray(ctx context.Context, sim *Simulator, names []string) (MotorArray, error) {
	motors := make(MotorArray, 0, len(names))
	for _, name := range names {
		motor, err := NewMotor(ctx, sim, name)
		if err != nil {
			return nil, err
		}
		motors = append(motors, motor)
	}
	return motors, nil
}

// SetVelocities sets the target velocity of each motor, one value per
// motor in array order.
func (a MotorArray) SetVelocities(ctx context.Context, velocities []float64) error {
	if len(velocities) != len(a) {
		return errors.Errorf("expected %d velocities, got %d", len(a), len(velocities))
	}
	for i, motor := range a {
		if err := motor.SetVelocity(ctx, velocities[i]); err != nil {
			return err
		}
	}
	return nil
}
