package vrepsim

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// Model is the interface to a generic model, a scene object that roots a
// subtree of the scene hierarchy.
type Model struct {
	SceneObject
}

// NewModel wraps the model with the given name.
func NewModel(ctx context.Context, sim *Simulator, name string) (*Model, error) {
	obj, err := NewSceneObject(ctx, sim, name)
	if err != nil {
		return nil, err
	}
	return &Model{SceneObject: *obj}, nil
}

// Remove removes the model together with its whole subtree and invalidates
// the handle.
func (m *Model) Remove(ctx context.Context) error {
	op := fmt.Sprintf("remove %s", m.name)
	api, err := m.api(op)
	if err != nil {
		return err
	}
	code, err := api.RemoveModel(ctx, m.handle)
	if err != nil || !code.Ok() {
		return &SimulationError{Op: op, Code: code, Cause: err}
	}
	m.handle = RemovedHandle
	return nil
}

// PioneerBot is the interface to a Pioneer P3-DX robot: a model with an
// ultrasonic sensor ring and two motorized wheels.
type PioneerBot struct {
	Model
	USSensors ProximitySensorArray
	Wheels    MotorArray
}

// NewPioneerBot wraps the Pioneer P3-DX robot with the given name,
// together with its ultrasonic sensors and wheel motors.
func NewPioneerBot(ctx context.Context, sim *Simulator, name string, usSensorNames, motorNames []string) (*PioneerBot, error) {
	model, err := NewModel(ctx, sim, name)
	if err != nil {
		return nil, err
	}
	sensors, err := NewProximitySensorArray(ctx, sim, usSensorNames)
	if err != nil {
		return nil, err
	}
	wheels, err := NewMotorArray(ctx, sim, motorNames)
	if err != nil {
		return nil, err
	}
	return &PioneerBot{Model: *model, USSensors: sensors, Wheels: wheels}, nil
}

// SetWheelVelocities sets the target velocities of the left and right
// wheel motors.
func (b *PioneerBot) SetWheelVelocities(ctx context.Context, left, right float64) error {
	if len(b.Wheels) != 2 {
		return errors.Errorf("expected 2 wheel motors, got %d", len(b.Wheels))
	}
	return b.Wheels.SetVelocities(ctx, []float64{left, right})
}
