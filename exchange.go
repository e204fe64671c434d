package vrepsim

import (
	"context"

	"github.com/pkg/errors"
)

// InputFunc feeds one slice of control data to the simulation, e.g. wheel
// velocities to a motor array.
type InputFunc func(ctx context.Context, values []float64) error

// OutputFunc gathers one slice of data from the simulation, e.g. inverted
// distances from a sensor array.
type OutputFunc func(ctx context.Context) ([]float64, error)

type inputSlot struct {
	fn   InputFunc
	dims int
}

type outputSlot struct {
	fn   OutputFunc
	dims int
}

// Exchange drives data exchange between an external step-based controller
// and a simulation running in synchronous operation mode. Input and output
// slots are registered up front; each Step feeds the inputs, gathers the
// outputs, and triggers one simulation step every stepsPerTrigger control
// steps. Between triggers the last gathered output is returned unchanged.
type Exchange struct {
	sim     *Simulator
	inputs  []inputSlot
	outputs []outputSlot
	sizeIn  int
	sizeOut int

	stepsPerTrigger int
	countdown       int
	last            []float64
}

// NewExchange creates an exchange that triggers one simulation step every
// stepsPerTrigger control steps (at least 1). The first Step always
// triggers.
func NewExchange(sim *Simulator, stepsPerTrigger int) *Exchange {
	if stepsPerTrigger < 1 {
		stepsPerTrigger = 1
	}
	return &Exchange{
		sim:             sim,
		stepsPerTrigger: stepsPerTrigger,
		countdown:       1,
	}
}

// AddInput registers a slot consuming dims values of control input per
// triggered step. Slots consume the Step input slice in registration
// order.
func (e *Exchange) AddInput(dims int, fn InputFunc) {
	e.inputs = append(e.inputs, inputSlot{fn: fn, dims: dims})
	e.sizeIn += dims
}

// AddOutput registers a slot producing dims values of simulation output
// per triggered step. Until the first trigger the slot contributes zeros.
func (e *Exchange) AddOutput(dims int, fn OutputFunc) {
	e.outputs = append(e.outputs, outputSlot{fn: fn, dims: dims})
	e.sizeOut += dims
	e.last = append(e.last, make([]float64, dims)...)
}

// SizeIn returns the total number of input dimensions.
func (e *Exchange) SizeIn() int { return e.sizeIn }

// SizeOut returns the total number of output dimensions.
func (e *Exchange) SizeOut() int { return e.sizeOut }

// Step runs one control step with input x. On triggering steps it feeds
// the registered inputs, gathers fresh outputs, and advances the
// simulation by one step; otherwise it returns the previous output.
func (e *Exchange) Step(ctx context.Context, x []float64) ([]float64, error) {
	e.countdown--
	if e.countdown > 0 {
		return e.last, nil
	}
	e.countdown = e.stepsPerTrigger

	if len(x) != e.sizeIn {
		return nil, errors.Errorf("expected %d input values, got %d", e.sizeIn, len(x))
	}

	offset := 0
	for _, in := range e.inputs {
		if err := in.fn(ctx, x[offset:offset+in.dims]); err != nil {
			return nil, err
		}
		offset += in.dims
	}

	output := make([]float64, 0, e.sizeOut)
	for _, out := range e.outputs {
		values, err := out.fn(ctx)
		if err != nil {
			return nil, err
		}
		if len(values) != out.dims {
			return nil, errors.Errorf("output slot produced %d values, want %d", len(values), out.dims)
		}
		output = append(output, values...)
	}
	e.last = output

	if err := e.sim.TriggerStep(ctx); err != nil {
		return nil, err
	}
	return output, nil
}
