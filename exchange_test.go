package vrepsim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeSizes(t *testing.T) {
	ex := NewExchange(newTestSimulator(newFakeAPI()), 1)

	ex.AddInput(2, func(context.Context, []float64) error { return nil })
	ex.AddInput(1, func(context.Context, []float64) error { return nil })
	ex.AddOutput(3, func(context.Context) ([]float64, error) { return []float64{0, 0, 0}, nil })

	assert.Equal(t, 3, ex.SizeIn())
	assert.Equal(t, 3, ex.SizeOut())
}

func TestExchangeStepFeedsInputsByOffset(t *testing.T) {
	api := newFakeAPI()
	ex := NewExchange(newTestSimulator(api), 1)

	var first, second []float64
	ex.AddInput(2, func(_ context.Context, v []float64) error {
		first = append([]float64(nil), v...)
		return nil
	})
	ex.AddInput(1, func(_ context.Context, v []float64) error {
		second = append([]float64(nil), v...)
		return nil
	})

	_, err := ex.Step(context.Background(), []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, first)
	assert.Equal(t, []float64{3}, second)
	assert.Equal(t, 1, api.triggerCount)
}

func TestExchangeStepGathersOutputs(t *testing.T) {
	ex := NewExchange(newTestSimulator(newFakeAPI()), 1)

	ex.AddOutput(2, func(context.Context) ([]float64, error) { return []float64{0.1, 0.2}, nil })
	ex.AddOutput(1, func(context.Context) ([]float64, error) { return []float64{0.3}, nil })

	out, err := ex.Step(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, out)
}

func TestExchangeTriggersEveryNthStep(t *testing.T) {
	api := newFakeAPI()
	ex := NewExchange(newTestSimulator(api), 3)

	reads := 0
	ex.AddOutput(1, func(context.Context) ([]float64, error) {
		reads++
		return []float64{float64(reads)}, nil
	})

	ctx := context.Background()

	// The first control step always triggers.
	out, err := ex.Step(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, out)
	assert.Equal(t, 1, api.triggerCount)

	// The next two steps replay the held output without touching the
	// simulation.
	for i := 0; i < 2; i++ {
		out, err = ex.Step(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, []float64{1}, out)
		assert.Equal(t, 1, api.triggerCount)
	}

	// The fourth step triggers again.
	out, err = ex.Step(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, out)
	assert.Equal(t, 2, api.triggerCount)
}

func TestExchangeOutputZerosBeforeFirstTrigger(t *testing.T) {
	ex := NewExchange(newTestSimulator(newFakeAPI()), 2)
	ex.AddOutput(2, func(context.Context) ([]float64, error) { return []float64{9, 9}, nil })

	// stepsPerTrigger=2 with the initial countdown of 1 means the first
	// step triggers; but a held step before that must see zeros, so step
	// once on a fresh exchange with countdown forced past the trigger.
	ex.countdown = 2
	out, err := ex.Step(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, out)
}

func TestExchangeInputSizeMismatch(t *testing.T) {
	ex := NewExchange(newTestSimulator(newFakeAPI()), 1)
	ex.AddInput(2, func(context.Context, []float64) error { return nil })

	_, err := ex.Step(context.Background(), []float64{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2 input values")
}

func TestExchangeMinimumStepsPerTrigger(t *testing.T) {
	api := newFakeAPI()
	ex := NewExchange(newTestSimulator(api), 0)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := ex.Step(ctx, nil)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, api.triggerCount)
}
