package vrepsim

import (
	"context"
	"fmt"

	"github.com/golang/geo/r3"
)

// ProximitySensor is the interface to a proximity sensor.
type ProximitySensor struct {
	SceneObject
}

// NewProximitySensor wraps the proximity sensor with the given name.
func NewProximitySensor(ctx context.Context, sim *Simulator, name string) (*ProximitySensor, error) {
	obj, err := NewSceneObject(ctx, sim, name)
	if err != nil {
		return nil, err
	}
	return &ProximitySensor{SceneObject: *obj}, nil
}

// Read retrieves the sensor detection state and, when something was
// detected, the detected point relative to the sensor frame.
func (s *ProximitySensor) Read(ctx context.Context) (detected bool, point r3.Vector, err error) {
	op := fmt.Sprintf("read %s", s.name)
	api, err := s.api(op)
	if err != nil {
		return false, r3.Vector{}, err
	}
	detected, raw, code, err := api.ReadProximitySensor(ctx, s.handle)
	if err != nil || !code.Ok() {
		return false, r3.Vector{}, &SimulationError{Op: op, Code: code, Cause: err}
	}
	if !detected {
		return false, r3.Vector{}, nil
	}
	return true, r3.Vector{X: raw[0], Y: raw[1], Z: raw[2]}, nil
}

// InverseDistance retrieves the inverted distance to the detected point:
// 1 - d for a detection at distance d (sensor ranges are normalized to 1 m
// in the supported scenes), 0 when nothing is detected. Closer obstacles
// yield larger values.
func (s *ProximitySensor) InverseDistance(ctx context.Context) (float64, error) {
	detected, point, err := s.Read(ctx)
	if err != nil {
		return 0, err
	}
	if !detected {
		return 0, nil
	}
	return 1.0 - point.Norm(), nil
}

// ProximitySensorArray is the interface to a group of proximity sensors
// read together.
type ProximitySensorArray []*ProximitySensor

// NewProximitySensorArray wraps the proximity sensors with the given
// names, in order.
func NewProximitySensorArray(ctx context.Context, sim *Simulator, names []string) (ProximitySensorArray, error) {
	sensors := make(ProximitySensorArray, 0, len(names))
	for _, name := range names {
		sensor, err := NewProximitySensor(ctx, sim, name)
		if err != nil {
			return nil, err
		}
		sensors = append(sensors, sensor)
	}
	return sensors, nil
}

// InverseDistances retrieves the inverted detection distance of each
// sensor, one value per sensor in array order.
func (a ProximitySensorArray) InverseDistances(ctx context.Context) ([]float64, error) {
	distances := make([]float64, len(a))
	for i, sensor := range a {
		d, err := sensor.InverseDistance(ctx)
		if err != nil {
			return nil, err
		}
		distances[i] = d
	}
	return distances, nil
}
