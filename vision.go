package vrepsim

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// Image is an RGB image retrieved from a vision sensor, with rows in
// top-down order and three bytes per pixel.
type Image struct {
	Width  int
	Height int
	RGB    []byte
}

// DepthMap is a depth buffer retrieved from a vision sensor, with rows in
// top-down order. Values are normalized: 0 at the near clipping plane, 1
// at the far one.
type DepthMap struct {
	Width  int
	Height int
	Depth  []float64
}

// VisionSensor is the interface to a vision sensor.
type VisionSensor struct {
	SceneObject
}

// NewVisionSensor wraps the vision sensor with the given name.
func NewVisionSensor(ctx context.Context, sim *Simulator, name string) (*VisionSensor, error) {
	obj, err := NewSceneObject(ctx, sim, name)
	if err != nil {
		return nil, err
	}
	return &VisionSensor{SceneObject: *obj}, nil
}

// Image retrieves the current sensor image. The server transmits scanlines
// bottom-up; they are reordered so that row 0 is the top of the image.
func (s *VisionSensor) Image(ctx context.Context) (*Image, error) {
	op := fmt.Sprintf("retrieve image from %s", s.name)
	api, err := s.api(op)
	if err != nil {
		return nil, err
	}
	width, height, data, code, err := api.VisionSensorImage(ctx, s.handle, false)
	if err != nil || !code.Ok() {
		return nil, &SimulationError{Op: op, Code: code, Cause: err}
	}
	if len(data) != width*height*3 {
		return nil, &SimulationError{Op: op,
			Cause: errors.Errorf("expected %d image bytes, got %d", width*height*3, len(data))}
	}

	stride := width * 3
	rgb := make([]byte, len(data))
	for row := 0; row < height; row++ {
		src := data[(height-1-row)*stride : (height-row)*stride]
		copy(rgb[row*stride:], src)
	}
	return &Image{Width: width, Height: height, RGB: rgb}, nil
}

// DepthBuffer retrieves the current sensor depth buffer, reordered the
// same way as Image.
func (s *VisionSensor) DepthBuffer(ctx context.Context) (*DepthMap, error) {
	op := fmt.Sprintf("retrieve depth buffer from %s", s.name)
	api, err := s.api(op)
	if err != nil {
		return nil, err
	}
	width, height, data, code, err := api.VisionSensorDepthBuffer(ctx, s.handle)
	if err != nil || !code.Ok() {
		return nil, &SimulationError{Op: op, Code: code, Cause: err}
	}
	if len(data) != width*height {
		return nil, &SimulationError{Op: op,
			Cause: errors.Errorf("expected %d depth values, got %d", width*height, len(data))}
	}

	depth := make([]float64, len(data))
	for row := 0; row < height; row++ {
		src := data[(height-1-row)*width : (height-row)*width]
		copy(depth[row*width:], src)
	}
	return &DepthMap{Width: width, Height: height, Depth: depth}, nil
}
