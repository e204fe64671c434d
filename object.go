package vrepsim

import (
	"context"
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/onebrainlab/vrepsim/remoteapi"
)

// Handle sentinels. A valid handle is non-negative; MissingHandle marks an
// object whose handle was never resolved, RemovedHandle one that was
// removed from the scene.
const (
	MissingHandle = -1
	RemovedHandle = -2
)

// unnamedLabel stands in for the name of objects created without one.
const unnamedLabel = "_Unnamed_"

// SceneObject is the interface to a generic scene object. The name/handle
// pair is its only state; the handle is cached at construction and
// invalidated on removal.
type SceneObject struct {
	sim    *Simulator
	name   string
	handle int
}

// NewSceneObject wraps the scene object with the given name, resolving and
// caching its handle. With an empty name no lookup is made and the object
// carries MissingHandle.
func NewSceneObject(ctx context.Context, sim *Simulator, name string) (*SceneObject, error) {
	obj := &SceneObject{sim: sim, name: unnamedLabel, handle: MissingHandle}
	if name == "" {
		return obj, nil
	}
	obj.name = name

	op := fmt.Sprintf("retrieve handle to %s", name)
	api, err := sim.client(op)
	if err != nil {
		return nil, err
	}
	handle, code, err := api.ObjectHandle(ctx, name)
	if err != nil || !code.Ok() {
		return nil, &SimulationError{Op: op, Code: code, Cause: err}
	}
	obj.handle = handle
	return obj, nil
}

// Handle returns the cached object handle.
func (o *SceneObject) Handle() int { return o.handle }

// Name returns the object name.
func (o *SceneObject) Name() string { return o.name }

// api validates that the simulator is connected and the handle usable
// before any remote call is made on behalf of op.
func (o *SceneObject) api(op string) (remoteapi.Client, error) {
	switch o.handle {
	case MissingHandle:
		return nil, &SimulationError{Op: op, Cause: errors.Errorf("object handle of %s is missing", o.name)}
	case RemovedHandle:
		return nil, &SimulationError{Op: op, Cause: errors.Errorf("%s was removed from the scene", o.name)}
	}
	return o.sim.client(op)
}

// relativeHandle resolves the relative-to argument of pose operations; nil
// selects the absolute reference frame.
func relativeHandle(relativeTo *SceneObject) int {
	if relativeTo == nil {
		return remoteapi.AbsoluteFrame
	}
	return relativeTo.handle
}

// Position retrieves the object position relative to relativeTo, or to the
// absolute reference frame when relativeTo is nil.
func (o *SceneObject) Position(ctx context.Context, relativeTo *SceneObject) (r3.Vector, error) {
	op := fmt.Sprintf("retrieve position of %s", o.name)
	api, err := o.api(op)
	if err != nil {
		return r3.Vector{}, err
	}
	pos, code, err := api.ObjectPosition(ctx, o.handle, relativeHandle(relativeTo))
	if err != nil || !code.Ok() {
		return r3.Vector{}, &SimulationError{Op: op, Code: code, Cause: err}
	}
	return r3.Vector{X: pos[0], Y: pos[1], Z: pos[2]}, nil
}

// SetPosition moves the object to position relative to relativeTo, or to
// the absolute reference frame when relativeTo is nil.
func (o *SceneObject) SetPosition(ctx context.Context, position r3.Vector, relativeTo *SceneObject) error {
	op := fmt.Sprintf("set position of %s", o.name)
	api, err := o.api(op)
	if err != nil {
		return err
	}
	code, err := api.SetObjectPosition(ctx, o.handle, relativeHandle(relativeTo),
		[3]float64{position.X, position.Y, position.Z})
	if err != nil || !code.Ok() {
		return &SimulationError{Op: op, Code: code, Cause: err}
	}
	return nil
}

// Orientation retrieves the object orientation as Euler angles about the
// x, y, and z axes of the reference frame, each angle between -pi and pi.
func (o *SceneObject) Orientation(ctx context.Context, relativeTo *SceneObject) ([3]float64, error) {
	op := fmt.Sprintf("retrieve orientation of %s", o.name)
	api, err := o.api(op)
	if err != nil {
		return [3]float64{}, err
	}
	euler, code, err := api.ObjectOrientation(ctx, o.handle, relativeHandle(relativeTo))
	if err != nil || !code.Ok() {
		return [3]float64{}, &SimulationError{Op: op, Code: code, Cause: err}
	}
	return euler, nil
}

// SetOrientation rotates the object to the given Euler angles.
func (o *SceneObject) SetOrientation(ctx context.Context, euler [3]float64, relativeTo *SceneObject) error {
	op := fmt.Sprintf("set orientation of %s", o.name)
	api, err := o.api(op)
	if err != nil {
		return err
	}
	code, err := api.SetObjectOrientation(ctx, o.handle, relativeHandle(relativeTo), euler)
	if err != nil || !code.Ok() {
		return &SimulationError{Op: op, Code: code, Cause: err}
	}
	return nil
}

// ParentHandle retrieves the handle of the object's parent, or -1 when the
// object has no parent.
func (o *SceneObject) ParentHandle(ctx context.Context) (int, error) {
	op := fmt.Sprintf("retrieve parent handle of %s", o.name)
	api, err := o.api(op)
	if err != nil {
		return MissingHandle, err
	}
	parent, code, err := api.ObjectParent(ctx, o.handle)
	if err != nil || !code.Ok() {
		return MissingHandle, &SimulationError{Op: op, Code: code, Cause: err}
	}
	return parent, nil
}

// BoundingBoxLimits retrieves the corners of the object bounding box in
// model coordinates.
func (o *SceneObject) BoundingBoxLimits(ctx context.Context) (min, max r3.Vector, err error) {
	op := fmt.Sprintf("retrieve bounding box limits of %s", o.name)
	api, err := o.api(op)
	if err != nil {
		return r3.Vector{}, r3.Vector{}, err
	}

	params := [6]int{
		remoteapi.ObjFloatParamBBoxMinX,
		remoteapi.ObjFloatParamBBoxMinY,
		remoteapi.ObjFloatParamBBoxMinZ,
		remoteapi.ObjFloatParamBBoxMaxX,
		remoteapi.ObjFloatParamBBoxMaxY,
		remoteapi.ObjFloatParamBBoxMaxZ,
	}
	var limits [6]float64
	for i, param := range params {
		value, code, err := api.ObjectFloatParameter(ctx, o.handle, param)
		if err != nil || !code.Ok() {
			return r3.Vector{}, r3.Vector{}, &SimulationError{Op: op, Code: code, Cause: err}
		}
		limits[i] = value
	}
	min = r3.Vector{X: limits[0], Y: limits[1], Z: limits[2]}
	max = r3.Vector{X: limits[3], Y: limits[4], Z: limits[5]}
	return min, max, nil
}

// Remove removes the object from the scene and invalidates the handle.
func (o *SceneObject) Remove(ctx context.Context) error {
	op := fmt.Sprintf("remove %s", o.name)
	api, err := o.api(op)
	if err != nil {
		return err
	}
	code, err := api.RemoveObject(ctx, o.handle)
	if err != nil || !code.Ok() {
		return &SimulationError{Op: op, Code: code, Cause: err}
	}
	o.handle = RemovedHandle
	return nil
}

// Dummy is the interface to a dummy object.
type Dummy struct {
	SceneObject
}

// NewDummy wraps the dummy object with the given name.
func NewDummy(ctx context.Context, sim *Simulator, name string) (*Dummy, error) {
	obj, err := NewSceneObject(ctx, sim, name)
	if err != nil {
		return nil, err
	}
	return &Dummy{SceneObject: *obj}, nil
}
