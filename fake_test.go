package vrepsim

import (
	"context"

	"go.uber.org/zap"

	"github.com/onebrainlab/vrepsim/remoteapi"
)

// fakeAPI is an in-memory remoteapi.Client. Behavior is driven by the data
// maps; codes and errs force failures per function name. Every call is
// recorded in calls.
type fakeAPI struct {
	clientID int
	closed   bool
	calls    []string

	codes map[string]remoteapi.Code
	errs  map[string]error

	handles      map[string]int
	collections  map[string]int
	parents      map[int]int
	positions    map[int][3]float64
	orientations map[int][3]float64
	floatParams  map[[2]int]float64
	intParams    map[int]int
	fltParams    map[int]float64
	boolParams   map[int]bool
	strParams    map[int]string
	msgInfo      map[int]int
	groups       map[int]remoteapi.GroupData

	velocities map[int][]float64
	proxHits   map[int][3]float64
	imageW     int
	imageH     int
	image      []byte
	depth      []float64

	removedObjects []int
	removedModels  []int
	synchronous    bool
	startCount     int
	stopCount      int
	triggerCount   int
}

var _ remoteapi.Client = (*fakeAPI)(nil)

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		codes:        map[string]remoteapi.Code{},
		errs:         map[string]error{},
		handles:      map[string]int{},
		collections:  map[string]int{},
		parents:      map[int]int{},
		positions:    map[int][3]float64{},
		orientations: map[int][3]float64{},
		floatParams:  map[[2]int]float64{},
		intParams:    map[int]int{},
		fltParams:    map[int]float64{},
		boolParams:   map[int]bool{},
		strParams:    map[int]string{},
		msgInfo:      map[int]int{},
		groups:       map[int]remoteapi.GroupData{},
		velocities:   map[int][]float64{},
		proxHits:     map[int][3]float64{},
	}
}

// newTestSimulator returns a Simulator wired to the fake session.
func newTestSimulator(api *fakeAPI) *Simulator {
	sim, err := NewSimulator(nil, zap.NewNop())
	if err != nil {
		panic(err)
	}
	sim.api = api
	return sim
}

func (f *fakeAPI) ret(fn string) (remoteapi.Code, error) {
	f.calls = append(f.calls, fn)
	return f.codes[fn], f.errs[fn]
}

func (f *fakeAPI) countCalls(fn string) int {
	n := 0
	for _, c := range f.calls {
		if c == fn {
			n++
		}
	}
	return n
}

func (f *fakeAPI) ClientID() int { return f.clientID }

func (f *fakeAPI) Close() error {
	f.closed = true
	return nil
}

func (f *fakeAPI) ObjectHandle(_ context.Context, name string) (int, remoteapi.Code, error) {
	code, err := f.ret("ObjectHandle")
	handle, ok := f.handles[name]
	if !ok && code.Ok() && err == nil {
		return 0, remoteapi.RemoteError, nil
	}
	return handle, code, err
}

func (f *fakeAPI) CollectionHandle(_ context.Context, name string) (int, remoteapi.Code, error) {
	code, err := f.ret("CollectionHandle")
	handle, ok := f.collections[name]
	if !ok && code.Ok() && err == nil {
		return 0, remoteapi.RemoteError, nil
	}
	return handle, code, err
}

func (f *fakeAPI) ObjectParent(_ context.Context, handle int) (int, remoteapi.Code, error) {
	code, err := f.ret("ObjectParent")
	return f.parents[handle], code, err
}

func (f *fakeAPI) RemoveObject(_ context.Context, handle int) (remoteapi.Code, error) {
	code, err := f.ret("RemoveObject")
	if code.Ok() && err == nil {
		f.removedObjects = append(f.removedObjects, handle)
	}
	return code, err
}

func (f *fakeAPI) RemoveModel(_ context.Context, handle int) (remoteapi.Code, error) {
	code, err := f.ret("RemoveModel")
	if code.Ok() && err == nil {
		f.removedModels = append(f.removedModels, handle)
	}
	return code, err
}

func (f *fakeAPI) ObjectPosition(_ context.Context, handle, _ int) ([3]float64, remoteapi.Code, error) {
	code, err := f.ret("ObjectPosition")
	return f.positions[handle], code, err
}

func (f *fakeAPI) SetObjectPosition(_ context.Context, handle, _ int, position [3]float64) (remoteapi.Code, error) {
	code, err := f.ret("SetObjectPosition")
	if code.Ok() && err == nil {
		f.positions[handle] = position
	}
	return code, err
}

func (f *fakeAPI) ObjectOrientation(_ context.Context, handle, _ int) ([3]float64, remoteapi.Code, error) {
	code, err := f.ret("ObjectOrientation")
	return f.orientations[handle], code, err
}

func (f *fakeAPI) SetObjectOrientation(_ context.Context, handle, _ int, euler [3]float64) (remoteapi.Code, error) {
	code, err := f.ret("SetObjectOrientation")
	if code.Ok() && err == nil {
		f.orientations[handle] = euler
	}
	return code, err
}

func (f *fakeAPI) ObjectFloatParameter(_ context.Context, handle, param int) (float64, remoteapi.Code, error) {
	code, err := f.ret("ObjectFloatParameter")
	return f.floatParams[[2]int{handle, param}], code, err
}

func (f *fakeAPI) ObjectGroupData(_ context.Context, handle, _ int) (remoteapi.GroupData, remoteapi.Code, error) {
	code, err := f.ret("ObjectGroupData")
	return f.groups[handle], code, err
}

func (f *fakeAPI) SetJointTargetVelocity(_ context.Context, handle int, velocity float64) (remoteapi.Code, error) {
	code, err := f.ret("SetJointTargetVelocity")
	if code.Ok() && err == nil {
		f.velocities[handle] = append(f.velocities[handle], velocity)
	}
	return code, err
}

func (f *fakeAPI) ReadProximitySensor(_ context.Context, handle int) (bool, [3]float64, remoteapi.Code, error) {
	code, err := f.ret("ReadProximitySensor")
	point, detected := f.proxHits[handle]
	return detected, point, code, err
}

func (f *fakeAPI) VisionSensorImage(_ context.Context, _ int, _ bool) (int, int, []byte, remoteapi.Code, error) {
	code, err := f.ret("VisionSensorImage")
	return f.imageW, f.imageH, f.image, code, err
}

func (f *fakeAPI) VisionSensorDepthBuffer(_ context.Context, _ int) (int, int, []float64, remoteapi.Code, error) {
	code, err := f.ret("VisionSensorDepthBuffer")
	return f.imageW, f.imageH, f.depth, code, err
}

func (f *fakeAPI) IntParameter(_ context.Context, param int) (int, remoteapi.Code, error) {
	code, err := f.ret("IntParameter")
	return f.intParams[param], code, err
}

func (f *fakeAPI) FloatParameter(_ context.Context, param int) (float64, remoteapi.Code, error) {
	code, err := f.ret("FloatParameter")
	return f.fltParams[param], code, err
}

func (f *fakeAPI) BoolParameter(_ context.Context, param int) (bool, remoteapi.Code, error) {
	code, err := f.ret("BoolParameter")
	return f.boolParams[param], code, err
}

func (f *fakeAPI) StringParameter(_ context.Context, param int) (string, remoteapi.Code, error) {
	code, err := f.ret("StringParameter")
	return f.strParams[param], code, err
}

func (f *fakeAPI) InMessageInfo(_ context.Context, offset int) (int, remoteapi.Code, error) {
	code, err := f.ret("InMessageInfo")
	return f.msgInfo[offset], code, err
}

func (f *fakeAPI) Synchronous(_ context.Context, enable bool) (remoteapi.Code, error) {
	code, err := f.ret("Synchronous")
	if code.Ok() && err == nil {
		f.synchronous = enable
	}
	return code, err
}

func (f *fakeAPI) SynchronousTrigger(_ context.Context) (remoteapi.Code, error) {
	code, err := f.ret("SynchronousTrigger")
	if code.Ok() && err == nil {
		f.triggerCount++
	}
	return code, err
}

func (f *fakeAPI) StartSimulation(_ context.Context) (remoteapi.Code, error) {
	code, err := f.ret("StartSimulation")
	if err == nil {
		f.startCount++
	}
	return code, err
}

func (f *fakeAPI) StopSimulation(_ context.Context) (remoteapi.Code, error) {
	code, err := f.ret("StopSimulation")
	if err == nil {
		f.stopCount++
	}
	return code, err
}
