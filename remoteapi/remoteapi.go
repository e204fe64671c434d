// Package remoteapi is the binding layer between vrepsim and the V-REP
// remote API server. It mirrors the remote API functions the high-level
// wrappers consume and carries the vendor's return codes and parameter IDs.
//
// The binding performs no interpretation of results: every call hands back
// the raw return code together with any transport error, and the caller
// decides what failure means. The vendor owns the API semantics; this
// package only moves calls and values across the wire.
package remoteapi

import "context"

// Code is the bitfield returned by every remote API call.
type Code int

const (
	OK              Code = 0
	NoValue         Code = 1 << 0
	TimedOut        Code = 1 << 1
	IllegalOpMode   Code = 1 << 2
	RemoteError     Code = 1 << 3
	SplitProgress   Code = 1 << 4
	LocalError      Code = 1 << 5
	InitializeError Code = 1 << 6
)

// Has reports whether the given flag is set.
func (c Code) Has(flag Code) bool { return c&flag != 0 }

// Ok reports whether the call completed without any error flag. NoValue is
// treated as a failure here; callers that tolerate it check explicitly.
func (c Code) Ok() bool { return c == OK }

// AbsoluteFrame selects the absolute reference frame in calls that take a
// relative-to handle.
const AbsoluteFrame = -1

// Parameter IDs from the remote API constants.
const (
	IntParamProgramVersion = 0
	IntParamDynamicEngine  = 8

	FloatParamSimulationTimeStep = 1
	FloatParamDynamicStepSize    = 3

	BoolParamWaitingForTrigger = 45

	StringParamScenePathAndName = 13
)

// Object bounding box float parameters, in model coordinates.
const (
	ObjFloatParamBBoxMinX = 15
	ObjFloatParamBBoxMinY = 16
	ObjFloatParamBBoxMinZ = 17
	ObjFloatParamBBoxMaxX = 18
	ObjFloatParamBBoxMaxY = 19
	ObjFloatParamBBoxMaxZ = 20
)

// Data type selectors for ObjectGroupData.
const (
	GroupDataNames        = 0
	GroupDataPositions    = 3
	GroupDataOrientations = 5
)

// HeaderOffsetServerState selects the server state word in InMessageInfo.
const HeaderOffsetServerState = 1

// GroupData is the raw result of an ObjectGroupData call. Which slices are
// populated depends on the requested data type.
type GroupData struct {
	Handles []int
	Ints    []int
	Floats  []float64
	Strings []string
}

// Client is the set of remote API functions the vrepsim wrappers forward to.
// Every method returns the vendor's result code; the error return carries
// transport failures only. Implementations are synchronous and blocking.
type Client interface {
	// Connection identity assigned when the session was established.
	ClientID() int
	// Close tears down the session.
	Close() error

	ObjectHandle(ctx context.Context, name string) (int, Code, error)
	CollectionHandle(ctx context.Context, name string) (int, Code, error)
	ObjectParent(ctx context.Context, handle int) (int, Code, error)
	RemoveObject(ctx context.Context, handle int) (Code, error)
	RemoveModel(ctx context.Context, handle int) (Code, error)

	ObjectPosition(ctx context.Context, handle, relativeTo int) ([3]float64, Code, error)
	SetObjectPosition(ctx context.Context, handle, relativeTo int, position [3]float64) (Code, error)
	ObjectOrientation(ctx context.Context, handle, relativeTo int) ([3]float64, Code, error)
	SetObjectOrientation(ctx context.Context, handle, relativeTo int, euler [3]float64) (Code, error)
	ObjectFloatParameter(ctx context.Context, handle, param int) (float64, Code, error)
	ObjectGroupData(ctx context.Context, handle, dataType int) (GroupData, Code, error)

	SetJointTargetVelocity(ctx context.Context, handle int, velocity float64) (Code, error)
	ReadProximitySensor(ctx context.Context, handle int) (bool, [3]float64, Code, error)
	VisionSensorImage(ctx context.Context, handle int, grayscale bool) (width, height int, data []byte, code Code, err error)
	VisionSensorDepthBuffer(ctx context.Context, handle int) (width, height int, depth []float64, code Code, err error)

	IntParameter(ctx context.Context, param int) (int, Code, error)
	FloatParameter(ctx context.Context, param int) (float64, Code, error)
	BoolParameter(ctx context.Context, param int) (bool, Code, error)
	StringParameter(ctx context.Context, param int) (string, Code, error)
	InMessageInfo(ctx context.Context, offset int) (int, Code, error)

	Synchronous(ctx context.Context, enable bool) (Code, error)
	SynchronousTrigger(ctx context.Context) (Code, error)
	StartSimulation(ctx context.Context) (Code, error)
	StopSimulation(ctx context.Context) (Code, error)
}
