package remoteapi

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DialOptions control how a remote API session is established.
type DialOptions struct {
	// HandshakeTimeout bounds the websocket handshake. Default: 5s.
	HandshakeTimeout time.Duration
	// WaitUntilConnected retries the dial until the context expires
	// instead of failing on the first refused connection.
	WaitUntilConnected bool
	// RetryCycle is the delay between dial attempts when
	// WaitUntilConnected is set. Default: 5ms.
	RetryCycle time.Duration
	// Logger for session lifecycle and per-call debug output.
	// Default: zap.NewNop().
	Logger *zap.Logger
}

// Conn is a synchronous remote API session over a websocket. A single call
// is in flight at a time; the remote API model is blocking request/reply.
type Conn struct {
	ws  *websocket.Conn
	id  int
	log *zap.Logger

	mu     sync.Mutex
	closed bool
}

var _ Client = (*Conn)(nil)

// Session IDs follow the legacy convention of small non-negative integers
// handed out per connection.
var nextClientID int64 = -1

type callFrame struct {
	ID   string `json:"id"`
	Fn   string `json:"fn"`
	Args []any  `json:"args,omitempty"`
}

type replyFrame struct {
	ID   string            `json:"id"`
	Ret  int               `json:"ret"`
	Vals []json.RawMessage `json:"vals,omitempty"`
}

// Dial connects to the remote API server at addr (host:port) and returns a
// session. With WaitUntilConnected the dial is retried every RetryCycle
// until it succeeds or ctx expires.
func Dial(ctx context.Context, addr string, opts DialOptions) (*Conn, error) {
	if opts.HandshakeTimeout == 0 {
		opts.HandshakeTimeout = 5 * time.Second
	}
	if opts.RetryCycle == 0 {
		opts.RetryCycle = 5 * time.Millisecond
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	dialer := websocket.Dialer{HandshakeTimeout: opts.HandshakeTimeout}
	url := fmt.Sprintf("ws://%s/", addr)

	var ws *websocket.Conn
	for {
		var err error
		ws, _, err = dialer.DialContext(ctx, url, nil)
		if err == nil {
			break
		}
		if !opts.WaitUntilConnected {
			return nil, errors.Wrapf(err, "dial remote API server at %s", addr)
		}
		select {
		case <-ctx.Done():
			return nil, errors.Wrapf(ctx.Err(), "dial remote API server at %s", addr)
		case <-time.After(opts.RetryCycle):
		}
	}

	conn := &Conn{
		ws:  ws,
		id:  int(atomic.AddInt64(&nextClientID, 1)),
		log: log,
	}
	log.Info("remote API session established",
		zap.String("addr", addr),
		zap.Int("client_id", conn.id))
	return conn, nil
}

// ClientID returns the session identifier assigned at dial time.
func (c *Conn) ClientID() int { return c.id }

// Close sends a close frame and tears down the websocket.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	deadline := time.Now().Add(time.Second)
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	err := c.ws.Close()
	c.log.Info("remote API session closed", zap.Int("client_id", c.id))
	return err
}

// call performs one synchronous request/reply exchange. Reply values are
// unmarshaled into the out pointers in order; extra values are ignored.
func (c *Conn) call(ctx context.Context, fn string, args []any, out ...any) (Code, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return LocalError, errors.New("session is closed")
	}

	req := callFrame{ID: uuid.NewString(), Fn: fn, Args: args}
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Time{}
	}
	if err := c.ws.SetWriteDeadline(deadline); err != nil {
		return LocalError, errors.Wrap(err, "set write deadline")
	}
	if err := c.ws.WriteJSON(req); err != nil {
		return LocalError, errors.Wrapf(err, "send %s", fn)
	}

	if err := c.ws.SetReadDeadline(deadline); err != nil {
		return LocalError, errors.Wrap(err, "set read deadline")
	}
	var reply replyFrame
	if err := c.ws.ReadJSON(&reply); err != nil {
		return LocalError, errors.Wrapf(err, "receive %s reply", fn)
	}
	if reply.ID != req.ID {
		return LocalError, errors.Errorf("reply id mismatch for %s: got %q, want %q", fn, reply.ID, req.ID)
	}

	code := Code(reply.Ret)
	c.log.Debug("remote API call",
		zap.String("fn", fn),
		zap.Int("ret", reply.Ret))
	if !code.Ok() {
		// The code is still meaningful to the caller; only decoding of
		// values is skipped.
		return code, nil
	}

	if len(reply.Vals) < len(out) {
		return code, errors.Errorf("%s reply carries %d values, want %d", fn, len(reply.Vals), len(out))
	}
	for i, dst := range out {
		if err := json.Unmarshal(reply.Vals[i], dst); err != nil {
			return code, errors.Wrapf(err, "decode %s reply value %d", fn, i)
		}
	}
	return code, nil
}

func (c *Conn) ObjectHandle(ctx context.Context, name string) (int, Code, error) {
	var handle int
	code, err := c.call(ctx, "simxGetObjectHandle", []any{name}, &handle)
	return handle, code, err
}

func (c *Conn) CollectionHandle(ctx context.Context, name string) (int, Code, error) {
	var handle int
	code, err := c.call(ctx, "simxGetCollectionHandle", []any{name}, &handle)
	return handle, code, err
}

func (c *Conn) ObjectParent(ctx context.Context, handle int) (int, Code, error) {
	var parent int
	code, err := c.call(ctx, "simxGetObjectParent", []any{handle}, &parent)
	return parent, code, err
}

func (c *Conn) RemoveObject(ctx context.Context, handle int) (Code, error) {
	return c.call(ctx, "simxRemoveObject", []any{handle})
}

func (c *Conn) RemoveModel(ctx context.Context, handle int) (Code, error) {
	return c.call(ctx, "simxRemoveModel", []any{handle})
}

func (c *Conn) ObjectPosition(ctx context.Context, handle, relativeTo int) ([3]float64, Code, error) {
	var position [3]float64
	code, err := c.call(ctx, "simxGetObjectPosition", []any{handle, relativeTo}, &position)
	return position, code, err
}

func (c *Conn) SetObjectPosition(ctx context.Context, handle, relativeTo int, position [3]float64) (Code, error) {
	return c.call(ctx, "simxSetObjectPosition", []any{handle, relativeTo, position})
}

func (c *Conn) ObjectOrientation(ctx context.Context, handle, relativeTo int) ([3]float64, Code, error) {
	var euler [3]float64
	code, err := c.call(ctx, "simxGetObjectOrientation", []any{handle, relativeTo}, &euler)
	return euler, code, err
}

func (c *Conn) SetObjectOrientation(ctx context.Context, handle, relativeTo int, euler [3]float64) (Code, error) {
	return c.call(ctx, "simxSetObjectOrientation", []any{handle, relativeTo, euler})
}

func (c *Conn) ObjectFloatParameter(ctx context.Context, handle, param int) (float64, Code, error) {
	var value float64
	code, err := c.call(ctx, "simxGetObjectFloatParameter", []any{handle, param}, &value)
	return value, code, err
}

func (c *Conn) ObjectGroupData(ctx context.Context, handle, dataType int) (GroupData, Code, error) {
	var data GroupData
	code, err := c.call(ctx, "simxGetObjectGroupData", []any{handle, dataType},
		&data.Handles, &data.Ints, &data.Floats, &data.Strings)
	return data, code, err
}

func (c *Conn) SetJointTargetVelocity(ctx context.Context, handle int, velocity float64) (Code, error) {
	return c.call(ctx, "simxSetJointTargetVelocity", []any{handle, velocity})
}

func (c *Conn) ReadProximitySensor(ctx context.Context, handle int) (bool, [3]float64, Code, error) {
	var (
		detected bool
		point    [3]float64
	)
	code, err := c.call(ctx, "simxReadProximitySensor", []any{handle}, &detected, &point)
	return detected, point, code, err
}

func (c *Conn) VisionSensorImage(ctx context.Context, handle int, grayscale bool) (int, int, []byte, Code, error) {
	var (
		resolution [2]int
		data       []byte
	)
	options := 0
	if grayscale {
		options = 1
	}
	code, err := c.call(ctx, "simxGetVisionSensorImage", []any{handle, options}, &resolution, &data)
	return resolution[0], resolution[1], data, code, err
}

func (c *Conn) VisionSensorDepthBuffer(ctx context.Context, handle int) (int, int, []float64, Code, error) {
	var (
		resolution [2]int
		depth      []float64
	)
	code, err := c.call(ctx, "simxGetVisionSensorDepthBuffer", []any{handle}, &resolution, &depth)
	return resolution[0], resolution[1], depth, code, err
}

func (c *Conn) IntParameter(ctx context.Context, param int) (int, Code, error) {
	var value int
	code, err := c.call(ctx, "simxGetIntegerParameter", []any{param}, &value)
	return value, code, err
}

func (c *Conn) FloatParameter(ctx context.Context, param int) (float64, Code, error) {
	var value float64
	code, err := c.call(ctx, "simxGetFloatingParameter", []any{param}, &value)
	return value, code, err
}

func (c *Conn) BoolParameter(ctx context.Context, param int) (bool, Code, error) {
	var value bool
	code, err := c.call(ctx, "simxGetBooleanParameter", []any{param}, &value)
	return value, code, err
}

func (c *Conn) StringParameter(ctx context.Context, param int) (string, Code, error) {
	var value string
	code, err := c.call(ctx, "simxGetStringParameter", []any{param}, &value)
	return value, code, err
}

func (c *Conn) InMessageInfo(ctx context.Context, offset int) (int, Code, error) {
	var info int
	code, err := c.call(ctx, "simxGetInMessageInfo", []any{offset}, &info)
	return info, code, err
}

func (c *Conn) Synchronous(ctx context.Context, enable bool) (Code, error) {
	return c.call(ctx, "simxSynchronous", []any{enable})
}

func (c *Conn) SynchronousTrigger(ctx context.Context) (Code, error) {
	return c.call(ctx, "simxSynchronousTrigger", nil)
}

func (c *Conn) StartSimulation(ctx context.Context) (Code, error) {
	return c.call(ctx, "simxStartSimulation", nil)
}

func (c *Conn) StopSimulation(ctx context.Context) (Code, error) {
	return c.call(ctx, "simxStopSimulation", nil)
}
