package vrepsim

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/onebrainlab/vrepsim/remoteapi"
)

// Float parameters reported by the server may be slightly imprecise (around
// the 10th digit after the decimal point), so they are rounded before use.
const floatPrecision = 4

// Server state bit reported through InMessageInfo.
const simNotStopped = 0x01

var dynamicsEngineNames = map[int]string{
	0: "Bullet",
	1: "ODE",
	2: "Vortex",
	3: "Newton",
}

// Simulator is the interface to a V-REP remote API server. All methods are
// synchronous, blocking forwards of single remote calls; the only state is
// the connection itself.
type Simulator struct {
	cfg *Config
	log *zap.Logger
	api remoteapi.Client
}

// NewSimulator prepares a simulator interface for the server described by
// cfg. No connection is made until Connect.
func NewSimulator(cfg *Config, logger *zap.Logger) (*Simulator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{cfg: cfg, log: logger}, nil
}

// Addr returns the remote API server address.
func (s *Simulator) Addr() string { return s.cfg.Addr }

// Port returns the remote API server port.
func (s *Simulator) Port() int { return s.cfg.Port }

// ClientID returns the connection handle, or -1 when not connected.
func (s *Simulator) ClientID() int {
	if s.api == nil {
		return -1
	}
	return s.api.ClientID()
}

// Connected reports whether a session with the server exists.
func (s *Simulator) Connected() bool { return s.api != nil }

// Connect establishes a session with the remote API server. An existing
// session is torn down first.
func (s *Simulator) Connect(ctx context.Context) error {
	target := fmt.Sprintf("%s:%d", s.cfg.Addr, s.cfg.Port)

	// In case an earlier session was left open.
	if s.api != nil {
		s.Disconnect()
	}

	dialCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	conn, err := remoteapi.Dial(dialCtx, target, remoteapi.DialOptions{
		HandshakeTimeout:   s.cfg.Timeout,
		WaitUntilConnected: s.cfg.WaitUntilConnected,
		RetryCycle:         s.cfg.CommCycle,
		Logger:             s.log,
	})
	if err != nil {
		return &ConnectionError{
			Op:    fmt.Sprintf("connect to remote API server at %s", target),
			Cause: err,
		}
	}

	s.api = conn
	s.log.Info("connected to remote API server",
		zap.String("addr", target),
		zap.Int("client_id", conn.ClientID()))
	return nil
}

// Disconnect closes the session. Disconnecting a simulator that is not
// connected is a logged no-op.
func (s *Simulator) Disconnect() {
	if s.api == nil {
		s.log.Warn("could not disconnect from remote API server: not connected")
		return
	}
	if err := s.api.Close(); err != nil {
		s.log.Warn("error closing remote API session", zap.Error(err))
	}
	s.api = nil
	s.log.Info("disconnected from remote API server",
		zap.String("addr", fmt.Sprintf("%s:%d", s.cfg.Addr, s.cfg.Port)))
}

// client returns the active session or a ConnectionError naming op.
func (s *Simulator) client(op string) (remoteapi.Client, error) {
	if s.api == nil {
		return nil, &ConnectionError{
			Op:    op,
			Cause: errors.New("not connected to remote API server"),
		}
	}
	return s.api, nil
}

// Version retrieves the simulator version as "x.y.z".
func (s *Simulator) Version(ctx context.Context) (string, error) {
	const op = "retrieve simulator version"
	api, err := s.client(op)
	if err != nil {
		return "", err
	}
	version, code, err := api.IntParameter(ctx, remoteapi.IntParamProgramVersion)
	if err != nil || !code.Ok() {
		return "", &ServerError{Op: op, Code: code, Cause: err}
	}
	return fmt.Sprintf("%d.%d.%d", version/10000, (version/100)%100, version%100), nil
}

// DynamicsEngineName retrieves the name of the active dynamics engine.
func (s *Simulator) DynamicsEngineName(ctx context.Context) (string, error) {
	const op = "retrieve dynamics engine name"
	api, err := s.client(op)
	if err != nil {
		return "", err
	}
	id, code, err := api.IntParameter(ctx, remoteapi.IntParamDynamicEngine)
	if err != nil || !code.Ok() {
		return "", &ServerError{Op: op, Code: code, Cause: err}
	}
	name, ok := dynamicsEngineNames[id]
	if !ok {
		return "", &ServerError{Op: op, Cause: errors.Errorf("unknown dynamics engine id %d", id)}
	}
	return name, nil
}

// DynamicsEngineDt retrieves the dynamics engine time step.
func (s *Simulator) DynamicsEngineDt(ctx context.Context) (float64, error) {
	const op = "retrieve dynamics engine time step"
	api, err := s.client(op)
	if err != nil {
		return 0, err
	}
	dt, code, err := api.FloatParameter(ctx, remoteapi.FloatParamDynamicStepSize)
	if err != nil || !code.Ok() {
		return 0, &SimulationError{Op: op, Code: code, Cause: err}
	}
	return roundFloat(dt), nil
}

// SimulationDt retrieves the simulation time step.
func (s *Simulator) SimulationDt(ctx context.Context) (float64, error) {
	const op = "retrieve simulation time step"
	api, err := s.client(op)
	if err != nil {
		return 0, err
	}
	dt, code, err := api.FloatParameter(ctx, remoteapi.FloatParamSimulationTimeStep)
	if err != nil || !code.Ok() {
		return 0, &SimulationError{Op: op, Code: code, Cause: err}
	}
	return roundFloat(dt), nil
}

// ScenePath retrieves the path of the currently loaded scene.
func (s *Simulator) ScenePath(ctx context.Context) (string, error) {
	const op = "retrieve scene path"
	api, err := s.client(op)
	if err != nil {
		return "", err
	}
	path, code, err := api.StringParameter(ctx, remoteapi.StringParamScenePathAndName)
	if err != nil || !code.Ok() {
		return "", &SimulationError{Op: op, Code: code, Cause: err}
	}
	return path, nil
}

// Started reports whether a simulation is running. The result may be
// inaccurate immediately after starting or stopping a simulation; a short
// delay before calling it helps then.
func (s *Simulator) Started(ctx context.Context) (bool, error) {
	const op = "retrieve whether simulation is started"
	api, err := s.client(op)
	if err != nil {
		return false, err
	}

	// The answer itself is not conclusive (there may be unprocessed
	// trigger signals), but the call forces a fresh message from the
	// server so that the state below is up to date.
	_, code, err := api.BoolParameter(ctx, remoteapi.BoolParamWaitingForTrigger)
	if err != nil || !code.Ok() {
		return false, &ServerError{Op: op, Code: code, Cause: err}
	}

	state, code, err := api.InMessageInfo(ctx, remoteapi.HeaderOffsetServerState)
	if err != nil || !code.Ok() {
		return false, &ServerError{Op: op, Code: code, Cause: err}
	}
	return state&simNotStopped != 0, nil
}

// StartSimulation starts a simulation in synchronous operation mode, in
// which the simulation advances only on TriggerStep.
func (s *Simulator) StartSimulation(ctx context.Context) error {
	api, err := s.client("start simulation")
	if err != nil {
		return err
	}

	code, err := api.Synchronous(ctx, true)
	if err != nil || !code.Ok() {
		return &SimulationError{Op: "enable synchronous operation mode", Code: code, Cause: err}
	}
	code, err = api.StartSimulation(ctx)
	if err != nil || !startStopOk(code) {
		return &SimulationError{Op: "start simulation", Code: code, Cause: err}
	}
	s.log.Info("simulation started")
	return nil
}

// StopSimulation stops the running simulation.
func (s *Simulator) StopSimulation(ctx context.Context) error {
	const op = "stop simulation"
	api, err := s.client(op)
	if err != nil {
		return err
	}
	code, err := api.StopSimulation(ctx)
	if err != nil || !startStopOk(code) {
		return &SimulationError{Op: op, Code: code, Cause: err}
	}
	s.log.Info("simulation stopped")
	return nil
}

// TriggerStep triggers one simulation step.
func (s *Simulator) TriggerStep(ctx context.Context) error {
	const op = "trigger simulation step"
	api, err := s.client(op)
	if err != nil {
		return err
	}
	code, err := api.SynchronousTrigger(ctx)
	if err != nil || !code.Ok() {
		return &SimulationError{Op: op, Code: code, Cause: err}
	}
	return nil
}

// Start and stop may report NoValue when the command was queued rather
// than confirmed; both count as success.
func startStopOk(code remoteapi.Code) bool {
	return code == remoteapi.OK || code == remoteapi.NoValue
}

func roundFloat(v float64) float64 {
	scale := math.Pow10(floatPrecision)
	return math.Round(v*scale) / scale
}

// Default simulator, the single piece of shared state in the package.
var (
	defaultMu  sync.Mutex
	defaultSim *Simulator
)

// SetDefault installs sim as the package-wide default simulator. Passing
// nil clears it.
func SetDefault(sim *Simulator) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultSim = sim
}

// Default returns the package-wide default simulator, or nil when none has
// been installed.
func Default() *Simulator {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultSim
}
