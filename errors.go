package vrepsim

import (
	"fmt"

	"github.com/onebrainlab/vrepsim/remoteapi"
)

// ConnectionError reports a failure to establish a session with the remote
// API server, or an operation attempted without one.
type ConnectionError struct {
	Op    string
	Cause error
}

func (e *ConnectionError) Error() string {
	msg := "could not " + e.Op
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ConnectionError) Unwrap() error { return e.Cause }

// ServerError reports a remote call that failed while communicating with
// the remote API server.
type ServerError struct {
	Op    string
	Code  remoteapi.Code
	Cause error
}

func (e *ServerError) Error() string { return errorMessage(e.Op, e.Code, e.Cause) }
func (e *ServerError) Unwrap() error { return e.Cause }

// SimulationError reports a remote call that failed during simulation.
type SimulationError struct {
	Op    string
	Code  remoteapi.Code
	Cause error
}

func (e *SimulationError) Error() string { return errorMessage(e.Op, e.Code, e.Cause) }
func (e *SimulationError) Unwrap() error { return e.Cause }

func errorMessage(op string, code remoteapi.Code, cause error) string {
	msg := "could not " + op
	if code != remoteapi.OK {
		msg += fmt.Sprintf(" (return code %d)", code)
	}
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return msg
}
