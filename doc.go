// Package vrepsim provides a high-level interface for controlling V-REP
// simulations from an external Go program over the simulator's remote API.
//
// Every operation forwards to a single remote call: the package resolves
// object names to handles, maps numeric result codes to typed errors, and
// reshapes the returned values into Go structs. It performs no computation
// or state management of its own beyond caching handles.
//
// A session starts with a Simulator:
//
//	sim, err := vrepsim.NewSimulator(vrepsim.DefaultConfig(), logger)
//	if err != nil { ... }
//	if err := sim.Connect(ctx); err != nil { ... }
//	defer sim.Disconnect()
//
// Scene entities are wrapped by name:
//
//	bot, err := vrepsim.NewPioneerBot(ctx, sim, "Pioneer_p3dx", sensorNames, motorNames)
//	if err != nil { ... }
//	err = bot.SetWheelVelocities(ctx, 1.0, 1.2)
//
// The module is organized into the following packages:
//
//   - the root package: Simulator, scene object wrappers, collections,
//     models, and the step-driven Exchange
//   - remoteapi: the binding to the remote API server
//   - cmd/vrepctl: CLI exposing the library operations
package vrepsim
