package vrepsim

import (
	"context"
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/onebrainlab/vrepsim/remoteapi"
)

// Collection is the interface to a collection of scene objects defined in
// the simulator. Like scene objects, a collection is a name/handle pair;
// its operations query all component objects in one remote call.
type Collection struct {
	sim    *Simulator
	name   string
	handle int
}

// NewCollection wraps the collection with the given name, resolving and
// caching its handle.
func NewCollection(ctx context.Context, sim *Simulator, name string) (*Collection, error) {
	op := fmt.Sprintf("retrieve handle to %s", name)
	api, err := sim.client(op)
	if err != nil {
		return nil, err
	}
	handle, code, err := api.CollectionHandle(ctx, name)
	if err != nil || !code.Ok() {
		return nil, &ServerError{Op: op, Code: code, Cause: err}
	}
	return &Collection{sim: sim, name: name, handle: handle}, nil
}

// Handle returns the cached collection handle.
func (c *Collection) Handle() int { return c.handle }

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

func (c *Collection) groupData(ctx context.Context, op string, dataType int) (remoteapi.GroupData, error) {
	api, err := c.sim.client(op)
	if err != nil {
		return remoteapi.GroupData{}, err
	}
	data, code, err := api.ObjectGroupData(ctx, c.handle, dataType)
	if err != nil || !code.Ok() {
		return remoteapi.GroupData{}, &ServerError{Op: op, Code: code, Cause: err}
	}
	return data, nil
}

// Names retrieves the names of the component scene objects.
func (c *Collection) Names(ctx context.Context) ([]string, error) {
	data, err := c.groupData(ctx, fmt.Sprintf("retrieve names of %s", c.name), remoteapi.GroupDataNames)
	if err != nil {
		return nil, err
	}
	return data.Strings, nil
}

// Positions retrieves the positions of the component scene objects in the
// absolute reference frame.
func (c *Collection) Positions(ctx context.Context) ([]r3.Vector, error) {
	data, err := c.groupData(ctx, fmt.Sprintf("retrieve positions of %s", c.name), remoteapi.GroupDataPositions)
	if err != nil {
		return nil, err
	}
	triples := chunkTriples(data.Floats)
	positions := make([]r3.Vector, len(triples))
	for i, t := range triples {
		positions[i] = r3.Vector{X: t[0], Y: t[1], Z: t[2]}
	}
	return positions, nil
}

// Orientations retrieves the orientations of the component scene objects
// as Euler angles about the x, y, and z axes of the absolute reference
// frame, each angle between -pi and pi.
func (c *Collection) Orientations(ctx context.Context) ([][3]float64, error) {
	data, err := c.groupData(ctx, fmt.Sprintf("retrieve orientations of %s", c.name), remoteapi.GroupDataOrientations)
	if err != nil {
		return nil, err
	}
	return chunkTriples(data.Floats), nil
}

// chunkTriples regroups the flat float array of a group-data reply into
// one triple per object. A trailing partial triple is dropped.
func chunkTriples(flat []float64) [][3]float64 {
	triples := make([][3]float64, 0, len(flat)/3)
	for i := 0; i+3 <= len(flat); i += 3 {
		triples = append(triples, [3]float64{flat[i], flat[i+1], flat[i+2]})
	}
	return triples
}
