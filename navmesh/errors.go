package navmesh

import "errors"

var (
	// ErrNoPolygons is returned by loaders that find nothing to build from.
	ErrNoPolygons = errors.New("navmesh: no polygons")
	// ErrUnknownIndex is returned for region indices outside a cost table.
	ErrUnknownIndex = errors.New("navmesh: unknown region index")
)
