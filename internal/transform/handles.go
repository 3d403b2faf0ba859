package transform

import "github.com/regalagram/sspe-sub014/internal/geom"

// HandleKind tags what a handle does when dragged.
type HandleKind string

const (
	HandleCorner   HandleKind = "corner"
	HandleEdge     HandleKind = "edge"
	HandleRotation HandleKind = "rotation"
)

// Handle is an on-canvas interactive control. Ids are stable across frames
// as long as the selection shape doesn't change, so hover and drag
// tracking by id stays valid mid-gesture.
type Handle struct {
	ID       string     `json:"id"`
	Kind     HandleKind `json:"type"`
	Position geom.Point `json:"position"`
	Cursor   string     `json:"cursor"`
}

// RotationHandleOffset is the world-space distance of the rotation handle
// above the top-center of the bounding box at zoom 1. The generator
// divides it by the current zoom so the handle keeps a constant screen
// distance; drawing it at constant screen size is the frontend's job.
const RotationHandleOffset = 24.0

// ComputeBoundsAndHandles derives the bounding box of the resolved point
// set and the nine-handle array: four corners, four edge midpoints, and
// the rotation handle. Both are nil/empty when the selection isn't
// transformable. Identical point sets always yield identical bounds and
// handle ordering.
func (e *Engine) ComputeBoundsAndHandles() (*geom.Rect, []Handle) {
	if !e.transformable {
		return nil, nil
	}

	_, points := e.affectedPoints()
	bounds, ok := geom.BoundsOf(points)
	if !ok {
		return nil, nil
	}
	bounds = bounds.Canon()

	return &bounds, handlesFor(bounds, e.store.Zoom())
}

func handlesFor(b geom.Rect, zoom float64) []Handle {
	if zoom <= 0 {
		zoom = 1
	}

	minX, minY := b.X, b.Y
	maxX, maxY := b.X+b.Width, b.Y+b.Height
	midX, midY := b.X+b.Width/2, b.Y+b.Height/2

	return []Handle{
		{ID: "nw", Kind: HandleCorner, Position: geom.Point{X: minX, Y: minY}, Cursor: "nwse-resize"},
		{ID: "n", Kind: HandleEdge, Position: geom.Point{X: midX, Y: minY}, Cursor: "ns-resize"},
		{ID: "ne", Kind: HandleCorner, Position: geom.Point{X: maxX, Y: minY}, Cursor: "nesw-resize"},
		{ID: "e", Kind: HandleEdge, Position: geom.Point{X: maxX, Y: midY}, Cursor: "ew-resize"},
		{ID: "se", Kind: HandleCorner, Position: geom.Point{X: maxX, Y: maxY}, Cursor: "nwse-resize"},
		{ID: "s", Kind: HandleEdge, Position: geom.Point{X: midX, Y: maxY}, Cursor: "ns-resize"},
		{ID: "sw", Kind: HandleCorner, Position: geom.Point{X: minX, Y: maxY}, Cursor: "nesw-resize"},
		{ID: "w", Kind: HandleEdge, Position: geom.Point{X: minX, Y: midY}, Cursor: "ew-resize"},
		{ID: "rotation", Kind: HandleRotation, Position: geom.Point{X: midX, Y: minY - RotationHandleOffset/zoom}, Cursor: "grab"},
	}
}

// anchorFor returns the fixed reference point for dragging a handle: the
// diagonally opposite corner for corner handles, the opposite edge
// midpoint for edge handles, and the box center for rotation.
func anchorFor(h Handle, b geom.Rect) geom.Point {
	minX, minY := b.X, b.Y
	maxX, maxY := b.X+b.Width, b.Y+b.Height
	midX, midY := b.X+b.Width/2, b.Y+b.Height/2

	switch h.ID {
	case "nw":
		return geom.Point{X: maxX, Y: maxY}
	case "ne":
		return geom.Point{X: minX, Y: maxY}
	case "sw":
		return geom.Point{X: maxX, Y: minY}
	case "se":
		return geom.Point{X: minX, Y: minY}
	case "n":
		return geom.Point{X: midX, Y: maxY}
	case "s":
		return geom.Point{X: midX, Y: minY}
	case "e":
		return geom.Point{X: minX, Y: midY}
	case "w":
		return geom.Point{X: maxX, Y: midY}
	}
	return b.Center()
}
