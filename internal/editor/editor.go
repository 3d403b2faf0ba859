package editor

import (
	"encoding/json"

	"github.com/regalagram/sspe-sub014/internal/geom"
	"github.com/regalagram/sspe-sub014/internal/path"
	"github.com/regalagram/sspe-sub014/internal/transform"
)

// Editor is the engine facade the frontend talks to. It owns the path
// document store and the transform engine bound to it, and exposes the
// command/query surface as JSON strings so the WASM layer stays a thin
// marshaling shim.
type Editor struct {
	store *path.Store
	tf    *transform.Engine
}

// New creates an editor with an empty store.
func New() *Editor {
	store := path.NewStore()
	return &Editor{
		store: store,
		tf:    transform.New(store),
	}
}

// Transform exposes the transform engine, e.g. for subscribing to gesture
// state changes.
func (e *Editor) Transform() *transform.Engine {
	return e.tf
}

// Store exposes the document store.
func (e *Editor) Store() *path.Store {
	return e.store
}

// --- Commands (frontend → backend) ---

// LoadDocument loads a document from JSON. Any active gesture is cancelled
// first; the store reset drops selection and history.
func (e *Editor) LoadDocument(jsonData string) error {
	e.tf.OnCancel()
	if err := e.store.LoadDocument(jsonData); err != nil {
		return err
	}
	e.tf.ResolveSelection()
	return nil
}

// LoadSampleDocument loads the built-in sample document.
func (e *Editor) LoadSampleDocument() {
	e.tf.OnCancel()
	e.store.SetDocument(path.NewSampleDocument())
	e.tf.ResolveSelection()
}

// SetSelection replaces the selection. A selection change while a gesture
// is active cancels the gesture before the new selection is resolved, so
// no half-applied state is ever observable.
func (e *Editor) SetSelection(pointIDs, subPathIDs []string) {
	if e.tf.IsActive() {
		e.tf.OnCancel()
	}
	e.store.SetSelection(path.Selection{PointIDs: pointIDs, SubPathIDs: subPathIDs})
	e.tf.ResolveSelection()
}

// SetZoom records the viewport zoom used to size the rotation handle
// offset.
func (e *Editor) SetZoom(zoom float64) {
	e.store.SetZoom(zoom)
}

// SetProportionalLock sets the aspect-ratio lock modifier.
func (e *Editor) SetProportionalLock(locked bool) {
	e.tf.SetProportionalLock(locked)
}

// OnPointerDown forwards a pointer-down on a handle.
func (e *Editor) OnPointerDown(handleID string, x, y float64) {
	e.tf.OnPointerDown(handleID, geom.Point{X: x, Y: y})
}

// StartMove forwards a pointer-down on the selection body.
func (e *Editor) StartMove(x, y float64) {
	e.tf.StartMove(geom.Point{X: x, Y: y})
}

// OnPointerMove forwards a pointer move.
func (e *Editor) OnPointerMove(x, y float64) {
	e.tf.OnPointerMove(geom.Point{X: x, Y: y})
}

// OnPointerUp forwards a pointer up, committing the gesture.
func (e *Editor) OnPointerUp() {
	e.tf.OnPointerUp()
}

// OnCancel aborts the active gesture (Escape).
func (e *Editor) OnCancel() {
	e.tf.OnCancel()
}

// Undo reverts the most recent committed change.
func (e *Editor) Undo() bool {
	if e.tf.IsActive() {
		return false
	}
	return e.store.Undo()
}

// Redo re-applies the most recently undone change.
func (e *Editor) Redo() bool {
	if e.tf.IsActive() {
		return false
	}
	return e.store.Redo()
}

// --- Queries (frontend ← backend) ---

// ResolveSelection recomputes the transformable point set.
func (e *Editor) ResolveSelection() bool {
	return e.tf.ResolveSelection()
}

// boundsAndHandles is the JSON shape sent to the frontend overlay.
type boundsAndHandles struct {
	Bounds  *geom.Rect         `json:"bounds"`
	Handles []transform.Handle `json:"handles"`
}

// BoundsAndHandlesJSON returns the current bounding box and handle set as
// JSON. Bounds is null and handles empty when the selection isn't
// transformable.
func (e *Editor) BoundsAndHandlesJSON() string {
	bounds, handles := e.tf.ComputeBoundsAndHandles()
	if handles == nil {
		handles = []transform.Handle{}
	}
	data, _ := json.Marshal(boundsAndHandles{Bounds: bounds, Handles: handles})
	return string(data)
}

// IsActive reports whether a gesture is in progress.
func (e *Editor) IsActive() bool {
	return e.tf.IsActive()
}

// ActiveMode returns "scale", "rotate", "move", or "".
func (e *Editor) ActiveMode() string {
	return e.tf.ActiveMode()
}

// IsProportionalLockActive reports the modifier state.
func (e *Editor) IsProportionalLockActive() bool {
	return e.tf.IsProportionalLockActive()
}

// DocumentJSON returns the full document as JSON.
func (e *Editor) DocumentJSON() string {
	return e.store.DocumentJSON()
}

// SelectionJSON returns the current selection as JSON.
func (e *Editor) SelectionJSON() string {
	data, _ := json.Marshal(e.store.Selection())
	return string(data)
}
