package transform

import "github.com/regalagram/sspe-sub014/internal/geom"

// snapshot freezes everything a gesture needs at pointer-down. Live
// positions are always computed from the originals here, never by
// accumulating per-frame deltas, so many pointer moves can't drift.
type snapshot struct {
	ids          []string
	originals    []geom.Point
	bounds       geom.Rect
	anchor       geom.Point
	handleStart  geom.Point
	pointerStart geom.Point
}

// OnPointerDown starts a gesture on the given handle. Handle kind picks
// the mode: corner and edge handles scale, the rotation handle rotates.
// The event is ignored when a gesture is already active (only one gesture
// may be active system-wide), when the selection isn't transformable, or
// when the handle id is unknown.
func (e *Engine) OnPointerDown(handleID string, pos geom.Point) {
	if e.state != StateIdle {
		return
	}

	bounds, handles := e.ComputeBoundsAndHandles()
	if bounds == nil {
		return
	}

	var handle *Handle
	for i := range handles {
		if handles[i].ID == handleID {
			handle = &handles[i]
			break
		}
	}
	if handle == nil {
		return
	}

	ids, originals := e.affectedPoints()
	e.snap = &snapshot{
		ids:          ids,
		originals:    originals,
		bounds:       *bounds,
		anchor:       anchorFor(*handle, *bounds),
		handleStart:  handle.Position,
		pointerStart: pos,
	}

	e.store.BeginChange()
	if handle.Kind == HandleRotation {
		e.setState(StateRotating)
	} else {
		e.setState(StateScaling)
	}
}

// StartMove starts a whole-selection drag, the degenerate gesture where
// the selection body is dragged rather than a handle. Same re-entrancy and
// transformability rules as OnPointerDown.
func (e *Engine) StartMove(pos geom.Point) {
	if e.state != StateIdle {
		return
	}

	bounds, _ := e.ComputeBoundsAndHandles()
	if bounds == nil {
		return
	}

	ids, originals := e.affectedPoints()
	e.snap = &snapshot{
		ids:          ids,
		originals:    originals,
		bounds:       *bounds,
		pointerStart: pos,
	}

	e.store.BeginChange()
	e.setState(StateMoving)
}

// OnPointerMove recomputes the live transform from the frozen snapshot and
// the current pointer sample and writes every affected point through the
// store. Called per pointer move during an active gesture, effectively at
// display refresh rate; writes are cheap per-frame updates, not individual
// history entries. A store rejection cancels the gesture rather than
// leaving it active against stale geometry.
func (e *Engine) OnPointerMove(pos geom.Point) {
	if e.snap == nil {
		return
	}

	var updates []geomUpdate
	switch e.state {
	case StateScaling:
		updates = e.applyScale(pos)
	case StateRotating:
		updates = e.applyRotate(pos)
	case StateMoving:
		updates = e.applyMove(pos)
	default:
		return
	}

	if err := e.store.MutatePoints(toPointUpdates(updates)); err != nil {
		e.OnCancel()
	}
}

// OnPointerUp ends the active gesture: the coalescing window commits, so
// the whole gesture lands in history as a single undoable unit, and the
// snapshot is dropped. No-op when idle.
func (e *Engine) OnPointerUp() {
	if e.state == StateIdle {
		return
	}

	e.store.CommitChange()
	e.snap = nil
	e.setState(StateIdle)
}

// OnCancel aborts the active gesture: every point touched since gesture
// start is rolled back to its snapshot position, nothing is recorded in
// history, and the machine returns to idle. This is the universal recovery
// action for Escape, external selection changes mid-gesture, and store
// mutation failures.
func (e *Engine) OnCancel() {
	if e.state == StateIdle {
		return
	}

	e.store.RollbackChange()
	e.snap = nil
	e.setState(StateIdle)
}
