package transform

import (
	"github.com/regalagram/sspe-sub014/internal/geom"
	"github.com/regalagram/sspe-sub014/internal/path"
)

// Store is the document access the engine needs. It reads selection and
// geometry fresh on every resolve, writes only through MutatePoints, and
// marks gesture boundaries with the change window so the whole gesture
// lands as one undoable unit.
type Store interface {
	Selection() path.Selection
	PointByID(pointID string) (geom.Point, bool)
	SubPathPointIDs(subPathID string) []string
	CompanionPointIDs(pointID string) []string
	MutatePoints(updates []path.PointUpdate) error
	BeginChange()
	CommitChange()
	RollbackChange()
	Zoom() float64
}

// State is the gesture state machine's current state.
type State int

const (
	StateIdle State = iota
	StateScaling
	StateRotating
	StateMoving
)

// Mode names for the presentation layer.
const (
	ModeScale  = "scale"
	ModeRotate = "rotate"
	ModeMove   = "move"
)

// Engine is the interactive transform engine. It resolves the current
// selection into a transformable point set, derives bounds and handles
// from it, and runs the pointer-driven gesture state machine. One engine
// instance per bound store; create a fresh one when the document store
// identity changes.
//
// The engine holds no document state between gestures beyond the resolved
// point id list, which is itself recomputed on every selection or path
// change. All state is instance-owned; callers inject the engine rather
// than sharing a package-level instance.
type Engine struct {
	store Store

	affected      []string
	transformable bool

	state        State
	snap         *snapshot
	proportional bool

	onStateChange func(State)
}

// New creates an engine bound to a store.
func New(store Store) *Engine {
	return &Engine{store: store}
}

// OnStateChange registers a callback fired exactly on state machine
// transitions. This replaces per-frame polling of the gesture state: the
// presentation layer subscribes once and re-renders only when something
// changed. Pass nil to unsubscribe.
func (e *Engine) OnStateChange(fn func(State)) {
	e.onStateChange = fn
}

// State returns the current gesture state.
func (e *Engine) State() State {
	return e.state
}

// IsActive reports whether a gesture is in progress.
func (e *Engine) IsActive() bool {
	return e.state != StateIdle
}

// ActiveMode returns "scale", "rotate", or "move" while a gesture is
// active, and "" when idle.
func (e *Engine) ActiveMode() string {
	switch e.state {
	case StateScaling:
		return ModeScale
	case StateRotating:
		return ModeRotate
	case StateMoving:
		return ModeMove
	}
	return ""
}

// SetProportionalLock sets the aspect-ratio lock modifier. The modifier is
// sampled on the next pointer move; it is not a state transition and has
// no effect outside an active scale gesture.
func (e *Engine) SetProportionalLock(locked bool) {
	e.proportional = locked
}

// IsProportionalLockActive reports the modifier state.
func (e *Engine) IsProportionalLockActive() bool {
	return e.proportional
}

// Transformable reports the result of the last resolve.
func (e *Engine) Transformable() bool {
	return e.transformable
}

// AffectedPointIDs returns the resolved point id list from the last
// resolve. The slice is owned by the engine; callers must not mutate it.
func (e *Engine) AffectedPointIDs() []string {
	return e.affected
}

func (e *Engine) setState(s State) {
	if e.state == s {
		return
	}
	e.state = s
	if e.onStateChange != nil {
		e.onStateChange(s)
	}
}
