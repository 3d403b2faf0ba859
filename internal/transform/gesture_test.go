package transform

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regalagram/sspe-sub014/internal/geom"
	"github.com/regalagram/sspe-sub014/internal/path"
)

func pointAt(t *testing.T, s *path.Store, id string) geom.Point {
	t.Helper()
	p, ok := s.PointByID(id)
	require.True(t, ok, "point %s", id)
	return p
}

func rectEngine(t *testing.T) (*path.Store, *Engine) {
	t.Helper()
	s := rectStore()
	selectRect(s)
	e := New(s)
	require.True(t, e.ResolveSelection())
	return s, e
}

// --- scaling ---

func TestScaleCornerDrag(t *testing.T) {
	s, e := rectEngine(t)

	// se handle sits at (100,50), anchored at the nw corner (0,0).
	e.OnPointerDown("se", geom.Point{X: 100, Y: 50})
	assert.Equal(t, StateScaling, e.State())
	assert.Equal(t, ModeScale, e.ActiveMode())

	e.OnPointerMove(geom.Point{X: 200, Y: 100})

	assert.Equal(t, geom.Point{X: 0, Y: 0}, pointAt(t, s, "a1"))
	assert.Equal(t, geom.Point{X: 200, Y: 0}, pointAt(t, s, "a2"))
	assert.Equal(t, geom.Point{X: 200, Y: 100}, pointAt(t, s, "a3"))
	assert.Equal(t, geom.Point{X: 0, Y: 100}, pointAt(t, s, "a4"))

	e.OnPointerUp()
	assert.Equal(t, StateIdle, e.State())
}

func TestScaleEdgeDragHoldsOrthogonalAxis(t *testing.T) {
	s, e := rectEngine(t)

	// e handle at (100,25), anchored at the w midpoint (0,25). The Y
	// denominator is zero, so Y must hold at factor 1 regardless of the
	// pointer's vertical position.
	e.OnPointerDown("e", geom.Point{X: 100, Y: 25})
	e.OnPointerMove(geom.Point{X: 150, Y: 400})

	assert.Equal(t, geom.Point{X: 150, Y: 0}, pointAt(t, s, "a2"))
	assert.Equal(t, geom.Point{X: 150, Y: 50}, pointAt(t, s, "a3"))
	assert.Equal(t, geom.Point{X: 0, Y: 50}, pointAt(t, s, "a4"))
}

func TestScaleMirrorNormalizesBounds(t *testing.T) {
	s, e := rectEngine(t)

	// Dragging se past the nw anchor mirrors horizontally: sx = -1.
	e.OnPointerDown("se", geom.Point{X: 100, Y: 50})
	e.OnPointerMove(geom.Point{X: -100, Y: 50})

	assert.Equal(t, geom.Point{X: -100, Y: 0}, pointAt(t, s, "a2"))
	assert.Equal(t, geom.Point{X: -100, Y: 50}, pointAt(t, s, "a3"))

	e.OnPointerUp()

	bounds, _ := e.ComputeBoundsAndHandles()
	require.NotNil(t, bounds)
	assert.Equal(t, geom.Rect{X: -100, Y: 0, Width: 100, Height: 50}, *bounds)
	assert.GreaterOrEqual(t, bounds.Width, 0.0)
	assert.GreaterOrEqual(t, bounds.Height, 0.0)

	s.Undo()
	assert.Equal(t, geom.Point{X: 100, Y: 0}, pointAt(t, s, "a2"))
}

func TestScaleProportionalLock(t *testing.T) {
	s, e := rectEngine(t)
	e.SetProportionalLock(true)

	// sx would be 2, sy would be 1.5; the lock unifies both to 2.
	e.OnPointerDown("se", geom.Point{X: 100, Y: 50})
	e.OnPointerMove(geom.Point{X: 200, Y: 75})

	assert.Equal(t, geom.Point{X: 200, Y: 100}, pointAt(t, s, "a3"))
	assert.Equal(t, geom.Point{X: 0, Y: 100}, pointAt(t, s, "a4"))
}

func TestProportionalFactorPicksLargerMagnitude(t *testing.T) {
	assert.Equal(t, 2.0, proportionalFactor(2, 1.5))
	assert.Equal(t, 2.0, proportionalFactor(-0.5, 2))
	assert.Equal(t, -3.0, proportionalFactor(-3, 1))
	assert.Equal(t, -3.0, proportionalFactor(-3, -1))
	assert.Equal(t, 1.0, proportionalFactor(1, 1))
}

func TestScaleProportionalLockMirroredDrag(t *testing.T) {
	s, e := rectEngine(t)
	e.SetProportionalLock(true)

	// Dragging se past the nw anchor gives raw factors sx=-2, sy=1.5.
	// The lock applies the single dominant factor -2 to both axes, so
	// the result mirrors on both axes rather than only horizontally.
	e.OnPointerDown("se", geom.Point{X: 100, Y: 50})
	e.OnPointerMove(geom.Point{X: -200, Y: 75})

	assert.Equal(t, geom.Point{X: -200, Y: 0}, pointAt(t, s, "a2"))
	assert.Equal(t, geom.Point{X: -200, Y: -100}, pointAt(t, s, "a3"))
	assert.Equal(t, geom.Point{X: 0, Y: -100}, pointAt(t, s, "a4"))
}

func TestScaleNoOpDragIsIdentity(t *testing.T) {
	s, e := rectEngine(t)

	e.OnPointerDown("se", geom.Point{X: 100, Y: 50})
	e.OnPointerMove(geom.Point{X: 120, Y: 60})
	e.OnPointerMove(geom.Point{X: 100, Y: 50})

	assert.Equal(t, geom.Point{X: 100, Y: 0}, pointAt(t, s, "a2"))
	assert.Equal(t, geom.Point{X: 100, Y: 50}, pointAt(t, s, "a3"))
}

func TestScaleZeroExtentSelectionHoldsAxis(t *testing.T) {
	s := rectStore()
	s.SetSelection(path.Selection{PointIDs: []string{"a1", "a4"}})
	e := New(s)
	require.True(t, e.ResolveSelection())

	// Both points share X=0, so the box has zero width and the e handle
	// coincides with its anchor. Horizontal dragging must not divide by
	// zero or move anything sideways.
	e.OnPointerDown("e", geom.Point{X: 0, Y: 25})
	e.OnPointerMove(geom.Point{X: 80, Y: 25})

	assert.Equal(t, geom.Point{X: 0, Y: 0}, pointAt(t, s, "a1"))
	assert.Equal(t, geom.Point{X: 0, Y: 50}, pointAt(t, s, "a4"))
}

func TestScaleMovesControlPointsWithAnchor(t *testing.T) {
	s := rectStore()
	s.SetSelection(path.Selection{SubPathIDs: []string{"s2"}})
	e := New(s)
	require.True(t, e.ResolveSelection())

	// s2 spans {200,150,100,50}: m2 (200,200), c1 (300,200), controls at
	// (220,150) and (280,150). Scaling from nw doubles around (200,150).
	e.OnPointerDown("se", geom.Point{X: 300, Y: 200})
	e.OnPointerMove(geom.Point{X: 400, Y: 250})

	assert.Equal(t, geom.Point{X: 200, Y: 250}, pointAt(t, s, "m2"))
	assert.Equal(t, geom.Point{X: 400, Y: 250}, pointAt(t, s, "c1"))
	assert.Equal(t, geom.Point{X: 240, Y: 150}, pointAt(t, s, "c1#c1"))
	assert.Equal(t, geom.Point{X: 360, Y: 150}, pointAt(t, s, "c1#c2"))
}

func TestGestureMatchesAffineComposition(t *testing.T) {
	s, e := rectEngine(t)

	// A scale gesture is the anchor-relative affine applied to the
	// snapshot originals, nothing more.
	e.OnPointerDown("se", geom.Point{X: 100, Y: 50})
	e.OnPointerMove(geom.Point{X: 150, Y: 125})
	e.OnPointerUp()

	m := geom.ScaleAbout(geom.Point{X: 0, Y: 0}, 1.5, 2.5)
	assert.Equal(t, m.Apply(geom.Point{X: 100, Y: 0}), pointAt(t, s, "a2"))
	assert.Equal(t, m.Apply(geom.Point{X: 100, Y: 50}), pointAt(t, s, "a3"))
	assert.Equal(t, m.Apply(geom.Point{X: 0, Y: 50}), pointAt(t, s, "a4"))
	require.True(t, s.Undo())

	// Same for rotation around the frozen center.
	e.OnPointerDown("rotation", geom.Point{X: 50, Y: -24})
	e.OnPointerMove(geom.Point{X: 150, Y: 25})
	e.OnPointerUp()

	r := geom.RotateAbout(geom.Point{X: 50, Y: 25}, math.Pi/2)
	const eps = 1e-9
	want := r.Apply(geom.Point{X: 100, Y: 0})
	got := pointAt(t, s, "a2")
	assert.InDelta(t, want.X, got.X, eps)
	assert.InDelta(t, want.Y, got.Y, eps)
}

// --- rotation ---

func TestRotateQuarterTurn(t *testing.T) {
	s, e := rectEngine(t)

	// Rotation pivots on the box center (50,25). Start directly above the
	// center, then move the pointer to angle zero: a +90 degree delta.
	e.OnPointerDown("rotation", geom.Point{X: 50, Y: -24})
	assert.Equal(t, StateRotating, e.State())
	assert.Equal(t, ModeRotate, e.ActiveMode())

	e.OnPointerMove(geom.Point{X: 150, Y: 25})

	const eps = 1e-9
	a2 := pointAt(t, s, "a2")
	assert.InDelta(t, 75, a2.X, eps)
	assert.InDelta(t, 75, a2.Y, eps)
	a4 := pointAt(t, s, "a4")
	assert.InDelta(t, 25, a4.X, eps)
	assert.InDelta(t, -25, a4.Y, eps)

	e.OnPointerUp()
	assert.Equal(t, StateIdle, e.State())
}

func TestRotateBackToStartIsIdentity(t *testing.T) {
	s, e := rectEngine(t)

	e.OnPointerDown("rotation", geom.Point{X: 50, Y: -24})
	e.OnPointerMove(geom.Point{X: 150, Y: 25})
	e.OnPointerMove(geom.Point{X: 50, Y: -24})

	const eps = 1e-9
	a1 := pointAt(t, s, "a1")
	assert.InDelta(t, 0, a1.X, eps)
	assert.InDelta(t, 0, a1.Y, eps)
	a3 := pointAt(t, s, "a3")
	assert.InDelta(t, 100, a3.X, eps)
	assert.InDelta(t, 50, a3.Y, eps)
}

// --- moving ---

func TestMoveTranslatesSelection(t *testing.T) {
	s, e := rectEngine(t)

	e.StartMove(geom.Point{X: 30, Y: 30})
	assert.Equal(t, StateMoving, e.State())
	assert.Equal(t, ModeMove, e.ActiveMode())

	e.OnPointerMove(geom.Point{X: 40, Y: 10})

	assert.Equal(t, geom.Point{X: 10, Y: -20}, pointAt(t, s, "a1"))
	assert.Equal(t, geom.Point{X: 110, Y: 30}, pointAt(t, s, "a3"))

	e.OnPointerUp()
	assert.Equal(t, 1, s.UndoDepth())
}

// --- state machine ---

func TestGestureIgnoredWhenNotTransformable(t *testing.T) {
	s := rectStore()
	s.SetSelection(path.Selection{PointIDs: []string{"a1"}})
	e := New(s)
	e.ResolveSelection()

	e.OnPointerDown("se", geom.Point{X: 100, Y: 50})
	assert.Equal(t, StateIdle, e.State())
	assert.False(t, e.IsActive())

	e.StartMove(geom.Point{X: 0, Y: 0})
	assert.Equal(t, StateIdle, e.State())
}

func TestGestureIgnoredForUnknownHandle(t *testing.T) {
	_, e := rectEngine(t)

	e.OnPointerDown("center", geom.Point{X: 50, Y: 25})
	assert.Equal(t, StateIdle, e.State())
}

func TestGestureReentrancyIgnored(t *testing.T) {
	s, e := rectEngine(t)

	e.OnPointerDown("se", geom.Point{X: 100, Y: 50})
	require.Equal(t, StateScaling, e.State())

	// A second pointer-down mid-gesture must not restart or retarget the
	// gesture; the original snapshot stays in effect.
	e.OnPointerDown("rotation", geom.Point{X: 50, Y: -24})
	e.StartMove(geom.Point{X: 0, Y: 0})
	assert.Equal(t, StateScaling, e.State())

	e.OnPointerMove(geom.Point{X: 200, Y: 100})
	assert.Equal(t, geom.Point{X: 200, Y: 100}, pointAt(t, s, "a3"))
}

func TestGestureCommitIsOneHistoryEntry(t *testing.T) {
	s, e := rectEngine(t)
	require.Equal(t, 0, s.UndoDepth())

	e.OnPointerDown("se", geom.Point{X: 100, Y: 50})
	e.OnPointerMove(geom.Point{X: 120, Y: 60})
	e.OnPointerMove(geom.Point{X: 150, Y: 75})
	e.OnPointerMove(geom.Point{X: 200, Y: 100})
	e.OnPointerUp()

	assert.Equal(t, 1, s.UndoDepth())

	require.True(t, s.Undo())
	assert.Equal(t, geom.Point{X: 100, Y: 50}, pointAt(t, s, "a3"))
	assert.Equal(t, geom.Point{X: 100, Y: 0}, pointAt(t, s, "a2"))
}

func TestGestureCancelRollsBackExactly(t *testing.T) {
	s, e := rectEngine(t)

	e.OnPointerDown("se", geom.Point{X: 100, Y: 50})
	e.OnPointerMove(geom.Point{X: 300, Y: 200})
	e.OnCancel()

	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, geom.Point{X: 0, Y: 0}, pointAt(t, s, "a1"))
	assert.Equal(t, geom.Point{X: 100, Y: 0}, pointAt(t, s, "a2"))
	assert.Equal(t, geom.Point{X: 100, Y: 50}, pointAt(t, s, "a3"))
	assert.Equal(t, geom.Point{X: 0, Y: 50}, pointAt(t, s, "a4"))
	assert.Equal(t, 0, s.UndoDepth())
}

func TestGestureCancelWhenIdleIsNoOp(t *testing.T) {
	s, e := rectEngine(t)

	e.OnCancel()
	e.OnPointerUp()
	e.OnPointerMove(geom.Point{X: 10, Y: 10})

	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, geom.Point{X: 100, Y: 50}, pointAt(t, s, "a3"))
	assert.Equal(t, 0, s.UndoDepth())
}

func TestStateChangeCallbackFiresOnTransitions(t *testing.T) {
	_, e := rectEngine(t)

	var seen []State
	e.OnStateChange(func(s State) { seen = append(seen, s) })

	e.OnPointerDown("se", geom.Point{X: 100, Y: 50})
	e.OnPointerMove(geom.Point{X: 120, Y: 60})
	e.OnPointerMove(geom.Point{X: 140, Y: 70})
	e.OnPointerUp()
	e.OnPointerUp()

	assert.Equal(t, []State{StateScaling, StateIdle}, seen)
}

// failingStore rejects every mutation once the gesture is under way.
type failingStore struct {
	*path.Store
}

func (f *failingStore) MutatePoints(updates []path.PointUpdate) error {
	return errors.New("store rejected mutation")
}

func TestMutationFailureCancelsGesture(t *testing.T) {
	s := rectStore()
	selectRect(s)
	e := New(&failingStore{Store: s})
	require.True(t, e.ResolveSelection())

	e.OnPointerDown("se", geom.Point{X: 100, Y: 50})
	require.Equal(t, StateScaling, e.State())

	e.OnPointerMove(geom.Point{X: 200, Y: 100})

	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, geom.Point{X: 100, Y: 50}, pointAt(t, s, "a3"))
	assert.Equal(t, 0, s.UndoDepth())
}
