package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regalagram/sspe-sub014/internal/geom"
	"github.com/regalagram/sspe-sub014/internal/path"
)

func TestHandlesNineInFixedOrder(t *testing.T) {
	s := rectStore()
	selectRect(s)
	e := New(s)
	require.True(t, e.ResolveSelection())

	bounds, handles := e.ComputeBoundsAndHandles()
	require.NotNil(t, bounds)
	assert.Equal(t, geom.Rect{X: 0, Y: 0, Width: 100, Height: 50}, *bounds)

	require.Len(t, handles, 9)
	wantOrder := []string{"nw", "n", "ne", "e", "se", "s", "sw", "w", "rotation"}
	for i, h := range handles {
		assert.Equal(t, wantOrder[i], h.ID)
	}
}

func TestHandlePositionsAndCursors(t *testing.T) {
	s := rectStore()
	selectRect(s)
	e := New(s)
	require.True(t, e.ResolveSelection())

	_, handles := e.ComputeBoundsAndHandles()
	byID := map[string]Handle{}
	for _, h := range handles {
		byID[h.ID] = h
	}

	assert.Equal(t, geom.Point{X: 0, Y: 0}, byID["nw"].Position)
	assert.Equal(t, geom.Point{X: 50, Y: 0}, byID["n"].Position)
	assert.Equal(t, geom.Point{X: 100, Y: 0}, byID["ne"].Position)
	assert.Equal(t, geom.Point{X: 100, Y: 25}, byID["e"].Position)
	assert.Equal(t, geom.Point{X: 100, Y: 50}, byID["se"].Position)
	assert.Equal(t, geom.Point{X: 50, Y: 50}, byID["s"].Position)
	assert.Equal(t, geom.Point{X: 0, Y: 50}, byID["sw"].Position)
	assert.Equal(t, geom.Point{X: 0, Y: 25}, byID["w"].Position)

	assert.Equal(t, HandleCorner, byID["se"].Kind)
	assert.Equal(t, HandleEdge, byID["n"].Kind)
	assert.Equal(t, HandleRotation, byID["rotation"].Kind)

	assert.Equal(t, "nwse-resize", byID["nw"].Cursor)
	assert.Equal(t, "nesw-resize", byID["ne"].Cursor)
	assert.Equal(t, "ns-resize", byID["s"].Cursor)
	assert.Equal(t, "ew-resize", byID["w"].Cursor)
	assert.Equal(t, "grab", byID["rotation"].Cursor)
}

func TestRotationHandleScalesWithZoom(t *testing.T) {
	s := rectStore()
	selectRect(s)
	e := New(s)
	require.True(t, e.ResolveSelection())

	_, handles := e.ComputeBoundsAndHandles()
	assert.Equal(t, geom.Point{X: 50, Y: -24}, handles[8].Position)

	s.SetZoom(2)
	_, handles = e.ComputeBoundsAndHandles()
	assert.Equal(t, geom.Point{X: 50, Y: -12}, handles[8].Position)

	s.SetZoom(0.5)
	_, handles = e.ComputeBoundsAndHandles()
	assert.Equal(t, geom.Point{X: 50, Y: -48}, handles[8].Position)
}

func TestHandlesNilWhenNotTransformable(t *testing.T) {
	s := rectStore()
	e := New(s)
	e.ResolveSelection()

	bounds, handles := e.ComputeBoundsAndHandles()
	assert.Nil(t, bounds)
	assert.Nil(t, handles)
}

func TestHandlesDeterministicForSamePoints(t *testing.T) {
	s := rectStore()
	selectRect(s)
	e := New(s)
	require.True(t, e.ResolveSelection())

	b1, h1 := e.ComputeBoundsAndHandles()
	b2, h2 := e.ComputeBoundsAndHandles()
	assert.Equal(t, *b1, *b2)
	assert.Equal(t, h1, h2)
}

func TestAnchorOppositeHandle(t *testing.T) {
	b := geom.Rect{X: 0, Y: 0, Width: 100, Height: 50}
	for _, tc := range []struct {
		id   string
		want geom.Point
	}{
		{"nw", geom.Point{X: 100, Y: 50}},
		{"ne", geom.Point{X: 0, Y: 50}},
		{"se", geom.Point{X: 0, Y: 0}},
		{"sw", geom.Point{X: 100, Y: 0}},
		{"n", geom.Point{X: 50, Y: 50}},
		{"s", geom.Point{X: 50, Y: 0}},
		{"e", geom.Point{X: 0, Y: 25}},
		{"w", geom.Point{X: 100, Y: 25}},
		{"rotation", geom.Point{X: 50, Y: 25}},
	} {
		assert.Equal(t, tc.want, anchorFor(Handle{ID: tc.id}, b), tc.id)
	}
}

func TestBoundsFollowPointMutations(t *testing.T) {
	s := rectStore()
	selectRect(s)
	e := New(s)
	require.True(t, e.ResolveSelection())

	err := s.MutatePoints([]path.PointUpdate{{PointID: "a3", To: geom.Point{X: 140, Y: 90}}})
	require.NoError(t, err)

	bounds, _ := e.ComputeBoundsAndHandles()
	assert.Equal(t, geom.Rect{X: 0, Y: 0, Width: 140, Height: 90}, *bounds)
}
