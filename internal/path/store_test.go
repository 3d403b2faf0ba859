package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regalagram/sspe-sub014/internal/geom"
)

func lineDocument() *Document {
	doc := NewDocument("test", 100, 100)
	doc.Order = []string{"p1"}
	doc.Paths["p1"] = Path{ID: "p1", Name: "line", SubPaths: []string{"s1"}}
	doc.SubPaths["s1"] = SubPath{ID: "s1", Commands: []string{"a", "b", "c"}}
	doc.Commands["a"] = Command{ID: "a", Type: CommandMove, Point: geom.Point{X: 0, Y: 0}}
	doc.Commands["b"] = Command{ID: "b", Type: CommandLine, Point: geom.Point{X: 10, Y: 0}}
	doc.Commands["c"] = Command{
		ID:    "c",
		Type:  CommandCubic,
		Point: geom.Point{X: 20, Y: 10},
		C1:    &geom.Point{X: 12, Y: 2},
		C2:    &geom.Point{X: 18, Y: 8},
	}
	return doc
}

func TestPointIDResolution(t *testing.T) {
	doc := lineDocument()

	p, ok := doc.Point("b")
	require.True(t, ok)
	assert.Equal(t, geom.Point{X: 10, Y: 0}, p)

	c1, ok := doc.Point("c#c1")
	require.True(t, ok)
	assert.Equal(t, geom.Point{X: 12, Y: 2}, c1)

	_, ok = doc.Point("missing")
	assert.False(t, ok)

	// Line commands have no control points
	_, ok = doc.Point("b#c1")
	assert.False(t, ok)
}

func TestCompanionPointIDs(t *testing.T) {
	doc := lineDocument()

	assert.Equal(t, []string{"c#c1", "c#c2"}, doc.CompanionPointIDs("c"))
	assert.Empty(t, doc.CompanionPointIDs("b"))
	assert.Empty(t, doc.CompanionPointIDs("c#c1"))
}

func TestSubPathPointIDs(t *testing.T) {
	doc := lineDocument()
	assert.Equal(t, []string{"a", "b", "c", "c#c1", "c#c2"}, doc.SubPathPointIDs("s1"))
	assert.Empty(t, doc.SubPathPointIDs("nope"))
}

func TestMutatePointsSkipsUnknownIDs(t *testing.T) {
	s := NewStore()
	s.SetDocument(lineDocument())

	err := s.MutatePoints([]PointUpdate{
		{PointID: "a", To: geom.Point{X: 1, Y: 1}},
		{PointID: "ghost", To: geom.Point{X: 99, Y: 99}},
	})
	require.NoError(t, err)

	p, _ := s.PointByID("a")
	assert.Equal(t, geom.Point{X: 1, Y: 1}, p)
}

func TestMutatePointsWithoutDocument(t *testing.T) {
	s := NewStore()
	err := s.MutatePoints([]PointUpdate{{PointID: "a", To: geom.Point{X: 1, Y: 1}}})
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestChangeWindowCoalescesHistory(t *testing.T) {
	s := NewStore()
	s.SetDocument(lineDocument())

	s.BeginChange()
	// Many per-frame writes during one gesture
	for i := 1; i <= 5; i++ {
		err := s.MutatePoints([]PointUpdate{
			{PointID: "a", To: geom.Point{X: float64(i), Y: 0}},
			{PointID: "b", To: geom.Point{X: 10 + float64(i), Y: 0}},
		})
		require.NoError(t, err)
	}
	s.CommitChange()

	assert.Equal(t, 1, s.UndoDepth(), "whole gesture should be one history entry")

	require.True(t, s.Undo())
	a, _ := s.PointByID("a")
	b, _ := s.PointByID("b")
	assert.Equal(t, geom.Point{X: 0, Y: 0}, a)
	assert.Equal(t, geom.Point{X: 10, Y: 0}, b)

	require.True(t, s.Redo())
	a, _ = s.PointByID("a")
	assert.Equal(t, geom.Point{X: 5, Y: 0}, a)
}

func TestRollbackRestoresWithoutHistory(t *testing.T) {
	s := NewStore()
	s.SetDocument(lineDocument())

	s.BeginChange()
	require.NoError(t, s.MutatePoints([]PointUpdate{{PointID: "a", To: geom.Point{X: 77, Y: 77}}}))
	require.NoError(t, s.MutatePoints([]PointUpdate{{PointID: "a", To: geom.Point{X: 88, Y: 88}}}))
	s.RollbackChange()

	a, _ := s.PointByID("a")
	assert.Equal(t, geom.Point{X: 0, Y: 0}, a, "rollback must restore the pre-change position")
	assert.Equal(t, 0, s.UndoDepth())
	assert.False(t, s.Undo())
}

func TestStandaloneMutateIsItsOwnHistoryEntry(t *testing.T) {
	s := NewStore()
	s.SetDocument(lineDocument())

	require.NoError(t, s.MutatePoints([]PointUpdate{{PointID: "a", To: geom.Point{X: 5, Y: 5}}}))
	assert.Equal(t, 1, s.UndoDepth())
}

func TestCommitEmptyWindowRecordsNothing(t *testing.T) {
	s := NewStore()
	s.SetDocument(lineDocument())

	s.BeginChange()
	s.CommitChange()
	assert.Equal(t, 0, s.UndoDepth())
}

func TestSetDocumentResetsState(t *testing.T) {
	s := NewStore()
	s.SetDocument(lineDocument())
	s.SetSelection(Selection{PointIDs: []string{"a"}})
	require.NoError(t, s.MutatePoints([]PointUpdate{{PointID: "a", To: geom.Point{X: 5, Y: 5}}}))

	s.SetDocument(lineDocument())
	assert.True(t, s.Selection().IsEmpty())
	assert.Equal(t, 0, s.UndoDepth())
}

func TestZoomIgnoresNonPositive(t *testing.T) {
	s := NewStore()
	assert.Equal(t, 1.0, s.Zoom())
	s.SetZoom(2.5)
	assert.Equal(t, 2.5, s.Zoom())
	s.SetZoom(0)
	assert.Equal(t, 2.5, s.Zoom())
}
