package transform

import (
	"math"

	"github.com/regalagram/sspe-sub014/internal/geom"
	"github.com/regalagram/sspe-sub014/internal/path"
)

type geomUpdate struct {
	id string
	to geom.Point
}

func toPointUpdates(updates []geomUpdate) []path.PointUpdate {
	out := make([]path.PointUpdate, len(updates))
	for i, u := range updates {
		out[i] = path.PointUpdate{PointID: u.id, To: u.to}
	}
	return out
}

// applyScale maps every snapshot original through an anchor-relative scale
// derived from the pointer position:
//
//	scale = (pointer - anchor) / (handleStart - anchor)  per axis
//
// Edge handles have handleStart on the anchor's axis line, so the
// orthogonal axis naturally holds at factor 1. A zero denominator (edge
// handle, or a degenerate zero-extent start box) also holds that axis at
// 1 instead of propagating NaN or Inf into coordinates. Negative factors
// are allowed and mirror the geometry across the anchor.
func (e *Engine) applyScale(pos geom.Point) []geomUpdate {
	snap := e.snap

	sx, sy := 1.0, 1.0
	if dx := snap.handleStart.X - snap.anchor.X; dx != 0 {
		sx = (pos.X - snap.anchor.X) / dx
	}
	if dy := snap.handleStart.Y - snap.anchor.Y; dy != 0 {
		sy = (pos.Y - snap.anchor.Y) / dy
	}

	if e.proportional {
		s := proportionalFactor(sx, sy)
		sx, sy = s, s
	}

	m := geom.ScaleAbout(snap.anchor, sx, sy)
	updates := make([]geomUpdate, len(snap.ids))
	for i, id := range snap.ids {
		updates[i] = geomUpdate{
			id: id,
			to: m.Apply(snap.originals[i]),
		}
	}
	return updates
}

// proportionalFactor unifies both axes to the single factor with the
// larger magnitude, sign included. A locked drag therefore always has
// equal X and Y factors; when the dominant axis is mirrored, both axes
// mirror with it.
func proportionalFactor(sx, sy float64) float64 {
	if math.Abs(sy) > math.Abs(sx) {
		return sy
	}
	return sx
}

// applyRotate rotates every snapshot original around the selection's
// gesture-start center by the difference between the pointer's current
// angle from that center and its angle at gesture start, both via atan2.
// The anchor stays fixed for the whole gesture even though the live box
// may appear to move, which is what makes rotation feel in-place.
func (e *Engine) applyRotate(pos geom.Point) []geomUpdate {
	snap := e.snap
	center := snap.anchor

	theta := pos.AngleFrom(center) - snap.pointerStart.AngleFrom(center)

	m := geom.RotateAbout(center, theta)
	updates := make([]geomUpdate, len(snap.ids))
	for i, id := range snap.ids {
		updates[i] = geomUpdate{
			id: id,
			to: m.Apply(snap.originals[i]),
		}
	}
	return updates
}

// applyMove translates every snapshot original by the pointer delta.
func (e *Engine) applyMove(pos geom.Point) []geomUpdate {
	snap := e.snap
	delta := pos.Sub(snap.pointerStart)

	m := geom.Translate(delta.X, delta.Y)
	updates := make([]geomUpdate, len(snap.ids))
	for i, id := range snap.ids {
		updates[i] = geomUpdate{
			id: id,
			to: m.Apply(snap.originals[i]),
		}
	}
	return updates
}
