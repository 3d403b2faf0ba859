package transform

import "github.com/regalagram/sspe-sub014/internal/geom"

// ResolveSelection re-reads the store's selection and path geometry and
// produces the canonical flat list of transformable point ids: every
// selected point, the control points that travel with selected curve
// anchors, and every point of each selected sub-path. Order follows the
// selection, duplicates are dropped, ids that don't resolve are excluded.
//
// The selection is transformable when it covers at least two points or
// includes at least one full sub-path. A lone point has no bounding box
// worth transforming, so it resolves to not-transformable and the engine
// exposes no bounds or handles for it.
//
// Pure over the store's current state; call it on every selection or path
// change.
func (e *Engine) ResolveSelection() bool {
	sel := e.store.Selection()

	var affected []string
	seen := map[string]bool{}
	add := func(id string) {
		if seen[id] {
			return
		}
		if _, ok := e.store.PointByID(id); !ok {
			return
		}
		seen[id] = true
		affected = append(affected, id)
	}

	for _, id := range sel.PointIDs {
		add(id)
		for _, companion := range e.store.CompanionPointIDs(id) {
			add(companion)
		}
	}

	fullSubPath := false
	for _, subID := range sel.SubPathIDs {
		ids := e.store.SubPathPointIDs(subID)
		if len(ids) == 0 {
			continue
		}
		fullSubPath = true
		for _, id := range ids {
			add(id)
		}
	}

	e.affected = affected
	e.transformable = len(affected) >= 2 || fullSubPath
	return e.transformable
}

// affectedPoints reads the current position of every affected point.
// Points that no longer resolve (deleted mid-frame) are skipped; the ids
// slice stays aligned with the returned positions.
func (e *Engine) affectedPoints() (ids []string, points []geom.Point) {
	for _, id := range e.affected {
		p, ok := e.store.PointByID(id)
		if !ok {
			continue
		}
		ids = append(ids, id)
		points = append(points, p)
	}
	return ids, points
}
