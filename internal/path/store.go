package path

import (
	"encoding/json"
	"errors"

	"github.com/regalagram/sspe-sub014/internal/geom"
)

// ErrNoDocument is returned when a mutation arrives while no document is
// loaded (e.g. the document was swapped out mid-gesture).
var ErrNoDocument = errors.New("no document loaded")

// PointUpdate is a single point write through the mutation API.
type PointUpdate struct {
	PointID string     `json:"pointId"`
	To      geom.Point `json:"to"`
}

// changeSet records the original position of every point touched between
// BeginChange and Commit/Rollback. Only the first write per point records
// an original, so a change always restores to the pre-change state no
// matter how many intermediate writes happened.
type changeSet map[string]geom.Point

// Store owns the path document, the current selection, and the undo/redo
// history. All point mutations go through MutatePoints; writes inside a
// BeginChange/CommitChange window coalesce into a single history entry, so
// a full pointer gesture undoes as one unit.
type Store struct {
	doc  *Document
	sel  Selection
	zoom float64

	pending changeSet
	undo    []changeSet
	redo    []changeSet
}

// NewStore creates an empty store at zoom 1.
func NewStore() *Store {
	return &Store{zoom: 1}
}

// LoadDocument replaces the document from JSON and resets selection,
// history, and any pending change.
func (s *Store) LoadDocument(jsonData string) error {
	var doc Document
	if err := json.Unmarshal([]byte(jsonData), &doc); err != nil {
		return err
	}
	s.SetDocument(&doc)
	return nil
}

// SetDocument replaces the document and resets selection, history, and any
// pending change.
func (s *Store) SetDocument(doc *Document) {
	s.doc = doc
	s.sel = Selection{}
	s.pending = nil
	s.undo = nil
	s.redo = nil
}

// Document returns the current document, or nil.
func (s *Store) Document() *Document {
	return s.doc
}

// DocumentJSON serializes the document.
func (s *Store) DocumentJSON() string {
	if s.doc == nil {
		return "{}"
	}
	data, _ := json.Marshal(s.doc)
	return string(data)
}

// SetSelection replaces the selection.
func (s *Store) SetSelection(sel Selection) {
	s.sel = sel
}

// Selection returns the current selection.
func (s *Store) Selection() Selection {
	return s.sel
}

// SetZoom records the viewport zoom. Zoom only sizes fixed-offset handle
// geometry; it never enters transform math.
func (s *Store) SetZoom(zoom float64) {
	if zoom > 0 {
		s.zoom = zoom
	}
}

// Zoom returns the current viewport zoom.
func (s *Store) Zoom() float64 {
	return s.zoom
}

// PointByID resolves a point id to its current position.
func (s *Store) PointByID(pointID string) (geom.Point, bool) {
	if s.doc == nil {
		return geom.Point{}, false
	}
	return s.doc.Point(pointID)
}

// SubPathPointIDs returns every point id of a sub-path.
func (s *Store) SubPathPointIDs(subPathID string) []string {
	if s.doc == nil {
		return nil
	}
	return s.doc.SubPathPointIDs(subPathID)
}

// CompanionPointIDs returns the control points that travel with an anchor.
func (s *Store) CompanionPointIDs(pointID string) []string {
	if s.doc == nil {
		return nil
	}
	return s.doc.CompanionPointIDs(pointID)
}

// MutatePoints writes new positions for the given points. Unknown ids are
// silently skipped. Inside a change window the pre-change originals are
// recorded for coalesced undo; outside one, each call is its own history
// entry.
func (s *Store) MutatePoints(updates []PointUpdate) error {
	if s.doc == nil {
		return ErrNoDocument
	}

	changes := s.pending
	standalone := changes == nil
	if standalone {
		changes = changeSet{}
	}

	for _, u := range updates {
		orig, ok := s.doc.Point(u.PointID)
		if !ok {
			continue
		}
		if _, seen := changes[u.PointID]; !seen {
			changes[u.PointID] = orig
		}
		s.doc.SetPoint(u.PointID, u.To)
	}

	if standalone && len(changes) > 0 {
		s.pushUndo(changes)
	}
	return nil
}

// BeginChange opens a coalescing window. All MutatePoints calls until
// CommitChange or RollbackChange form one history entry. Calling
// BeginChange while a window is open is a no-op; the outer window wins.
func (s *Store) BeginChange() {
	if s.pending == nil {
		s.pending = changeSet{}
	}
}

// CommitChange closes the window and records the accumulated change as a
// single undo entry. An empty window records nothing.
func (s *Store) CommitChange() {
	if s.pending == nil {
		return
	}
	if len(s.pending) > 0 {
		s.pushUndo(s.pending)
	}
	s.pending = nil
}

// RollbackChange restores every point touched since BeginChange to its
// pre-change position and discards the window without recording history.
func (s *Store) RollbackChange() {
	if s.pending == nil {
		return
	}
	if s.doc != nil {
		for id, orig := range s.pending {
			s.doc.SetPoint(id, orig)
		}
	}
	s.pending = nil
}

// Undo reverts the most recent change. Returns false if there is nothing
// to undo.
func (s *Store) Undo() bool {
	n := len(s.undo)
	if n == 0 || s.doc == nil {
		return false
	}
	entry := s.undo[n-1]
	s.undo = s.undo[:n-1]
	s.redo = append(s.redo, s.swapPositions(entry))
	return true
}

// Redo re-applies the most recently undone change.
func (s *Store) Redo() bool {
	n := len(s.redo)
	if n == 0 || s.doc == nil {
		return false
	}
	entry := s.redo[n-1]
	s.redo = s.redo[:n-1]
	s.undo = append(s.undo, s.swapPositions(entry))
	return true
}

// UndoDepth returns the number of recorded undo entries.
func (s *Store) UndoDepth() int {
	return len(s.undo)
}

func (s *Store) pushUndo(entry changeSet) {
	s.undo = append(s.undo, entry)
	s.redo = nil
}

// swapPositions writes the entry's positions into the document and returns
// the displaced values, so undo and redo are each other's inverse.
func (s *Store) swapPositions(entry changeSet) changeSet {
	inverse := make(changeSet, len(entry))
	for id, p := range entry {
		if cur, ok := s.doc.Point(id); ok {
			inverse[id] = cur
		}
		s.doc.SetPoint(id, p)
	}
	return inverse
}
