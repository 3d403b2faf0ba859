package collab

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/regalagram/sspe-sub014/internal/path"
)

// DocumentState holds the authoritative path document for a room.
type DocumentState struct {
	mu        sync.RWMutex
	doc       *path.Document
	serverSeq int64
	opLog     []Operation
}

// NewDocumentState creates a new document state from an initial document.
func NewDocumentState(doc *path.Document) *DocumentState {
	return &DocumentState{
		doc:   doc,
		opLog: make([]Operation, 0),
	}
}

// Document returns the current document (caller must not mutate).
func (ds *DocumentState) Document() *path.Document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.doc
}

// ServerSeq returns the current server sequence number.
func (ds *DocumentState) ServerSeq() int64 {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.serverSeq
}

// ApplyOperation applies an operation to the document and returns the
// server sequence assigned to it.
func (ds *DocumentState) ApplyOperation(op Operation) (int64, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if err := ds.applyOperationLocked(op); err != nil {
		return 0, err
	}

	ds.serverSeq++
	ds.opLog = append(ds.opLog, op)

	return ds.serverSeq, nil
}

func (ds *DocumentState) applyOperationLocked(op Operation) error {
	switch op.Type {
	case OpPointsUpdate:
		return ds.applyPointsUpdate(op)
	case OpSubPathCreate:
		return ds.applySubPathCreate(op)
	case OpSubPathDelete:
		return ds.applySubPathDelete(op)
	case OpPathRename:
		return ds.applyPathRename(op)
	default:
		return fmt.Errorf("unknown operation type: %s", op.Type)
	}
}

// applyPointsUpdate writes the final point positions of a committed
// gesture. Unknown point ids reject the whole operation so clients never
// diverge silently.
func (ds *DocumentState) applyPointsUpdate(op Operation) error {
	if len(op.Points) == 0 {
		return fmt.Errorf("points.update with no points")
	}

	for _, pc := range op.Points {
		if _, ok := ds.doc.Point(pc.PointID); !ok {
			return fmt.Errorf("point not found: %s", pc.PointID)
		}
	}
	for _, pc := range op.Points {
		ds.doc.SetPoint(pc.PointID, pc.To)
	}
	return nil
}

func (ds *DocumentState) applySubPathCreate(op Operation) error {
	p, ok := ds.doc.Paths[op.PathID]
	if !ok {
		return fmt.Errorf("path not found: %s", op.PathID)
	}

	var sp path.SubPath
	if err := json.Unmarshal(op.SubPath, &sp); err != nil {
		return fmt.Errorf("invalid subpath: %w", err)
	}

	var cmds []path.Command
	if len(op.Commands) > 0 {
		if err := json.Unmarshal(op.Commands, &cmds); err != nil {
			return fmt.Errorf("invalid commands: %w", err)
		}
	}

	for _, cmd := range cmds {
		ds.doc.Commands[cmd.ID] = cmd
	}
	ds.doc.SubPaths[sp.ID] = sp
	p.SubPaths = append(p.SubPaths, sp.ID)
	ds.doc.Paths[op.PathID] = p

	return nil
}

func (ds *DocumentState) applySubPathDelete(op Operation) error {
	sp, ok := ds.doc.SubPaths[op.SubPathID]
	if !ok {
		return fmt.Errorf("subpath not found: %s", op.SubPathID)
	}

	for _, cmdID := range sp.Commands {
		delete(ds.doc.Commands, cmdID)
	}
	delete(ds.doc.SubPaths, op.SubPathID)

	// Unlink from the owning path
	if p, ok := ds.doc.Paths[op.PathID]; ok {
		kept := make([]string, 0, len(p.SubPaths))
		for _, id := range p.SubPaths {
			if id != op.SubPathID {
				kept = append(kept, id)
			}
		}
		p.SubPaths = kept
		ds.doc.Paths[op.PathID] = p
	}

	return nil
}

func (ds *DocumentState) applyPathRename(op Operation) error {
	p, ok := ds.doc.Paths[op.PathID]
	if !ok {
		return fmt.Errorf("path not found: %s", op.PathID)
	}
	p.Name = op.Name
	ds.doc.Paths[op.PathID] = p
	return nil
}

// GetServerTimestamp returns the current server timestamp.
func GetServerTimestamp() int64 {
	return time.Now().UnixMilli()
}
