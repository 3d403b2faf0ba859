package collab

import (
	"encoding/json"

	"github.com/regalagram/sspe-sub014/internal/geom"
)

type Message struct {
	Type      string          `json:"type"`
	ProjectID string          `json:"projectId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	UserID    string          `json:"userId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

// PresencePayload is what one connected editor is doing in the document:
// where their cursor is, which points and sub-paths they have selected,
// and the transform mode ("scale", "rotate", "move") while a gesture is
// in flight. GestureMode empty means idle.
type PresencePayload struct {
	Cursor             *geom.Point `json:"cursor,omitempty"`
	SelectedPointIDs   []string    `json:"selectedPointIds,omitempty"`
	SelectedSubPathIDs []string    `json:"selectedSubPathIds,omitempty"`
	GestureMode        string      `json:"gestureMode,omitempty"`
	DisplayName        string      `json:"displayName,omitempty"`
}

type PresenceStatePayload struct {
	Presences map[string]*PresencePayload `json:"presences"`
}

type PresenceJoinPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type PresenceLeavePayload struct {
	UserID string `json:"userId"`
}

const (
	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceJoin   = "presence.join"
	TypePresenceLeave  = "presence.leave"
	TypeError          = "error"

	// Connection
	TypeWelcome = "welcome"

	// Document sync
	TypeDocSync = "doc.sync"

	// Operation message types
	TypeOpSubmit    = "op.submit"
	TypeOpAck       = "op.ack"
	TypeOpNack      = "op.nack"
	TypeOpBroadcast = "op.broadcast"
)

// --- Operation Types ---

// PointChange is one point write inside a points.update operation. The
// previous position makes the operation invertible for client-side undo.
type PointChange struct {
	PointID  string      `json:"pointId"`
	To       geom.Point  `json:"to"`
	Previous *geom.Point `json:"previous,omitempty"`
}

// Operation represents a document mutation. A committed transform gesture
// arrives as a single points.update carrying the final position of every
// affected point; intermediate pointer-move states never reach the wire.
type Operation struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	ClientSeq int64  `json:"clientSeq"`

	// For points.update
	Points []PointChange `json:"points,omitempty"`

	// For subpath.create / subpath.delete
	PathID          string          `json:"pathId,omitempty"`
	SubPathID       string          `json:"subPathId,omitempty"`
	SubPath         json.RawMessage `json:"subPath,omitempty"`
	Commands        json.RawMessage `json:"commands,omitempty"`
	PreviousSubPath json.RawMessage `json:"previousSubPath,omitempty"`

	// For path.rename
	Name         string `json:"name,omitempty"`
	PreviousName string `json:"previousName,omitempty"`
}

// Operation type identifiers.
const (
	OpPointsUpdate  = "points.update"
	OpSubPathCreate = "subpath.create"
	OpSubPathDelete = "subpath.delete"
	OpPathRename    = "path.rename"
)

// OperationSubmitPayload is the payload for op.submit messages.
type OperationSubmitPayload struct {
	Operation Operation `json:"operation"`
}

// OperationAckPayload is the payload for op.ack messages.
type OperationAckPayload struct {
	OperationID     string `json:"operationId"`
	ServerSeq       int64  `json:"serverSeq"`
	ServerTimestamp int64  `json:"serverTimestamp"`
}

// OperationNackPayload is the payload for op.nack messages.
type OperationNackPayload struct {
	OperationID string `json:"operationId"`
	Reason      string `json:"reason"`
}

// OperationBroadcastPayload is the payload for op.broadcast messages.
type OperationBroadcastPayload struct {
	Operation Operation `json:"operation"`
	UserID    string    `json:"userId"`
	ServerSeq int64     `json:"serverSeq"`
}

// DocSyncPayload carries the full authoritative document.
type DocSyncPayload struct {
	Document  json.RawMessage `json:"document"`
	ServerSeq int64           `json:"serverSeq"`
}
