package collab

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// PresenceManager tracks the merged presence of every editor in a room.
//
// Updates merge field-wise rather than replacing the record: cursor
// samples arrive far more often than selection changes, and a cursor-only
// update must not wipe the last known selection. GestureMode is taken
// verbatim on every update because empty means idle, and idleness has to
// become visible the moment a gesture commits or cancels. Clients clear a
// selection by sending an empty array, not by omitting the field.
type PresenceManager struct {
	mu        sync.RWMutex
	presences map[string]*PresencePayload // userID -> merged state
}

func NewPresenceManager() *PresenceManager {
	return &PresenceManager{
		presences: make(map[string]*PresencePayload),
	}
}

func (pm *PresenceManager) Update(userID string, p *PresencePayload) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	cur, ok := pm.presences[userID]
	if !ok {
		cur = &PresencePayload{}
		pm.presences[userID] = cur
	}

	if p.Cursor != nil {
		cur.Cursor = p.Cursor
	}
	if p.SelectedPointIDs != nil {
		cur.SelectedPointIDs = p.SelectedPointIDs
	}
	if p.SelectedSubPathIDs != nil {
		cur.SelectedSubPathIDs = p.SelectedSubPathIDs
	}
	if p.DisplayName != "" {
		cur.DisplayName = p.DisplayName
	}
	cur.GestureMode = p.GestureMode
}

func (pm *PresenceManager) Remove(userID string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	delete(pm.presences, userID)
}

// Snapshot returns a copy of every user's merged presence.
func (pm *PresenceManager) Snapshot() map[string]*PresencePayload {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	out := make(map[string]*PresencePayload, len(pm.presences))
	for userID, p := range pm.presences {
		cp := *p
		out[userID] = &cp
	}
	return out
}

// ActiveGestureUsers returns the ids of users currently mid-gesture, so
// the frontend can highlight geometry someone else is transforming.
func (pm *PresenceManager) ActiveGestureUsers() []string {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	var ids []string
	for userID, p := range pm.presences {
		if p.GestureMode != "" {
			ids = append(ids, userID)
		}
	}
	return ids
}

func (pm *PresenceManager) StateMessage() *Message {
	payload, err := json.Marshal(PresenceStatePayload{Presences: pm.Snapshot()})
	if err != nil {
		slog.Error("marshal presence state", "error", err)
		return nil
	}
	return &Message{
		Type:    TypePresenceState,
		Payload: payload,
	}
}
