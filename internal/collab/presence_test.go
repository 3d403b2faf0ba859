package collab

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regalagram/sspe-sub014/internal/geom"
)

func TestPresenceCursorUpdateKeepsSelection(t *testing.T) {
	pm := NewPresenceManager()

	pm.Update("u1", &PresencePayload{
		SelectedPointIDs:   []string{"a", "b"},
		SelectedSubPathIDs: []string{"s1"},
	})
	pm.Update("u1", &PresencePayload{Cursor: &geom.Point{X: 10, Y: 20}})

	p := pm.Snapshot()["u1"]
	require.NotNil(t, p)
	assert.Equal(t, &geom.Point{X: 10, Y: 20}, p.Cursor)
	assert.Equal(t, []string{"a", "b"}, p.SelectedPointIDs)
	assert.Equal(t, []string{"s1"}, p.SelectedSubPathIDs)
}

func TestPresenceEmptyArrayClearsSelection(t *testing.T) {
	pm := NewPresenceManager()

	pm.Update("u1", &PresencePayload{SelectedPointIDs: []string{"a"}})

	// The wire form of a clear is an explicit empty array.
	var clear PresencePayload
	require.NoError(t, json.Unmarshal([]byte(`{"selectedPointIds":[]}`), &clear))
	pm.Update("u1", &clear)

	assert.Empty(t, pm.Snapshot()["u1"].SelectedPointIDs)
}

func TestPresenceGestureModeIsVerbatim(t *testing.T) {
	pm := NewPresenceManager()

	pm.Update("u1", &PresencePayload{GestureMode: "scale"})
	assert.Equal(t, []string{"u1"}, pm.ActiveGestureUsers())

	// An update without a gesture mode means the gesture ended; it must
	// not be sticky the way selection is.
	pm.Update("u1", &PresencePayload{Cursor: &geom.Point{X: 1, Y: 1}})
	assert.Equal(t, "", pm.Snapshot()["u1"].GestureMode)
	assert.Empty(t, pm.ActiveGestureUsers())
}

func TestPresenceRemoveAndSnapshotIsolation(t *testing.T) {
	pm := NewPresenceManager()

	pm.Update("u1", &PresencePayload{DisplayName: "Ana"})
	pm.Update("u2", &PresencePayload{DisplayName: "Bo"})

	snap := pm.Snapshot()
	snap["u1"].DisplayName = "mutated"
	assert.Equal(t, "Ana", pm.Snapshot()["u1"].DisplayName, "snapshot must be a copy")

	pm.Remove("u1")
	assert.NotContains(t, pm.Snapshot(), "u1")
	assert.Contains(t, pm.Snapshot(), "u2")
}

func TestPresenceStateMessage(t *testing.T) {
	pm := NewPresenceManager()
	pm.Update("u1", &PresencePayload{GestureMode: "rotate", DisplayName: "Ana"})

	msg := pm.StateMessage()
	require.NotNil(t, msg)
	assert.Equal(t, TypePresenceState, msg.Type)

	var state PresenceStatePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &state))
	require.Contains(t, state.Presences, "u1")
	assert.Equal(t, "rotate", state.Presences["u1"].GestureMode)
}
