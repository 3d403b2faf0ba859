package collab

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/regalagram/sspe-sub014/internal/path"
)

// DocumentLoader loads the latest persisted document for a project.
type DocumentLoader func(projectID string) (*path.Document, error)

// DocumentSaver persists a project's document.
type DocumentSaver func(projectID string, doc *path.Document) error

type Room struct {
	projectID string
	clients   map[string]*Client // clientID -> client
	presence  *PresenceManager
	state     *DocumentState
	dirty     bool
}

func NewRoom(projectID string, state *DocumentState) *Room {
	return &Room{
		projectID: projectID,
		clients:   make(map[string]*Client),
		presence:  NewPresenceManager(),
		state:     state,
	}
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // projectID -> room
	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
	done       chan struct{}

	load DocumentLoader
	save DocumentSaver
}

func NewHub(load DocumentLoader, save DocumentSaver) *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		load:       load,
		save:       save,
	}
}

func (h *Hub) Run() {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.stop:
			h.saveAll()
			return
		}
	}
}

// Stop shuts the hub down, persisting every dirty document first.
func (h *Hub) Stop() {
	close(h.stop)
	<-h.done
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.ProjectID]
	if !ok {
		doc, err := h.load(client.ProjectID)
		if err != nil {
			slog.Warn("load document, starting empty", "error", err, "project", client.ProjectID)
			doc = path.NewEmptyDocument("Untitled")
		}
		room = NewRoom(client.ProjectID, NewDocumentState(doc))
		h.rooms[client.ProjectID] = room
	}
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	// Sync the authoritative document to the new client
	docJSON, err := json.Marshal(room.state.Document())
	if err == nil {
		syncPayload, _ := json.Marshal(DocSyncPayload{
			Document:  docJSON,
			ServerSeq: room.state.ServerSeq(),
		})
		client.Send(&Message{Type: TypeDocSync, Payload: syncPayload})
	}

	// Send current presence state to new client
	stateMsg := room.presence.StateMessage()
	if stateMsg != nil {
		client.Send(stateMsg)
	}

	// Broadcast join to other clients
	joinPayload, _ := json.Marshal(PresenceJoinPayload{
		UserID:      client.UserID,
		DisplayName: client.DisplayName,
	})
	joinMsg := &Message{
		Type:    TypePresenceJoin,
		UserID:  client.UserID,
		Payload: joinPayload,
	}
	h.broadcastToRoom(client.ProjectID, joinMsg, client.ClientID)

	slog.Info("client joined", "user", client.UserID, "project", client.ProjectID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.ProjectID]
	if !ok {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	close(client.send)
	room.presence.Remove(client.UserID)

	var saveRoom *Room
	if len(room.clients) == 0 {
		if room.dirty {
			saveRoom = room
		}
		delete(h.rooms, client.ProjectID)
	}
	h.mu.Unlock()

	if saveRoom != nil {
		h.persist(saveRoom)
	}

	// Broadcast leave to remaining clients
	leavePayload, _ := json.Marshal(PresenceLeavePayload{
		UserID: client.UserID,
	})
	leaveMsg := &Message{
		Type:    TypePresenceLeave,
		UserID:  client.UserID,
		Payload: leavePayload,
	}
	h.broadcastToRoom(client.ProjectID, leaveMsg, "")

	slog.Info("client left", "user", client.UserID, "project", client.ProjectID)
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypePresenceUpdate:
		h.handlePresenceUpdate(sender, msg)
	case TypeOpSubmit:
		h.handleOpSubmit(sender, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "user", sender.UserID)
	}
}

func (h *Hub) handlePresenceUpdate(sender *Client, msg *Message) {
	var presence PresencePayload
	if err := json.Unmarshal(msg.Payload, &presence); err != nil {
		slog.Warn("invalid presence payload", "error", err)
		return
	}

	presence.DisplayName = sender.DisplayName

	h.mu.RLock()
	room, ok := h.rooms[sender.ProjectID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	room.presence.Update(sender.UserID, &presence)

	// Broadcast to other clients in room
	outPayload, _ := json.Marshal(presence)
	outMsg := &Message{
		Type:    TypePresenceUpdate,
		UserID:  sender.UserID,
		Payload: outPayload,
	}
	h.broadcastToRoom(sender.ProjectID, outMsg, sender.ClientID)
}

func (h *Hub) handleOpSubmit(sender *Client, msg *Message) {
	var submit OperationSubmitPayload
	if err := json.Unmarshal(msg.Payload, &submit); err != nil {
		slog.Warn("invalid op payload", "error", err, "user", sender.UserID)
		return
	}
	op := submit.Operation

	h.mu.Lock()
	room, ok := h.rooms[sender.ProjectID]
	if ok {
		room.dirty = true
	}
	h.mu.Unlock()
	if !ok {
		return
	}

	serverSeq, err := room.state.ApplyOperation(op)
	if err != nil {
		nackPayload, _ := json.Marshal(OperationNackPayload{
			OperationID: op.ID,
			Reason:      err.Error(),
		})
		sender.Send(&Message{Type: TypeOpNack, Payload: nackPayload})
		return
	}

	ackPayload, _ := json.Marshal(OperationAckPayload{
		OperationID:     op.ID,
		ServerSeq:       serverSeq,
		ServerTimestamp: GetServerTimestamp(),
	})
	sender.Send(&Message{Type: TypeOpAck, Payload: ackPayload})

	broadcastPayload, _ := json.Marshal(OperationBroadcastPayload{
		Operation: op,
		UserID:    sender.UserID,
		ServerSeq: serverSeq,
	})
	broadcastMsg := &Message{
		Type:    TypeOpBroadcast,
		UserID:  sender.UserID,
		Payload: broadcastPayload,
	}
	h.broadcastToRoom(sender.ProjectID, broadcastMsg, sender.ClientID)
}

func (h *Hub) broadcastToRoom(projectID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	room, ok := h.rooms[projectID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}

func (h *Hub) persist(room *Room) {
	if err := h.save(room.projectID, room.state.Document()); err != nil {
		slog.Error("save document", "error", err, "project", room.projectID)
		return
	}
	room.dirty = false
}

func (h *Hub) saveAll() {
	h.mu.Lock()
	rooms := make([]*Room, 0, len(h.rooms))
	for _, room := range h.rooms {
		if room.dirty {
			rooms = append(rooms, room)
		}
	}
	h.mu.Unlock()

	for _, room := range rooms {
		h.persist(room)
	}
}
