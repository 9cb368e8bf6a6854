// Package notifications provides real-time delivery for live lecture sessions.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mahmedraza1/Learn-LMS-sub000/internal/models"
	"github.com/mahmedraza1/Learn-LMS-sub000/internal/observability"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// Wire event types exchanged with live-session clients.
const (
	EventJoinRoom         = "join-room"
	EventLeaveRoom        = "leave-room"
	EventSendMessage      = "send-message"
	EventClearChat        = "clear-chat"
	EventChatHistory      = "chat-history"
	EventNewMessage       = "new-message"
	EventUserJoined       = "user-joined"
	EventUserCountUpdate  = "user-count-update"
	EventChatCleared      = "chat-cleared"
	EventChatStarted      = "chat-started"
	EventLectureEnded     = "lecture-ended"
	EventMessageError     = "message-error"
	EventPermissionDenied = "permission-denied"
)

// maxChatMessageRunes caps a single chat message. Longer messages are
// rejected with a message-error and never stored.
const maxChatMessageRunes = 500

// entryTypeSystem and entryTypeMessage distinguish notices from user chat.
const (
	entryTypeSystem  = "system"
	entryTypeMessage = "message"
)

// ChatEntry is one item of a room's in-memory chat history.
type ChatEntry struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	UserName        string    `json:"user_name,omitempty"`
	UserRole        string    `json:"user_role,omitempty"`
	AdmissionStatus string    `json:"admission_status,omitempty"`
	Message         string    `json:"message"`
	Timestamp       time.Time `json:"timestamp"`
}

// Participant is the server-resolved identity of a room member. It is built
// from the authenticated user record at upgrade time; identity fields on
// incoming frames are ignored.
type Participant struct {
	UserID          uint
	UserName        string
	Role            string
	AdmissionStatus string
}

// CanModerate reports whether this participant may clear the room's chat.
func (p Participant) CanModerate() bool {
	return p.Role == models.RoleAdmin || p.Role == models.RoleInstructor
}

// LectureEvent is a frame sent to (and replicated between) live-session
// clients. Origin carries the publishing instance ID on replicated frames so
// subscribers can discard their own echoes.
type LectureEvent struct {
	Type               string      `json:"type"`
	LectureID          uint        `json:"lecture_id,omitempty"`
	Origin             string      `json:"origin,omitempty"`
	Entry              *ChatEntry  `json:"entry,omitempty"`
	History            []ChatEntry `json:"history,omitempty"`
	Count              int         `json:"count,omitempty"`
	GracePeriodSeconds int         `json:"grace_period_seconds,omitempty"`
	Error              string      `json:"error,omitempty"`
}

// lectureRoom is one lecture's live session. All fields are guarded by the
// hub mutex; history appends and fan-out happen under it, which is what gives
// every participant the same total message order.
type lectureRoom struct {
	lectureID    uint
	participants map[*Client]Participant
	history      []ChatEntry
	emptySince   time.Time
}

// LectureHub manages one in-memory chat room per live lecture. Rooms are
// created implicitly on first join and survive emptying out (history is kept
// for late joiners) until the idle reaper reclaims them.
type LectureHub struct {
	mu sync.Mutex

	rooms map[uint]*lectureRoom

	// clientRooms tracks which rooms each connection has joined so a
	// disconnect can clean up without scanning every room.
	clientRooms map[*Client]map[uint]struct{}

	historyLimit int
	idleTTL      time.Duration
	graceSeconds int

	notifier   *Notifier
	instanceID string
	wsLog      *observability.WSLogger
}

// NewLectureHub creates a hub with the given history cap, idle-room TTL and
// lecture-end grace period.
func NewLectureHub(historyLimit int, idleTTL time.Duration, graceSeconds int) *LectureHub {
	if historyLimit <= 0 {
		historyLimit = 500
	}
	return &LectureHub{
		rooms:        make(map[uint]*lectureRoom),
		clientRooms:  make(map[*Client]map[uint]struct{}),
		historyLimit: historyLimit,
		idleTTL:      idleTTL,
		graceSeconds: graceSeconds,
		instanceID:   uuid.NewString(),
		wsLog:        observability.NewWSLogger("lecture hub"),
	}
}

// Name returns a human-readable identifier for this hub.
func (h *LectureHub) Name() string { return "lecture hub" }

// Register wraps a fresh websocket connection in a Client owned by this hub.
func (h *LectureHub) Register(client *Client) {
	observability.ActiveWebSockets.Inc()
	h.mu.Lock()
	if h.clientRooms[client] == nil {
		h.clientRooms[client] = make(map[uint]struct{})
	}
	h.mu.Unlock()
}

// Join adds a client to a lecture's room, replaying the full chat history to
// the joiner and announcing them to everyone else. Joining a room the client
// is already in is idempotent: history and count are resent, but no duplicate
// join notice is produced.
func (h *LectureHub) Join(client *Client, lectureID uint, p Participant) {
	h.mu.Lock()

	room := h.rooms[lectureID]
	if room == nil {
		room = &lectureRoom{
			lectureID:    lectureID,
			participants: make(map[*Client]Participant),
		}
		h.rooms[lectureID] = room
	}

	_, rejoin := room.participants[client]
	room.participants[client] = p
	room.emptySince = time.Time{}

	if h.clientRooms[client] == nil {
		h.clientRooms[client] = make(map[uint]struct{})
	}
	h.clientRooms[client][lectureID] = struct{}{}

	// History replay goes to the joiner before any message that arrives
	// later; both happen under the same lock so ordering holds.
	history := make([]ChatEntry, len(room.history))
	copy(history, room.history)
	h.sendEventLocked(client, LectureEvent{
		Type:      EventChatHistory,
		LectureID: lectureID,
		History:   history,
	})

	if !rejoin {
		notice := h.systemEntry(fmt.Sprintf("%s joined the lecture", p.UserName))
		h.appendHistoryLocked(room, notice)
		h.broadcastLocked(room, LectureEvent{
			Type:      EventUserJoined,
			LectureID: lectureID,
			Entry:     &notice,
		}, client)
	}

	h.broadcastCountLocked(room)
	observability.LectureRoomParticipants.
		WithLabelValues(strconv.FormatUint(uint64(lectureID), 10)).
		Set(float64(len(room.participants)))
	h.mu.Unlock()

	observability.WebSocketEventsTotal.WithLabelValues(EventJoinRoom).Inc()
	h.wsLog.LogConnect(context.Background(), client.UserID, strconv.FormatUint(uint64(lectureID), 10))
}

// Leave removes a client from a room and broadcasts the new participant
// count. Per product behavior there is no "left the lecture" chat notice.
func (h *LectureHub) Leave(client *Client, lectureID uint) {
	h.mu.Lock()
	h.leaveLocked(client, lectureID)
	h.mu.Unlock()

	observability.WebSocketEventsTotal.WithLabelValues(EventLeaveRoom).Inc()
	h.wsLog.LogDisconnect(context.Background(), client.UserID, strconv.FormatUint(uint64(lectureID), 10), "left room")
}

func (h *LectureHub) leaveLocked(client *Client, lectureID uint) {
	room, ok := h.rooms[lectureID]
	if !ok {
		return
	}
	if _, present := room.participants[client]; !present {
		return
	}

	delete(room.participants, client)
	if rooms := h.clientRooms[client]; rooms != nil {
		delete(rooms, lectureID)
	}

	if len(room.participants) == 0 {
		// Keep the room and its history for late joiners; the reaper
		// reclaims it after the idle TTL.
		room.emptySince = time.Now()
	}

	h.broadcastCountLocked(room)
	observability.LectureRoomParticipants.
		WithLabelValues(strconv.FormatUint(uint64(lectureID), 10)).
		Set(float64(len(room.participants)))
}

// UnregisterClient removes a disconnected client from every room it joined.
func (h *LectureHub) UnregisterClient(client *Client) {
	h.mu.Lock()
	if rooms, ok := h.clientRooms[client]; ok {
		for lectureID := range rooms {
			h.leaveLocked(client, lectureID)
		}
		delete(h.clientRooms, client)
		observability.ActiveWebSockets.Dec()
		h.mu.Unlock()
		h.wsLog.LogDisconnect(context.Background(), client.UserID, "", "connection closed")
		return
	}
	h.mu.Unlock()
}

// SendMessage validates and fans out a chat message from client to every
// participant of the room, including the sender. Oversized messages get a
// message-error back and are never stored; messages from clients that have
// not joined the room get a permission-denied.
func (h *LectureHub) SendMessage(client *Client, lectureID uint, message string) {
	h.mu.Lock()

	room, ok := h.rooms[lectureID]
	if !ok {
		h.sendEventLocked(client, LectureEvent{
			Type:      EventPermissionDenied,
			LectureID: lectureID,
			Error:     "join the lecture before sending messages",
		})
		h.mu.Unlock()
		return
	}

	p, present := room.participants[client]
	if !present {
		h.sendEventLocked(client, LectureEvent{
			Type:      EventPermissionDenied,
			LectureID: lectureID,
			Error:     "join the lecture before sending messages",
		})
		h.mu.Unlock()
		return
	}

	if utf8.RuneCountInString(message) > maxChatMessageRunes {
		h.sendEventLocked(client, LectureEvent{
			Type:      EventMessageError,
			LectureID: lectureID,
			Error:     fmt.Sprintf("message exceeds %d characters", maxChatMessageRunes),
		})
		h.mu.Unlock()
		return
	}

	entry := ChatEntry{
		ID:              uuid.NewString(),
		Type:            entryTypeMessage,
		UserName:        p.UserName,
		UserRole:        p.Role,
		AdmissionStatus: p.AdmissionStatus,
		Message:         message,
		Timestamp:       time.Now().UTC(),
	}
	h.appendHistoryLocked(room, entry)

	event := LectureEvent{
		Type:      EventNewMessage,
		LectureID: lectureID,
		Entry:     &entry,
	}
	h.broadcastLocked(room, event, nil)
	h.mu.Unlock()

	observability.ChatMessagesTotal.
		WithLabelValues(strconv.FormatUint(uint64(lectureID), 10), entryTypeMessage).
		Inc()
	h.publish(lectureID, event)
}

// ClearChat wipes a room's history, leaving only a system notice saying who
// cleared it. Admins and instructors only; anyone else gets a
// permission-denied and the room is untouched.
func (h *LectureHub) ClearChat(client *Client, lectureID uint) {
	h.mu.Lock()

	room, ok := h.rooms[lectureID]
	if !ok {
		h.mu.Unlock()
		return
	}

	p, present := room.participants[client]
	if !present || !p.CanModerate() {
		h.sendEventLocked(client, LectureEvent{
			Type:      EventPermissionDenied,
			LectureID: lectureID,
			Error:     "only instructors and admins can clear the chat",
		})
		h.mu.Unlock()
		return
	}

	notice := h.systemEntry(fmt.Sprintf("Chat cleared by %s", p.UserName))
	room.history = []ChatEntry{notice}

	event := LectureEvent{
		Type:      EventChatCleared,
		LectureID: lectureID,
		Entry:     &notice,
	}
	h.broadcastLocked(room, event, nil)
	h.mu.Unlock()

	observability.WebSocketEventsTotal.WithLabelValues(EventClearChat).Inc()
	h.publish(lectureID, event)
}

// LectureStarted resets the room for a new session: history becomes a single
// chat-started notice which is broadcast to anyone already waiting in the room.
func (h *LectureHub) LectureStarted(lectureID uint) {
	h.mu.Lock()

	room := h.rooms[lectureID]
	if room == nil {
		room = &lectureRoom{
			lectureID:    lectureID,
			participants: make(map[*Client]Participant),
			emptySince:   time.Now(),
		}
		h.rooms[lectureID] = room
	}

	notice := h.systemEntry("Lecture chat started")
	room.history = []ChatEntry{notice}

	event := LectureEvent{
		Type:      EventChatStarted,
		LectureID: lectureID,
		Entry:     &notice,
	}
	h.broadcastLocked(room, event, nil)
	h.mu.Unlock()

	observability.WebSocketEventsTotal.WithLabelValues(EventChatStarted).Inc()
	h.publish(lectureID, event)
}

// LectureEnded appends an end-of-lecture notice and tells clients how long
// they have to wrap up. The grace period is client-owned: the server never
// force-disconnects, clients close themselves when the countdown ends.
func (h *LectureHub) LectureEnded(lectureID uint) {
	h.mu.Lock()

	room, ok := h.rooms[lectureID]
	if !ok {
		h.mu.Unlock()
		return
	}

	notice := h.systemEntry("Lecture has ended")
	h.appendHistoryLocked(room, notice)

	event := LectureEvent{
		Type:               EventLectureEnded,
		LectureID:          lectureID,
		Entry:              &notice,
		GracePeriodSeconds: h.graceSeconds,
	}
	h.broadcastLocked(room, event, nil)
	h.mu.Unlock()

	observability.WebSocketEventsTotal.WithLabelValues(EventLectureEnded).Inc()
	h.publish(lectureID, event)
}

// ParticipantCount returns how many clients are currently in a room.
func (h *LectureHub) ParticipantCount(lectureID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[lectureID]
	if !ok {
		return 0
	}
	return len(room.participants)
}

// History returns a copy of a room's chat history.
func (h *LectureHub) History(lectureID uint) []ChatEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[lectureID]
	if !ok {
		return nil
	}
	out := make([]ChatEntry, len(room.history))
	copy(out, room.history)
	return out
}

// StartReaper launches the idle-room eviction loop. A room with no
// participants for longer than the idle TTL is dropped along with its history.
func (h *LectureHub) StartReaper(ctx context.Context) {
	if h.idleTTL <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.ReapIdleRooms(time.Now())
			}
		}
	}()
}

// ReapIdleRooms evicts every room that has been empty since before
// now-idleTTL. Exposed for tests; the reaper goroutine calls it on a ticker.
func (h *LectureHub) ReapIdleRooms(now time.Time) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	evicted := 0
	for id, room := range h.rooms {
		if len(room.participants) != 0 || room.emptySince.IsZero() {
			continue
		}
		if now.Sub(room.emptySince) >= h.idleTTL {
			delete(h.rooms, id)
			observability.LectureRoomParticipants.
				DeleteLabelValues(strconv.FormatUint(uint64(id), 10))
			observability.LectureRoomsEvicted.Inc()
			evicted++
		}
	}
	if evicted > 0 {
		h.wsLog.LogLifecycle(context.Background(), "rooms_reaped", map[string]interface{}{
			"evicted": evicted,
		})
	}
	return evicted
}

// StartWiring subscribes the hub to replicated live-lecture frames so
// messages and lifecycle events reach participants connected to other
// instances. With no Redis the hub runs local-only.
func (h *LectureHub) StartWiring(ctx context.Context, n *Notifier) error {
	h.notifier = n
	return n.StartLectureSubscriber(ctx, func(channel, payload string) {
		var lectureID uint
		if _, err := fmt.Sscanf(channel, "live:lecture:%d", &lectureID); err != nil {
			h.wsLog.LogError(ctx, 0, channel, err, "subscriber")
			return
		}

		var event LectureEvent
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			h.wsLog.LogError(ctx, 0, channel, err, "subscriber")
			return
		}

		// Ignore our own echoes; we already applied them locally.
		if event.Origin == h.instanceID {
			return
		}
		event.LectureID = lectureID
		h.applyRemote(event)
	})
}

// applyRemote folds a frame published by another instance into local room
// state and fans it out to local participants.
func (h *LectureHub) applyRemote(event LectureEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := h.rooms[event.LectureID]
	if room == nil {
		// Nobody local cares about this lecture yet. Lifecycle resets
		// still need a room so late local joiners see fresh history.
		if event.Type != EventChatStarted {
			return
		}
		room = &lectureRoom{
			lectureID:    event.LectureID,
			participants: make(map[*Client]Participant),
			emptySince:   time.Now(),
		}
		h.rooms[event.LectureID] = room
	}

	switch event.Type {
	case EventNewMessage, EventLectureEnded:
		if event.Entry != nil {
			h.appendHistoryLocked(room, *event.Entry)
		}
	case EventChatStarted, EventChatCleared:
		if event.Entry != nil {
			room.history = []ChatEntry{*event.Entry}
		}
	}

	event.Origin = ""
	h.broadcastLocked(room, event, nil)
}

// publish replicates a frame to other instances. Best effort: a missing
// notifier or Redis error only degrades to single-instance behavior.
func (h *LectureHub) publish(lectureID uint, event LectureEvent) {
	if h.notifier == nil {
		return
	}
	event.Origin = h.instanceID
	roomID := strconv.FormatUint(uint64(lectureID), 10)
	payload, err := json.Marshal(event)
	if err != nil {
		h.wsLog.LogError(context.Background(), 0, roomID, err, event.Type)
		return
	}
	if err := h.notifier.PublishLectureEvent(context.Background(), lectureID, string(payload)); err != nil {
		h.wsLog.LogError(context.Background(), 0, roomID, err, event.Type)
	}
}

func (h *LectureHub) systemEntry(message string) ChatEntry {
	return ChatEntry{
		ID:        uuid.NewString(),
		Type:      entryTypeSystem,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

func (h *LectureHub) appendHistoryLocked(room *lectureRoom, entry ChatEntry) {
	room.history = append(room.history, entry)
	if len(room.history) > h.historyLimit {
		room.history = room.history[len(room.history)-h.historyLimit:]
	}
}

// broadcastLocked fans an event out to every participant except skip.
// Callers must hold h.mu.
func (h *LectureHub) broadcastLocked(room *lectureRoom, event LectureEvent, skip *Client) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.wsLog.LogError(context.Background(), 0, strconv.FormatUint(uint64(room.lectureID), 10), err, event.Type)
		return
	}
	for client := range room.participants {
		if client == skip {
			continue
		}
		client.TrySend(payload)
	}
}

func (h *LectureHub) broadcastCountLocked(room *lectureRoom) {
	h.broadcastLocked(room, LectureEvent{
		Type:      EventUserCountUpdate,
		LectureID: room.lectureID,
		Count:     len(room.participants),
	}, nil)
}

func (h *LectureHub) sendEventLocked(client *Client, event LectureEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.wsLog.LogError(context.Background(), client.UserID, "", err, event.Type)
		return
	}
	client.TrySend(payload)
}

// Shutdown closes every websocket connection and clears all room state.
func (h *LectureHub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clientRooms {
		if client.Conn != nil {
			if err := client.Conn.WriteMessage(websocket.TextMessage,
				[]byte(`{"type":"server_shutdown","message":"Server is shutting down"}`)); err != nil {
				h.wsLog.LogError(context.Background(), client.UserID, "", err, "shutdown")
			}
			if err := client.Conn.Close(); err != nil {
				h.wsLog.LogError(context.Background(), client.UserID, "", err, "shutdown")
			}
		}
	}
	h.wsLog.LogLifecycle(context.Background(), "shutdown", map[string]interface{}{
		"rooms":   len(h.rooms),
		"clients": len(h.clientRooms),
	})

	h.rooms = make(map[uint]*lectureRoom)
	h.clientRooms = make(map[*Client]map[uint]struct{})
	return nil
}
