package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/mahmedraza1/Learn-LMS-sub000/internal/middleware"
	"github.com/mahmedraza1/Learn-LMS-sub000/internal/models"
	"github.com/mahmedraza1/Learn-LMS-sub000/internal/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// liveFrame is the client->server message shape on the live session socket.
// Identity fields are deliberately absent: who the sender is comes from the
// authenticated connection, never from the frame.
type liveFrame struct {
	Type      string `json:"type"`
	LectureID uint   `json:"lecture_id"`
	Message   string `json:"message"`
}

// allowLiveMessage applies the chat send limit, same as the HTTP chat
// endpoints (15 per minute). Fails open when the limiter store is down so
// chat keeps working single-instance without Redis.
func (s *Server) allowLiveMessage(ctx context.Context, userID uint) bool {
	id := fmt.Sprintf("user:%d", userID)
	allowed, err := middleware.CheckRateLimit(ctx, s.redis, "live_chat", id, 15, time.Minute)
	if err != nil {
		return true
	}
	return allowed
}

// WebSocketLiveHandler handles WebSocket connections for live lecture sessions
func (s *Server) WebSocketLiveHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		ctx := context.Background()

		// Get userID from context locals (set by AuthRequired middleware)
		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			log.Printf("WebSocket Live: Unauthenticated connection attempt")
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}
		userID := userIDVal.(uint)

		// Resolve identity server-side once per connection. Role and
		// admission status ride on every chat entry this client produces.
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			log.Printf("WebSocket Live: Failed to get user %d: %v", userID, err)
			_ = conn.Close()
			return
		}
		if user.AdmissionStatus == models.AdmissionExpelled {
			_ = conn.WriteMessage(websocket.TextMessage,
				[]byte(`{"type":"permission-denied","error":"account is not admitted"}`))
			_ = conn.Close()
			return
		}

		participant := notifications.Participant{
			UserID:          user.ID,
			UserName:        user.Username,
			Role:            user.Role,
			AdmissionStatus: user.AdmissionStatus,
		}

		log.Printf("WebSocket: User %d (%s) connected to live sessions", userID, user.Username)

		client := notifications.NewClient(s.lectureHub, conn, userID)
		s.lectureHub.Register(client)

		client.IncomingHandler = func(c *notifications.Client, message []byte) {
			var frame liveFrame
			if err := json.Unmarshal(message, &frame); err != nil {
				log.Printf("WebSocket: Invalid frame from user %d", userID)
				return
			}
			if frame.LectureID == 0 {
				return
			}

			switch frame.Type {
			case notifications.EventJoinRoom:
				// The lecture must exist; its live flag is not required so
				// students can gather in the room before start.
				if _, err := s.lectureRepo.GetByID(ctx, frame.LectureID); err != nil {
					resp, _ := json.Marshal(notifications.LectureEvent{
						Type:      notifications.EventMessageError,
						LectureID: frame.LectureID,
						Error:     "lecture not found",
					})
					c.TrySend(resp)
					return
				}
				s.lectureHub.Join(c, frame.LectureID, participant)

			case notifications.EventLeaveRoom:
				s.lectureHub.Leave(c, frame.LectureID)

			case notifications.EventSendMessage:
				if frame.Message == "" {
					return
				}
				if !s.allowLiveMessage(ctx, userID) {
					resp, _ := json.Marshal(notifications.LectureEvent{
						Type:      notifications.EventMessageError,
						LectureID: frame.LectureID,
						Error:     "Rate limit exceeded. Please wait a moment.",
					})
					c.TrySend(resp)
					return
				}
				s.lectureHub.SendMessage(c, frame.LectureID, frame.Message)

			case notifications.EventClearChat:
				s.lectureHub.ClearChat(c, frame.LectureID)

			default:
				log.Printf("WebSocket: Unknown frame type %q from user %d", frame.Type, userID)
			}
		}

		// Start pumps; ReadPump blocks until the connection drops and then
		// unregisters the client from every room it joined.
		go client.WritePump()
		client.ReadPump()
	})
}
