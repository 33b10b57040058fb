package ws

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/presence"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/repository"
)

// Server upgrades authenticated requests to websocket sessions and ties the
// session lifecycle to presence bookkeeping.
type Server struct {
	hub      *Hub
	presence *presence.Store
	users    repository.UserRepository
	log      *zap.SugaredLogger
}

func NewServer(hub *Hub, pres *presence.Store, users repository.UserRepository, log *zap.SugaredLogger) *Server {
	return &Server{hub: hub, presence: pres, users: users, log: log}
}

func (s *Server) Hub() *Hub { return s.hub }

// Upgrade gates non-websocket requests before the handler runs.
func (s *Server) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (s *Server) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals("user_id").(string)
		if userID == "" {
			_ = conn.Close()
			return
		}

		client := NewClient(userID, conn)
		s.hub.Register(client)
		if err := s.presence.SetOnline(context.Background(), userID); err != nil {
			s.log.Warnw("presence online", "user", userID, "err", err)
		}

		go client.writePump()
		client.readPump(s.hub) // blocks until disconnect

		if err := s.presence.SetOffline(context.Background(), userID); err != nil {
			s.log.Warnw("presence offline", "user", userID, "err", err)
		}
		if oid, err := primitive.ObjectIDFromHex(userID); err == nil {
			if err := s.users.SetLastSeen(context.Background(), oid, time.Now()); err != nil {
				s.log.Warnw("last seen", "user", userID, "err", err)
			}
		}
	})
}
