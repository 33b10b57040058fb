package service

import (
	"context"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/apperrors"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/events"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/models"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/repository"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/ws"
)

// ChatService validates and persists outbound messages and derives the
// conversation list. The relay and the event bus are notified after a
// successful persist, best effort only.
type ChatService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
	relay    Relay
	bus      EventPublisher
	log      *zap.SugaredLogger
}

func NewChatService(messages repository.MessageRepository, users repository.UserRepository, relay Relay, bus EventPublisher, log *zap.SugaredLogger) *ChatService {
	return &ChatService{messages: messages, users: users, relay: relay, bus: bus, log: log}
}

// Send persists one message in exactly one payload variant. The sender id
// comes from the verified caller identity, never the request body.
func (s *ChatService) Send(ctx context.Context, senderID, receiverID primitive.ObjectID, p models.Payload) (*models.MessageView, error) {
	p, err := normalize(p)
	if err != nil {
		return nil, err
	}

	sender, err := s.users.FindByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	receiver, err := s.users.FindByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}

	saved, err := s.messages.Insert(ctx, models.NewMessage(senderID, receiverID, p))
	if err != nil {
		return nil, err
	}

	view := &models.MessageView{
		Message:     *saved,
		SenderRef:   sender.Ref(),
		ReceiverRef: receiver.Ref(),
	}

	room := ws.ConversationRoom(senderID.Hex(), receiverID.Hex())
	s.relay.Broadcast(room, map[string]any{
		"event":   "message_created",
		"message": view,
	})
	if err := s.bus.PublishMessageSent(ctx, events.MessageSent{
		MessageID: saved.ID.Hex(),
		Sender:    senderID.Hex(),
		Receiver:  receiverID.Hex(),
		Kind:      string(saved.Kind),
		CreatedAt: saved.CreatedAt,
	}); err != nil {
		s.log.Warnw("message.sent publish", "message", saved.ID.Hex(), "err", err)
	}

	return view, nil
}

// normalize rejects incomplete payloads and trims what can be trimmed.
func normalize(p models.Payload) (models.Payload, error) {
	switch v := p.(type) {
	case models.TextPayload:
		v.Content = strings.TrimSpace(v.Content)
		if v.Content == "" {
			return nil, apperrors.Validation("content", "message content cannot be empty")
		}
		return v, nil
	case models.AudioPayload:
		if v.URL == "" {
			return nil, apperrors.Validation("audioUrl", "audio reference required")
		}
		return v, nil
	case models.AttachmentPayload:
		if v.Attachment.FileURL == "" || v.Attachment.FileName == "" {
			return nil, apperrors.Validation("attachment", "file reference required")
		}
		if v.Attachment.FileType == "" {
			v.Attachment.FileType = models.FileOther
		}
		v.Caption = strings.TrimSpace(v.Caption)
		return v, nil
	case models.PrescriptionPayload:
		meds := make([]models.Medication, 0, len(v.Medications))
		for _, m := range v.Medications {
			if strings.TrimSpace(m.Name) == "" {
				continue
			}
			meds = append(meds, m)
		}
		if len(meds) == 0 {
			return nil, apperrors.Validation("prescription", "at least one medication required")
		}
		v.Medications = meds
		return v, nil
	default:
		return nil, apperrors.Validation("payload", "unknown message kind")
	}
}

// Conversation returns the full ordered history between viewer and other,
// both parties expanded for display.
func (s *ChatService) Conversation(ctx context.Context, viewerID, otherID primitive.ObjectID) ([]*models.MessageView, error) {
	viewer, err := s.users.FindByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	other, err := s.users.FindByID(ctx, otherID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.messages.FindConversation(ctx, viewerID, otherID)
	if err != nil {
		return nil, err
	}
	refs := map[primitive.ObjectID]models.UserRef{
		viewer.ID: viewer.Ref(),
		other.ID:  other.Ref(),
	}
	views := make([]*models.MessageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, &models.MessageView{
			Message:     *m,
			SenderRef:   refs[m.Sender],
			ReceiverRef: refs[m.Receiver],
		})
	}
	return views, nil
}

// Conversations derives the viewer's dashboard list: one entry per
// counterpart, carrying the latest message between them and an unread count,
// most recent conversation first. Recomputed in full on every call.
func (s *ChatService) Conversations(ctx context.Context, viewerID primitive.ObjectID) ([]*models.ConversationSummary, error) {
	msgs, err := s.messages.FindByParticipant(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	type group struct {
		last   *models.Message
		unread int
	}
	groups := make(map[primitive.ObjectID]*group)
	for _, m := range msgs {
		cp := m.Counterpart(viewerID)
		g, ok := groups[cp]
		if !ok {
			g = &group{}
			groups[cp] = g
		}
		if g.last == nil || !m.CreatedAt.Before(g.last.CreatedAt) {
			g.last = m
		}
		if m.Receiver == viewerID && !m.Read {
			g.unread++
		}
	}

	ids := make([]primitive.ObjectID, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*models.ConversationSummary, 0, len(groups))
	for id, g := range groups {
		u, ok := users[id]
		if !ok {
			// counterpart account gone; nothing to show
			continue
		}
		out = append(out, &models.ConversationSummary{
			User: models.CounterpartInfo{
				ID:          u.ID,
				Name:        u.Name,
				Role:        u.Role,
				IsAvailable: u.IsAvailable,
				LastSeen:    u.LastSeen,
			},
			LastMessage: models.LastMessagePreview{
				Content:      g.last.Preview(),
				Kind:         g.last.Kind,
				IsTranslated: g.last.IsTranslated,
				CreatedAt:    g.last.CreatedAt,
			},
			UnreadCount: g.unread,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastMessage.CreatedAt.After(out[j].LastMessage.CreatedAt)
	})
	return out, nil
}

// MarkConversationRead flags every message from counterpart to viewer as
// read and returns how many changed.
func (s *ChatService) MarkConversationRead(ctx context.Context, viewerID, counterpartID primitive.ObjectID) (int64, error) {
	return s.messages.MarkRead(ctx, counterpartID, viewerID)
}
