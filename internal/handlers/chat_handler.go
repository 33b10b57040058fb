package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/apperrors"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/models"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/service"
)

type ChatHandler struct {
	svc *service.ChatService
}

func NewChatHandler(svc *service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// GET /chat/conversations
func (h *ChatHandler) Conversations(c *fiber.Ctx) error {
	viewer, err := callerID(c)
	if err != nil {
		return fail(c, err)
	}
	list, err := h.svc.Conversations(c.Context(), viewer)
	if err != nil {
		return fail(c, err)
	}
	return jsonOK(c, fiber.StatusOK, list)
}

// GET /chat/conversation/:userId
func (h *ChatHandler) Conversation(c *fiber.Ctx) error {
	viewer, err := callerID(c)
	if err != nil {
		return fail(c, err)
	}
	other, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return fail(c, apperrors.ErrNotFound)
	}
	msgs, err := h.svc.Conversation(c.Context(), viewer, other)
	if err != nil {
		return fail(c, err)
	}
	return jsonOK(c, fiber.StatusOK, msgs)
}

type sendReq struct {
	Content          string               `json:"content"`
	AudioURL         string               `json:"audioUrl"`
	Translation      string               `json:"translation"`
	IsTranslated     bool                 `json:"isTranslated"`
	OriginalLanguage string               `json:"originalLanguage"`
	TargetLanguage   string               `json:"targetLanguage"`
	Prescription     *models.Prescription `json:"prescription"`
}

// payload picks the one variant this request carries. Prescription and audio
// take precedence over plain text; the dispatcher validates whichever wins.
func (r *sendReq) payload() models.Payload {
	if r.Prescription != nil {
		return models.PrescriptionPayload{
			Medications: r.Prescription.Medications,
			Notes:       r.Prescription.Notes,
		}
	}
	if r.AudioURL != "" {
		return models.AudioPayload{
			URL:              r.AudioURL,
			Translation:      r.Translation,
			Translated:       r.IsTranslated,
			OriginalLanguage: r.OriginalLanguage,
			TargetLanguage:   r.TargetLanguage,
		}
	}
	return models.TextPayload{Content: r.Content}
}

// POST /chat/send/:userId
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	sender, err := callerID(c)
	if err != nil {
		return fail(c, err)
	}
	receiver, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return fail(c, apperrors.ErrNotFound)
	}
	var req sendReq
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	view, err := h.svc.Send(c.Context(), sender, receiver, req.payload())
	if err != nil {
		return fail(c, err)
	}
	return jsonOK(c, fiber.StatusCreated, view)
}

// POST /chat/conversation/:userId/read
func (h *ChatHandler) MarkRead(c *fiber.Ctx) error {
	viewer, err := callerID(c)
	if err != nil {
		return fail(c, err)
	}
	counterpart, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return fail(c, apperrors.ErrNotFound)
	}
	n, err := h.svc.MarkConversationRead(c.Context(), viewer, counterpart)
	if err != nil {
		return fail(c, err)
	}
	return jsonOK(c, fiber.StatusOK, fiber.Map{"marked": n})
}
