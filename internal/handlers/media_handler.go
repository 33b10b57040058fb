package handlers

import (
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/apperrors"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/media"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/models"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/service"
)

type MediaHandler struct {
	media *media.Service
	chat  *service.ChatService
	log   *zap.SugaredLogger
}

func NewMediaHandler(m *media.Service, chat *service.ChatService, log *zap.SugaredLogger) *MediaHandler {
	return &MediaHandler{media: m, chat: chat, log: log}
}

// POST /chat/upload (multipart: file, receiver, optional content caption).
// Stores the asset, then dispatches an attachment message referencing it.
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	sender, err := callerID(c)
	if err != nil {
		return fail(c, err)
	}
	receiver, err := primitive.ObjectIDFromHex(c.FormValue("receiver"))
	if err != nil {
		return fail(c, apperrors.Validation("receiver", "receiver required"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fail(c, apperrors.Validation("file", "file missing"))
	}
	f, err := fileHeader.Open()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "cannot open file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "cannot read file")
	}

	ct := fileHeader.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(data)
	}

	asset, err := h.media.UploadAttachment(c.Context(), sender.Hex(), fileHeader.Filename, ct, data)
	if err != nil {
		return fail(c, err)
	}

	payload := models.AttachmentPayload{
		Attachment: models.Attachment{
			FileName:     fileHeader.Filename,
			FileURL:      h.media.MessageURL(asset),
			FileType:     asset.Type,
			FileSize:     asset.Size,
			ThumbnailURL: h.media.ThumbnailURL(c.Context(), asset),
		},
		Caption: c.FormValue("content"),
	}
	view, err := h.chat.Send(c.Context(), sender, receiver, payload)
	if err != nil {
		// the asset was already written; don't leave it orphaned
		if rerr := h.media.Remove(c.Context(), asset.ID); rerr != nil {
			h.log.Warnw("attachment cleanup", "media", asset.ID, "err", rerr)
		}
		return fail(c, err)
	}
	return jsonOK(c, fiber.StatusCreated, view)
}

// GET /media/:id/url
func (h *MediaHandler) ResolveURL(c *fiber.Ctx) error {
	url, err := h.media.ResolveURL(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return jsonOK(c, fiber.StatusOK, fiber.Map{"url": url})
}
