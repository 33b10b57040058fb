package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/apperrors"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/media"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/speech"
)

type SpeechHandler struct {
	media       *media.Service
	transcriber speech.Transcriber
	log         *zap.SugaredLogger
}

func NewSpeechHandler(m *media.Service, t speech.Transcriber, log *zap.SugaredLogger) *SpeechHandler {
	return &SpeechHandler{media: m, transcriber: t, log: log}
}

// POST /speech/transcribe (multipart: audio, optional targetLanguage).
// Stores the voice note and runs the speech script over it. Transcription
// failure degrades: the stored reference still comes back, untranslated,
// so the message can go out anyway.
func (h *SpeechHandler) Transcribe(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return fail(c, err)
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return fail(c, apperrors.Validation("audio", "no audio file uploaded"))
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
	lang := c.FormValue("targetLanguage")
	if lang == "" {
		lang = "en"
	}

	asset, err := h.media.UploadAudio(c.Context(), caller.Hex(), fileHeader.Filename, ct, data)
	if err != nil {
		return fail(c, err)
	}

	translation := ""
	if path, err := writeTemp(fileHeader.Filename, data); err == nil {
		defer os.Remove(path)
		translation, err = h.transcriber.Transcribe(c.Context(), path, lang)
		if err != nil {
			var te *apperrors.TranscriptionError
			if errors.As(err, &te) {
				h.log.Warnw("transcription failed", "media", asset.ID, "err", err)
			} else {
				h.log.Errorw("transcription", "media", asset.ID, "err", err)
			}
			translation = ""
		}
	} else {
		h.log.Warnw("temp file", "err", err)
	}

	return jsonOK(c, fiber.StatusOK, fiber.Map{
		"audioUrl":     h.media.MessageURL(asset),
		"translation":  translation,
		"language":     lang,
		"isTranslated": translation != "",
	})
}

func writeTemp(name string, data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "voice-*"+filepath.Ext(name))
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
