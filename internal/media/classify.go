package media

import (
	"strings"

	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/models"
)

// Classify maps a declared content type onto the coarse attachment type the
// chat UI distinguishes.
func Classify(contentType string) models.FileType {
	ct := strings.ToLower(contentType)
	switch {
	case strings.HasPrefix(ct, "image/"):
		return models.FileImage
	case strings.HasPrefix(ct, "application/pdf"),
		strings.HasPrefix(ct, "application/msword"),
		strings.HasPrefix(ct, "application/vnd.openxmlformats-officedocument"),
		strings.HasPrefix(ct, "application/vnd.ms-excel"),
		strings.HasPrefix(ct, "text/"):
		return models.FileDocument
	default:
		return models.FileOther
	}
}

var allowedAttachmentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,

	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,

	"text/plain": true,
}

var allowedAudioTypes = map[string]bool{
	"audio/wav":   true,
	"audio/wave":  true,
	"audio/x-wav": true,
	"audio/mpeg":  true,
	"audio/mp3":   true,
	"audio/ogg":   true,
	"audio/mp4":   true,
	"audio/m4a":   true,
	"audio/x-m4a": true,
	"audio/webm":  true,
}

func AttachmentTypeAllowed(contentType string) bool {
	return allowedAttachmentTypes[strings.ToLower(contentType)]
}

func AudioTypeAllowed(contentType string) bool {
	return allowedAudioTypes[strings.ToLower(contentType)]
}
