package media

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/models"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		contentType string
		want        models.FileType
	}{
		{"image/png", models.FileImage},
		{"image/jpeg", models.FileImage},
		{"IMAGE/GIF", models.FileImage},
		{"application/pdf", models.FileDocument},
		{"application/msword", models.FileDocument},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", models.FileDocument},
		{"text/plain", models.FileDocument},
		{"application/zip", models.FileOther},
		{"video/mp4", models.FileOther},
		{"", models.FileOther},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.contentType), "content type %q", tc.contentType)
	}
}

func TestAttachmentTypeAllowed(t *testing.T) {
	assert.True(t, AttachmentTypeAllowed("image/png"))
	assert.True(t, AttachmentTypeAllowed("application/pdf"))
	assert.True(t, AttachmentTypeAllowed("Image/PNG"))
	assert.False(t, AttachmentTypeAllowed("application/x-dosexec"))
	assert.False(t, AttachmentTypeAllowed("video/mp4"))
}

func TestAudioTypeAllowed(t *testing.T) {
	assert.True(t, AudioTypeAllowed("audio/wav"))
	assert.True(t, AudioTypeAllowed("audio/webm"))
	assert.False(t, AudioTypeAllowed("audio/flac"))
	assert.False(t, AudioTypeAllowed("image/png"))
}
