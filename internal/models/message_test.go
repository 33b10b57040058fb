package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewMessageFillsOneVariant(t *testing.T) {
	sender := primitive.NewObjectID()
	receiver := primitive.NewObjectID()

	m := NewMessage(sender, receiver, TextPayload{Content: "hi"})
	assert.Equal(t, KindText, m.Kind)
	assert.Equal(t, "hi", m.Content)
	assert.Empty(t, m.AudioURL)
	assert.Nil(t, m.Attachment)
	assert.Nil(t, m.Prescription)

	m = NewMessage(sender, receiver, AudioPayload{URL: "u", Translation: "tr", Translated: true, TargetLanguage: "es"})
	assert.Equal(t, KindAudio, m.Kind)
	assert.Equal(t, "u", m.AudioURL)
	assert.True(t, m.IsTranslated)
	assert.Empty(t, m.Content)

	m = NewMessage(sender, receiver, AttachmentPayload{
		Attachment: Attachment{FileName: "a.png", FileURL: "url", FileType: FileImage},
		Caption:    "see this",
	})
	assert.Equal(t, KindAttachment, m.Kind)
	require.NotNil(t, m.Attachment)
	assert.Equal(t, "a.png", m.Attachment.FileName)
	assert.Equal(t, "see this", m.Content)

	m = NewMessage(sender, receiver, PrescriptionPayload{
		Medications: []Medication{{Name: "Amoxicillin", Dosage: "250mg", Morning: true}},
		Notes:       "5 days",
	})
	assert.Equal(t, KindPrescription, m.Kind)
	require.NotNil(t, m.Prescription)
	assert.Equal(t, "5 days", m.Prescription.Notes)
}

func TestPayloadRoundTrip(t *testing.T) {
	sender := primitive.NewObjectID()
	receiver := primitive.NewObjectID()

	payloads := []Payload{
		TextPayload{Content: "plain"},
		AudioPayload{URL: "u", Translation: "t", Translated: true, OriginalLanguage: "hi", TargetLanguage: "en"},
		AttachmentPayload{Attachment: Attachment{FileName: "r.pdf", FileURL: "url", FileType: FileDocument, FileSize: 99}},
		PrescriptionPayload{Medications: []Medication{{Name: "X", Night: true}}, Notes: "n"},
	}
	for _, p := range payloads {
		m := NewMessage(sender, receiver, p)
		assert.Equal(t, p, m.Payload(), "kind %s", p.Kind())
	}
}

func TestCounterpart(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	m := NewMessage(a, b, TextPayload{Content: "x"})

	assert.Equal(t, b, m.Counterpart(a))
	assert.Equal(t, a, m.Counterpart(b))
}

func TestPreview(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()

	cases := []struct {
		name    string
		payload Payload
		want    string
	}{
		{"text", TextPayload{Content: "hello"}, "hello"},
		{"audio", AudioPayload{URL: "u"}, "Voice message"},
		{"prescription", PrescriptionPayload{Medications: []Medication{{Name: "X"}}}, "Prescription"},
		{"attachment", AttachmentPayload{Attachment: Attachment{FileName: "scan.pdf", FileURL: "u"}}, "scan.pdf"},
		{"attachment with caption", AttachmentPayload{Attachment: Attachment{FileName: "scan.pdf", FileURL: "u"}, Caption: "my scan"}, "my scan"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMessage(a, b, tc.payload)
			assert.Equal(t, tc.want, m.Preview())
		})
	}
}
