package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MessageKind string

const (
	KindText         MessageKind = "text"
	KindAudio        MessageKind = "audio"
	KindAttachment   MessageKind = "attachment"
	KindPrescription MessageKind = "prescription"
)

type FileType string

const (
	FileImage    FileType = "image"
	FileDocument FileType = "document"
	FileOther    FileType = "other"
)

type Attachment struct {
	FileName     string   `bson:"file_name" json:"fileName"`
	FileURL      string   `bson:"file_url" json:"fileUrl"`
	FileType     FileType `bson:"file_type" json:"fileType"`
	FileSize     int64    `bson:"file_size" json:"fileSize"`
	ThumbnailURL string   `bson:"thumbnail_url,omitempty" json:"thumbnailUrl,omitempty"`
}

type Medication struct {
	Name    string `bson:"name" json:"name"`
	Dosage  string `bson:"dosage" json:"dosage"`
	Morning bool   `bson:"morning" json:"morning"`
	Night   bool   `bson:"night" json:"night"`
}

type Prescription struct {
	Medications []Medication `bson:"medications" json:"medications"`
	Notes       string       `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Message is the stored document. Kind tags which payload fields are
// populated; documents are immutable after insert apart from the read flag.
type Message struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Sender           primitive.ObjectID `bson:"sender" json:"sender"`
	Receiver         primitive.ObjectID `bson:"receiver" json:"receiver"`
	Kind             MessageKind        `bson:"kind" json:"kind"`
	Content          string             `bson:"content,omitempty" json:"content,omitempty"`
	AudioURL         string             `bson:"audio_url,omitempty" json:"audioUrl,omitempty"`
	Translation      string             `bson:"translation,omitempty" json:"translation,omitempty"`
	IsTranslated     bool               `bson:"is_translated" json:"isTranslated"`
	OriginalLanguage string             `bson:"original_language,omitempty" json:"originalLanguage,omitempty"`
	TargetLanguage   string             `bson:"target_language,omitempty" json:"targetLanguage,omitempty"`
	Attachment       *Attachment        `bson:"attachment,omitempty" json:"attachment,omitempty"`
	Prescription     *Prescription      `bson:"prescription,omitempty" json:"prescription,omitempty"`
	Read             bool               `bson:"read" json:"read"`
	CreatedAt        time.Time          `bson:"created_at" json:"createdAt"`
}

// Counterpart returns the other participant relative to viewer.
func (m *Message) Counterpart(viewer primitive.ObjectID) primitive.ObjectID {
	if m.Sender == viewer {
		return m.Receiver
	}
	return m.Sender
}

// Preview is the one-line summary shown on the dashboard.
func (m *Message) Preview() string {
	if m.Content != "" {
		return m.Content
	}
	switch m.Kind {
	case KindPrescription:
		return "Prescription"
	case KindAudio:
		return "Voice message"
	case KindAttachment:
		if m.Attachment != nil {
			return m.Attachment.FileName
		}
	}
	return ""
}

// Payload reconstructs the variant this message was stored with.
func (m *Message) Payload() Payload {
	switch m.Kind {
	case KindAudio:
		return AudioPayload{
			URL:              m.AudioURL,
			Translation:      m.Translation,
			Translated:       m.IsTranslated,
			OriginalLanguage: m.OriginalLanguage,
			TargetLanguage:   m.TargetLanguage,
		}
	case KindAttachment:
		var a Attachment
		if m.Attachment != nil {
			a = *m.Attachment
		}
		return AttachmentPayload{Attachment: a, Caption: m.Content}
	case KindPrescription:
		var p Prescription
		if m.Prescription != nil {
			p = *m.Prescription
		}
		return PrescriptionPayload{Medications: p.Medications, Notes: p.Notes}
	default:
		return TextPayload{Content: m.Content}
	}
}

// Payload is the dispatch-side sum type: exactly one variant per message.
type Payload interface {
	Kind() MessageKind
	fill(m *Message)
}

type TextPayload struct {
	Content string
}

func (TextPayload) Kind() MessageKind { return KindText }

func (p TextPayload) fill(m *Message) { m.Content = p.Content }

type AudioPayload struct {
	URL              string
	Translation      string
	Translated       bool
	OriginalLanguage string
	TargetLanguage   string
}

func (AudioPayload) Kind() MessageKind { return KindAudio }

func (p AudioPayload) fill(m *Message) {
	m.AudioURL = p.URL
	m.Translation = p.Translation
	m.IsTranslated = p.Translated
	m.OriginalLanguage = p.OriginalLanguage
	m.TargetLanguage = p.TargetLanguage
}

type AttachmentPayload struct {
	Attachment Attachment
	Caption    string
}

func (AttachmentPayload) Kind() MessageKind { return KindAttachment }

func (p AttachmentPayload) fill(m *Message) {
	a := p.Attachment
	m.Attachment = &a
	m.Content = p.Caption
}

type PrescriptionPayload struct {
	Medications []Medication
	Notes       string
}

func (PrescriptionPayload) Kind() MessageKind { return KindPrescription }

func (p PrescriptionPayload) fill(m *Message) {
	m.Prescription = &Prescription{Medications: p.Medications, Notes: p.Notes}
}

// NewMessage builds an unsaved message from one payload variant.
func NewMessage(sender, receiver primitive.ObjectID, p Payload) *Message {
	m := &Message{Sender: sender, Receiver: receiver, Kind: p.Kind()}
	p.fill(m)
	return m
}

// MessageView is a stored message with both parties expanded for display.
type MessageView struct {
	Message
	SenderRef   UserRef `json:"senderRef"`
	ReceiverRef UserRef `json:"receiverRef"`
}

// ConversationSummary is the derived dashboard entry for one counterpart.
// It is recomputed on every read and never persisted.
type ConversationSummary struct {
	User        CounterpartInfo    `json:"user"`
	LastMessage LastMessagePreview `json:"lastMessage"`
	UnreadCount int                `json:"unreadCount"`
}

type CounterpartInfo struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Role        Role               `json:"role"`
	IsAvailable bool               `json:"isAvailable"`
	LastSeen    time.Time          `json:"lastSeen"`
}

type LastMessagePreview struct {
	Content      string      `json:"content"`
	Kind         MessageKind `json:"kind"`
	IsTranslated bool        `json:"isTranslated"`
	CreatedAt    time.Time   `json:"createdAt"`
}
