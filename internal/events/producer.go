package events

import (
	"context"
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// MessageSent is published after every successful persist. Consumers
// (notification fan-out) are separate deployables; delivery is best effort.
type MessageSent struct {
	MessageID string    `json:"message_id"`
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

type Producer struct {
	writer *kafkago.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &Producer{writer: w}
}

func (p *Producer) PublishMessageSent(ctx context.Context, ev MessageSent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(ev.Receiver),
		Value: b,
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
