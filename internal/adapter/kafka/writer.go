// Package kafka publishes notifications to a Kafka topic. It is the
// production substitute for the log sender.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/aurora-watch/internal/config"
	"github.com/couchcryptid/aurora-watch/internal/notify"
)

// Writer produces notification messages to the configured topic.
// It implements notify.Sender.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the notification topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaNotifyTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Send serializes and publishes one notification.
func (w *Writer) Send(ctx context.Context, msg notify.Message) error {
	kmsg, err := serializeToMessage(msg)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, kmsg)
}

// Close flushes and closes the underlying producer.
func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a notification into a Kafka message keyed
// by the notification ID.
func serializeToMessage(msg notify.Message) (kafkago.Message, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize notification: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(msg.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "recipient", Value: []byte(msg.To)},
			{Key: "sent_at", Value: []byte(msg.SentAt.Format(time.RFC3339))},
		},
	}, nil
}
