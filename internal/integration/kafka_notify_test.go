//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	kafkaadapter "github.com/couchcryptid/aurora-watch/internal/adapter/kafka"
	"github.com/couchcryptid/aurora-watch/internal/config"
	"github.com/couchcryptid/aurora-watch/internal/notify"
	"github.com/couchcryptid/aurora-watch/internal/observability"
)

const testNotifyTopic = "aurora-notifications"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka launches a single-node Kafka container and returns its broker address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("aurora-test"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestKafkaNotificationRoundTrip verifies that a notification published
// through the Kafka sender arrives intact: key, headers, and payload.
func TestKafkaNotificationRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testNotifyTopic)

	cfg := &config.Config{
		KafkaBrokers:     []string{broker},
		KafkaNotifyTopic: testNotifyTopic,
		NotifySender:     "northernlights.notify@gmail.com",
		NotifyRecipient:  "user@example.com",
	}

	writer := kafkaadapter.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	clock := clockwork.NewFakeClockAt(time.Date(2025, time.June, 18, 20, 30, 0, 0, time.UTC))
	notifier := notify.New(writer, cfg.NotifySender, cfg.NotifyRecipient, clock, discardLogger(), observability.NewMetricsForTesting())

	notifier.Notify(ctx, []string{"18Jun", "20Jun"})

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testNotifyTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()

	kmsg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from notification topic")

	var msg notify.Message
	require.NoError(t, json.Unmarshal(kmsg.Value, &msg))

	assert.Equal(t, string(kmsg.Key), msg.ID)
	assert.Equal(t, "user@example.com", msg.To)
	assert.Equal(t, notify.Subject, msg.Subject)
	assert.Equal(t, []string{"18Jun", "20Jun"}, msg.FavorableDates)
	assert.Equal(t, "The Northern Lights are likely visible on the following dates: 18Jun, 20Jun.", msg.Body)
	assert.True(t, msg.SentAt.Equal(clock.Now()))

	headers := make(map[string]string, len(kmsg.Headers))
	for _, h := range kmsg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "user@example.com", headers["recipient"])
	_, err = time.Parse(time.RFC3339, headers["sent_at"])
	assert.NoError(t, err, "sent_at should be valid RFC3339")
}

// TestKafkaNotificationEmptyForecast verifies the no-favorable-conditions
// body is published when no date clears the threshold.
func TestKafkaNotificationEmptyForecast(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testNotifyTopic)

	cfg := &config.Config{
		KafkaBrokers:     []string{broker},
		KafkaNotifyTopic: testNotifyTopic,
		NotifySender:     "northernlights.notify@gmail.com",
		NotifyRecipient:  "user@example.com",
	}

	writer := kafkaadapter.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	notifier := notify.New(writer, cfg.NotifySender, cfg.NotifyRecipient, clockwork.NewRealClock(), discardLogger(), observability.NewMetricsForTesting())
	notifier.Notify(ctx, nil)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testNotifyTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()

	kmsg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err)

	var msg notify.Message
	require.NoError(t, json.Unmarshal(kmsg.Value, &msg))
	assert.Equal(t, "No favorable aurora viewing conditions detected in the forecast.", msg.Body)
	assert.Empty(t, msg.FavorableDates)
}
