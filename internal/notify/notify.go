// Package notify builds and delivers the daily aurora notification.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/aurora-watch/internal/observability"
)

// Subject is the fixed subject line of every aurora notification.
const Subject = "Northern Lights Notification"

// Message is a single notification handed to a Sender. It exists only
// for the duration of one delivery.
type Message struct {
	ID             string    `json:"id"`
	From           string    `json:"from"`
	To             string    `json:"to"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
	FavorableDates []string  `json:"favorable_dates,omitempty"`
	SentAt         time.Time `json:"sent_at"`
}

// NewMessage builds the notification for a cycle's favorable dates. An
// empty date list produces the no-conditions body, not an empty list.
func NewMessage(from, to string, dates []string, sentAt time.Time) Message {
	body := "No favorable aurora viewing conditions detected in the forecast."
	if len(dates) > 0 {
		body = fmt.Sprintf("The Northern Lights are likely visible on the following dates: %s.", strings.Join(dates, ", "))
	}

	return Message{
		ID:             uuid.NewString(),
		From:           from,
		To:             to,
		Subject:        Subject,
		Body:           body,
		FavorableDates: dates,
		SentAt:         sentAt,
	}
}

// Sender delivers a built notification. The log sender is the default;
// a real transport (Kafka, mail relay) plugs in here without touching
// the rest of the pipeline.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender emits the notification to the structured log. This is the
// simulated delivery path: no message leaves the process.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a sender that writes notifications to the log.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the full notification envelope.
func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.logger.Info("sending notification",
		"message_id", msg.ID,
		"from", msg.From,
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}

// Notifier builds the per-cycle notification and hands it to the sender.
// Delivery failures are logged and counted, never returned: a broken
// sink must not stop the scheduling loop.
type Notifier struct {
	sender  Sender
	from    string
	to      string
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Notifier for the configured sender identity and recipient.
func New(sender Sender, from, to string, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Notifier {
	return &Notifier{
		sender:  sender,
		from:    from,
		to:      to,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

// Notify delivers the result of one completed check.
func (n *Notifier) Notify(ctx context.Context, dates []string) {
	msg := NewMessage(n.from, n.to, dates, n.clock.Now())

	if err := n.sender.Send(ctx, msg); err != nil {
		n.metrics.NotifyFailures.Inc()
		n.logger.Error("notification delivery failed", "error", err, "message_id", msg.ID, "to", msg.To)
		return
	}

	n.metrics.NotificationsSent.Inc()
	n.logger.Debug("notification delivered", "message_id", msg.ID, "favorable_dates", len(dates))
}
