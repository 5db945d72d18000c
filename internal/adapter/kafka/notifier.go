package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/pnwcoord/repeater-qa/internal/config"
	"github.com/pnwcoord/repeater-qa/internal/delta"
	"github.com/pnwcoord/repeater-qa/internal/domain"
)

// Notifier publishes coordination changes to a Kafka topic.
// It implements monitor.Publisher.
type Notifier struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewNotifier creates a Kafka producer for the configured change topic.
func NewNotifier(cfg *config.Config, logger *slog.Logger) *Notifier {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Notifier{writer: w, logger: logger}
}

// Publish serializes and sends all changes from one monitor cycle in a
// single WriteMessages call.
func (n *Notifier) Publish(ctx context.Context, changes []delta.Change, observedAt time.Time) error {
	if len(changes) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(changes))
	for i := range changes {
		msg, err := serializeToMessage(changes[i], observedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return n.writer.WriteMessages(ctx, msgs...)
}

func (n *Notifier) Close() error {
	return n.writer.Close()
}

// changePayload is the wire form of a Change. FM changes always carry a
// programmable tone and code, substituting the conventional 88.5 Hz and
// 023 placeholders when the record has neither.
type changePayload struct {
	Action     string   `json:"action"`
	Call       string   `json:"call"`
	OutputFreq string   `json:"output_freq"`
	InputFreq  string   `json:"input_freq"`
	Location   string   `json:"location,omitempty"`
	Tone       string   `json:"tone,omitempty"`
	Code       string   `json:"code,omitempty"`
	Summary    string   `json:"summary"`
	Comments   []string `json:"comments,omitempty"`
	ObservedAt string   `json:"observed_at"`
}

// serializeToMessage marshals a Change into a Kafka message keyed by the
// frequency pair, so updates to the same pair land on the same partition.
func serializeToMessage(change delta.Change, observedAt time.Time) (kafkago.Message, error) {
	c := change.Channel
	payload := changePayload{
		Action:     change.Action,
		Call:       c.Call,
		OutputFreq: c.Output.String(),
		InputFreq:  c.Input.String(),
		Location:   c.Location,
		Summary:    c.String(),
		Comments:   change.Comments,
		ObservedAt: observedAt.Format(time.RFC3339),
	}
	if c.HasMode(domain.ModeFM) {
		payload.Tone = c.ToneOrDefault().StringFixed(1)
		payload.Code = "D" + c.CodeOrDefault() + domain.DCSPolarity
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize change: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(c.Key().String()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "action", Value: []byte(change.Action)},
			{Key: "call", Value: []byte(c.Call)},
		},
	}, nil
}
