package events

import (
	"context"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"go.uber.org/zap"
)

// StdoutWriter logs every event instead of publishing it to a broker. Used
// when no messaging backend is configured.
type StdoutWriter struct{}

func NewStdoutWriter() *StdoutWriter {
	return &StdoutWriter{}
}

func (w *StdoutWriter) Write(_ context.Context, topic string, e cloudevents.Event) error {
	zap.S().Named("events").Infow("event emitted",
		"topic", topic,
		"id", e.ID(),
		"type", e.Type(),
		"data", string(e.Data()),
	)
	return nil
}

func (w *StdoutWriter) Close(_ context.Context) error {
	return nil
}

type ProducerOptions func(*EventProducer)

// WithTopic overrides the default topic events are written to.
func WithTopic(topic string) ProducerOptions {
	return func(ep *EventProducer) {
		ep.topic = topic
	}
}
