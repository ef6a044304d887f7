package nats

import (
	"encoding/json"

	"github.com/nats-io/nats.go"

	"admissions-chatbot-be/internal/pkg/logger"
)

// Publisher sends fire-and-forget events over JetStream. A nil
// Publisher is valid and drops everything, so a NATS outage at boot
// never blocks the service.
type Publisher struct {
	js  nats.JetStreamContext
	log logger.ILogger
}

// NewPublisher connects and ensures the events stream exists. Returns
// nil (no error) when NATS is unreachable; callers keep running
// without events.
func NewPublisher(natsURL, streamName string, subjects []string, log logger.ILogger) *Publisher {
	if natsURL == "" {
		log.Warn("nats", "nats url not set, events disabled", nil)
		return nil
	}

	nc, err := nats.Connect(natsURL)
	if err != nil {
		log.Error("nats", "nats connect failed, events disabled", map[string]interface{}{"error": err.Error()})
		return nil
	}

	js, err := nc.JetStream()
	if err != nil {
		log.Error("nats", "jetstream init failed, events disabled", map[string]interface{}{"error": err.Error()})
		nc.Close()
		return nil
	}

	// Idempotent: AddStream on an existing stream with the same config
	// is a no-op.
	_, err = js.AddStream(&nats.StreamConfig{
		Name:     streamName,
		Subjects: subjects,
	})
	if err != nil {
		log.Warn("nats", "stream setup failed, publishing anyway", map[string]interface{}{"error": err.Error()})
	}

	log.Info("nats", "event publisher connected", map[string]interface{}{"stream": streamName})
	return &Publisher{js: js, log: log}
}

// Publish serializes and sends one event. Errors are logged, never
// returned; event delivery is best effort.
func (p *Publisher) Publish(subject string, event interface{}) {
	if p == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		p.log.Warn("nats", "event marshal failed", map[string]interface{}{"subject": subject, "error": err.Error()})
		return
	}
	if _, err := p.js.PublishAsync(subject, data); err != nil {
		p.log.Warn("nats", "event publish failed", map[string]interface{}{"subject": subject, "error": err.Error()})
	}
}
