// Package notify announces completed builds over NATS so downstream
// consumers (deploy hooks, cache purgers) can react without polling the
// output directory.
package notify

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// BuildEvent is the payload published after each successful build.
type BuildEvent struct {
	BuildID     string    `json:"build_id"`
	CompletedAt time.Time `json:"completed_at"`
	Posts       int       `json:"posts"`
	Excluded    int       `json:"excluded"`
	DurationMS  float64   `json:"duration_ms"`
}

// Publisher publishes build events to a fixed subject.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// NewPublisher connects to NATS at url.
func NewPublisher(url, subject string) (*Publisher, error) {
	conn, err := nats.Connect(url, nats.Name("blogbuilder"))
	if err != nil {
		return nil, err
	}

	slog.Info("NATS publisher connected", "url", url, "subject", subject)
	return &Publisher{conn: conn, subject: subject}, nil
}

// PublishBuild sends one build event. Flush is not awaited; a dropped event
// is acceptable for advisory notifications.
func (p *Publisher) PublishBuild(ev BuildEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := p.conn.Publish(p.subject, payload); err != nil {
		return err
	}

	slog.Debug("Build event published", logfields.BuildID(ev.BuildID), "subject", p.subject)
	return nil
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	if p.conn != nil {
		_ = p.conn.Drain()
	}
}
