package infrastructure

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

const (
	EventNoteCreated = "created"
	EventNoteUpdated = "updated"
	EventNoteDeleted = "deleted"

	noteSubjectPrefix = "notes."
)

type NoteEvent struct {
	Type   string    `json:"type"`
	NoteID uint      `json:"note_id"`
	UserID uint      `json:"user_id"`
	At     time.Time `json:"at"`
}

// EventPublisher publishes note lifecycle events on notes.<type>. A nil
// connection makes every publish a no-op.
type EventPublisher struct {
	nc  *nats.Conn
	log zerolog.Logger
}

func NewEventPublisher(url string, log zerolog.Logger) *EventPublisher {
	if url == "" {
		log.Info().Msg("NATS_URL not set, note events disabled")
		return &EventPublisher{log: log}
	}

	opts := []nats.Option{
		nats.Name("notes-service"),
		nats.Timeout(5 * time.Second),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(10),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("nats disconnected")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Info().Msg("nats reconnected")
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("nats unavailable, note events disabled")
		return &EventPublisher{log: log}
	}

	log.Info().Str("url", url).Msg("connected to nats")
	return &EventPublisher{nc: nc, log: log}
}

func (p *EventPublisher) PublishNoteEvent(event NoteEvent) error {
	if p.nc == nil || !p.nc.IsConnected() {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.nc.Publish(noteSubjectPrefix+event.Type, data)
}

func (p *EventPublisher) Close() {
	if p.nc == nil {
		return
	}
	if err := p.nc.Drain(); err != nil {
		p.log.Warn().Err(err).Msg("nats drain failed")
		p.nc.Close()
	}
}
