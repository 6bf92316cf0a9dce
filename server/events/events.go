package events

import (
	"encoding/json"

	"github.com/charmbracelet/log"
	"github.com/lazharichir/blackjack/domain/events"
	"github.com/lazharichir/blackjack/server/connection"
	"github.com/sanity-io/litter"
)

// EventEnvelope wraps an event with its name for client consumption
type EventEnvelope struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher forwards domain events to connected feed clients
type Dispatcher struct {
	connMgr *connection.Manager
	logger  *log.Logger
}

// NewDispatcher creates a new event dispatcher
func NewDispatcher(connMgr *connection.Manager, logger *log.Logger) *Dispatcher {
	return &Dispatcher{
		connMgr: connMgr,
		logger:  logger.WithPrefix("dispatcher"),
	}
}

// HandleEvent marshals a domain event into an envelope and broadcasts
// it to every connected client. The feed is a read-only projection, so
// every viewer receives every event.
func (d *Dispatcher) HandleEvent(event events.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		d.logger.Error("Failed to marshal event payload", "name", event.Name(), "error", err)
		return
	}

	envelope, err := json.Marshal(EventEnvelope{
		Name:    event.Name(),
		Payload: payload,
	})
	if err != nil {
		d.logger.Error("Failed to marshal event envelope", "name", event.Name(), "error", err)
		return
	}

	d.logger.Debug("Dispatching event", "name", event.Name(), "event", litter.Sdump(event))

	d.connMgr.Broadcast(envelope)
}
