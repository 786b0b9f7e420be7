package services

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
)

// Routing keys of the inventory events published after successful writes.
const (
	EventProductCreated      = "product.created"
	EventProductUpdated      = "product.updated"
	EventProductDeleted      = "product.deleted"
	EventProductStockUpdated = "product.stock_updated"
	EventProductLowStock     = "product.low_stock"
	EventCategoryCreated     = "category.created"
	EventCategoryUpdated     = "category.updated"
	EventCategoryDeleted     = "category.deleted"
	EventSupplierCreated     = "supplier.created"
	EventSupplierUpdated     = "supplier.updated"
	EventSupplierDeleted     = "supplier.deleted"
)

// EventPublisher delivers an encoded event under a routing key.
// *rabbitmq.Client implements it.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// Event is the envelope of every published message.
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

// emitter publishes best-effort: failures are logged and never reach the caller.
type emitter struct {
	publisher EventPublisher
}

func (e emitter) emit(routingKey string, data interface{}) {
	if e.publisher == nil {
		return
	}
	body, err := json.Marshal(Event{Type: routingKey, OccurredAt: time.Now().UTC(), Data: data})
	if err != nil {
		log.Warn().Err(err).Str("event", routingKey).Msg("failed to encode inventory event")
		return
	}
	if err := e.publisher.Publish(routingKey, body); err != nil {
		log.Warn().Err(err).Str("event", routingKey).Msg("failed to publish inventory event")
	}
}
