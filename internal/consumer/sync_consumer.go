package consumer

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/Thedurancode/aitickets-sub000/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SyncConsumer keeps the analytics read model in step with the
// ticketing core. Each routing key prefix maps to one entity; rows are
// upserted on primary key so replays and out-of-order deliveries
// converge on the latest state.
type SyncConsumer struct {
	db *gorm.DB
}

func NewSyncConsumer(db *gorm.DB) *SyncConsumer {
	return &SyncConsumer{db: db}
}

func (sc *SyncConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			sc.handleMessage(msg)
		}
		log.Println("[SyncConsumer] channel closed, stopping consumer")
	}()
}

func (sc *SyncConsumer) handleMessage(msg amqp.Delivery) {
	entity, _, _ := strings.Cut(msg.RoutingKey, ".")

	var err error
	switch entity {
	case "event":
		err = upsert[models.Event](sc.db, msg.Body,
			"name", "event_date", "event_time", "status", "venue_id", "updated_at")
	case "tier":
		err = upsert[models.TicketTier](sc.db, msg.Body,
			"event_id", "name", "price_cents", "quantity_available", "quantity_sold", "updated_at")
	case "ticket":
		err = upsert[models.Ticket](sc.db, msg.Body,
			"ticket_tier_id", "event_goer_id", "status", "purchased_at", "discount_amount_cents", "updated_at")
	case "pageview":
		// Page views are append-only; no conflict handling needed.
		var view models.PageView
		if err = json.Unmarshal(msg.Body, &view); err == nil {
			err = sc.db.Create(&view).Error
		}
	case "waitlist":
		err = upsert[models.WaitlistEntry](sc.db, msg.Body,
			"event_id", "status", "updated_at")
	case "preference":
		err = upsert[models.CustomerPreference](sc.db, msg.Body,
			"event_goer_id", "favorite_event_types", "total_spent_cents",
			"total_events_attended", "last_interaction_at", "is_vip", "updated_at")
	default:
		log.Printf("[SyncConsumer] unknown routing key %q, dropping", msg.RoutingKey)
		msg.Nack(false, false)
		return
	}

	if err != nil {
		log.Printf("[SyncConsumer] failed to sync %s: %v", msg.RoutingKey, err)
		// Malformed payloads are dropped; transient DB errors requeue.
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		requeue := !errors.As(err, &syntaxErr) && !errors.As(err, &typeErr)
		msg.Nack(false, requeue)
		return
	}

	log.Printf("[SyncConsumer] synced %s", msg.RoutingKey)
	msg.Ack(false)
}

func upsert[T any](db *gorm.DB, body []byte, columns ...string) error {
	var row T
	if err := json.Unmarshal(body, &row); err != nil {
		return err
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(&row).Error
}
