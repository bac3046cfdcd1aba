package utils

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/mbokatech/hall-management-backend/config"
	"github.com/segmentio/kafka-go"
)

const defaultApplicationTopic = "host-application-events"

var applicationWriter *kafka.Writer

// ApplicationEvent is the payload published on every host-application
// status change. The notification consumer turns these into emails.
type ApplicationEvent struct {
	ApplicationID  uint      `json:"application_id"`
	HallName       string    `json:"hall_name"`
	ContactName    string    `json:"contact_name"`
	ContactEmail   string    `json:"contact_email"`
	PreviousStatus string    `json:"previous_status"`
	Status         string    `json:"status"`
	ReviewNotes    string    `json:"review_notes,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// InitializeKafka sets up the application-events writer
func InitializeKafka(cfg *config.Config) {
	if cfg.KafkaBrokers == "" {
		log.Println("⚠️ KAFKA_BROKERS not set, application events disabled")
		return
	}

	topic := cfg.KafkaApplicationTopic
	if topic == "" {
		topic = defaultApplicationTopic
	}

	applicationWriter = &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(cfg.KafkaBrokers, ",")...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}

	log.Printf("✅ Kafka writer initialized (topic: %s)", topic)
}

// PublishApplicationEvent emits an application status-change event.
// Failures are logged, not returned: the review itself must not fail
// because the broker is down.
func PublishApplicationEvent(ctx context.Context, event ApplicationEvent) {
	if applicationWriter == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("❌ Failed to marshal application event: %v", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.Status),
		Value: payload,
	}

	if err := applicationWriter.WriteMessages(ctx, msg); err != nil {
		log.Printf("❌ Failed to publish application event: %v", err)
		return
	}

	log.Printf("✅ Published application event: id=%d status=%s", event.ApplicationID, event.Status)
}

// NewApplicationEventReader builds the consumer used by the notification service
func NewApplicationEventReader(cfg *config.Config) *kafka.Reader {
	if cfg.KafkaBrokers == "" {
		return nil
	}

	topic := cfg.KafkaApplicationTopic
	if topic == "" {
		topic = defaultApplicationTopic
	}

	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: strings.Split(cfg.KafkaBrokers, ","),
		GroupID: "hall-backend-notifications",
		Topic:   topic,
	})
}
