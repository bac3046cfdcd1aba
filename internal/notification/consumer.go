package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/mbokatech/hall-management-backend/config"
	"github.com/mbokatech/hall-management-backend/utils"
)

// StartApplicationEventConsumer reads host-application status events from
// Kafka and turns them into transactional emails. It blocks, so run it in a
// goroutine; it returns when ctx is cancelled or the reader is closed.
func StartApplicationEventConsumer(ctx context.Context, cfg *config.Config) {
	reader := utils.NewApplicationEventReader(cfg)
	if reader == nil {
		log.Println("⚠️ Kafka not configured, application notifications disabled")
		return
	}
	defer reader.Close()

	log.Println("🔄 Application event consumer started")

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("✅ Application event consumer stopped")
				return
			}
			log.Printf("❌ Failed to read application event: %v", err)
			continue
		}

		var event utils.ApplicationEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Printf("❌ Malformed application event, skipping: %v", err)
			continue
		}

		if err := notify(event); err != nil {
			// the event is consumed either way; the review already happened
			log.Printf("❌ Failed to send notification for application %d: %v", event.ApplicationID, err)
		}
	}
}

func notify(event utils.ApplicationEvent) error {
	if event.ContactEmail == "" {
		return nil
	}

	switch event.Status {
	case "NEW":
		return utils.SendApplicationReceivedEmail(event.ContactEmail, event.ContactName, event.HallName)
	case "UNDER_REVIEW":
		return utils.SendApplicationUnderReviewEmail(event.ContactEmail, event.ContactName, event.HallName)
	case "APPROVED":
		return utils.SendApplicationApprovedEmail(event.ContactEmail, event.ContactName, event.HallName)
	case "REJECTED":
		return utils.SendApplicationRejectedEmail(event.ContactEmail, event.ContactName, event.HallName, event.ReviewNotes)
	default:
		log.Printf("⚠️ Unknown application status %q, no email sent", event.Status)
		return nil
	}
}
