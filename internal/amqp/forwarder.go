package amqp

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/wealthdesk/onboarding/internal/event_bus"
)

type Publisher interface {
	Publish(ctx context.Context, body []byte, timestamp time.Time) error
}

// ForwardSubmitted publishes every submitted onboarding to the broker. The returned
// function stops forwarding.
func ForwardSubmitted(bus *event_bus.EventBus, publisher Publisher) (unsubscribe func()) {
	return event_bus.SubscribeTyped(bus, event_bus.OnboardingSubmitted, func(e event_bus.EventT[event_bus.Submitted]) error {
		body, err := NewSubmittedMessage(e.Data).ToJSON()
		if err != nil {
			return fmt.Errorf("marshal message: %w", err)
		}
		if err := publisher.Publish(e.Context(), body, e.Timestamp); err != nil {
			log.Errorf("Failed to forward submitted onboarding %s: %v", e.Data.DraftID, err)
			return err
		}
		log.Infof("Forwarded submitted onboarding of %s", e.Data.ClientName)
		return nil
	})
}
