package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"carebook/models"
)

// StreamNotificationService publishes booking events to a Redis stream for
// an external delivery worker to consume.
type StreamNotificationService struct {
	Client *redis.Client
	Stream string
}

func NewStreamNotificationService(client *redis.Client) (*StreamNotificationService, error) {
	if client == nil {
		return nil, fmt.Errorf("notification service initialization error: redis client is nil")
	}
	return &StreamNotificationService{
		Client: client,
		Stream: models.BookingEventsStream,
	}, nil
}

func (s *StreamNotificationService) NotifyProviderBookingRequest(ctx context.Context, booking models.Booking, occurrences int) error {
	return s.publish(ctx, models.EventBookingRequested, models.BookingRequestedEvent{
		BookingID:   booking.ID,
		ClientID:    booking.ClientID,
		ProviderID:  booking.ProviderID,
		Start:       booking.Start,
		Occurrences: occurrences,
		ClientTotal: booking.Fees.ClientTotal,
	})
}

func (s *StreamNotificationService) NotifyClientRequestSent(ctx context.Context, booking models.Booking, occurrences int) error {
	return s.publish(ctx, models.EventBookingRequestSent, models.BookingRequestSentEvent{
		BookingID:   booking.ID,
		ClientID:    booking.ClientID,
		ProviderID:  booking.ProviderID,
		Start:       booking.Start,
		Occurrences: occurrences,
	})
}

func (s *StreamNotificationService) publish(ctx context.Context, eventType string, data any) error {
	event := models.BookingEvent{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: s.Stream,
		Values: map[string]interface{}{
			"event": eventJSON,
		},
	}

	if _, err := s.Client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	return nil
}
