package notification

import (
	"context"

	"carebook/models"
)

// NotificationService emits booking events. Emission is the core's
// responsibility; delivery (push, email) belongs to an external consumer and
// its failure never rolls back a booking.
type NotificationService interface {
	// NotifyProviderBookingRequest tells a provider a new request arrived.
	NotifyProviderBookingRequest(ctx context.Context, booking models.Booking, occurrences int) error
	// NotifyClientRequestSent confirms to a client their request went out.
	NotifyClientRequestSent(ctx context.Context, booking models.Booking, occurrences int) error
}
