package bookingRepo

import (
	"context"

	"carebook/models"
)

// BookingRepository defines data access for booking records.
type BookingRepository interface {
	// InsertSeries stores every booking in the series, all-or-nothing where
	// the deployment supports multi-document transactions. When it does not,
	// a partial write is reported through the returned insert count and a
	// non-nil error; it is never hidden.
	InsertSeries(ctx context.Context, bookings []models.Booking) (int, error)
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListForClient retrieves all bookings made by a client.
	ListForClient(ctx context.Context, clientID string) ([]models.Booking, error)
	// ListForProvider retrieves all bookings addressed to a provider.
	ListForProvider(ctx context.Context, providerID string) ([]models.Booking, error)
}
