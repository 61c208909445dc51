package models

import "time"

// Event types published to the booking event stream. Delivery (push, email)
// is handled by an external consumer.
const (
	EventBookingRequested   = "booking.requested"    // sent to the provider
	EventBookingRequestSent = "booking.request_sent" // confirmation to the client
	EventProposalExpired    = "proposal.expired"
)

// BookingEventsStream is the Redis stream carrying booking events.
const BookingEventsStream = "booking.events"

// BookingEvent is the envelope for every published event.
type BookingEvent struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// BookingRequestedEvent notifies a provider of a new booking request.
type BookingRequestedEvent struct {
	BookingID   string    `json:"bookingId"`
	ClientID    string    `json:"clientId"`
	ProviderID  string    `json:"providerId"`
	Start       time.Time `json:"start"`
	Occurrences int       `json:"occurrences"`
	ClientTotal float64   `json:"clientTotal"`
}

// BookingRequestSentEvent confirms to a client that their request went out.
type BookingRequestSentEvent struct {
	BookingID   string    `json:"bookingId"`
	ClientID    string    `json:"clientId"`
	ProviderID  string    `json:"providerId"`
	Start       time.Time `json:"start"`
	Occurrences int       `json:"occurrences"`
}
