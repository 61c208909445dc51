package models

import "time"

// ProposalStatus is the lifecycle state of a negotiated rate offer.
type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "pending"
	ProposalAccepted ProposalStatus = "accepted"
	ProposalRejected ProposalStatus = "rejected"
	ProposalExpired  ProposalStatus = "expired"
	ProposalBooked   ProposalStatus = "booked"
)

// Terminal reports whether no further transition is possible from s.
func (s ProposalStatus) Terminal() bool {
	switch s {
	case ProposalRejected, ProposalExpired, ProposalBooked:
		return true
	}
	return false
}

// Proposal is a rate offer exchanged between two parties prior to booking.
// Only the recipient may accept or reject; the booking flow moves an accepted
// proposal to booked.
type Proposal struct {
	ID              string         `bson:"id" json:"id"`
	ProposerID      string         `bson:"proposer_id" json:"proposerId"`
	RecipientID     string         `bson:"recipient_id" json:"recipientId"`
	Rate            float64        `bson:"rate" json:"rate"`
	Frequency       string         `bson:"frequency" json:"frequency"`       // e.g. "per hour", "per night"
	ServiceType     string         `bson:"service_type" json:"serviceType"`
	Status          ProposalStatus `bson:"status" json:"status"`
	CreatedAt       time.Time      `bson:"created_at" json:"createdAt"`
	RespondedAt     *time.Time     `bson:"responded_at,omitempty" json:"respondedAt,omitempty"`
	BookedAt        *time.Time     `bson:"booked_at,omitempty" json:"bookedAt,omitempty"`
	BookedBookingID string         `bson:"booked_booking_id,omitempty" json:"bookedBookingId,omitempty"` // opaque reference; consistency is the caller's responsibility
}
