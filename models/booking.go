package models

import "time"

// Recurrence rule types.
const (
	RecurrenceWeekly      = "weekly"
	RecurrenceBiweekly    = "biweekly"
	RecurrenceFortnightly = "fortnightly" // alias of biweekly
	RecurrenceMonthly     = "monthly"
)

// Booking statuses.
const (
	BookingRequested = "requested"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// RecurrenceRule describes how a single booking request repeats.
type RecurrenceRule struct {
	Type    string     `bson:"type" json:"type"`
	EndDate *time.Time `bson:"end_date,omitempty" json:"endDate,omitempty"`
}

// Occurrence is one concrete scheduled session produced by expanding a
// recurrence rule.
type Occurrence struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Booking represents one occurrence of a care session. Fee fields are fixed
// at creation time and never recomputed.
type Booking struct {
	ID             string          `bson:"id" json:"id"`
	ClientID       string          `bson:"client_id" json:"clientId"`
	ProviderID     string          `bson:"provider_id" json:"providerId"`
	Start          time.Time       `bson:"start" json:"start"`
	End            time.Time       `bson:"end" json:"end"`
	Quantity       float64         `bson:"quantity" json:"quantity"`
	Rate           float64         `bson:"rate" json:"rate"`
	Fees           FeeCalculation  `bson:"fees" json:"fees"`
	Status         string          `bson:"status" json:"status"`
	RecurrenceRule *RecurrenceRule `bson:"recurrence_rule,omitempty" json:"recurrenceRule,omitempty"`
	ProposalID     string          `bson:"proposal_id,omitempty" json:"proposalId,omitempty"` // opaque reference to the accepted proposal, if any
	CreatedAt      time.Time       `bson:"created_at" json:"createdAt"`
}
