package proposalRepo

import (
	"context"
	"time"

	"carebook/models"
)

// ErrNotMatched is returned by conditional updates when no document satisfied
// the transition filter. The service layer distinguishes "not found" from
// "transition denied" by re-reading the record.
var ErrNotMatched = errNotMatched{}

type errNotMatched struct{}

func (errNotMatched) Error() string { return "no proposal matched the transition filter" }

// ProposalRepository defines data access for rate proposals. Transition
// methods are conditional updates keyed on the current status (and, where it
// applies, the acting party), so concurrent accept/reject races are resolved
// by the database's compare-and-swap semantics.
type ProposalRepository interface {
	// Insert stores a new proposal record.
	Insert(ctx context.Context, p *models.Proposal) error
	// GetByID retrieves a proposal by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Proposal, error)
	// RespondByRecipient atomically moves a pending proposal to accepted or
	// rejected, but only if recipientID matches the stored recipient.
	RespondByRecipient(ctx context.Context, id, recipientID string, to models.ProposalStatus, respondedAt time.Time) (*models.Proposal, error)
	// MarkBooked atomically moves an accepted proposal to booked, stamping
	// the booking reference and booked timestamp.
	MarkBooked(ctx context.Context, id, bookingID string, bookedAt time.Time) (*models.Proposal, error)
	// ExpirePendingBefore moves every pending proposal created before the
	// cutoff to expired, returning how many were swept.
	ExpirePendingBefore(ctx context.Context, cutoff time.Time) (int64, error)
	// CountPendingBetween counts pending proposals between a pair of parties
	// in either direction.
	CountPendingBetween(ctx context.Context, partyA, partyB string) (int64, error)
	// ListBetween retrieves all proposals exchanged between a pair of parties
	// in either direction, newest first.
	ListBetween(ctx context.Context, partyA, partyB string) ([]models.Proposal, error)
}
