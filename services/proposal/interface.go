package proposal

import (
	"context"
	"time"

	"go.uber.org/zap"

	proposalRepo "carebook/database/repository/proposal"
	"carebook/models"
)

// ProposalService governs the lifecycle of a negotiated rate offer. All
// transition guards are backed by the repository's conditional updates, so
// concurrent responses to the same proposal are serialized by the database.
type ProposalService interface {
	// Create opens a new pending proposal from proposer to recipient.
	Create(ctx context.Context, p models.Proposal) (*models.Proposal, error)
	// Accept moves a pending proposal to accepted. Only the recipient may accept.
	Accept(ctx context.Context, id, actorID string) (*models.Proposal, error)
	// Reject moves a pending proposal to rejected. Only the recipient may reject.
	Reject(ctx context.Context, id, actorID string) (*models.Proposal, error)
	// MarkBooked moves an accepted proposal to booked, stamping the booking id.
	MarkBooked(ctx context.Context, id, bookingID string) (*models.Proposal, error)
	// ExpireStale sweeps pending proposals older than ttl to expired.
	ExpireStale(ctx context.Context, ttl time.Duration) (int64, error)
	// Get retrieves a proposal by id.
	Get(ctx context.Context, id string) (*models.Proposal, error)
	// ListForPair retrieves all proposals between the actor and a counterpart,
	// newest first.
	ListForPair(ctx context.Context, actorID, otherID string) ([]models.Proposal, error)
}

// DefaultProposalService implements ProposalService.
type DefaultProposalService struct {
	Repo        proposalRepo.ProposalRepository
	MinimumRate float64
	Logger      *zap.Logger
	Now         func() time.Time
}

func (s *DefaultProposalService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
