package proposal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	proposalRepo "carebook/database/repository/proposal"
	"carebook/models"
)

func (s *DefaultProposalService) Create(ctx context.Context, p models.Proposal) (*models.Proposal, error) {
	if p.Rate < s.MinimumRate {
		return nil, newError(CodeRateBelowMinimum,
			"proposed rate %.2f is below the platform minimum %.2f", p.Rate, s.MinimumRate)
	}
	if p.ProposerID == "" || p.RecipientID == "" || p.ProposerID == p.RecipientID {
		return nil, fmt.Errorf("proposal requires two distinct parties")
	}

	// Advisory only: a second pending proposal between the same pair is
	// suspicious but not an error.
	if count, err := s.Repo.CountPendingBetween(ctx, p.ProposerID, p.RecipientID); err == nil && count > 0 {
		s.Logger.Warn("pending proposal already exists between parties",
			zap.String("proposer", p.ProposerID),
			zap.String("recipient", p.RecipientID),
			zap.Int64("pending", count))
	}

	p.ID = uuid.New().String()
	p.Status = models.ProposalPending
	p.CreatedAt = s.now()
	p.RespondedAt = nil
	p.BookedAt = nil
	p.BookedBookingID = ""

	if err := s.Repo.Insert(ctx, &p); err != nil {
		return nil, fmt.Errorf("failed to create proposal: %w", err)
	}
	return &p, nil
}

func (s *DefaultProposalService) Accept(ctx context.Context, id, actorID string) (*models.Proposal, error) {
	return s.respond(ctx, id, actorID, models.ProposalAccepted)
}

func (s *DefaultProposalService) Reject(ctx context.Context, id, actorID string) (*models.Proposal, error) {
	return s.respond(ctx, id, actorID, models.ProposalRejected)
}

// respond runs the recipient-only pending transition through the repository's
// conditional update. When the update matches nothing, the record is re-read
// once to tell the caller why: missing proposal, wrong actor, or a state that
// permits no further transitions. The stored proposal is never modified on a
// denied attempt.
func (s *DefaultProposalService) respond(ctx context.Context, id, actorID string, to models.ProposalStatus) (*models.Proposal, error) {
	updated, err := s.Repo.RespondByRecipient(ctx, id, actorID, to, s.now())
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, proposalRepo.ErrNotMatched) {
		return nil, fmt.Errorf("failed to %s proposal %s: %w", to, id, err)
	}

	existing, getErr := s.Repo.GetByID(ctx, id)
	if getErr != nil {
		return nil, fmt.Errorf("failed to load proposal %s: %w", id, getErr)
	}
	if existing == nil {
		return nil, newError(CodeProposalNotFound, "proposal %s does not exist", id)
	}
	if existing.Status != models.ProposalPending {
		return nil, newError(CodeProposalTransitionDenied,
			"proposal %s is %s; only pending proposals can be %s", id, existing.Status, to)
	}
	if existing.RecipientID != actorID {
		return nil, newError(CodeProposalTransitionDenied,
			"only the recipient may respond to proposal %s", id)
	}
	// The CAS lost a race that a re-read can no longer explain.
	return nil, newError(CodeProposalTransitionDenied,
		"proposal %s could not be transitioned to %s", id, to)
}

func (s *DefaultProposalService) MarkBooked(ctx context.Context, id, bookingID string) (*models.Proposal, error) {
	updated, err := s.Repo.MarkBooked(ctx, id, bookingID, s.now())
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, proposalRepo.ErrNotMatched) {
		return nil, fmt.Errorf("failed to mark proposal %s booked: %w", id, err)
	}

	existing, getErr := s.Repo.GetByID(ctx, id)
	if getErr != nil {
		return nil, fmt.Errorf("failed to load proposal %s: %w", id, getErr)
	}
	if existing == nil {
		return nil, newError(CodeProposalNotFound, "proposal %s does not exist", id)
	}
	return nil, newError(CodeProposalTransitionDenied,
		"proposal %s is %s; only accepted proposals can be booked", id, existing.Status)
}

func (s *DefaultProposalService) ExpireStale(ctx context.Context, ttl time.Duration) (int64, error) {
	cutoff := s.now().Add(-ttl)
	swept, err := s.Repo.ExpirePendingBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to expire stale proposals: %w", err)
	}
	if swept > 0 {
		s.Logger.Info("swept stale proposals to expired",
			zap.Int64("count", swept),
			zap.Time("cutoff", cutoff))
	}
	return swept, nil
}

func (s *DefaultProposalService) Get(ctx context.Context, id string) (*models.Proposal, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load proposal %s: %w", id, err)
	}
	if p == nil {
		return nil, newError(CodeProposalNotFound, "proposal %s does not exist", id)
	}
	return p, nil
}

func (s *DefaultProposalService) ListForPair(ctx context.Context, actorID, otherID string) ([]models.Proposal, error) {
	proposals, err := s.Repo.ListBetween(ctx, actorID, otherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals between %s and %s: %w", actorID, otherID, err)
	}
	return proposals, nil
}
