package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"carebook/models"
)

// Assemble validates and prices one booking request, expands it into its
// occurrences and persists one booking record per occurrence.
//
// Preconditions are checked before anything is written: the resolved rate
// meets the platform minimum, the fee calculation succeeds and the expansion
// yields at least one occurrence. Persistence is all-or-nothing where the
// store supports it; a partial write is surfaced as assemblyPartialFailure
// with succeeded/failed counts and is never retried here. Two notification
// events are emitted per request, fire-and-forget.
func (s *DefaultAssemblerService) Assemble(ctx context.Context, req AssembleRequest) (*AssemblyResult, error) {
	var negotiated *float64
	if req.ProposalID != "" {
		p, err := s.Proposals.Get(ctx, req.ProposalID)
		if err != nil {
			return nil, fmt.Errorf("failed to load proposal %s: %w", req.ProposalID, err)
		}
		if p.Status != models.ProposalAccepted {
			return nil, newError(CodeProposalNotUsable,
				"proposal %s is %s; only an accepted proposal can price a booking", p.ID, p.Status)
		}
		if !involvesParties(p, req.ClientID, req.ProviderID) {
			return nil, newError(CodeProposalNotUsable,
				"proposal %s does not belong to this client/provider pair", p.ID)
		}
		negotiated = &p.Rate
	}

	rate, err := s.Pricing.Resolve(req.Selection, req.RateCard, negotiated)
	if err != nil {
		return nil, err
	}

	fees, err := s.Pricing.CalculateFees(rate, req.Selection.Quantity, req.Phase, req.ProviderOnboardedAt)
	if err != nil {
		return nil, err
	}

	occurrences, err := s.Expander.Expand(req.Start, req.DurationHours, req.Recurrence)
	if err != nil {
		return nil, err
	}
	if len(occurrences) == 0 {
		return nil, newError(CodeNoOccurrences, "recurrence expansion produced no occurrences")
	}

	now := s.now()
	bookings := make([]models.Booking, len(occurrences))
	for i, occ := range occurrences {
		bookings[i] = models.Booking{
			ID:             uuid.New().String(),
			ClientID:       req.ClientID,
			ProviderID:     req.ProviderID,
			Start:          occ.Start,
			End:            occ.End,
			Quantity:       req.Selection.Quantity,
			Rate:           rate,
			Fees:           fees,
			Status:         models.BookingRequested,
			RecurrenceRule: req.Recurrence,
			ProposalID:     req.ProposalID,
			CreatedAt:      now,
		}
	}

	inserted, insertErr := s.Repo.InsertSeries(ctx, bookings)
	if insertErr != nil && inserted == 0 {
		return nil, fmt.Errorf("failed to persist booking series: %w", insertErr)
	}

	persisted := bookings[:inserted]

	// The accepted offer is consumed by the first persisted occurrence even
	// on a partial write.
	if req.ProposalID != "" {
		if _, err := s.Proposals.MarkBooked(ctx, req.ProposalID, persisted[0].ID); err != nil {
			s.Logger.Error("failed to mark proposal booked",
				zap.String("proposal", req.ProposalID),
				zap.String("booking", persisted[0].ID),
				zap.Error(err))
		}
	}

	s.emitEvents(ctx, persisted[0], len(persisted))

	if insertErr != nil {
		s.Logger.Error("booking series partially persisted",
			zap.Int("succeeded", inserted),
			zap.Int("failed", len(bookings)-inserted),
			zap.Error(insertErr))
		return nil, &AssemblyError{
			Code: CodeAssemblyPartialFailure,
			Message: fmt.Sprintf("persisted %d of %d occurrences: %v",
				inserted, len(bookings), insertErr),
			Succeeded: inserted,
			Failed:    len(bookings) - inserted,
		}
	}

	return &AssemblyResult{Bookings: bookings, Fees: fees}, nil
}

// emitEvents publishes the two per-request notifications. Delivery is
// external; failures are logged, never propagated.
func (s *DefaultAssemblerService) emitEvents(ctx context.Context, first models.Booking, occurrences int) {
	if err := s.Notifier.NotifyProviderBookingRequest(ctx, first, occurrences); err != nil {
		s.Logger.Warn("failed to emit provider notification",
			zap.String("booking", first.ID), zap.Error(err))
	}
	if err := s.Notifier.NotifyClientRequestSent(ctx, first, occurrences); err != nil {
		s.Logger.Warn("failed to emit client notification",
			zap.String("booking", first.ID), zap.Error(err))
	}
}

func involvesParties(p *models.Proposal, clientID, providerID string) bool {
	pair := map[string]bool{p.ProposerID: true, p.RecipientID: true}
	return pair[clientID] && pair[providerID]
}
