package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carebook/models"
	"carebook/services/pricing"
	"carebook/services/proposal"
	"carebook/services/schedule"
)

// ---- mock implementations ----

type mockProposalService struct {
	getFn        func(id string) (*models.Proposal, error)
	markBookedFn func(id, bookingID string) (*models.Proposal, error)
	bookedCalls  []string
}

func (m *mockProposalService) Get(_ context.Context, id string) (*models.Proposal, error) {
	if m.getFn != nil {
		return m.getFn(id)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockProposalService) MarkBooked(_ context.Context, id, bookingID string) (*models.Proposal, error) {
	m.bookedCalls = append(m.bookedCalls, bookingID)
	if m.markBookedFn != nil {
		return m.markBookedFn(id, bookingID)
	}
	return &models.Proposal{ID: id, Status: models.ProposalBooked, BookedBookingID: bookingID}, nil
}

func (m *mockProposalService) Create(_ context.Context, _ models.Proposal) (*models.Proposal, error) {
	return nil, fmt.Errorf("not configured")
}
func (m *mockProposalService) Accept(_ context.Context, _, _ string) (*models.Proposal, error) {
	return nil, fmt.Errorf("not configured")
}
func (m *mockProposalService) Reject(_ context.Context, _, _ string) (*models.Proposal, error) {
	return nil, fmt.Errorf("not configured")
}
func (m *mockProposalService) ExpireStale(_ context.Context, _ time.Duration) (int64, error) {
	return 0, nil
}
func (m *mockProposalService) ListForPair(_ context.Context, _, _ string) ([]models.Proposal, error) {
	return nil, nil
}

type mockBookingRepo struct {
	insertFn func(bookings []models.Booking) (int, error)
	inserted [][]models.Booking
}

func (m *mockBookingRepo) InsertSeries(_ context.Context, bookings []models.Booking) (int, error) {
	m.inserted = append(m.inserted, bookings)
	if m.insertFn != nil {
		return m.insertFn(bookings)
	}
	return len(bookings), nil
}

func (m *mockBookingRepo) GetByID(_ context.Context, _ string) (*models.Booking, error) {
	return nil, nil
}
func (m *mockBookingRepo) ListForClient(_ context.Context, _ string) ([]models.Booking, error) {
	return nil, nil
}
func (m *mockBookingRepo) ListForProvider(_ context.Context, _ string) ([]models.Booking, error) {
	return nil, nil
}

type mockNotifier struct {
	providerEvents int
	clientEvents   int
	lastCount      int
}

func (m *mockNotifier) NotifyProviderBookingRequest(_ context.Context, _ models.Booking, occurrences int) error {
	m.providerEvents++
	m.lastCount = occurrences
	return nil
}

func (m *mockNotifier) NotifyClientRequestSent(_ context.Context, _ models.Booking, occurrences int) error {
	m.clientEvents++
	return nil
}

// ---- helpers ----

func newTestAssembler(props *mockProposalService, repo *mockBookingRepo, notifier *mockNotifier) *DefaultAssemblerService {
	engine := pricing.NewEngine(pricing.Config{
		MinimumRate:       15.00,
		DefaultRate:       25.00,
		PromoWindowMonths: 6,
		Phases: map[string]pricing.PhaseFees{
			"1": {ClientFeePct: 0.15, CarerFeePct: 0.10},
		},
	})
	return &DefaultAssemblerService{
		Pricing:   engine,
		Expander:  schedule.Expander{MaxOccurrences: 12},
		Proposals: props,
		Repo:      repo,
		Notifier:  notifier,
		Logger:    zap.NewNop(),
		Now:       func() time.Time { return time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC) },
	}
}

func baseRequest() AssembleRequest {
	return AssembleRequest{
		ClientID:   "client-1",
		ProviderID: "carer-1",
		Selection: models.ServiceSelection{
			Type:     models.ServiceTypeHourly,
			Subtype:  models.ServiceSubtypeHourly,
			Quantity: 3,
		},
		RateCard: models.RateCard{
			ProviderID: "carer-1",
			Subtypes:   map[string]float64{models.ServiceSubtypeHourly: 20.00},
		},
		Phase:         "1",
		Start:         time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC),
		DurationHours: 3,
	}
}

var _ proposal.ProposalService = (*mockProposalService)(nil)

// ---- tests ----

func TestAssemble_SingleOccurrence(t *testing.T) {
	props := &mockProposalService{}
	repo := &mockBookingRepo{}
	notifier := &mockNotifier{}
	svc := newTestAssembler(props, repo, notifier)

	res, err := svc.Assemble(context.Background(), baseRequest())
	require.NoError(t, err)
	require.Len(t, res.Bookings, 1)

	b := res.Bookings[0]
	require.NotEmpty(t, b.ID)
	require.Equal(t, models.BookingRequested, b.Status)
	require.Equal(t, 20.00, b.Rate)
	require.InDelta(t, 60.00, b.Fees.Subtotal, 1e-9)
	require.InDelta(t, 69.00, b.Fees.ClientTotal, 1e-9)
	require.Equal(t, b.Start.Add(3*time.Hour), b.End)

	require.Equal(t, 1, notifier.providerEvents)
	require.Equal(t, 1, notifier.clientEvents)
	require.Empty(t, props.bookedCalls)
}

func TestAssemble_RecurringSeries(t *testing.T) {
	repo := &mockBookingRepo{}
	notifier := &mockNotifier{}
	svc := newTestAssembler(&mockProposalService{}, repo, notifier)

	req := baseRequest()
	end := time.Date(2025, 1, 27, 0, 0, 0, 0, time.UTC)
	req.Recurrence = &models.RecurrenceRule{Type: models.RecurrenceWeekly, EndDate: &end}

	res, err := svc.Assemble(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Bookings, 4)

	ids := map[string]bool{}
	for i, b := range res.Bookings {
		ids[b.ID] = true
		require.Equal(t, res.Fees, b.Fees, "every occurrence shares the fee snapshot")
		if i > 0 {
			require.True(t, res.Bookings[i-1].Start.Before(b.Start))
		}
	}
	require.Len(t, ids, 4, "each occurrence gets its own id")

	require.Equal(t, 1, notifier.providerEvents, "one provider event per request, not per occurrence")
	require.Equal(t, 1, notifier.clientEvents)
	require.Equal(t, 4, notifier.lastCount)
}

func TestAssemble_AcceptedProposalOverridesRate(t *testing.T) {
	props := &mockProposalService{
		getFn: func(id string) (*models.Proposal, error) {
			return &models.Proposal{
				ID: id, ProposerID: "carer-1", RecipientID: "client-1",
				Rate: 32.00, Status: models.ProposalAccepted,
			}, nil
		},
	}
	repo := &mockBookingRepo{}
	svc := newTestAssembler(props, repo, &mockNotifier{})

	req := baseRequest()
	req.ProposalID = "prop-1"

	res, err := svc.Assemble(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 32.00, res.Bookings[0].Rate, "negotiated rate beats the rate card")
	require.InDelta(t, 96.00, res.Fees.Subtotal, 1e-9)

	require.Len(t, props.bookedCalls, 1)
	require.Equal(t, res.Bookings[0].ID, props.bookedCalls[0])
}

func TestAssemble_ProposalNotUsable(t *testing.T) {
	t.Run("pending proposal", func(t *testing.T) {
		props := &mockProposalService{
			getFn: func(id string) (*models.Proposal, error) {
				return &models.Proposal{ID: id, ProposerID: "carer-1", RecipientID: "client-1",
					Rate: 32.00, Status: models.ProposalPending}, nil
			},
		}
		repo := &mockBookingRepo{}
		svc := newTestAssembler(props, repo, &mockNotifier{})

		req := baseRequest()
		req.ProposalID = "prop-1"
		_, err := svc.Assemble(context.Background(), req)
		require.Error(t, err)
		require.True(t, HasCode(err, CodeProposalNotUsable))
		require.Empty(t, repo.inserted, "nothing is written when preconditions fail")
	})

	t.Run("wrong parties", func(t *testing.T) {
		props := &mockProposalService{
			getFn: func(id string) (*models.Proposal, error) {
				return &models.Proposal{ID: id, ProposerID: "carer-9", RecipientID: "client-9",
					Rate: 32.00, Status: models.ProposalAccepted}, nil
			},
		}
		svc := newTestAssembler(props, &mockBookingRepo{}, &mockNotifier{})

		req := baseRequest()
		req.ProposalID = "prop-1"
		_, err := svc.Assemble(context.Background(), req)
		require.Error(t, err)
		require.True(t, HasCode(err, CodeProposalNotUsable))
	})
}

func TestAssemble_RateBelowMinimum(t *testing.T) {
	repo := &mockBookingRepo{}
	notifier := &mockNotifier{}
	svc := newTestAssembler(&mockProposalService{}, repo, notifier)

	req := baseRequest()
	req.RateCard.Subtypes[models.ServiceSubtypeHourly] = 12.00

	_, err := svc.Assemble(context.Background(), req)
	require.Error(t, err)
	require.True(t, pricing.HasCode(err, pricing.CodeRateBelowMinimum))
	require.Empty(t, repo.inserted)
	require.Zero(t, notifier.providerEvents)
}

func TestAssemble_InvalidRecurrence(t *testing.T) {
	svc := newTestAssembler(&mockProposalService{}, &mockBookingRepo{}, &mockNotifier{})

	req := baseRequest()
	req.Recurrence = &models.RecurrenceRule{Type: "hourly"}

	_, err := svc.Assemble(context.Background(), req)
	require.Error(t, err)
	require.True(t, schedule.HasCode(err, schedule.CodeInvalidRecurrenceRule))
}

func TestAssemble_PartialFailure(t *testing.T) {
	props := &mockProposalService{
		getFn: func(id string) (*models.Proposal, error) {
			return &models.Proposal{ID: id, ProposerID: "carer-1", RecipientID: "client-1",
				Rate: 30.00, Status: models.ProposalAccepted}, nil
		},
	}
	repo := &mockBookingRepo{
		insertFn: func(bookings []models.Booking) (int, error) {
			return 2, fmt.Errorf("write concern error after 2 documents")
		},
	}
	notifier := &mockNotifier{}
	svc := newTestAssembler(props, repo, notifier)

	req := baseRequest()
	req.ProposalID = "prop-1"
	end := time.Date(2025, 1, 27, 0, 0, 0, 0, time.UTC)
	req.Recurrence = &models.RecurrenceRule{Type: models.RecurrenceWeekly, EndDate: &end}

	_, err := svc.Assemble(context.Background(), req)
	require.Error(t, err)
	require.True(t, HasCode(err, CodeAssemblyPartialFailure))

	var ae *AssemblyError
	require.ErrorAs(t, err, &ae)
	require.Equal(t, 2, ae.Succeeded)
	require.Equal(t, 2, ae.Failed)

	// The accepted offer is still consumed and events still describe what
	// actually persisted.
	require.Len(t, props.bookedCalls, 1)
	require.Equal(t, 1, notifier.providerEvents)
	require.Equal(t, 2, notifier.lastCount)
}

func TestAssemble_TotalInsertFailure(t *testing.T) {
	repo := &mockBookingRepo{
		insertFn: func(bookings []models.Booking) (int, error) {
			return 0, fmt.Errorf("connection refused")
		},
	}
	notifier := &mockNotifier{}
	svc := newTestAssembler(&mockProposalService{}, repo, notifier)

	_, err := svc.Assemble(context.Background(), baseRequest())
	require.Error(t, err)
	require.False(t, HasCode(err, CodeAssemblyPartialFailure))
	require.Zero(t, notifier.providerEvents, "no events when nothing persisted")
}
