package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	bookingRepo "carebook/database/repository/booking"
	"carebook/models"
	"carebook/services/notification"
	"carebook/services/pricing"
	"carebook/services/proposal"
	"carebook/services/schedule"
)

// AssembleRequest is everything needed to turn one booking request into a
// series of booking records.
type AssembleRequest struct {
	ClientID            string
	ProviderID          string
	Selection           models.ServiceSelection
	RateCard            models.RateCard
	Phase               string
	ProviderOnboardedAt *time.Time
	Start               time.Time
	DurationHours       float64
	Recurrence          *models.RecurrenceRule
	ProposalID          string
}

// AssemblyResult reports what was created.
type AssemblyResult struct {
	Bookings []models.Booking      `json:"bookings"`
	Fees     models.FeeCalculation `json:"fees"`
}

// AssemblerService orchestrates rate resolution, fee calculation, recurrence
// expansion and persistence into booking records.
type AssemblerService interface {
	Assemble(ctx context.Context, req AssembleRequest) (*AssemblyResult, error)
}

// DefaultAssemblerService implements AssemblerService.
type DefaultAssemblerService struct {
	Pricing   *pricing.Engine
	Expander  schedule.Expander
	Proposals proposal.ProposalService
	Repo      bookingRepo.BookingRepository
	Notifier  notification.NotificationService
	Logger    *zap.Logger
	Now       func() time.Time
}

func (s *DefaultAssemblerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
