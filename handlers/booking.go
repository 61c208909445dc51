package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carebook/config"
	bookingRepo "carebook/database/repository/booking"
	"carebook/models"
	"carebook/services/booking"
	"carebook/utils"
)

// BookingHandler exposes booking assembly and lookups over HTTP.
type BookingHandler struct {
	Assembler booking.AssemblerService
	Repo      bookingRepo.BookingRepository
	Logger    *zap.Logger
}

func NewBookingHandler(assembler booking.AssemblerService, repo bookingRepo.BookingRepository, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Assembler: assembler, Repo: repo, Logger: logger}
}

type bookingRequest struct {
	ProviderID          string                  `json:"providerId" binding:"required"`
	Selection           models.ServiceSelection `json:"selection" binding:"required"`
	RateCard            models.RateCard         `json:"rateCard"`
	Phase               string                  `json:"phase"`
	ProviderOnboardedAt *time.Time              `json:"providerOnboardedAt,omitempty"`
	Start               time.Time               `json:"start" binding:"required"`
	DurationHours       float64                 `json:"durationHours" binding:"required,gt=0"`
	Recurrence          *models.RecurrenceRule  `json:"recurrence,omitempty"`
	ProposalID          string                  `json:"proposalId,omitempty"`
}

// CreateBooking assembles one booking request into its occurrence series.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input bookingRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	client := actorID(c)
	if client == "" {
		utils.JSONError(c, http.StatusUnauthorized, "missing actor identity", "")
		return
	}

	phase := input.Phase
	if phase == "" {
		phase = config.AppConfig.CurrentPhase
	}

	result, err := h.Assembler.Assemble(c.Request.Context(), booking.AssembleRequest{
		ClientID:            client,
		ProviderID:          input.ProviderID,
		Selection:           input.Selection,
		RateCard:            input.RateCard,
		Phase:               phase,
		ProviderOnboardedAt: input.ProviderOnboardedAt,
		Start:               input.Start,
		DurationHours:       input.DurationHours,
		Recurrence:          input.Recurrence,
		ProposalID:          input.ProposalID,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	h.Logger.Info("booking request assembled",
		zap.String("client", client),
		zap.String("provider", input.ProviderID),
		zap.Int("occurrences", len(result.Bookings)))
	c.JSON(http.StatusCreated, result)
}

// GetBooking returns a booking by id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch booking", err.Error())
		return
	}
	if b == nil {
		utils.JSONError(c, http.StatusNotFound, "booking not found", "")
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListBookings returns the acting party's bookings, as client or provider.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	actor := actorID(c)
	if actor == "" {
		utils.JSONError(c, http.StatusUnauthorized, "missing actor identity", "")
		return
	}

	var (
		bookings []models.Booking
		err      error
	)
	if c.Query("role") == "provider" {
		bookings, err = h.Repo.ListForProvider(c.Request.Context(), actor)
	} else {
		bookings, err = h.Repo.ListForClient(c.Request.Context(), actor)
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
