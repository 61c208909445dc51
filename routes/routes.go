package routes

import (
	"github.com/gin-gonic/gin"

	"carebook/handlers"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(
	r *gin.Engine,
	quoteHandler *handlers.QuoteHandler,
	proposalHandler *handlers.ProposalHandler,
	bookingHandler *handlers.BookingHandler,
) {
	r.GET("/health", handlers.Health)

	quotes := r.Group("/api/quotes")
	{
		quotes.POST("", quoteHandler.CreateQuote)
		quotes.GET("/:id", quoteHandler.GetQuote)
	}

	proposals := r.Group("/api/proposals")
	{
		proposals.POST("", proposalHandler.CreateProposal)
		proposals.GET("", proposalHandler.ListProposals)
		proposals.GET("/:id", proposalHandler.GetProposal)
		proposals.POST("/:id/accept", proposalHandler.AcceptProposal)
		proposals.POST("/:id/reject", proposalHandler.RejectProposal)
	}

	bookings := r.Group("/api/bookings")
	{
		bookings.POST("", bookingHandler.CreateBooking)
		bookings.GET("", bookingHandler.ListBookings)
		bookings.GET("/:id", bookingHandler.GetBooking)
	}
}
