package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carebook/services/booking"
	"carebook/services/pricing"
	"carebook/services/proposal"
	"carebook/services/schedule"
	"carebook/utils"
)

// serviceErrorCode extracts the stable error code from any of the core's
// typed errors, or returns "".
func serviceErrorCode(err error) string {
	var pe *pricing.PricingError
	if errors.As(err, &pe) {
		return pe.Code
	}
	var pre *proposal.ProposalError
	if errors.As(err, &pre) {
		return pre.Code
	}
	var se *schedule.ScheduleError
	if errors.As(err, &se) {
		return se.Code
	}
	var ae *booking.AssemblyError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// writeServiceError maps a core error to an HTTP response carrying its code.
func writeServiceError(c *gin.Context, err error) {
	code := serviceErrorCode(err)
	switch code {
	case proposal.CodeProposalNotFound:
		utils.JSONErrorCode(c, http.StatusNotFound, code, err.Error())
	case proposal.CodeProposalTransitionDenied:
		utils.JSONErrorCode(c, http.StatusForbidden, code, err.Error())
	case pricing.CodeRateBelowMinimum, pricing.CodeInvalidRate, pricing.CodeInvalidQuantity,
		pricing.CodeUnknownPricingPhase,
		schedule.CodeInvalidRecurrenceRule, booking.CodeProposalNotUsable, booking.CodeNoOccurrences:
		utils.JSONErrorCode(c, http.StatusUnprocessableEntity, code, err.Error())
	case booking.CodeAssemblyPartialFailure:
		var ae *booking.AssemblyError
		errors.As(err, &ae)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":      code,
			"message":   ae.Message,
			"succeeded": ae.Succeeded,
			"failed":    ae.Failed,
		})
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}

// actorID reads the authenticated party id injected by the upstream identity
// gateway. Authentication itself is outside this service.
func actorID(c *gin.Context) string {
	return c.GetHeader("X-Actor-ID")
}
