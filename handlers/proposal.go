package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carebook/models"
	"carebook/services/proposal"
	"carebook/utils"
)

// ProposalHandler exposes the proposal lifecycle over HTTP.
type ProposalHandler struct {
	Svc    proposal.ProposalService
	Logger *zap.Logger
}

func NewProposalHandler(svc proposal.ProposalService, logger *zap.Logger) *ProposalHandler {
	return &ProposalHandler{Svc: svc, Logger: logger}
}

// CreateProposal opens a new rate offer from the acting party.
func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	var input struct {
		RecipientID string  `json:"recipientId" binding:"required"`
		Rate        float64 `json:"rate" binding:"required"`
		Frequency   string  `json:"frequency"`
		ServiceType string  `json:"serviceType"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	proposer := actorID(c)
	if proposer == "" {
		utils.JSONError(c, http.StatusUnauthorized, "missing actor identity", "")
		return
	}

	created, err := h.Svc.Create(c.Request.Context(), models.Proposal{
		ProposerID:  proposer,
		RecipientID: input.RecipientID,
		Rate:        input.Rate,
		Frequency:   input.Frequency,
		ServiceType: input.ServiceType,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetProposal returns a proposal by id.
func (h *ProposalHandler) GetProposal(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListProposals returns every proposal between the acting party and the
// counterpart named in the "with" query parameter.
func (h *ProposalHandler) ListProposals(c *gin.Context) {
	actor := actorID(c)
	if actor == "" {
		utils.JSONError(c, http.StatusUnauthorized, "missing actor identity", "")
		return
	}
	other := c.Query("with")
	if other == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing 'with' query parameter", "")
		return
	}

	proposals, err := h.Svc.ListForPair(c.Request.Context(), actor, other)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proposals": proposals})
}

// AcceptProposal moves a pending proposal to accepted. Recipient only.
func (h *ProposalHandler) AcceptProposal(c *gin.Context) {
	h.respond(c, h.Svc.Accept)
}

// RejectProposal moves a pending proposal to rejected. Recipient only.
func (h *ProposalHandler) RejectProposal(c *gin.Context) {
	h.respond(c, h.Svc.Reject)
}

func (h *ProposalHandler) respond(c *gin.Context, transition func(ctx context.Context, id, actorID string) (*models.Proposal, error)) {
	actor := actorID(c)
	if actor == "" {
		utils.JSONError(c, http.StatusUnauthorized, "missing actor identity", "")
		return
	}
	p, err := transition(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
