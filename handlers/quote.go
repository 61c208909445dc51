package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"carebook/config"
	"carebook/models"
	"carebook/services/pricing"
	"carebook/utils"
)

// QuoteHandler prices a service selection without creating anything. The
// resulting snapshot is cached so a follow-up booking can reference the exact
// breakdown the client saw.
type QuoteHandler struct {
	Pricing *pricing.Engine
	Logger  *zap.Logger
}

func NewQuoteHandler(engine *pricing.Engine, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{Pricing: engine, Logger: logger}
}

type quoteRequest struct {
	Selection           models.ServiceSelection `json:"selection" binding:"required"`
	RateCard            models.RateCard         `json:"rateCard"`
	Phase               string                  `json:"phase"`
	NegotiatedRate      *float64                `json:"negotiatedRate,omitempty"`
	ProviderOnboardedAt *time.Time              `json:"providerOnboardedAt,omitempty"`
}

type quoteSnapshot struct {
	QuoteID  string                `json:"quoteId"`
	BaseRate float64               `json:"baseRate"`
	Fees     models.FeeCalculation `json:"fees"`
	Phase    string                `json:"phase"`
}

// CreateQuote resolves the base rate and computes the fee breakdown.
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var input quoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	// The host resolves the platform-wide phase once per operation; it is
	// never read ambiently inside the pricing engine.
	phase := input.Phase
	if phase == "" {
		phase = config.AppConfig.CurrentPhase
	}

	rate, err := h.Pricing.Resolve(input.Selection, input.RateCard, input.NegotiatedRate)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	fees, err := h.Pricing.CalculateFees(rate, input.Selection.Quantity, phase, input.ProviderOnboardedAt)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	snapshot := quoteSnapshot{
		QuoteID:  uuid.New().String(),
		BaseRate: rate,
		Fees:     fees,
		Phase:    phase,
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to marshal quote", err.Error())
		return
	}
	cacheClient := utils.GetCacheClient()
	if err := cacheClient.Set(c.Request.Context(), utils.QuoteCachePrefix+snapshot.QuoteID, data, utils.QuoteCacheTTL).Err(); err != nil {
		// The quote is still valid without the cache entry.
		h.Logger.Warn("failed to cache quote", zap.String("quote", snapshot.QuoteID), zap.Error(err))
	}

	c.JSON(http.StatusOK, snapshot)
}

// GetQuote returns a previously computed quote snapshot.
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	cacheClient := utils.GetCacheClient()
	data, err := cacheClient.Get(c.Request.Context(), utils.QuoteCachePrefix+c.Param("id")).Result()
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "quote not found or expired", "")
		return
	}

	var snapshot quoteSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to parse quote", err.Error())
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
