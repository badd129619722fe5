package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/exchange_rates_app/internal/core/ports/services"
	"github.com/SscSPs/exchange_rates_app/internal/dto"
	"github.com/SscSPs/exchange_rates_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	exchangeRates := rg.Group("/exchange_rates")
	{
		exchangeRates.GET("", h.getExchangeRate)
		exchangeRates.PUT("", h.saveExchangeRate)
	}
}

// getExchangeRate godoc
// @Summary Resolve an exchange rate
// @Description Returns how many units of base one unit of quote is worth. Falls back to the inverse pair and then to triangulation through the reference currency.
// @Tags exchange rates
// @Produce  json
// @Param   quote query string true "Quote currency code"
// @Param   base  query string true "Base currency code"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse "Invalid currency code"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "No such rate"
// @Failure 500 {object} ErrorResponse "Store or data error"
// @Security BearerAuth
// @Router /exchange_rates [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.GetExchangeRateQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid exchange rate query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "quote and base must be currency codes"})
		return
	}

	logger = logger.With(slog.String("quote", query.Quote), slog.String("base", query.Base))
	rate, err := h.exchangeRateService.GetExchangeRate(c.Request.Context(), query.Quote, query.Base)
	if err != nil {
		handleServiceError(c, logger, err, "no such rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// saveExchangeRate godoc
// @Summary Store an exchange rate
// @Description Inserts the rate for the pair, replacing any existing value.
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.SaveExchangeRateRequest true "Exchange rate"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Store error"
// @Security BearerAuth
// @Router /exchange_rates [put]
func (h *exchangeRateHandler) saveExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaveExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	saved, err := h.exchangeRateService.SaveExchangeRate(c.Request.Context(), req.ToDomain())
	if err != nil {
		handleServiceError(c, logger, err, "no such rate")
		return
	}

	logger.Info("Exchange rate stored",
		slog.String("quote", saved.Quote),
		slog.String("base", saved.Base),
		slog.Float64("rate", saved.Rate),
	)
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(saved))
}
