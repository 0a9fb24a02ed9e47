package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/CHSevero/currency-exchange-api/internal/apperrors"
	portssvc "github.com/CHSevero/currency-exchange-api/internal/core/ports/services"
	"github.com/CHSevero/currency-exchange-api/internal/dto"
	"github.com/CHSevero/currency-exchange-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// rateHandler handles HTTP requests related to exchange rates.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

// newRateHandler creates a new rateHandler.
func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{
		rateService: rs,
	}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.GET("/:from/:to", h.getExchangeRate)
	}
}

// getExchangeRate godoc
// @Summary Get an exchange rate
// @Description Retrieves the current exchange rate for a currency pair at 9 decimal places
// @Tags rates
// @Produce  json
// @Param   from path string true "From Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Param   to   path string true "To Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid currency code"
// @Failure 503 {object} map[string]string "Exchange rate service unavailable"
// @Failure 500 {object} map[string]string "Failed to retrieve exchange rate"
// @Router /rates/{from}/{to} [get]
func (h *rateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fromCurrency := c.Param("from")
	toCurrency := c.Param("to")

	logger = logger.With(slog.String("from", fromCurrency), slog.String("to", toCurrency))
	logger.Info("Received request to get exchange rate")

	rate, err := h.rateService.GetExchangeRate(c.Request.Context(), fromCurrency, toCurrency)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidCurrency):
			logger.Warn("Validation error getting exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrExternalServiceUnavailable):
			logger.Error("Exchange rate service unavailable", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Exchange rate service unavailable"})
		default:
			logger.Error("Failed to get exchange rate from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exchange rate"})
		}
		return
	}

	logger.Info("Exchange rate retrieved successfully")
	c.JSON(http.StatusOK, dto.ExchangeRateResponse{
		FromCurrency: fromCurrency,
		ToCurrency:   toCurrency,
		Rate:         rate,
	})
}
