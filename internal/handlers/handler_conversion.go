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

// conversionHandler handles HTTP requests related to currency conversion.
type conversionHandler struct {
	conversionService portssvc.ConversionSvcFacade
}

// newConversionHandler creates a new conversionHandler.
func newConversionHandler(cs portssvc.ConversionSvcFacade) *conversionHandler {
	return &conversionHandler{
		conversionService: cs,
	}
}

// registerConversionRoutes registers routes related to currency conversion.
func registerConversionRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvcFacade) {
	h := newConversionHandler(conversionService)

	rg.POST("/convert", h.convert)
}

// convert godoc
// @Summary Convert an amount between two currencies
// @Description Converts the given amount and records the conversion as a transaction
// @Tags conversion
// @Accept  json
// @Produce  json
// @Param   conversion body dto.ConvertRequest true "Conversion details"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} map[string]string "Invalid input format, amount or currency"
// @Failure 503 {object} map[string]string "Exchange rate service unavailable"
// @Failure 500 {object} map[string]string "Failed to convert currency"
// @Router /convert [post]
func (h *conversionHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(
		slog.String("user_id", req.UserID),
		slog.String("from", req.FromCurrency),
		slog.String("to", req.ToCurrency),
	)
	logger.Info("Received request to convert currency", slog.Any("amount", req.Amount))

	txn, err := h.conversionService.Convert(c.Request.Context(), req.UserID, req.FromCurrency, req.ToCurrency, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidAmount), errors.Is(err, apperrors.ErrInvalidCurrency):
			logger.Warn("Validation error converting currency", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrExternalServiceUnavailable):
			logger.Error("Exchange rate service unavailable", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Exchange rate service unavailable"})
		default:
			logger.Error("Failed to convert currency in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert currency"})
		}
		return
	}

	logger.Info("Conversion completed successfully", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusOK, dto.ToConvertResponse(txn))
}
