package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/CHSevero/currency-exchange-api/internal/apperrors"
	portssvc "github.com/CHSevero/currency-exchange-api/internal/core/ports/services"
	"github.com/CHSevero/currency-exchange-api/internal/dto"
	"github.com/CHSevero/currency-exchange-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to conversion history.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
	}
}

// registerTransactionRoutes registers routes related to conversion history.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	rg.GET("/users/:userID/transactions", h.listTransactions)
}

// listTransactions godoc
// @Summary List a user's conversion history
// @Description Returns a user's transactions newest-first with optional pagination and date filters
// @Tags transactions
// @Produce  json
// @Param   userID    path  string true  "User identifier"
// @Param   limit     query int    false "Maximum number of transactions to return"
// @Param   offset    query int    false "Pagination offset"
// @Param   from_date query string false "RFC3339 lower bound (inclusive)"
// @Param   to_date   query string false "RFC3339 upper bound (inclusive)"
// @Success 200 {object} dto.TransactionListResponse
// @Failure 400 {object} map[string]string "Invalid query parameter"
// @Failure 404 {object} map[string]string "User has no transactions"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Router /users/{userID}/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	params, err := parseListTransactionsParams(c)
	if err != nil {
		logger.Warn("Invalid transaction list query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger = logger.With(slog.String("user_id", userID))
	logger.Info("Received request to list transactions")

	result, err := h.transactionService.ListUserTransactions(c.Request.Context(), userID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("No transactions found for user")
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list transactions in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		}
		return
	}

	logger.Info("Transactions listed successfully", slog.Int("count", result.Count))
	c.JSON(http.StatusOK, result)
}

func parseListTransactionsParams(c *gin.Context) (dto.ListTransactionsParams, error) {
	var params dto.ListTransactionsParams

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return params, errors.New("limit must be a non-negative integer")
		}
		params.Limit = limit
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return params, errors.New("offset must be a non-negative integer")
		}
		params.Offset = offset
	}
	if raw := c.Query("from_date"); raw != "" {
		fromDate, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return params, errors.New("from_date must be an RFC3339 timestamp")
		}
		params.FromDate = &fromDate
	}
	if raw := c.Query("to_date"); raw != "" {
		toDate, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return params, errors.New("to_date must be an RFC3339 timestamp")
		}
		params.ToDate = &toDate
	}

	return params, nil
}
