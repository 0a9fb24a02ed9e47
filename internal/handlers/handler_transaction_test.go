package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CHSevero/currency-exchange-api/internal/apperrors"
	"github.com/CHSevero/currency-exchange-api/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockTransactionService
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	suite.mockService = new(MockTransactionService)
	suite.router = newTestRouter(new(MockConversionService), new(MockRateService), suite.mockService)
}

func (suite *TransactionHandlerTestSuite) listTransactions(userID, query string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/users/"+userID+"/transactions"+query, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestListTransactions_Success() {
	userID := uuid.NewString()
	expected := &dto.TransactionListResponse{
		UserID: userID,
		Transactions: []dto.TransactionResponse{
			{
				TransactionID: uuid.NewString(),
				UserID:        userID,
				From:          dto.MoneyAmount{Currency: "EUR", Amount: decimal.NewFromInt(100)},
				To:            dto.MoneyAmount{Currency: "USD", Amount: decimal.RequireFromString("85")},
				Rate:          decimal.RequireFromString("0.85"),
				Timestamp:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			},
		},
		Count: 1,
		Total: 1,
	}

	suite.mockService.On("ListUserTransactions", mock.Anything, userID,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.Limit == 10 && p.Offset == 0 && p.FromDate == nil && p.ToDate == nil
		}),
	).Return(expected, nil).Once()

	w := suite.listTransactions(userID, "?limit=10")

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.TransactionListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(userID, resp.UserID)
	suite.Equal(1, resp.Count)
	suite.Len(resp.Transactions, 1)

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_DateFilters() {
	userID := uuid.NewString()
	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	suite.mockService.On("ListUserTransactions", mock.Anything, userID,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.FromDate != nil && p.FromDate.Equal(from) && p.ToDate == nil
		}),
	).Return(&dto.TransactionListResponse{UserID: userID, Transactions: []dto.TransactionResponse{}}, nil).Once()

	w := suite.listTransactions(userID, "?from_date=2025-05-01T00:00:00Z")

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_InvalidLimit() {
	w := suite.listTransactions("u1", "?limit=abc")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListUserTransactions",
		mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_InvalidDate() {
	w := suite.listTransactions("u1", "?from_date=yesterday")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListUserTransactions",
		mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_UnknownUser() {
	suite.mockService.On("ListUserTransactions", mock.Anything, "ghost", mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.listTransactions("ghost", "")

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_ServiceError() {
	suite.mockService.On("ListUserTransactions", mock.Anything, "u1", mock.Anything).
		Return(nil, apperrors.ErrPersistence).Once()

	w := suite.listTransactions("u1", "")

	suite.Equal(http.StatusInternalServerError, w.Code)
}

// --- Run Test Suite ---

func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
