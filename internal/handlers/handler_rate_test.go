package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CHSevero/currency-exchange-api/internal/apperrors"
	"github.com/CHSevero/currency-exchange-api/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type RateHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockRateService
}

func (suite *RateHandlerTestSuite) SetupTest() {
	suite.mockService = new(MockRateService)
	suite.router = newTestRouter(new(MockConversionService), suite.mockService, new(MockTransactionService))
}

func (suite *RateHandlerTestSuite) getRate(from, to string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/rates/"+from+"/"+to, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *RateHandlerTestSuite) TestGetExchangeRate_Success() {
	suite.mockService.On("GetExchangeRate", mock.Anything, "USD", "JPY").
		Return(decimal.RequireFromString("109.788135593"), nil).Once()

	w := suite.getRate("USD", "JPY")

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ExchangeRateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("USD", resp.FromCurrency)
	suite.Equal("JPY", resp.ToCurrency)
	suite.True(resp.Rate.Equal(decimal.RequireFromString("109.788135593")), "got %s", resp.Rate)

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *RateHandlerTestSuite) TestGetExchangeRate_InvalidCurrency() {
	suite.mockService.On("GetExchangeRate", mock.Anything, "USD", "XXX").
		Return(decimal.Decimal{}, apperrors.ErrInvalidCurrency).Once()

	w := suite.getRate("USD", "XXX")

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *RateHandlerTestSuite) TestGetExchangeRate_Unavailable() {
	suite.mockService.On("GetExchangeRate", mock.Anything, "USD", "JPY").
		Return(decimal.Decimal{}, apperrors.ErrExternalServiceUnavailable).Once()

	w := suite.getRate("USD", "JPY")

	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *RateHandlerTestSuite) TestGetExchangeRate_InternalError() {
	suite.mockService.On("GetExchangeRate", mock.Anything, "USD", "JPY").
		Return(decimal.Decimal{}, apperrors.ErrPersistence).Once()

	w := suite.getRate("USD", "JPY")

	suite.Equal(http.StatusInternalServerError, w.Code)
}

// --- Run Test Suite ---

func TestRateHandler(t *testing.T) {
	suite.Run(t, new(RateHandlerTestSuite))
}
