package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avargas-dev/flightbooking/internal/domain"
	"github.com/avargas-dev/flightbooking/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) BookSeat(ctx context.Context, customerID, flightID int64) (*domain.BookingOutcome, error) {
	args := m.Called(ctx, customerID, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingOutcome), args.Error(1)
}

func (m *MockBookingUseCase) JoinWaitlist(ctx context.Context, customerID, flightID int64) (*domain.BookingOutcome, error) {
	args := m.Called(ctx, customerID, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingOutcome), args.Error(1)
}

func (m *MockBookingUseCase) GetReservation(ctx context.Context, rnum int64) (*domain.Reservation, error) {
	args := m.Called(ctx, rnum)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func TestBookingHandler_book(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(bookingRequest{CustomerID: 42, FlightID: 7})
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	outcome := &domain.BookingOutcome{ReservationID: 101, Status: domain.StatusReserved}
	mockService.On("BookSeat", c.Request.Context(), int64(42), int64(7)).Return(outcome, nil)

	handler.book(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, int64(101), response.ReservationID)
	assert.Equal(t, string(domain.StatusReserved), response.Status)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_book_FlightNotFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(bookingRequest{CustomerID: 42, FlightID: 99})
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("BookSeat", c.Request.Context(), int64(42), int64(99)).Return(nil, repository.ErrNotFound)

	handler.book(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_waitlist(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(bookingRequest{CustomerID: 42, FlightID: 7})
	c.Request = httptest.NewRequest("POST", "/bookings/waitlist", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	outcome := &domain.BookingOutcome{ReservationID: 102, Status: domain.StatusWaitlisted}
	mockService.On("JoinWaitlist", c.Request.Context(), int64(42), int64(7)).Return(outcome, nil)

	handler.waitlist(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, string(domain.StatusWaitlisted), response.Status)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_get(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "rnum", Value: "101"}}
	c.Request = httptest.NewRequest("GET", "/bookings/101", nil)

	stored := &domain.Reservation{RNum: 101, CustomerID: 42, FlightID: 7, Status: domain.StatusReserved}
	mockService.On("GetReservation", c.Request.Context(), int64(101)).Return(stored, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response reservationResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, int64(101), response.RNum)
	assert.Equal(t, string(domain.StatusReserved), response.Status)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_get_InvalidRNum(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "rnum", Value: "abc"}}
	c.Request = httptest.NewRequest("GET", "/bookings/abc", nil)

	handler.get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetReservation")
}
