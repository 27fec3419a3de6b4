package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avargas-dev/flightbooking/internal/domain"
	"github.com/avargas-dev/flightbooking/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFlightUseCase is a mock implementation of flights.FlightUseCase
type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) GetByFNum(ctx context.Context, fnum int64) (*domain.Flight, error) {
	args := m.Called(ctx, fnum)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Create(ctx context.Context, flight *domain.Flight, planeID int64) error {
	args := m.Called(ctx, flight, planeID)
	return args.Error(0)
}

func (m *MockFlightUseCase) AvailableSeats(ctx context.Context, fnum int64) (int, error) {
	args := m.Called(ctx, fnum)
	return args.Int(0), args.Error(1)
}

func (m *MockFlightUseCase) PassengerCount(ctx context.Context, fnum int64, status domain.ReservationStatus) (int, error) {
	args := m.Called(ctx, fnum, status)
	return args.Int(0), args.Error(1)
}

func (m *MockFlightUseCase) PlaneForFlight(ctx context.Context, fnum int64) (*domain.Plane, error) {
	args := m.Called(ctx, fnum)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plane), args.Error(1)
}

func TestFlightHandler_list(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/flights", nil)

	flights := []domain.Flight{
		{
			FNum:             7,
			Cost:             25000,
			NumSold:          3,
			DepartureDate:    time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
			ArrivalDate:      time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC),
			DepartureAirport: "KLAXX",
			ArrivalAirport:   "KJFKX",
		},
	}
	mockService.On("List", c.Request.Context()).Return(flights, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_availableSeats(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "fnum", Value: "7"}}
	c.Request = httptest.NewRequest("GET", "/flights/7/seats", nil)

	mockService.On("AvailableSeats", c.Request.Context(), int64(7)).Return(113, nil)

	handler.availableSeats(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, float64(113), response["available_seats"])

	mockService.AssertExpectations(t)
}

func TestFlightHandler_availableSeats_NotFound(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "fnum", Value: "99"}}
	c.Request = httptest.NewRequest("GET", "/flights/99/seats", nil)

	mockService.On("AvailableSeats", c.Request.Context(), int64(99)).Return(0, repository.ErrNotFound)

	handler.availableSeats(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_passengerCount(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "fnum", Value: "7"}}
	c.Request = httptest.NewRequest("GET", "/flights/7/passengers?status=W", nil)

	mockService.On("PassengerCount", c.Request.Context(), int64(7), domain.StatusWaitlisted).Return(4, nil)

	handler.passengerCount(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, float64(4), response["count"])

	mockService.AssertExpectations(t)
}

func TestFlightHandler_plane(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "fnum", Value: "7"}}
	c.Request = httptest.NewRequest("GET", "/flights/7/plane", nil)

	plane := &domain.Plane{ID: 3, Make: "Boeing", Model: "737-800", Age: 6, Seats: 189}
	mockService.On("PlaneForFlight", c.Request.Context(), int64(7)).Return(plane, nil)

	handler.plane(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response planeResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, 189, response.Seats)

	mockService.AssertExpectations(t)
}

func TestFlightHandler_get_InvalidFNum(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "fnum", Value: "abc"}}
	c.Request = httptest.NewRequest("GET", "/flights/abc", nil)

	handler.get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetByFNum")
}
