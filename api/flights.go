package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/avargas-dev/flightbooking/internal/domain"
	"github.com/avargas-dev/flightbooking/internal/repository"
	"github.com/avargas-dev/flightbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type createFlightRequest struct {
	PlaneID          int64     `json:"plane_id"`
	Cost             int64     `json:"cost"`
	NumSold          int       `json:"num_sold"`
	NumStops         int       `json:"num_stops"`
	DepartureDate    time.Time `json:"departure_date"`
	ArrivalDate      time.Time `json:"arrival_date"`
	DepartureAirport string    `json:"departure_airport"`
	ArrivalAirport   string    `json:"arrival_airport"`
}

type flightResponse struct {
	FNum             int64     `json:"fnum"`
	Cost             int64     `json:"cost"`
	NumSold          int       `json:"num_sold"`
	NumStops         int       `json:"num_stops"`
	DepartureDate    time.Time `json:"departure_date"`
	ArrivalDate      time.Time `json:"arrival_date"`
	DepartureAirport string    `json:"departure_airport"`
	ArrivalAirport   string    `json:"arrival_airport"`
}

type planeResponse struct {
	ID    int64  `json:"id"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Age   int    `json:"age"`
	Seats int    `json:"seats"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:fnum", h.get)
	router.GET("/:fnum/seats", h.availableSeats)
	router.GET("/:fnum/passengers", h.passengerCount)
	router.GET("/:fnum/plane", h.plane)
}

func (h *FlightHandler) list(c *gin.Context) {
	flights, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req createFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight := domain.Flight{
		Cost:             req.Cost,
		NumSold:          req.NumSold,
		NumStops:         req.NumStops,
		DepartureDate:    req.DepartureDate,
		ArrivalDate:      req.ArrivalDate,
		DepartureAirport: req.DepartureAirport,
		ArrivalAirport:   req.ArrivalAirport,
	}
	if err := h.service.Create(c.Request.Context(), &flight, req.PlaneID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "plane not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, toFlightResponse(&flight))
}

func (h *FlightHandler) get(c *gin.Context) {
	fnum, ok := parseFNum(c)
	if !ok {
		return
	}
	flight, err := h.service.GetByFNum(c.Request.Context(), fnum)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "flight not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) availableSeats(c *gin.Context) {
	fnum, ok := parseFNum(c)
	if !ok {
		return
	}
	seats, err := h.service.AvailableSeats(c.Request.Context(), fnum)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "flight not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"fnum": fnum, "available_seats": seats})
}

func (h *FlightHandler) passengerCount(c *gin.Context) {
	fnum, ok := parseFNum(c)
	if !ok {
		return
	}
	status := domain.ReservationStatus(c.Query("status"))
	count, err := h.service.PassengerCount(c.Request.Context(), fnum, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "flight not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"fnum": fnum, "status": status, "count": count})
}

func (h *FlightHandler) plane(c *gin.Context) {
	fnum, ok := parseFNum(c)
	if !ok {
		return
	}
	plane, err := h.service.PlaneForFlight(c.Request.Context(), fnum)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "flight not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, planeResponse{
		ID:    plane.ID,
		Make:  plane.Make,
		Model: plane.Model,
		Age:   plane.Age,
		Seats: plane.Seats,
	})
}

func parseFNum(c *gin.Context) (int64, bool) {
	fnum, err := strconv.ParseInt(c.Param("fnum"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight number"})
		return 0, false
	}
	return fnum, true
}

func toFlightResponse(f *domain.Flight) flightResponse {
	return flightResponse{
		FNum:             f.FNum,
		Cost:             f.Cost,
		NumSold:          f.NumSold,
		NumStops:         f.NumStops,
		DepartureDate:    f.DepartureDate,
		ArrivalDate:      f.ArrivalDate,
		DepartureAirport: f.DepartureAirport,
		ArrivalAirport:   f.ArrivalAirport,
	}
}
