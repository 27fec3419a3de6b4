package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avargas-dev/flightbooking/internal/repository"
	"github.com/avargas-dev/flightbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type bookingRequest struct {
	CustomerID int64 `json:"customer_id"`
	FlightID   int64 `json:"flight_id"`
}

type bookingResponse struct {
	ReservationID int64  `json:"reservation_id"`
	Status        string `json:"status"`
}

type reservationResponse struct {
	RNum       int64  `json:"rnum"`
	CustomerID int64  `json:"customer_id"`
	FlightID   int64  `json:"flight_id"`
	Status     string `json:"status"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.book)
	router.POST("/waitlist", h.waitlist)
	router.GET("/:rnum", h.get)
}

func (h *BookingHandler) book(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.service.BookSeat(c.Request.Context(), req.CustomerID, req.FlightID)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bookingResponse{
		ReservationID: outcome.ReservationID,
		Status:        string(outcome.Status),
	})
}

func (h *BookingHandler) waitlist(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.service.JoinWaitlist(c.Request.Context(), req.CustomerID, req.FlightID)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bookingResponse{
		ReservationID: outcome.ReservationID,
		Status:        string(outcome.Status),
	})
}

func (h *BookingHandler) get(c *gin.Context) {
	rnum, err := strconv.ParseInt(c.Param("rnum"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reservation number"})
		return
	}

	res, err := h.service.GetReservation(c.Request.Context(), rnum)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservationResponse{
		RNum:       res.RNum,
		CustomerID: res.CustomerID,
		FlightID:   res.FlightID,
		Status:     string(res.Status),
	})
}

func writeBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
