package flights

import (
	"context"
	"errors"
	"fmt"

	"github.com/avargas-dev/flightbooking/internal/domain"
	"github.com/avargas-dev/flightbooking/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByFNum(ctx context.Context, fnum int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight, planeID int64) error
	AvailableSeats(ctx context.Context, fnum int64) (int, error)
	PassengerCount(ctx context.Context, fnum int64, status domain.ReservationStatus) (int, error)
	PlaneForFlight(ctx context.Context, fnum int64) (*domain.Plane, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
}

type FlightService struct {
	flights      repository.FlightRepository
	reservations repository.ReservationRepository
	cache        Cache
}

func NewFlightService(flights repository.FlightRepository, reservations repository.ReservationRepository, cache Cache) *FlightService {
	return &FlightService{flights: flights, reservations: reservations, cache: cache}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.flights.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByFNum(ctx context.Context, fnum int64) (*domain.Flight, error) {
	return s.flights.GetByFNum(ctx, fnum)
}

func (s *FlightService) Create(ctx context.Context, flight *domain.Flight, planeID int64) error {
	if flight.Cost <= 0 {
		return errors.New("cost must be positive")
	}
	if flight.NumSold < 0 {
		return errors.New("sold count must not be negative")
	}
	if flight.NumStops < 0 {
		return errors.New("stop count must not be negative")
	}
	if len(flight.DepartureAirport) != domain.AirportCodeLen || len(flight.ArrivalAirport) != domain.AirportCodeLen {
		return fmt.Errorf("airport codes must be exactly %d characters", domain.AirportCodeLen)
	}
	if flight.ArrivalDate.Before(flight.DepartureDate) {
		return errors.New("arrival date must not precede departure date")
	}
	return s.flights.Create(ctx, flight, planeID)
}

// AvailableSeats reports plane capacity minus sold seats for a flight.
func (s *FlightService) AvailableSeats(ctx context.Context, fnum int64) (int, error) {
	inv, err := s.flights.SeatInventory(ctx, fnum)
	if err != nil {
		return 0, err
	}
	return inv.SeatsLeft(), nil
}

// PassengerCount reports how many reservations a flight has in a status.
func (s *FlightService) PassengerCount(ctx context.Context, fnum int64, status domain.ReservationStatus) (int, error) {
	if !domain.ValidStatus(status) {
		return 0, fmt.Errorf("unknown reservation status %q", status)
	}
	if _, err := s.flights.SeatInventory(ctx, fnum); err != nil {
		return 0, err
	}
	return s.reservations.CountByFlightAndStatus(ctx, fnum, status)
}

// PlaneForFlight returns the aircraft bound to a flight.
func (s *FlightService) PlaneForFlight(ctx context.Context, fnum int64) (*domain.Plane, error) {
	return s.flights.PlaneByFlight(ctx, fnum)
}

var _ FlightUseCase = (*FlightService)(nil)
