package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/avargas-dev/flightbooking/internal/domain"
	"github.com/avargas-dev/flightbooking/internal/kafka"
	"github.com/avargas-dev/flightbooking/internal/repository"
	"github.com/google/uuid"
)

// defaultMaxRetries bounds the compare-and-swap loop so a booking under
// heavy contention degrades to the waitlist instead of spinning.
const defaultMaxRetries = 3

type BookingUseCase interface {
	BookSeat(ctx context.Context, customerID, flightID int64) (*domain.BookingOutcome, error)
	JoinWaitlist(ctx context.Context, customerID, flightID int64) (*domain.BookingOutcome, error)
	GetReservation(ctx context.Context, rnum int64) (*domain.Reservation, error)
}

type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	reservations       repository.ReservationRepository
	flights            repository.FlightRepository
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	maxRetries         int
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithMaxRetries(n int) BookingServiceOption {
	return func(s *BookingService) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

func NewBookingService(
	reservations repository.ReservationRepository,
	flights repository.FlightRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		reservations: reservations,
		flights:      flights,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
		maxRetries:   defaultMaxRetries,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// BookSeat decides admission for one booking request. It snapshots the
// seat inventory, and while seats remain it commits a seat sale together
// with the reservation row in one conditional transaction. A lost race
// re-reads and retries up to maxRetries, then falls through to the
// waitlist as if the flight were sold out. Sold-out flights go straight
// to the waitlist. num_sold can never exceed the plane's capacity: the
// counter only advances when it still equals the value the snapshot saw.
func (s *BookingService) BookSeat(ctx context.Context, customerID, flightID int64) (*domain.BookingOutcome, error) {
	if customerID <= 0 {
		return nil, errors.New("customer id must be positive")
	}
	if flightID <= 0 {
		return nil, errors.New("flight id must be positive")
	}

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		inv, err := s.flights.SeatInventory(ctx, flightID)
		if err != nil {
			return nil, err
		}
		if inv.SeatsLeft() <= 0 {
			break
		}

		rnum, err := s.reservations.NextRNum(ctx)
		if err != nil {
			return nil, err
		}

		res := &domain.Reservation{RNum: rnum, CustomerID: customerID, FlightID: flightID}
		if _, err := s.reservations.CreateReserved(ctx, res, inv.NumSold); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				continue
			}
			return nil, err
		}

		if s.cache != nil {
			_ = s.cache.InvalidateFlights(ctx)
		}
		s.publish(ctx, "seat_reserved", res)
		return &domain.BookingOutcome{ReservationID: rnum, Status: domain.StatusReserved}, nil
	}

	return s.waitlist(ctx, customerID, flightID)
}

// JoinWaitlist records a waitlist entry without consulting capacity. The
// choice between requesting a seat and requesting a waitlist spot belongs
// to the caller.
func (s *BookingService) JoinWaitlist(ctx context.Context, customerID, flightID int64) (*domain.BookingOutcome, error) {
	if customerID <= 0 {
		return nil, errors.New("customer id must be positive")
	}
	if flightID <= 0 {
		return nil, errors.New("flight id must be positive")
	}

	// Reject unknown flights before writing anything.
	if _, err := s.flights.SeatInventory(ctx, flightID); err != nil {
		return nil, err
	}

	return s.waitlist(ctx, customerID, flightID)
}

func (s *BookingService) GetReservation(ctx context.Context, rnum int64) (*domain.Reservation, error) {
	return s.reservations.GetByRNum(ctx, rnum)
}

func (s *BookingService) waitlist(ctx context.Context, customerID, flightID int64) (*domain.BookingOutcome, error) {
	rnum, err := s.reservations.NextRNum(ctx)
	if err != nil {
		return nil, err
	}

	res := &domain.Reservation{RNum: rnum, CustomerID: customerID, FlightID: flightID}
	if err := s.reservations.CreateWaitlisted(ctx, res); err != nil {
		return nil, err
	}

	s.publish(ctx, "waitlisted", res)
	return &domain.BookingOutcome{ReservationID: rnum, Status: domain.StatusWaitlisted}, nil
}

// publish is best-effort: a booking is never failed over a stuck broker.
func (s *BookingService) publish(ctx context.Context, eventType string, res *domain.Reservation) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.ReservationEvent{
		Type:          eventType,
		Token:         uuid.NewString(),
		ReservationID: res.RNum,
		CustomerID:    res.CustomerID,
		FlightID:      res.FlightID,
		Status:        string(res.Status),
		CreatedAt:     time.Now(),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, event.Token, event); err != nil {
		log.Printf("publish %s event for reservation %d: %v", eventType, res.RNum, err)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, event.Token, event); err != nil {
			log.Printf("publish %s notification for reservation %d: %v", eventType, res.RNum, err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
