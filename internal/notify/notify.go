package notify

import (
	"context"
	"log"

	"github.com/avargas-dev/flightbooking/internal/kafka"
)

// Sender delivers booking notifications to customers. The current sink
// only logs; a mail or SMS transport plugs in behind the same method.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.ReservationEvent) error {
	log.Printf("notify customer %d: %s for flight %d (reservation %d, status %s)",
		event.CustomerID, event.Type, event.FlightID, event.ReservationID, event.Status)
	return nil
}
