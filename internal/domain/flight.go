package domain

import "time"

// AirportCodeLen is the fixed length of departure/arrival airport codes.
const AirportCodeLen = 5

type Flight struct {
	FNum             int64
	Cost             int64
	NumSold          int
	NumStops         int
	DepartureDate    time.Time
	ArrivalDate      time.Time
	DepartureAirport string
	ArrivalAirport   string
}

// SeatInventory is a single consistent snapshot of a flight's capacity:
// the seat count of the bound plane and the sold counter as read together.
type SeatInventory struct {
	Seats   int
	NumSold int
}

func (s SeatInventory) SeatsLeft() int {
	return s.Seats - s.NumSold
}
