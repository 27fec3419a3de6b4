package domain

type ReservationStatus string

const (
	StatusReserved   ReservationStatus = "R"
	StatusWaitlisted ReservationStatus = "W"
	// StatusConfirmed exists in stored data but is never produced here:
	// there is no promotion path from the waitlist in this service.
	StatusConfirmed ReservationStatus = "C"
)

// ValidStatus reports whether s is one of the stored status codes.
func ValidStatus(s ReservationStatus) bool {
	switch s {
	case StatusReserved, StatusWaitlisted, StatusConfirmed:
		return true
	}
	return false
}

type Reservation struct {
	RNum       int64
	CustomerID int64
	FlightID   int64
	Status     ReservationStatus
}

// BookingOutcome is the result of a booking request: the reservation that
// was created and whether the customer got a seat or a waitlist spot.
type BookingOutcome struct {
	ReservationID int64
	Status        ReservationStatus
}
