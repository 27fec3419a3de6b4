package domain

// Plane describes the aircraft bound to a flight. Planes are immutable
// here: creating and maintaining them is outside this service, which only
// reads their seat capacity.
type Plane struct {
	ID    int64
	Make  string
	Model string
	Age   int
	Seats int
}
