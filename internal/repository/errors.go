// Package repository holds the pgx-backed storage for flights, planes and
// reservations. The sentinel errors below let higher layers distinguish the
// expected failure modes without inspecting driver errors: ErrNotFound maps
// to a missing flight or plane linkage, ErrConflict to a lost
// compare-and-swap on the sold-seat counter. Anything else coming out of a
// repository call is a storage failure and is not retried.
package repository

import "errors"

// ErrNotFound is returned when the referenced flight, reservation or plane
// linkage does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when the conditional update on num_sold matched
// zero rows, meaning another booking committed first.
var ErrConflict = errors.New("conflict")
