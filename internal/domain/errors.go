package domain

import (
	"fmt"
	"time"
)

// CatalogEmptyError means one of the reference collections required for a
// generation run has no rows.
type CatalogEmptyError struct {
	Collection string
}

func (e *CatalogEmptyError) Error() string {
	return fmt.Sprintf("catalog collection %q is empty", e.Collection)
}

// InvalidHorizonError rejects a non-positive generation horizon.
type InvalidHorizonError struct {
	HorizonDays int
}

func (e *InvalidHorizonError) Error() string {
	return fmt.Sprintf("invalid horizon: %d days (must be positive)", e.HorizonDays)
}

// NoEligibleCarrierError means no active carrier serves the route's market.
type NoEligibleCarrierError struct {
	Origin      string
	Destination string
	Day         int
	Slot        int
}

func (e *NoEligibleCarrierError) Error() string {
	return fmt.Sprintf("no eligible carrier for %s-%s (day %d, slot %d)", e.Origin, e.Destination, e.Day, e.Slot)
}

// NoEligibleAircraftError means the aircraft subset allowed for the route's
// duration is empty.
type NoEligibleAircraftError struct {
	Origin      string
	Destination string
	Day         int
	Slot        int
	Duration    time.Duration
}

func (e *NoEligibleAircraftError) Error() string {
	return fmt.Sprintf("no eligible aircraft for %s-%s with duration %s (day %d, slot %d)", e.Origin, e.Destination, e.Duration, e.Day, e.Slot)
}

// OrphanRecordError means the flight and quote batches handed to the sink
// do not pair up one-to-one.
type OrphanRecordError struct {
	FlightKey string
	Detail    string
}

func (e *OrphanRecordError) Error() string {
	return fmt.Sprintf("orphan record %q: %s", e.FlightKey, e.Detail)
}

// PersistenceError wraps a storage-layer failure during batch persist.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
