package order

import (
	"fmt"

	"expeditor/internal/pkg/errs"
)

// Status represents the dispatch lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> WaitingBuffer ──> Ready ──> Dispatched
//
// Pending covers the whole kitchen phase; WaitingBuffer is the dynamic
// buffer hold after the kitchen finishes; Ready orders are eligible for
// delivery grouping; Dispatched is final.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status while kitchen items are in progress.
	Pending

	// WaitingBuffer indicates the kitchen finished and the order is held
	// for the volume-dependent buffer interval before grouping.
	WaitingBuffer

	// Ready indicates the buffer hold elapsed; the order may join a
	// delivery group.
	Ready

	// Dispatched indicates the order left with a delivery run.
	// This is a final state with no further transitions allowed.
	Dispatched
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:       "Unknown",
		Pending:       "pending",
		WaitingBuffer: "waiting_buffer",
		Ready:         "ready",
		Dispatched:    "dispatched",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:       "pending",
		WaitingBuffer: "waiting_buffer",
		Ready:         "ready",
		Dispatched:    "dispatched",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status, or "Unknown" for invalid
// values. Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// HoldForBuffer transitions the status to WaitingBuffer.
//
// Valid transitions:
//   - Pending -> WaitingBuffer (kitchen finished)
func (s Status) HoldForBuffer() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to hold for buffer", s.String()),
		)
	}

	return WaitingBuffer, nil
}

// Release transitions the status to Ready.
//
// Valid transitions:
//   - WaitingBuffer -> Ready (buffer hold elapsed)
func (s Status) Release() (Status, error) {
	if s != WaitingBuffer {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to release from buffer", s.String()),
		)
	}

	return Ready, nil
}

// Dispatch transitions the status to Dispatched.
//
// Valid transitions:
//   - Ready -> Dispatched (group left for delivery)
func (s Status) Dispatch() (Status, error) {
	if s != Ready {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to dispatch", s.String()),
		)
	}

	return Dispatched, nil
}

// StatusFromString maps a persisted status name back to its Status value.
func StatusFromString(raw string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == raw {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status name", raw))
}
