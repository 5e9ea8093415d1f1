package deliverygroup

import (
	"fmt"

	"expeditor/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery group.
//
// State transitions:
//
//	Waiting ──> Dispatched
//
// Waiting groups accept new members; Dispatched groups are immutable.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Waiting is the initial status; the group accepts new members.
	Waiting

	// Dispatched indicates the group left for delivery. Final state.
	Dispatched
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Waiting:    "waiting",
		Dispatched: "dispatched",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s != Waiting && s != Dispatched {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status, or "Unknown" for invalid
// values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString maps a persisted status name back to its Status value.
func StatusFromString(raw string) (Status, error) {
	switch raw {
	case "waiting":
		return Waiting, nil
	case "dispatched":
		return Dispatched, nil
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%q is not a valid status name", raw))
	}
}

// Dispatch transitions the status to Dispatched.
//
// Valid transitions:
//   - Waiting -> Dispatched
func (s Status) Dispatch() (Status, error) {
	if s != Waiting {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to dispatch", s.String()),
		)
	}

	return Dispatched, nil
}
