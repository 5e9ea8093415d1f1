package kitchenitem

import (
	"fmt"

	"expeditor/internal/pkg/errs"
)

// Status represents the lifecycle state of a kitchen item.
// It implements a strictly linear state machine: no skipping, no cycling back.
//
// State transitions:
//
//	Pending ──> InPrep ──> InOven ──> Ready
//	    │          │
//	    └──────────┘
//	  (claim keeps an InPrep item InPrep; re-claim is a no-op)
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned by order ingestion.
	// Pending items are waiting to be claimed by a kitchen operator.
	Pending

	// InPrep indicates an operator has claimed the item and is preparing it.
	InPrep

	// InOven indicates the item is baking. Entry and estimated exit
	// timestamps are recorded on the aggregate when this status is reached.
	InOven

	// Ready indicates the item finished the kitchen pipeline. The claim is
	// released and the item becomes eligible for printing and delivery
	// grouping. Ready is a final state for this state machine.
	Ready
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown: "Unknown",
		Pending: "pending",
		InPrep:  "in_prep",
		InOven:  "in_oven",
		Ready:   "ready",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending: "pending",
		InPrep:  "in_prep",
		InOven:  "in_oven",
		Ready:   "ready",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are Pending, InPrep, InOven and Ready.
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

// ValidateClaim checks if the status allows claiming without performing the
// transition. Items can be claimed while Pending (initial claim) or InPrep
// (idempotent re-claim by the same operator).
func (s Status) ValidateClaim() error {
	if s != Pending && s != InPrep {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to claim", s.String()),
		)
	}
	return nil
}

// Claim transitions the status to InPrep.
//
// Valid transitions:
//   - Pending -> InPrep (initial claim)
//   - InPrep -> InPrep (re-claim by the same operator)
func (s Status) Claim() (Status, error) {
	if err := s.ValidateClaim(); err != nil {
		return 0, err
	}

	return InPrep, nil
}

// EnterOven transitions the status to InOven.
//
// Valid transitions:
//   - InPrep -> InOven
func (s Status) EnterOven() (Status, error) {
	if s != InPrep {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to enter the oven", s.String()),
		)
	}

	return InOven, nil
}

// MarkReady transitions the status to Ready.
//
// Valid transitions:
//   - InOven -> Ready
func (s Status) MarkReady() (Status, error) {
	if s != InOven {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to mark ready", s.String()),
		)
	}

	return Ready, nil
}

// ValidateCanHaveClaim validates the consistency between item status and the
// claim fields. Claims exist only while an item is actively being worked on:
//   - Pending and Ready items must not carry a claim
//   - InPrep and InOven items must carry a claim
func (s Status) ValidateCanHaveClaim(claimed bool) error {
	if claimed && s != InPrep && s != InOven {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a claim", s.String()),
		)
	}

	if !claimed && (s == InPrep || s == InOven) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no claim", s.String()),
		)
	}

	return nil
}

// StatusFromString maps a persisted status name back to its Status value.
// Used when decoding change-feed events and database rows.
func StatusFromString(raw string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == raw {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status name", raw))
}
