package printjob

import (
	"fmt"

	"expeditor/internal/pkg/errs"
)

// Status represents the lifecycle state of a print job.
//
// State transitions:
//
//	Pending ──> Printing ──┬──> Printed
//	                       └──> Failed
//
// Printed and Failed are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status; the job waits for a print worker.
	Pending

	// Printing indicates a worker claimed the job and is printing.
	Printing

	// Printed indicates the ticket reached the printer. Final state.
	Printed

	// Failed indicates the print attempt failed. Final state; an operator
	// must re-queue explicitly.
	Failed
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "Unknown",
		Pending:  "pending",
		Printing: "printing",
		Printed:  "printed",
		Failed:   "failed",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:  "pending",
		Printing: "printing",
		Printed:  "printed",
		Failed:   "failed",
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
// values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StartPrinting transitions the status to Printing.
//
// Valid transitions:
//   - Pending -> Printing
func (s Status) StartPrinting() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start printing", s.String()),
		)
	}

	return Printing, nil
}

// MarkPrinted transitions the status to Printed.
//
// Valid transitions:
//   - Printing -> Printed
func (s Status) MarkPrinted() (Status, error) {
	if s != Printing {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to mark printed", s.String()),
		)
	}

	return Printed, nil
}

// MarkFailed transitions the status to Failed.
//
// Valid transitions:
//   - Printing -> Failed
func (s Status) MarkFailed() (Status, error) {
	if s != Printing {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to mark failed", s.String()),
		)
	}

	return Failed, nil
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
