package printjob

import (
	"errors"
	"time"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/pkg/errs"
)

var (
	// ErrPrintJobIsNotConstructed is returned when a PrintJob instance was
	// not created through the NewPrintJob or RestorePrintJob factory methods.
	ErrPrintJobIsNotConstructed = errors.New("PrintJob must be created via NewPrintJob constructor")
)

// TicketSnapshot is the frozen payload of a print job, captured when the job
// is enqueued. Workers print from the snapshot only, never from the live item
// or order rows. The complement and flavor lists stay newline-delimited, as
// entered on the ordering platform.
type TicketSnapshot struct {
	ProductName  string
	Quantity     int
	Notes        string
	Complements  string
	EdgeType     string
	Flavors      string
	CustomerName string
	Address      string
	Neighborhood string
}

// Validate checks the snapshot carries the minimum printable content.
func (s TicketSnapshot) Validate() error {
	if s.ProductName == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	if s.Quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", s.Quantity, 1, 999)
	}
	return nil
}

// PrintJob represents one ticket-printing request.
//
// PrintJob maintains these invariants:
//   - the snapshot never changes after construction
//   - printerName is set exactly once, when a worker claims the job
//   - Printed and Failed are terminal; re-queueing creates a fresh job
type PrintJob struct {
	id          kernel.UUID
	orderItemID kernel.UUID
	snapshot    TicketSnapshot
	status      Status
	printerName string
	errorMsg    string
	createdAt   time.Time
	printedAt   *time.Time

	isConstructed bool
}

// NewPrintJob enqueues a new Pending job for the given item with a frozen
// snapshot of its ticket data.
func NewPrintJob(id kernel.UUID, orderItemID kernel.UUID, snapshot TicketSnapshot, createdAt time.Time) (*PrintJob, error) {
	j := &PrintJob{
		status:        Pending,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		j.setID(id),
		j.setOrderItemID(orderItemID),
		j.setSnapshot(snapshot),
	); err != nil {
		return nil, err
	}

	return j, nil
}

// Requeue creates a fresh Pending job from the snapshot of a Failed one. The
// original job stays Failed.
func (j *PrintJob) Requeue(id kernel.UUID, now time.Time) (*PrintJob, error) {
	if j.status != Failed {
		return nil, errs.NewValueIsInvalidError("only failed jobs can be requeued")
	}

	return NewPrintJob(id, j.orderItemID, j.snapshot, now)
}

// RestorePrintJob reconstructs a job from persistence.
func RestorePrintJob(
	id kernel.UUID,
	orderItemID kernel.UUID,
	snapshot TicketSnapshot,
	status Status,
	printerName string,
	errorMsg string,
	createdAt time.Time,
	printedAt *time.Time,
) (*PrintJob, error) {
	j, err := NewPrintJob(id, orderItemID, snapshot, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	if status != Pending && printerName == "" {
		return nil, errs.NewValueIsRequiredError("printerName")
	}

	if printedAt != nil && status != Printed {
		return nil, errs.NewValueIsInvalidError("printedAt is only valid for printed jobs")
	}

	j.status = status
	j.printerName = printerName
	j.errorMsg = errorMsg
	j.printedAt = printedAt

	return j, nil
}

// Validate ensures the PrintJob was created through a constructor.
func (j *PrintJob) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrPrintJobIsNotConstructed
	}

	return nil
}

// IsEqual compares two jobs by their unique identifiers.
func (j *PrintJob) IsEqual(other *PrintJob) bool {
	return other != nil && j.id.IsEqual(other.id)
}

// ID returns the job's unique identifier.
func (j *PrintJob) ID() kernel.UUID {
	return j.id
}

// OrderItemID returns the identifier of the item this ticket belongs to.
func (j *PrintJob) OrderItemID() kernel.UUID {
	return j.orderItemID
}

// Snapshot returns the frozen ticket payload.
func (j *PrintJob) Snapshot() TicketSnapshot {
	return j.snapshot
}

// Status returns the current lifecycle status.
func (j *PrintJob) Status() Status {
	return j.status
}

// PrinterName returns the name of the printer that claimed the job, or the
// empty string while the job is Pending.
func (j *PrintJob) PrinterName() string {
	return j.printerName
}

// ErrorMessage returns the failure reason of a Failed job.
func (j *PrintJob) ErrorMessage() string {
	return j.errorMsg
}

// CreatedAt returns when the job was enqueued.
func (j *PrintJob) CreatedAt() time.Time {
	return j.createdAt
}

// PrintedAt returns when the ticket reached the printer, if it did.
func (j *PrintJob) PrintedAt() *time.Time {
	return j.printedAt
}

// StartPrinting claims the job for the named printer.
func (j *PrintJob) StartPrinting(printerName string) error {
	if printerName == "" {
		return errs.NewValueIsRequiredError("printerName")
	}

	newStatus, err := j.status.StartPrinting()
	if err != nil {
		return err
	}

	j.status = newStatus
	j.printerName = printerName
	return nil
}

// MarkPrinted records a successful print.
func (j *PrintJob) MarkPrinted(now time.Time) error {
	newStatus, err := j.status.MarkPrinted()
	if err != nil {
		return err
	}

	j.status = newStatus
	j.printedAt = &now
	return nil
}

// MarkFailed records a failed print attempt with its reason.
func (j *PrintJob) MarkFailed(reason string) error {
	newStatus, err := j.status.MarkFailed()
	if err != nil {
		return err
	}

	j.status = newStatus
	j.errorMsg = reason
	return nil
}

// setID validates and sets the job's unique identifier.
func (j *PrintJob) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

// setOrderItemID validates and sets the owning item's identifier.
func (j *PrintJob) setOrderItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.orderItemID = id
	return nil
}

// setSnapshot validates and freezes the ticket payload.
func (j *PrintJob) setSnapshot(snapshot TicketSnapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}
	j.snapshot = snapshot
	return nil
}
