package kitchenitem

import (
	"errors"
	"fmt"
	"time"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/pkg/errs"
)

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not created
	// through the NewItem or RestoreItem factory methods.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

	// ErrItemAlreadyClaimed is returned when an operator tries to claim an item
	// currently claimed by a different operator.
	ErrItemAlreadyClaimed = errors.New("item is already claimed by another operator")

	// ErrItemNotClaimed is returned when an operator tries to advance an item
	// without holding its current claim.
	ErrItemNotClaimed = errors.New("item is not claimed by this operator")
)

// Details carries the free-text ticket attributes of an item. The flavor and
// complement lists are newline-delimited, exactly as entered on the ordering
// platform; this core treats them as opaque text.
type Details struct {
	Notes       string
	Complements string
	EdgeType    string
	Flavors     string
}

// Item represents one line of a customer order moving through the kitchen.
// It is the aggregate every higher-level mechanism (printing, grouping,
// presence gating) reads and writes through.
//
// Item maintains these invariants:
//   - claimedBy and claimedAt are both nil or both set
//   - a claim exists only while status is InPrep or InOven
//   - ovenEntryAt implies status is InOven or Ready
//   - readyAt implies status is Ready
//   - timestamps are set exactly once and are monotonic with status progression
//
// Items are created by order ingestion as Pending and are only mutated through
// Claim, EnterOven and MarkReady. This core never deletes items.
type Item struct {
	id          kernel.UUID
	orderID     kernel.UUID
	sectorID    kernel.UUID
	productName string
	quantity    int
	details     Details

	status    Status
	claimedBy *kernel.UUID
	claimedAt *time.Time

	ovenEntryAt     *time.Time
	estimatedExitAt *time.Time
	readyAt         *time.Time

	isConstructed bool
}

// NewItem creates a new kitchen item in Pending status. This is the entry
// point used by order ingestion.
//
// Parameters:
//   - id: unique identifier for the item
//   - orderID: the parent order
//   - sectorID: the kitchen sector that owns this item
//   - productName: display name for kitchen tickets (required)
//   - quantity: number of units (must be positive)
//   - details: free-text ticket attributes
func NewItem(
	id kernel.UUID,
	orderID kernel.UUID,
	sectorID kernel.UUID,
	productName string,
	quantity int,
	details Details,
) (*Item, error) {
	item := &Item{
		status:        Pending,
		details:       details,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setOrderID(orderID),
		item.setSectorID(sectorID),
		item.setProductName(productName),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem reconstructs an item from persistence, validating the
// consistency invariants between status, claim fields and timestamps.
func RestoreItem(
	id kernel.UUID,
	orderID kernel.UUID,
	sectorID kernel.UUID,
	productName string,
	quantity int,
	details Details,
	status Status,
	claimedBy *kernel.UUID,
	claimedAt *time.Time,
	ovenEntryAt *time.Time,
	estimatedExitAt *time.Time,
	readyAt *time.Time,
) (*Item, error) {
	item, err := NewItem(id, orderID, sectorID, productName, quantity, details)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	if (claimedBy == nil) != (claimedAt == nil) {
		return nil, errs.NewValueIsInvalidError("claimedBy and claimedAt must both be set or both be nil")
	}

	if err = status.ValidateCanHaveClaim(claimedBy != nil); err != nil {
		return nil, err
	}

	if ovenEntryAt != nil && status != InOven && status != Ready {
		return nil, errs.NewValueIsInvalidError("ovenEntryAt is only valid for in_oven or ready items")
	}

	if readyAt != nil && status != Ready {
		return nil, errs.NewValueIsInvalidError("readyAt is only valid for ready items")
	}

	item.status = status
	item.claimedBy = claimedBy
	item.claimedAt = claimedAt
	item.ovenEntryAt = ovenEntryAt
	item.estimatedExitAt = estimatedExitAt
	item.readyAt = readyAt

	return item, nil
}

// Validate ensures the Item was created through a constructor.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}

	return nil
}

// IsEqual compares two items by their unique identifiers.
func (i *Item) IsEqual(other *Item) bool {
	return other != nil && i.id.IsEqual(other.id)
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// OrderID returns the parent order's identifier.
func (i *Item) OrderID() kernel.UUID {
	return i.orderID
}

// SectorID returns the kitchen sector that owns this item.
func (i *Item) SectorID() kernel.UUID {
	return i.sectorID
}

// ProductName returns the display name for kitchen tickets.
func (i *Item) ProductName() string {
	return i.productName
}

// Quantity returns the number of units.
func (i *Item) Quantity() int {
	return i.quantity
}

// Details returns the free-text ticket attributes.
func (i *Item) Details() Details {
	return i.details
}

// Status returns the current lifecycle status.
func (i *Item) Status() Status {
	return i.status
}

// ClaimedBy returns the operator holding the claim, or nil when unclaimed.
func (i *Item) ClaimedBy() *kernel.UUID {
	return i.claimedBy
}

// ClaimedAt returns when the current claim was taken, or nil when unclaimed.
func (i *Item) ClaimedAt() *time.Time {
	return i.claimedAt
}

// OvenEntryAt returns when the item entered the oven, or nil.
func (i *Item) OvenEntryAt() *time.Time {
	return i.ovenEntryAt
}

// EstimatedExitAt returns the projected oven exit time, or nil.
func (i *Item) EstimatedExitAt() *time.Time {
	return i.estimatedExitAt
}

// ReadyAt returns when the item finished the pipeline, or nil.
func (i *Item) ReadyAt() *time.Time {
	return i.readyAt
}

// IsClaimedBy reports whether operator currently holds the item's claim.
func (i *Item) IsClaimedBy(operator kernel.UUID) bool {
	return i.claimedBy != nil && i.claimedBy.IsEqual(operator)
}

// Claim takes exclusive ownership of the item for an operator.
//
// Business rules:
//   - the item must be Pending or InPrep
//   - an unclaimed item becomes InPrep with claim fields set
//   - re-claiming by the same operator is a no-op success
//   - claiming an item held by a different operator fails with
//     ErrItemAlreadyClaimed
//
// The sector presence gate (no claims on unattended sectors) is applied by
// the command handler, which is the component that can see the tracker.
func (i *Item) Claim(operator kernel.UUID, now time.Time) error {
	if err := operator.Validate(); err != nil {
		return err
	}

	if i.claimedBy != nil {
		if i.claimedBy.IsEqual(operator) {
			// Idempotent re-claim.
			return nil
		}
		return ErrItemAlreadyClaimed
	}

	newStatus, err := i.status.Claim()
	if err != nil {
		return err
	}

	i.status = newStatus
	i.claimedBy = &operator
	i.claimedAt = &now
	return nil
}

// EnterOven advances the item from InPrep to InOven, recording the oven entry
// time and the estimated exit computed from the configured bake duration.
// The caller must hold the current claim.
func (i *Item) EnterOven(operator kernel.UUID, now time.Time, bakeDuration time.Duration) error {
	if err := operator.Validate(); err != nil {
		return err
	}

	if !i.IsClaimedBy(operator) {
		return ErrItemNotClaimed
	}

	if bakeDuration <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("bakeDuration is invalid",
			fmt.Errorf("%s is not greater than 0", bakeDuration))
	}

	newStatus, err := i.status.EnterOven()
	if err != nil {
		return err
	}

	estimatedExit := now.Add(bakeDuration)

	i.status = newStatus
	i.ovenEntryAt = &now
	i.estimatedExitAt = &estimatedExit
	return nil
}

// MarkReady advances the item from InOven to Ready, recording the ready time
// and releasing the claim. The caller must hold the current claim.
//
// On success the item becomes eligible for ticket printing and delivery
// grouping; enqueueing the print job is the command handler's responsibility.
func (i *Item) MarkReady(operator kernel.UUID, now time.Time) error {
	if err := operator.Validate(); err != nil {
		return err
	}

	if !i.IsClaimedBy(operator) {
		return ErrItemNotClaimed
	}

	newStatus, err := i.status.MarkReady()
	if err != nil {
		return err
	}

	i.status = newStatus
	i.readyAt = &now
	i.claimedBy = nil
	i.claimedAt = nil
	return nil
}

// setID validates and sets the item's unique identifier.
func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

// setOrderID validates and sets the parent order identifier.
func (i *Item) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	i.orderID = orderID
	return nil
}

// setSectorID validates and sets the owning sector identifier.
func (i *Item) setSectorID(sectorID kernel.UUID) error {
	if err := sectorID.Validate(); err != nil {
		return err
	}
	i.sectorID = sectorID
	return nil
}

// setProductName validates and sets the product name.
func (i *Item) setProductName(productName string) error {
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	i.productName = productName
	return nil
}

// setQuantity validates and sets the quantity.
// Quantity must be positive (greater than 0).
func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
