package order

import (
	"errors"
	"time"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderNotGroupable is returned when attempting to group an order
	// whose delivery coordinates are missing. Such orders are surfaced for
	// manual handling, never grouped automatically.
	ErrOrderNotGroupable = errors.New("order has no delivery coordinates and cannot be grouped")

	// ErrOrderAlreadyGrouped is returned when attempting to assign an order
	// that already belongs to a delivery group. Orders never move between
	// groups once assigned.
	ErrOrderAlreadyGrouped = errors.New("order is already assigned to a delivery group")

	// ErrBufferNotElapsed is returned when releasing an order whose buffer
	// hold has not finished yet.
	ErrBufferNotElapsed = errors.New("order buffer hold has not elapsed")
)

// Order represents a customer order moving toward dispatch. It is the parent
// of kitchen items and carries the delivery geography used by the grouping
// engine.
//
// Order maintains these invariants:
//   - bufferUntil is set exactly when status passed through WaitingBuffer
//   - groupID is only set while Ready or Dispatched, and never changes
//     once set
//   - orders without coordinates never receive a groupID
type Order struct {
	id           kernel.UUID
	customerName string
	address      string
	neighborhood string

	// dropoff is nil when the ordering platform supplied no usable
	// coordinates for the delivery address.
	dropoff *kernel.GeoPoint

	status      Status
	groupID     *kernel.UUID
	bufferUntil *time.Time

	isConstructed bool
}

// NewOrder creates a new Order in Pending status. Orders are created by the
// ingestion collaborator; this core never originates them outside of tests.
//
// dropoff may be nil for orders without usable coordinates; such orders flow
// through the kitchen and buffer normally but are excluded from automatic
// grouping.
func NewOrder(
	id kernel.UUID,
	customerName string,
	address string,
	neighborhood string,
	dropoff *kernel.GeoPoint,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		neighborhood:  neighborhood,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerName(customerName),
		o.setAddress(address),
		o.setDropoff(dropoff),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence.
func RestoreOrder(
	id kernel.UUID,
	customerName string,
	address string,
	neighborhood string,
	dropoff *kernel.GeoPoint,
	status Status,
	groupID *kernel.UUID,
	bufferUntil *time.Time,
) (*Order, error) {
	o, err := NewOrder(id, customerName, address, neighborhood, dropoff)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	if groupID != nil {
		if err = groupID.Validate(); err != nil {
			return nil, err
		}
		if status != Ready && status != Dispatched {
			return nil, errs.NewValueIsInvalidError("groupID is only valid for ready or dispatched orders")
		}
	}

	o.status = status
	o.groupID = groupID
	o.bufferUntil = bufferUntil

	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerName returns the customer identity shown on tickets.
func (o *Order) CustomerName() string {
	return o.customerName
}

// Address returns the delivery street address.
func (o *Order) Address() string {
	return o.address
}

// Neighborhood returns the delivery neighborhood, possibly empty.
func (o *Order) Neighborhood() string {
	return o.neighborhood
}

// Dropoff returns the delivery coordinates, or nil when missing.
func (o *Order) Dropoff() *kernel.GeoPoint {
	return o.dropoff
}

// HasDropoff reports whether the order carries usable delivery coordinates.
func (o *Order) HasDropoff() bool {
	return o.dropoff != nil
}

// Status returns the current dispatch lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// GroupID returns the delivery group this order belongs to, or nil.
func (o *Order) GroupID() *kernel.UUID {
	return o.groupID
}

// BufferUntil returns the end of the buffer hold, or nil before the hold.
func (o *Order) BufferUntil() *time.Time {
	return o.bufferUntil
}

// HoldForBuffer moves the order into the buffer hold until the given time.
// Called when the last kitchen item of the order reaches ready.
func (o *Order) HoldForBuffer(until time.Time) error {
	newStatus, err := o.status.HoldForBuffer()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.bufferUntil = &until
	return nil
}

// Release moves the order out of the buffer hold once it has elapsed,
// making the order eligible for delivery grouping.
func (o *Order) Release(now time.Time) error {
	if o.bufferUntil != nil && now.Before(*o.bufferUntil) {
		return ErrBufferNotElapsed
	}

	newStatus, err := o.status.Release()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// AssignToGroup records the order's membership in a delivery group.
//
// Business rules:
//   - the order must be Ready
//   - the order must carry delivery coordinates
//   - an order never moves between groups once assigned
func (o *Order) AssignToGroup(groupID kernel.UUID) error {
	if err := groupID.Validate(); err != nil {
		return err
	}

	if o.status != Ready {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			errors.New(o.status.String()+" is not a valid status to join a group"))
	}

	if !o.HasDropoff() {
		return ErrOrderNotGroupable
	}

	if o.groupID != nil {
		return ErrOrderAlreadyGrouped
	}

	o.groupID = &groupID
	return nil
}

// MarkDispatched finalizes the order when its delivery group leaves.
func (o *Order) MarkDispatched() error {
	newStatus, err := o.status.Dispatch()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCustomerName validates and sets the customer identity.
func (o *Order) setCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customerName = customerName
	return nil
}

// setAddress validates and sets the delivery address.
func (o *Order) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	o.address = address
	return nil
}

// setDropoff validates and sets the optional delivery coordinates.
func (o *Order) setDropoff(dropoff *kernel.GeoPoint) error {
	if dropoff == nil {
		return nil
	}
	if err := dropoff.Validate(); err != nil {
		return err
	}
	o.dropoff = dropoff
	return nil
}
