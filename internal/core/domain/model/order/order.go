package order

import (
	"errors"
	"time"

	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/pkg/errs"
	"cementops/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
	// ErrClientNameIsRequired is returned when the client display name is empty.
	ErrClientNameIsRequired = errs.NewValueIsRequiredError("client name")
	// ErrQuantityIsInvalid is returned when the requested quantity is not strictly positive.
	ErrQuantityIsInvalid = errs.NewValueIsInvalidError("quantity must be greater than 0 tonnes")
	// ErrRequestedDateIsRequired is returned when the requested delivery date is missing.
	ErrRequestedDateIsRequired = errs.NewValueIsRequiredError("requested date")
)

// Order represents a customer request for a quantity of cement to be
// fulfilled by a delivery mission. It is an aggregate root.
//
// Order follows these invariants:
//   - Must have valid unique, client, and product identifiers
//   - Quantity must be strictly positive (decimal tonnes)
//   - Must carry a requested delivery date; the time of day is optional
//   - Status transitions follow the Status state machine
//   - Can only be created through NewOrder or RestoreOrder
//
// Client and product display names are denormalized onto the aggregate at
// load time so that validation conflicts and schedule rows can be rendered
// without extra catalog lookups.
type Order struct {
	id            kernel.UUID
	clientID      kernel.UUID
	clientName    string
	productID     kernel.UUID
	productName   string
	quantity      kernel.Tonnage
	requestedDate time.Time
	requestedTime string
	status        Status

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Pending status.
//
// Parameters:
//   - id: unique identifier for the order
//   - clientID, clientName: the ordering client
//   - productID, productName: the requested cement product
//   - quantity: requested tonnage (must be strictly positive)
//   - requestedDate: calendar date the client asked for
//   - requestedTime: optional time of day ("15:04" form, empty if unspecified)
//
// Returns a validation error if any parameter is invalid; multiple failures
// are aggregated via errors.Join.
func NewOrder(
	id kernel.UUID,
	clientID kernel.UUID,
	clientName string,
	productID kernel.UUID,
	productName string,
	quantity kernel.Tonnage,
	requestedDate time.Time,
	requestedTime string,
) (*Order, error) {
	o := &Order{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setClient(clientID, clientName),
		o.setProduct(productID, productName),
		o.setQuantity(quantity),
		o.setRequestedDate(requestedDate),
		o.setRequestedTime(requestedTime),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage,
// including its persisted status. Used by repositories only.
func RestoreOrder(
	id kernel.UUID,
	clientID kernel.UUID,
	clientName string,
	productID kernel.UUID,
	productName string,
	quantity kernel.Tonnage,
	requestedDate time.Time,
	requestedTime string,
	status Status,
) (*Order, error) {
	o, err := NewOrder(id, clientID, clientName, productID, productName, quantity, requestedDate, requestedTime)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	o.status = status

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ClientID returns the ordering client's identifier.
func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// ClientName returns the ordering client's display name.
func (o *Order) ClientName() string {
	return o.clientName
}

// ProductID returns the requested product's identifier.
func (o *Order) ProductID() kernel.UUID {
	return o.productID
}

// ProductName returns the requested product's display name.
func (o *Order) ProductName() string {
	return o.productName
}

// Quantity returns the requested tonnage.
func (o *Order) Quantity() kernel.Tonnage {
	return o.quantity
}

// RequestedDate returns the calendar date the client asked for.
func (o *Order) RequestedDate() time.Time {
	return o.requestedDate
}

// RequestedTime returns the optional requested time of day ("" if unspecified).
func (o *Order) RequestedTime() string {
	return o.requestedTime
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// MarkValidated confirms the order for scheduling.
func (o *Order) MarkValidated() error {
	newStatus, err := o.status.MarkValidated()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkDelivered records the terminal delivery outcome on the order.
// Called by the delivery lifecycle when the mission carrying this order is
// completed; this is the only mutation the lifecycle performs on orders.
func (o *Order) MarkDelivered() error {
	newStatus, err := o.status.MarkDelivered()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkCancelled withdraws the order.
func (o *Order) MarkCancelled() error {
	newStatus, err := o.status.MarkCancelled()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setClient(clientID kernel.UUID, clientName string) error {
	if err := clientID.Validate(); err != nil {
		return err
	}
	if clientName == "" {
		return ErrClientNameIsRequired
	}
	o.clientID = clientID
	o.clientName = clientName
	return nil
}

func (o *Order) setProduct(productID kernel.UUID, productName string) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	o.productID = productID
	o.productName = productName
	return nil
}

func (o *Order) setQuantity(quantity kernel.Tonnage) error {
	if err := quantity.Validate(); err != nil {
		return err
	}
	if !quantity.IsPositive() {
		return ErrQuantityIsInvalid
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setRequestedDate(requestedDate time.Time) error {
	if requestedDate.IsZero() {
		return ErrRequestedDateIsRequired
	}
	o.requestedDate = requestedDate
	return nil
}

func (o *Order) setRequestedTime(requestedTime string) error {
	if err := kernel.ValidateTimeOfDay(requestedTime); err != nil {
		return err
	}
	o.requestedTime = requestedTime
	return nil
}
