// Package truck provides the Truck entity for the cement delivery system.
// Trucks carry delivery missions and impose the per-mission capacity limit in
// tonnes. For the purposes of the core they are immutable reference data;
// administrative edits happen in an external back office.
package truck

import (
	"errors"

	"cementops/internal/core/domain/model/kernel"
	"cementops/internal/pkg/errs"
	"cementops/internal/pkg/guard"
)

// Domain errors for truck operations.
var (
	// ErrTruckIsNotConstructed is returned when using an improperly initialized Truck.
	ErrTruckIsNotConstructed = errors.New("Truck must be created via NewTruck constructor")
	// ErrPlateNumberIsRequired is returned when attempting to create a truck without a plate number.
	ErrPlateNumberIsRequired = errs.NewValueIsRequiredError("plate number")
	// ErrDriverNameIsRequired is returned when attempting to create a truck without a driver.
	ErrDriverNameIsRequired = errs.NewValueIsRequiredError("driver name")
	// ErrCapacityIsInvalid is returned when the capacity is not strictly positive.
	ErrCapacityIsInvalid = errs.NewValueIsInvalidError("capacity must be greater than 0 tonnes")
)

// Truck represents a delivery truck with its registration plate, assigned
// driver, and maximum load capacity per mission.
//
// Business rules:
//   - Truck must have a valid UUID, non-empty plate number and driver name
//   - Capacity must be strictly positive (decimal tonnes)
//
// Example:
//
//	capacity, _ := kernel.ParseTonnage("20")
//	t, err := truck.NewTruck(kernel.NewUUID(), "AB-123-CD", "Karim Haddad", capacity)
//	if err != nil {
//	    // handle construction error
//	}
type Truck struct {
	id          kernel.UUID
	plateNumber string
	driverName  string
	capacity    kernel.Tonnage

	guard guard.ConstructorGuard
}

// NewTruck creates a new Truck with the specified parameters.
// This is the only way to create a valid Truck instance; all parameters are
// validated and multiple failures are aggregated via errors.Join.
func NewTruck(id kernel.UUID, plateNumber string, driverName string, capacity kernel.Tonnage) (*Truck, error) {
	t := &Truck{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setPlateNumber(plateNumber),
		t.setDriverName(driverName),
		t.setCapacity(capacity),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate ensures the Truck instance was properly constructed.
func (t *Truck) Validate() error {
	if t == nil {
		return ErrTruckIsNotConstructed
	}
	return t.guard.Validate(ErrTruckIsNotConstructed)
}

// IsEqual compares two trucks by their unique identifiers.
func (t *Truck) IsEqual(other *Truck) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the truck's unique identifier.
func (t *Truck) ID() kernel.UUID {
	return t.id
}

// PlateNumber returns the truck's registration plate.
func (t *Truck) PlateNumber() string {
	return t.plateNumber
}

// DriverName returns the assigned driver's name.
func (t *Truck) DriverName() string {
	return t.driverName
}

// Capacity returns the maximum load the truck can carry per mission.
func (t *Truck) Capacity() kernel.Tonnage {
	return t.capacity
}

// CanCarry reports whether the given load fits within the truck's capacity.
// The comparison is exact: a load equal to the capacity fits.
func (t *Truck) CanCarry(load kernel.Tonnage) bool {
	return !load.GreaterThan(t.capacity)
}

func (t *Truck) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Truck) setPlateNumber(plateNumber string) error {
	if plateNumber == "" {
		return ErrPlateNumberIsRequired
	}
	t.plateNumber = plateNumber
	return nil
}

func (t *Truck) setDriverName(driverName string) error {
	if driverName == "" {
		return ErrDriverNameIsRequired
	}
	t.driverName = driverName
	return nil
}

func (t *Truck) setCapacity(capacity kernel.Tonnage) error {
	if err := capacity.Validate(); err != nil {
		return err
	}
	if !capacity.IsPositive() {
		return ErrCapacityIsInvalid
	}
	t.capacity = capacity
	return nil
}
