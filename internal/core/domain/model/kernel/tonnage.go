package kernel

import (
	"fmt"

	"cementops/internal/pkg/errs"
	"cementops/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrTonnageIsNotConstructed is returned when attempting to use an improperly
// initialized Tonnage. Tonnages must be created via NewTonnage, ParseTonnage,
// or ZeroTonnage to ensure validity.
var ErrTonnageIsNotConstructed = errs.NewValueIsRequiredError(
	"tonnage must be created via NewTonnage, ParseTonnage, or ZeroTonnage constructors")

// Tonnage represents a non-negative quantity of cement in tonnes.
// It is an immutable value object backed by decimal arithmetic so that
// capacity comparisons carry no floating-point error: a truck of capacity
// 20 must reject 20.01 tonnes and accept exactly 20.
//
// The zero value of Tonnage is invalid and will fail validation - use the
// constructors to create instances. Arithmetic (Add) produces new values and
// never mutates the receiver.
//
// Example:
//
//	q, err := kernel.ParseTonnage("12.5")
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Printf("quantity: %s", q) // Output: 12.5
type Tonnage struct { //nolint:recvcheck //using for validation
	value decimal.Decimal
	guard guard.ConstructorGuard
}

// NewTonnage creates a Tonnage from a decimal value.
// The value must not be negative; zero is allowed so that running totals and
// empty deliveries can be represented.
func NewTonnage(value decimal.Decimal) (Tonnage, error) {
	if value.IsNegative() {
		return Tonnage{}, errs.NewValueIsInvalidErrorWithCause("tonnage",
			fmt.Errorf("%s is negative", value.String()))
	}

	return Tonnage{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// ParseTonnage creates a Tonnage from its decimal string representation,
// e.g. "12.5". Returns an error for malformed or negative input.
func ParseTonnage(s string) (Tonnage, error) {
	value, err := decimal.NewFromString(s)
	if err != nil {
		return Tonnage{}, errs.NewValueIsInvalidErrorWithCause("tonnage", err)
	}
	return NewTonnage(value)
}

// ZeroTonnage returns a valid Tonnage of exactly zero tonnes.
// Used as the seed for running totals.
func ZeroTonnage() Tonnage {
	return Tonnage{
		value: decimal.Zero,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate checks if the Tonnage was properly constructed using a constructor.
func (t Tonnage) Validate() error {
	return t.guard.Validate(ErrTonnageIsNotConstructed)
}

// Decimal returns the underlying decimal value.
func (t Tonnage) Decimal() decimal.Decimal {
	return t.value
}

// Add returns the sum of two tonnages as a new value.
func (t Tonnage) Add(other Tonnage) Tonnage {
	return Tonnage{
		value: t.value.Add(other.value),
		guard: guard.NewConstructorGuard(),
	}
}

// GreaterThan reports whether t is strictly greater than other.
// The comparison is exact, with zero tolerance.
func (t Tonnage) GreaterThan(other Tonnage) bool {
	return t.value.GreaterThan(other.value)
}

// IsZero reports whether the tonnage is exactly zero.
func (t Tonnage) IsZero() bool {
	return t.value.IsZero()
}

// IsPositive reports whether the tonnage is strictly greater than zero.
func (t Tonnage) IsPositive() bool {
	return t.value.IsPositive()
}

// IsEqual compares two tonnages by numeric value, ignoring exponent
// representation (12.50 equals 12.5).
func (t Tonnage) IsEqual(other Tonnage) bool {
	return t.value.Equal(other.value)
}

// String returns the decimal representation without trailing zeros.
func (t Tonnage) String() string {
	return t.value.String()
}
