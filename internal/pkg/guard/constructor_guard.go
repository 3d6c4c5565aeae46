// Package guard implements the constructor guard pattern used by value objects,
// aggregates, commands, and queries throughout the application. Embedding a
// ConstructorGuard lets a type distinguish instances created through its
// designated constructor from zero values, so that validation can reject the
// latter before any business logic runs.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil error is passed
// as the validation error. Validation always fails with a meaningful message
// even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its constructor function.
// The zero value is unconstructed and fails Validate.
//
// Example usage:
//
//	type Tonnage struct {
//	    value decimal.Decimal
//	    guard guard.ConstructorGuard
//	}
//
//	func NewTonnage(value decimal.Decimal) (Tonnage, error) {
//	    if value.IsNegative() {
//	        return Tonnage{}, errors.New("tonnage cannot be negative")
//	    }
//	    return Tonnage{value: value, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (t Tonnage) Validate() error {
//	    return t.guard.Validate(ErrTonnageIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a ConstructorGuard that marks an object as
// properly constructed. Call it in the constructor of domain objects.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the guarded object was created through its
// constructor, the provided validationError otherwise. A nil validationError
// falls back to ErrDefaultConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
