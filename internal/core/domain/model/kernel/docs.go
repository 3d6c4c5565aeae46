// Package kernel provides shared value objects used across the domain model.
//
// The package includes:
//   - UUID: validated unique identifier wrapping github.com/google/uuid
//   - Tonnage: non-negative decimal quantity of cement in tonnes
//
// All value objects are immutable, constructor-guarded, and safe for
// concurrent use. Zero values are invalid and fail Validate; instances must
// be created through the provided constructor functions.
package kernel
