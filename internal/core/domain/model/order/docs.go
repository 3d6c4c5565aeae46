// Package order provides domain entities and business logic for customer
// order management in the cement delivery system. It implements the Order
// aggregate root with lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root holding client/product references, the
//     requested quantity in tonnes, and the requested delivery date/time
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must have a valid identifier, client, product, and a strictly
//     positive quantity
//   - Order status follows a defined workflow: Pending -> Validated ->
//     Delivered, with Cancelled reachable from any non-terminal state
//   - Only the delivery lifecycle marks orders Delivered, and only as the
//     terminal outcome of the mission carrying them
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
