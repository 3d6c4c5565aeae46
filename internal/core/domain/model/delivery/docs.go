// Package delivery provides the Delivery aggregate root for the cement
// delivery system. A Delivery is a truck-borne mission carrying one or more
// customer orders to a destination on a scheduled date.
//
// The package includes:
//   - Delivery: The aggregate root owning the order set, optional truck
//     assignment, schedule, destination, and free-text notes
//   - Status: A state machine with an explicit transition table
//   - Schedule: A value object for the scheduled date and optional time of day
//   - HistoryEntry: An immutable record of one status change
//
// Key business rules:
//   - A delivery is created Pending with at least one order; only updates may
//     clear the order set
//   - Status follows Pending -> Scheduled -> InProgress -> Delivered, with
//     Cancelled reachable from any non-terminal state
//   - Every status change appends a history entry; history is append-only and
//     never edited or removed
//   - Dispatching (transition to InProgress) requires a truck assignment
package delivery
