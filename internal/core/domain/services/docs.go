// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the cement delivery system. It implements
// complex business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - AssignmentValidator: Checks a candidate order set against truck capacity and
//     conflicting assignments in other active deliveries
//   - ScheduleGenerator: Allocates the pending order backlog across the truck fleet
//     under a daily production limit
//   - ScheduleAggregator: Merges raw per-truck assignments into display rows
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
