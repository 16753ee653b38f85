// Package order provides domain entities and business logic for freight order
// management in the marketplace. It implements the Order aggregate root with
// lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, pricing and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - TruckClass: The vehicle category required for the cargo
//   - Actor: The party performing a lifecycle operation
//
// Key business rules:
//   - Orders must have a valid identifier, customer, addresses and a non-negative base price
//   - Order status follows the workflow Pending -> Bidding -> Accepted -> Pickup -> InTransit -> Delivered
//   - Cancelled and Declined are reachable from non-terminal states and are terminal
//   - A driver is assigned if and only if the order is Accepted, Pickup, InTransit or Delivered
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
