// Package services provides domain services that orchestrate business rules
// across multiple domain entities in the freight marketplace. It implements
// logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - SettlementPolicy: Decides commitment fee amounts and the disposition of
//     escrow holds when an order is delivered or cancelled
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
