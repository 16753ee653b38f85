// Package bid provides domain entities and business logic for bid management.
// It implements the Bid aggregate root covering the negotiation lifecycle from
// submission through counter-offers to acceptance, decline or withdrawal.
//
// Key business rules:
//   - The proposed price must be strictly positive
//   - At most one pending bid per (order, driver); re-submission replaces the proposal
//   - At most one bid per order ever holds Accepted
//   - Counter-offers must undercut the current asking price, at most MaxCounterRounds times
package bid
