// Package escrow provides the escrow ledger domain model: money held against
// an order (the driver's commitment fee and the customer's fare) and its
// settlement lifecycle.
//
// Key business rules:
//   - An entry starts Held after a successful gateway authorization
//   - Captured, Refunded and Forfeited are terminal settlements
//   - Settlement operations are idempotent per entry id: re-applying the
//     operation that produced the current status is a no-op
//   - A failed settlement is recorded for the reconciliation sweep to retry
package escrow
