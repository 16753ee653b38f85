package escrow

import (
	"errors"
	"time"

	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/pkg/errs"
)

var (
	// ErrEntryIsNotConstructed is returned when an Entry instance was not created
	// through the NewEntry factory method.
	ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

	// ErrAmountIsNotPositive is returned when an escrow amount is zero or negative.
	ErrAmountIsNotPositive = errors.New("escrow amount must be greater than 0")
)

// Entry represents money held for an order: either the driver's commitment fee
// or the customer's fare. The entry id doubles as the idempotency key for all
// settlement operations.
//
// Settlement operations (Apply) are idempotent: re-applying the operation that
// produced the entry's current terminal status is a no-op, which makes the
// ledger safe against duplicate payment-gateway callbacks. Conflicting
// operations on a settled entry fail with InvalidStatusChangeError.
type Entry struct {
	id           kernel.UUID
	orderID      kernel.UUID
	payerRole    PayerRole
	kind         Kind
	amount       kernel.Money
	status       Status
	gatewayRef   string
	failedOp     Operation
	failedAmount *kernel.Money
	createdAt    time.Time
	updatedAt    time.Time

	isConstructed bool
}

// NewEntry creates a new escrow Entry in Held status. The gatewayRef is the
// transaction id returned by the payment gateway's authorization.
func NewEntry(
	id, orderID kernel.UUID,
	payerRole PayerRole,
	kind Kind,
	amount kernel.Money,
	gatewayRef string,
) (*Entry, error) {
	now := time.Now().UTC()
	e := &Entry{
		status:        Held,
		gatewayRef:    gatewayRef,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		e.setID(id),
		e.setOrderID(orderID),
		e.setPayerRole(payerRole),
		e.setKind(kind),
		e.setAmount(amount),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreEntry reconstructs an Entry from persistence.
func RestoreEntry(
	id, orderID kernel.UUID,
	payerRole PayerRole,
	kind Kind,
	amount kernel.Money,
	status Status,
	gatewayRef string,
	failedOp Operation,
	failedAmount *kernel.Money,
	createdAt, updatedAt time.Time,
) (*Entry, error) {
	e := &Entry{
		gatewayRef:    gatewayRef,
		failedOp:      failedOp,
		failedAmount:  failedAmount,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		e.setID(id),
		e.setOrderID(orderID),
		e.setPayerRole(payerRole),
		e.setKind(kind),
		e.setAmount(amount),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	e.status = status

	return e, nil
}

// Validate ensures the Entry instance was properly constructed through a constructor.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// IsEqual compares two entries by their unique identifiers.
func (e *Entry) IsEqual(other *Entry) bool {
	return other != nil && e.id.IsEqual(other.id)
}

// ID returns the entry's unique identifier (the idempotency key).
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// OrderID returns the identifier of the order this entry belongs to.
func (e *Entry) OrderID() kernel.UUID {
	return e.orderID
}

// PayerRole returns whose money is held.
func (e *Entry) PayerRole() PayerRole {
	return e.payerRole
}

// Kind returns what the money is held for.
func (e *Entry) Kind() Kind {
	return e.kind
}

// Amount returns the held amount.
func (e *Entry) Amount() kernel.Money {
	return e.amount
}

// Status returns the current settlement status.
func (e *Entry) Status() Status {
	return e.status
}

// GatewayRef returns the payment gateway transaction id for the hold.
func (e *Entry) GatewayRef() string {
	return e.gatewayRef
}

// FailedOperation returns the settlement operation that failed, or
// OperationNone. The reconciliation sweep retries this operation.
func (e *Entry) FailedOperation() Operation {
	return e.failedOp
}

// FailedAmount returns the amount of the failed settlement attempt, or nil.
// Partial fare captures retry with the originally attempted amount.
func (e *Entry) FailedAmount() *kernel.Money {
	return e.failedAmount
}

// SettlementAmount returns the amount a settlement of the entry should move:
// the recorded failed amount on a retry, otherwise the full held amount.
func (e *Entry) SettlementAmount() kernel.Money {
	if e.failedAmount != nil {
		return *e.failedAmount
	}
	return e.amount
}

// CreatedAt returns when the hold was opened.
func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

// UpdatedAt returns when the entry last changed.
func (e *Entry) UpdatedAt() time.Time {
	return e.updatedAt
}

// Apply performs the settlement operation on the entry.
//
// Semantics:
//   - Held or Failed entry: moves to the operation's target status
//   - entry already in the operation's target status: no-op, returns nil
//   - any other settled status: *InvalidStatusChangeError
//
// The no-op branch is what makes retries and duplicate gateway callbacks safe.
func (e *Entry) Apply(op Operation) error {
	target, ok := op.Target()
	if !ok {
		return &InvalidStatusChangeError{From: e.status, To: StatusUnknown}
	}

	if e.status == target {
		return nil
	}
	if e.status != Held && e.status != Failed {
		return &InvalidStatusChangeError{From: e.status, To: target}
	}

	e.status = target
	e.failedOp = OperationNone
	e.failedAmount = nil
	e.touch()
	return nil
}

// Capture charges the held funds. Idempotent.
func (e *Entry) Capture() error {
	return e.Apply(OperationCapture)
}

// Refund releases the held funds back to the payer. Idempotent.
func (e *Entry) Refund() error {
	return e.Apply(OperationRefund)
}

// Forfeit keeps the held funds as a penalty. Idempotent.
func (e *Entry) Forfeit() error {
	return e.Apply(OperationForfeit)
}

// MarkFailed records a failed settlement attempt: the operation to retry and
// the amount it should move. A held entry moves to Failed; marking an already
// failed entry updates the recorded attempt. Settled entries cannot fail.
func (e *Entry) MarkFailed(op Operation, amount kernel.Money) error {
	if _, ok := op.Target(); !ok {
		return &InvalidStatusChangeError{From: e.status, To: Failed}
	}
	if e.status != Held && e.status != Failed {
		return &InvalidStatusChangeError{From: e.status, To: Failed}
	}
	if err := amount.Validate(); err != nil {
		return err
	}

	e.status = Failed
	e.failedOp = op
	e.failedAmount = &amount
	e.touch()
	return nil
}

func (e *Entry) touch() {
	e.updatedAt = time.Now().UTC()
}

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	e.orderID = orderID
	return nil
}

func (e *Entry) setPayerRole(role PayerRole) error {
	if err := role.Validate(); err != nil {
		return err
	}
	e.payerRole = role
	return nil
}

func (e *Entry) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	e.kind = kind
	return nil
}

func (e *Entry) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return ErrAmountIsNotPositive
	}
	e.amount = amount
	return nil
}
