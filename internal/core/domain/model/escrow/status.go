package escrow

import (
	"errors"
	"fmt"

	"freightline/internal/pkg/errs"
)

// ErrInvalidStatusChange is the sentinel for illegal escrow entry status changes.
var ErrInvalidStatusChange = errors.New("invalid escrow entry status change")

// InvalidStatusChangeError reports an attempted status change that the escrow
// entry lifecycle does not allow, e.g. capturing an already refunded entry.
type InvalidStatusChangeError struct {
	From Status
	To   Status
}

func (e *InvalidStatusChangeError) Error() string {
	return fmt.Sprintf("invalid escrow entry status change: %s -> %s", e.From, e.To)
}

func (e *InvalidStatusChangeError) Unwrap() error {
	return ErrInvalidStatusChange
}

// Status represents the settlement state of an escrow entry.
//
// Held is the initial state after a successful gateway authorization.
// Captured, Refunded and Forfeited are terminal settlements. Failed marks an
// entry whose settlement attempt did not go through; the reconciliation sweep
// retries it.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Held means the gateway authorization succeeded and the funds are reserved.
	Held

	// Captured means the held funds were charged. Terminal.
	Captured

	// Refunded means the held funds were released back to the payer. Terminal.
	Refunded

	// Forfeited means the held funds were kept as a penalty. Terminal.
	Forfeited

	// Failed means a settlement attempt failed; the intended operation is
	// recorded for the reconciliation sweep.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Held:          "Held",
		Captured:      "Captured",
		Refunded:      "Refunded",
		Forfeited:     "Forfeited",
		Failed:        "Failed",
	}
}

// Validate checks if the Status value is one of the defined settlement states.
func (s Status) Validate() error {
	if s < Held || s > Failed {
		return &InvalidStatusChangeError{From: StatusUnknown, To: s}
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements the fmt.Stringer interface and is safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the entry reached a final settlement.
func (s Status) IsTerminal() bool {
	switch s {
	case Captured, Refunded, Forfeited:
		return true
	default:
		return false
	}
}

// Kind identifies what an escrow entry holds money for.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown Kind = iota

	// KindCommitmentFee is the refundable hold charged to the driver on
	// accepting a job; forfeited on driver-initiated cancellation.
	KindCommitmentFee

	// KindFare is the amount held from the customer for the job.
	KindFare
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown:       "Unknown",
		KindCommitmentFee: "CommitmentFee",
		KindFare:          "Fare",
	}
}

// Validate checks if the Kind value is one of the defined kinds.
func (k Kind) Validate() error {
	if k < KindCommitmentFee || k > KindFare {
		return errs.NewValueIsInvalidErrorWithCause("escrow kind",
			fmt.Errorf("%d is not a valid escrow kind", k))
	}
	return nil
}

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

// PayerRole identifies whose money an escrow entry holds.
type PayerRole int

const (
	// PayerUnknown represents an invalid or undefined payer role.
	PayerUnknown PayerRole = iota

	// PayerCustomer means the customer's funds are held.
	PayerCustomer

	// PayerDriver means the driver's funds are held.
	PayerDriver
)

func getPayerRoleStrings() map[PayerRole]string {
	return map[PayerRole]string{
		PayerUnknown:  "Unknown",
		PayerCustomer: "Customer",
		PayerDriver:   "Driver",
	}
}

// Validate checks if the PayerRole value is one of the defined roles.
func (r PayerRole) Validate() error {
	if r < PayerCustomer || r > PayerDriver {
		return errs.NewValueIsInvalidErrorWithCause("payer role",
			fmt.Errorf("%d is not a valid payer role", r))
	}
	return nil
}

// String returns the human-readable name of the payer role.
func (r PayerRole) String() string {
	if str, ok := getPayerRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// Operation names a settlement operation. Recorded on a failed entry so the
// reconciliation sweep knows what to retry.
type Operation int

const (
	// OperationNone means no settlement is pending.
	OperationNone Operation = iota

	// OperationCapture charges the held funds.
	OperationCapture

	// OperationRefund releases the held funds back to the payer.
	OperationRefund

	// OperationForfeit keeps the held funds as a penalty.
	OperationForfeit
)

func getOperationStrings() map[Operation]string {
	return map[Operation]string{
		OperationNone:    "None",
		OperationCapture: "Capture",
		OperationRefund:  "Refund",
		OperationForfeit: "Forfeit",
	}
}

// String returns the human-readable name of the operation.
func (o Operation) String() string {
	if str, ok := getOperationStrings()[o]; ok {
		return str
	}
	return "None"
}

// Target returns the settlement status the operation results in.
func (o Operation) Target() (Status, bool) {
	switch o {
	case OperationCapture:
		return Captured, true
	case OperationRefund:
		return Refunded, true
	case OperationForfeit:
		return Forfeited, true
	default:
		return StatusUnknown, false
	}
}
