package kernel

import (
	"errors"
	"strings"

	"freightline/internal/pkg/errs"
	"freightline/internal/pkg/guard"
)

// AddressMaxLength is the maximum number of characters allowed in an address.
const AddressMaxLength = 500

// ErrAddressIsNotConstructed is returned when attempting to use an improperly initialized Address.
// Addresses must be created using the NewAddress constructor to ensure validity.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address represents a pickup or destination location as free-form text.
// Address is an immutable value object; the text is trimmed, must not be empty,
// and must not exceed AddressMaxLength characters. The zero value of Address is
// invalid and will fail validation - use the constructor to create instances.
//
// Example:
//
//	addr, err := kernel.NewAddress("Bole Road, Addis Ababa")
//	if err != nil {
//	    // Handle validation error
//	}
type Address struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// NewAddress creates an Address from the given text.
// Leading and trailing whitespace is trimmed. Returns an error if the trimmed
// text is empty or longer than AddressMaxLength.
func NewAddress(value string) (Address, error) {
	addr := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(addr.setValue(value)); err != nil {
		return Address{}, err
	}

	return addr, nil
}

// Validate checks if the Address was properly constructed using the constructor.
// Returns ErrAddressIsNotConstructed for zero-value instances.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Value returns the trimmed address text.
func (a Address) Value() string {
	return a.value
}

// IsEqual compares two addresses by their text.
func (a Address) IsEqual(other Address) bool {
	return a.value == other.value
}

// String returns the address text. Implements the fmt.Stringer interface.
func (a Address) String() string {
	return a.value
}

func (a *Address) setValue(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError("address")
	}
	if len(value) > AddressMaxLength {
		return errs.NewValueIsOutOfRangeError("address length", len(value), 1, AddressMaxLength)
	}
	a.value = value
	return nil
}
