package order

import (
	"fmt"

	"freightline/internal/pkg/errs"
)

// TruckClass represents the vehicle category required to carry an order's cargo.
type TruckClass int

const (
	// TruckClassUnknown represents an invalid or undefined truck class.
	TruckClassUnknown TruckClass = iota

	// TruckClassMini covers pickups and small vans.
	TruckClassMini

	// TruckClassLight covers light trucks up to 3.5 tonnes.
	TruckClassLight

	// TruckClassMedium covers medium trucks up to 12 tonnes.
	TruckClassMedium

	// TruckClassHeavy covers heavy trucks and trailers.
	TruckClassHeavy
)

func getTruckClassStrings() map[TruckClass]string {
	return map[TruckClass]string{
		TruckClassUnknown: "Unknown",
		TruckClassMini:    "Mini",
		TruckClassLight:   "Light",
		TruckClassMedium:  "Medium",
		TruckClassHeavy:   "Heavy",
	}
}

// TruckClassFromString parses a truck class from its string form.
// The comparison is exact; unknown values return an error.
func TruckClassFromString(s string) (TruckClass, error) {
	for class, str := range getTruckClassStrings() {
		if class != TruckClassUnknown && str == s {
			return class, nil
		}
	}
	return TruckClassUnknown, errs.NewValueIsInvalidErrorWithCause("truck class",
		fmt.Errorf("%q is not a valid truck class", s))
}

// Validate checks if the TruckClass value is one of the defined classes.
func (t TruckClass) Validate() error {
	if t < TruckClassMini || t > TruckClassHeavy {
		return errs.NewValueIsInvalidErrorWithCause("truck class",
			fmt.Errorf("%d is not a valid truck class", t))
	}
	return nil
}

// String returns the human-readable name of the truck class.
// Implements the fmt.Stringer interface and is safe to call on any value.
func (t TruckClass) String() string {
	if str, ok := getTruckClassStrings()[t]; ok {
		return str
	}
	return "Unknown"
}
