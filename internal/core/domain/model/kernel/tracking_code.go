package kernel

import (
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// TrackingCodeMaxLength bounds the caller-chosen tracking code so it stays
// usable as a primary key and a Kafka message key.
const TrackingCodeMaxLength = 64

// ErrTrackingCodeIsNotConstructed is returned when attempting to use an improperly
// initialized TrackingCode. Tracking codes must be created via NewTrackingCode.
var ErrTrackingCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"tracking code must be created via NewTrackingCode constructor")

// TrackingCode is the caller-chosen unique identifier of one shipment.
// It is an immutable value object; the zero value is invalid and fails
// validation - use the constructor to create instances.
//
// Example:
//
//	code, err := kernel.NewTrackingCode("TRK-2024-0001")
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(code.String()) // "TRK-2024-0001"
type TrackingCode struct {
	value string
	guard guard.ConstructorGuard
}

// NewTrackingCode creates a validated TrackingCode.
// The value must be non-empty and at most TrackingCodeMaxLength characters.
func NewTrackingCode(value string) (TrackingCode, error) {
	if value == "" {
		return TrackingCode{}, errs.NewValueIsRequiredError("trackingCode")
	}
	if len(value) > TrackingCodeMaxLength {
		return TrackingCode{}, errs.NewValueIsOutOfRangeError("trackingCode length", len(value), 1, TrackingCodeMaxLength)
	}

	return TrackingCode{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// String returns the raw tracking code value.
func (c TrackingCode) String() string {
	return c.value
}

// IsEqual compares two tracking codes by value.
func (c TrackingCode) IsEqual(other TrackingCode) bool {
	return c.value == other.value
}

// Validate ensures the tracking code was created through the constructor.
func (c TrackingCode) Validate() error {
	return c.guard.Validate(ErrTrackingCodeIsNotConstructed)
}
