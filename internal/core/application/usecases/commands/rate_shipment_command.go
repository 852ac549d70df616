package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrRateShipmentCommandIsNotConstructed = errors.New(
	"RateShipmentCommand must be created via NewRateShipmentCommand constructor",
)

// RateShipmentCommand records the creator's one-time rating of the carrier
// after delivery.
type RateShipmentCommand struct { //nolint:recvcheck //using for validation
	trackingCode kernel.TrackingCode
	actor        kernel.UUID
	rating       int
	feedback     string

	guard guard.ConstructorGuard
}

// NewRateShipmentCommand creates a command to rate the carrier.
// Rating must be within [1, 5]; feedback may be empty.
func NewRateShipmentCommand(
	trackingCode kernel.TrackingCode,
	actor kernel.UUID,
	rating int,
	feedback string,
) (RateShipmentCommand, error) {
	cmd := RateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		trackingCode.Validate(),
		actor.Validate(),
		cmd.setRating(rating),
	); err != nil {
		return RateShipmentCommand{}, err
	}

	cmd.trackingCode = trackingCode
	cmd.actor = actor
	cmd.feedback = feedback
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrRateShipmentCommandIsNotConstructed)
}

// TrackingCode returns the shipment identifier.
func (c RateShipmentCommand) TrackingCode() kernel.TrackingCode {
	return c.trackingCode
}

// Actor returns the acting identity.
func (c RateShipmentCommand) Actor() kernel.UUID {
	return c.actor
}

// Rating returns the rating value.
func (c RateShipmentCommand) Rating() int {
	return c.rating
}

// Feedback returns the free-form feedback text.
func (c RateShipmentCommand) Feedback() string {
	return c.feedback
}

func (c *RateShipmentCommand) setRating(rating int) error {
	if rating < shipment.MinRating || rating > shipment.MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, shipment.MinRating, shipment.MaxRating)
	}
	c.rating = rating
	return nil
}
