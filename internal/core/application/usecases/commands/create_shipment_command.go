package commands

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrCreateShipmentCommandIsNotConstructed = errors.New(
		"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
	)
)

// CreateShipmentCommand represents a request to register a new shipment with
// its deposit attached. The acting identity becomes the creator and receiver.
//
// Example:
//
//	code, _ := kernel.NewTrackingCode("TRK-2024-0001")
//	cmd, err := NewCreateShipmentCommand(code, "Machine parts", "Rotterdam", "Oslo", creator, carrier, 100, 100)
//	if err != nil {
//	    return fmt.Errorf("invalid shipment data: %w", err)
//	}
//
//	handler := NewCreateShipmentCommandHandler(uowFactory, clock)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create shipment: %w", err)
//	}
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	trackingCode  kernel.TrackingCode
	productName   string
	origin        string
	destination   string
	creator       kernel.UUID
	carrier       kernel.UUID
	shippingFee   int64
	depositAmount int64

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to register a new shipment.
// Validates descriptor fields are non-empty, identities are valid and the
// attached deposit covers the declared fee.
func NewCreateShipmentCommand(
	trackingCode kernel.TrackingCode,
	productName string,
	origin string,
	destination string,
	creator kernel.UUID,
	carrier kernel.UUID,
	shippingFee int64,
	depositAmount int64,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingCode(trackingCode),
		cmd.setProductName(productName),
		cmd.setOrigin(origin),
		cmd.setDestination(destination),
		cmd.setCreator(creator),
		cmd.setCarrier(carrier),
		cmd.setMoney(shippingFee, depositAmount),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// TrackingCode returns the caller-chosen shipment identifier.
func (c CreateShipmentCommand) TrackingCode() kernel.TrackingCode {
	return c.trackingCode
}

// ProductName returns the product descriptor.
func (c CreateShipmentCommand) ProductName() string {
	return c.productName
}

// Origin returns the declared origin.
func (c CreateShipmentCommand) Origin() string {
	return c.origin
}

// Destination returns the declared destination.
func (c CreateShipmentCommand) Destination() string {
	return c.destination
}

// Creator returns the acting identity creating the shipment.
func (c CreateShipmentCommand) Creator() kernel.UUID {
	return c.creator
}

// Carrier returns the carrier identity.
func (c CreateShipmentCommand) Carrier() kernel.UUID {
	return c.carrier
}

// ShippingFee returns the declared fee in minor currency units.
func (c CreateShipmentCommand) ShippingFee() int64 {
	return c.shippingFee
}

// DepositAmount returns the attached deposit in minor currency units.
func (c CreateShipmentCommand) DepositAmount() int64 {
	return c.depositAmount
}

func (c *CreateShipmentCommand) setTrackingCode(trackingCode kernel.TrackingCode) error {
	if err := trackingCode.Validate(); err != nil {
		return err
	}
	c.trackingCode = trackingCode
	return nil
}

func (c *CreateShipmentCommand) setProductName(productName string) error {
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	c.productName = productName
	return nil
}

func (c *CreateShipmentCommand) setOrigin(origin string) error {
	if origin == "" {
		return errs.NewValueIsRequiredError("origin")
	}
	c.origin = origin
	return nil
}

func (c *CreateShipmentCommand) setDestination(destination string) error {
	if destination == "" {
		return errs.NewValueIsRequiredError("destination")
	}
	c.destination = destination
	return nil
}

func (c *CreateShipmentCommand) setCreator(creator kernel.UUID) error {
	if err := creator.Validate(); err != nil {
		return err
	}
	c.creator = creator
	return nil
}

func (c *CreateShipmentCommand) setCarrier(carrier kernel.UUID) error {
	if err := carrier.Validate(); err != nil {
		return err
	}
	c.carrier = carrier
	return nil
}

func (c *CreateShipmentCommand) setMoney(shippingFee, depositAmount int64) error {
	if shippingFee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("shippingFee", fmt.Errorf("%d is negative", shippingFee))
	}
	if depositAmount < shippingFee {
		return errs.NewValueIsInvalidErrorWithCause("depositAmount",
			fmt.Errorf("deposit %d is below the declared fee %d", depositAmount, shippingFee))
	}

	c.shippingFee = shippingFee
	c.depositAmount = depositAmount
	return nil
}
