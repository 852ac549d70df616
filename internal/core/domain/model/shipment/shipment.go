package shipment

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// Rating bounds for carrier feedback.
const (
	MinRating = 1
	MaxRating = 5
)

// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
// created through NewShipment or RestoreShipment. This ensures all shipments
// are properly validated.
var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

// Shipment is the aggregate root tracking one physical shipment through the
// multi-party workflow: creation, warehouse confirmation, quality approval,
// transit and finally delivery or cancellation. It holds a monetary deposit
// in custody until the workflow reaches a terminal outcome.
//
// Shipment follows these invariants:
//   - The tracking code is the immutable primary key
//   - Creator and carrier are set at creation and never change
//   - Status transitions follow the edge table encoded in Status
//   - Confirmation flags are monotonic; only Disputed is ever cleared
//   - EscrowReleased and EscrowRefunded are mutually exclusive and each
//     becomes true at most once
//   - Rated becomes true at most once, and only after delivery
//
// Every mutating method takes the acting identity and rejects callers that do
// not hold the role the transition requires.
type Shipment struct {
	trackingCode kernel.TrackingCode

	productName string
	origin      string
	destination string

	creator          kernel.UUID
	carrier          kernel.UUID
	warehouseManager *kernel.UUID
	qualityInspector *kernel.UUID

	status Status
	flags  Flags

	// Snapshot of status and flags as last read from or written to storage.
	// Repositories use it as the optimistic concurrency predicate on update.
	storedStatus Status
	storedFlags  Flags

	depositAmount int64
	shippingFee   int64

	rating        int
	feedback      string
	disputeReason string

	createdAt time.Time

	isConstructed bool
}

// NewShipment creates a new Shipment in Pending status with the deposit taken
// into custody.
//
// Validation rules:
//   - trackingCode, productName, origin and destination must be non-empty
//   - creator and carrier must be valid identities
//   - shippingFee must not be negative
//   - depositAmount must be at least shippingFee
//   - createdAt must be set
func NewShipment(
	trackingCode kernel.TrackingCode,
	productName string,
	origin string,
	destination string,
	creator kernel.UUID,
	carrier kernel.UUID,
	shippingFee int64,
	depositAmount int64,
	createdAt time.Time,
) (*Shipment, error) {
	shipment := &Shipment{
		status:        Pending,
		storedStatus:  Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		shipment.setTrackingCode(trackingCode),
		shipment.setProductName(productName),
		shipment.setOrigin(origin),
		shipment.setDestination(destination),
		shipment.setCreator(creator),
		shipment.setCarrier(carrier),
		shipment.setMoney(shippingFee, depositAmount),
		shipment.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return shipment, nil
}

// RestoreShipment reconstructs a Shipment from persistence without running
// creation-time business rules. The stored state is trusted; only structural
// validity is checked.
func RestoreShipment(
	trackingCode kernel.TrackingCode,
	productName string,
	origin string,
	destination string,
	creator kernel.UUID,
	carrier kernel.UUID,
	warehouseManager *kernel.UUID,
	qualityInspector *kernel.UUID,
	status Status,
	flags Flags,
	shippingFee int64,
	depositAmount int64,
	rating int,
	feedback string,
	disputeReason string,
	createdAt time.Time,
) (*Shipment, error) {
	if err := errors.Join(
		trackingCode.Validate(),
		creator.Validate(),
		carrier.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Shipment{
		trackingCode:     trackingCode,
		productName:      productName,
		origin:           origin,
		destination:      destination,
		creator:          creator,
		carrier:          carrier,
		warehouseManager: warehouseManager,
		qualityInspector: qualityInspector,
		status:           status,
		flags:            flags,
		storedStatus:     status,
		storedFlags:      flags,
		shippingFee:      shippingFee,
		depositAmount:    depositAmount,
		rating:           rating,
		feedback:         feedback,
		disputeReason:    disputeReason,
		createdAt:        createdAt,
		isConstructed:    true,
	}, nil
}

// Validate ensures the Shipment instance was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}

	return nil
}

// IsEqual compares two shipments by tracking code.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.trackingCode.IsEqual(other.trackingCode)
}

// TrackingCode returns the shipment's immutable primary key.
func (s *Shipment) TrackingCode() kernel.TrackingCode {
	return s.trackingCode
}

// ProductName returns the product descriptor.
func (s *Shipment) ProductName() string {
	return s.productName
}

// Origin returns the declared origin.
func (s *Shipment) Origin() string {
	return s.origin
}

// Destination returns the declared destination.
func (s *Shipment) Destination() string {
	return s.destination
}

// Creator returns the identity that created the shipment and acts as the
// receiver on delivery.
func (s *Shipment) Creator() kernel.UUID {
	return s.creator
}

// Carrier returns the carrier identity.
func (s *Shipment) Carrier() kernel.UUID {
	return s.carrier
}

// WarehouseManager returns the assigned warehouse manager, or nil when none
// has been assigned yet.
func (s *Shipment) WarehouseManager() *kernel.UUID {
	return s.warehouseManager
}

// QualityInspector returns the assigned quality inspector, or nil when none
// has been assigned yet.
func (s *Shipment) QualityInspector() *kernel.UUID {
	return s.qualityInspector
}

// Status returns the current lifecycle status.
func (s *Shipment) Status() Status {
	return s.status
}

// Flags returns a copy of the confirmation flag record.
func (s *Shipment) Flags() Flags {
	return s.flags
}

// StoredStatus returns the status the aggregate had when it was last loaded
// from or written to storage.
func (s *Shipment) StoredStatus() Status {
	return s.storedStatus
}

// StoredFlags returns the flag record the aggregate had when it was last
// loaded from or written to storage.
func (s *Shipment) StoredFlags() Flags {
	return s.storedFlags
}

// MarkStored resets the stored-state snapshot to the current status and
// flags. Repositories call it after a successful write.
func (s *Shipment) MarkStored() {
	s.storedStatus = s.status
	s.storedFlags = s.flags
}

// DepositAmount returns the deposit held in custody, in minor currency units.
func (s *Shipment) DepositAmount() int64 {
	return s.depositAmount
}

// ShippingFee returns the creation-time declared fee, in minor currency units.
func (s *Shipment) ShippingFee() int64 {
	return s.shippingFee
}

// Rating returns the stored rating; meaningful only when Flags().Rated is true.
func (s *Shipment) Rating() int {
	return s.rating
}

// Feedback returns the stored rating feedback text.
func (s *Shipment) Feedback() string {
	return s.feedback
}

// DisputeReason returns the reason recorded when the dispute was raised.
func (s *Shipment) DisputeReason() string {
	return s.disputeReason
}

// CreatedAt returns the creation timestamp.
func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

// AssignWarehouseManager sets the warehouse manager role. The caller has
// already verified registry membership and that the actor is the creator or
// the admin; the aggregate only rejects assignment on terminal shipments.
func (s *Shipment) AssignWarehouseManager(manager kernel.UUID) error {
	if err := manager.Validate(); err != nil {
		return err
	}
	if s.status.IsTerminal() {
		return errs.NewInvalidStateErrorWithCause(
			"setWarehouseManager",
			fmt.Errorf("%s is a terminal status", s.status.String()),
		)
	}

	s.warehouseManager = &manager
	return nil
}

// AssignQualityInspector sets the quality inspector role. Same caller
// contract as AssignWarehouseManager.
func (s *Shipment) AssignQualityInspector(inspector kernel.UUID) error {
	if err := inspector.Validate(); err != nil {
		return err
	}
	if s.status.IsTerminal() {
		return errs.NewInvalidStateErrorWithCause(
			"setQualityInspector",
			fmt.Errorf("%s is a terminal status", s.status.String()),
		)
	}

	s.qualityInspector = &inspector
	return nil
}

// ConfirmWarehouse records warehouse intake confirmation by the assigned
// warehouse manager.
//
// Business rules:
//   - actor must be the assigned warehouse manager
//   - status must be Pending and the flag must not be set yet
func (s *Shipment) ConfirmWarehouse(actor kernel.UUID) error {
	if s.warehouseManager == nil || !actor.IsEqual(*s.warehouseManager) {
		return errs.NewUnauthorizedError("warehouse manager")
	}
	if s.flags.WarehouseConfirmed {
		return errs.NewInvalidStateError("warehouse intake is already confirmed")
	}

	newStatus, err := s.status.ConfirmWarehouse()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.flags.WarehouseConfirmed = true
	return nil
}

// ApproveQuality records quality approval by the assigned quality inspector.
//
// Business rules:
//   - actor must be the assigned quality inspector
//   - warehouse confirmation must precede quality approval
//   - the quality flag must not be set yet
func (s *Shipment) ApproveQuality(actor kernel.UUID) error {
	if s.qualityInspector == nil || !actor.IsEqual(*s.qualityInspector) {
		return errs.NewUnauthorizedError("quality inspector")
	}
	if !s.flags.WarehouseConfirmed {
		return errs.NewInvalidStateError("warehouse intake is not confirmed")
	}
	if s.flags.QualityApproved {
		return errs.NewInvalidStateError("quality is already approved")
	}

	newStatus, err := s.status.ApproveQuality()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.flags.QualityApproved = true
	return nil
}

// StartTransit records pickup by the carrier.
//
// Business rules:
//   - actor must be the carrier
//   - both confirmation flags must be set, regardless of current status
func (s *Shipment) StartTransit(actor kernel.UUID) error {
	if !actor.IsEqual(s.carrier) {
		return errs.NewUnauthorizedError("carrier")
	}
	if !s.flags.WarehouseConfirmed || !s.flags.QualityApproved {
		return errs.NewInvalidStateError("shipment has not passed both confirmation gates")
	}

	newStatus, err := s.status.StartTransit()
	if err != nil {
		return err
	}

	s.status = newStatus
	return nil
}

// ConfirmDelivery records delivery confirmation by the creator (receiver).
func (s *Shipment) ConfirmDelivery(actor kernel.UUID) error {
	if !actor.IsEqual(s.creator) {
		return errs.NewUnauthorizedError("creator")
	}

	newStatus, err := s.status.Deliver()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.flags.ReceiverConfirmed = true
	return nil
}

// Cancel moves a non-terminal shipment to Canceled. Admin authorization is
// the caller's responsibility; the aggregate enforces the terminal guard and
// a non-empty reason.
func (s *Shipment) Cancel(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	newStatus, err := s.status.Cancel()
	if err != nil {
		return err
	}

	s.status = newStatus
	return nil
}

// RaiseDispute puts the shipment on hold pending admin resolution.
//
// Business rules:
//   - actor must be the creator or the carrier
//   - the shipment must not have reached a terminal status
//   - a dispute must not already be open
//   - the reason must be non-empty
//
// Raising a dispute does not change the current status.
func (s *Shipment) RaiseDispute(actor kernel.UUID, reason string) error {
	if !actor.IsEqual(s.creator) && !actor.IsEqual(s.carrier) {
		return errs.NewUnauthorizedError("creator or carrier")
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	if s.status.IsTerminal() {
		return errs.NewInvalidStateError("shipment has already reached a terminal status")
	}
	if s.flags.Disputed {
		return errs.NewInvalidStateError("dispute is already open")
	}

	s.flags.Disputed = true
	s.disputeReason = reason
	return nil
}

// ResolveDispute closes an open dispute and forces the terminal outcome
// directly: favorCreator selects Canceled, otherwise Delivered. This is the
// one transition that bypasses the normal edge table and the terminal guard.
// Admin authorization is the caller's responsibility.
func (s *Shipment) ResolveDispute(favorCreator bool) error {
	if !s.flags.Disputed {
		return errs.NewInvalidStateError("no open dispute")
	}

	s.flags.Disputed = false
	if favorCreator {
		s.status = Canceled
	} else {
		s.status = Delivered
	}
	return nil
}

// Rate records the creator's rating of the carrier, exactly once, after
// delivery.
//
// Business rules:
//   - actor must be the creator
//   - status must be Delivered
//   - the shipment must not be rated yet
//   - rating must be within [MinRating, MaxRating]
func (s *Shipment) Rate(actor kernel.UUID, rating int, feedback string) error {
	if !actor.IsEqual(s.creator) {
		return errs.NewUnauthorizedError("creator")
	}
	if s.status != Delivered {
		return errs.NewInvalidStateErrorWithCause(
			"rate",
			fmt.Errorf("%s is not a valid status to rate", s.status.String()),
		)
	}
	if s.flags.Rated {
		return errs.NewInvalidStateError("shipment is already rated")
	}
	if rating < MinRating || rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}

	s.flags.Rated = true
	s.rating = rating
	s.feedback = feedback
	return nil
}

// SettleEscrowRelease marks the deposit as released to the carrier.
// It returns true when a transfer is due; when the escrow was already settled
// in either direction, or the deposit is zero, it is a silent no-op returning
// false. The flag is set before the caller performs the transfer; if the
// transfer fails the enclosing operation must discard the aggregate so the
// flag never persists.
func (s *Shipment) SettleEscrowRelease() bool {
	if s.flags.EscrowSettled() || s.depositAmount == 0 {
		return false
	}

	s.flags.EscrowReleased = true
	return true
}

// SettleEscrowRefund marks the deposit as refunded to the creator.
// Same contract as SettleEscrowRelease.
func (s *Shipment) SettleEscrowRefund() bool {
	if s.flags.EscrowSettled() || s.depositAmount == 0 {
		return false
	}

	s.flags.EscrowRefunded = true
	return true
}

func (s *Shipment) setTrackingCode(trackingCode kernel.TrackingCode) error {
	if err := trackingCode.Validate(); err != nil {
		return err
	}
	s.trackingCode = trackingCode
	return nil
}

func (s *Shipment) setProductName(productName string) error {
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	s.productName = productName
	return nil
}

func (s *Shipment) setOrigin(origin string) error {
	if origin == "" {
		return errs.NewValueIsRequiredError("origin")
	}
	s.origin = origin
	return nil
}

func (s *Shipment) setDestination(destination string) error {
	if destination == "" {
		return errs.NewValueIsRequiredError("destination")
	}
	s.destination = destination
	return nil
}

func (s *Shipment) setCreator(creator kernel.UUID) error {
	if err := creator.Validate(); err != nil {
		return err
	}
	s.creator = creator
	return nil
}

func (s *Shipment) setCarrier(carrier kernel.UUID) error {
	if err := carrier.Validate(); err != nil {
		return err
	}
	s.carrier = carrier
	return nil
}

func (s *Shipment) setMoney(shippingFee, depositAmount int64) error {
	if shippingFee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("shippingFee",
			fmt.Errorf("%d is negative", shippingFee))
	}
	if depositAmount < shippingFee {
		return errs.NewValueIsInvalidErrorWithCause("depositAmount",
			fmt.Errorf("deposit %d is below the declared fee %d", depositAmount, shippingFee))
	}

	s.shippingFee = shippingFee
	s.depositAmount = depositAmount
	return nil
}

func (s *Shipment) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	s.createdAt = createdAt
	return nil
}
