package services

import (
	"context"
	"sync/atomic"

	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// ErrReentrantSettlement is returned when a settlement is requested while
// another one is still in flight. The ledger gateway must never be able to
// call back into settlement before the triggering operation finishes.
var ErrReentrantSettlement = errs.NewInvalidStateError("escrow settlement is already in flight")

// EscrowSettlement moves the held deposit out of custody exactly once per
// shipment: released to the carrier on delivery, refunded to the creator on
// cancellation, or either on dispute resolution.
//
// The service sets the escrow flag on the aggregate before invoking the
// gateway (checks-effects-interactions ordering) so a gateway callback
// observes the escrow as already settled. A single guard slot is shared by
// release and refund across all shipments, matching the engine-wide lock of
// the settlement design; it is not per-shipment.
//
// A transfer failure surfaces as a TransferFailed error. The caller runs the
// whole operation inside one unit of work and must not commit on error, so
// neither the flag nor the status change persists.
type EscrowSettlement struct {
	inFlight *atomic.Bool
}

// NewEscrowSettlement creates the settlement service with a free guard slot.
func NewEscrowSettlement() EscrowSettlement {
	return EscrowSettlement{inFlight: &atomic.Bool{}}
}

// Release pays the held deposit to the carrier. A shipment whose escrow is
// already settled, or whose deposit is zero, is a silent no-op.
func (s EscrowSettlement) Release(ctx context.Context, gateway ports.LedgerGateway, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		return ErrReentrantSettlement
	}
	defer s.inFlight.Store(false)

	if !aggregate.SettleEscrowRelease() {
		return nil
	}

	if err := gateway.Release(ctx, aggregate.TrackingCode(), aggregate.Carrier(), aggregate.DepositAmount()); err != nil {
		return errs.NewTransferFailedErrorWithCause(aggregate.TrackingCode().String(), err)
	}

	return nil
}

// Refund pays the held deposit back to the creator. Same no-op contract as
// Release.
func (s EscrowSettlement) Refund(ctx context.Context, gateway ports.LedgerGateway, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		return ErrReentrantSettlement
	}
	defer s.inFlight.Store(false)

	if !aggregate.SettleEscrowRefund() {
		return nil
	}

	if err := gateway.Refund(ctx, aggregate.TrackingCode(), aggregate.Creator(), aggregate.DepositAmount()); err != nil {
		return errs.NewTransferFailedErrorWithCause(aggregate.TrackingCode().String(), err)
	}

	return nil
}
