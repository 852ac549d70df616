package escrowledger

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLedgerGateway implements LedgerGateway on the shared database so a
// ledger write commits or rolls back together with the shipment state that
// caused it. The gateway is handed the unit of work's transaction handle.
type GormLedgerGateway struct {
	db    *gorm.DB
	clock ports.Clock
}

// NewGormLedgerGateway creates a ledger gateway bound to the given database
// handle.
func NewGormLedgerGateway(db *gorm.DB, clock ports.Clock) *GormLedgerGateway {
	return &GormLedgerGateway{
		db:    db,
		clock: clock,
	}
}

// Reserve takes the deposit from the creator into custody at creation.
func (g *GormLedgerGateway) Reserve(
	ctx context.Context,
	code kernel.TrackingCode,
	from kernel.UUID,
	amount int64,
) error {
	if amount < 0 {
		return errs.NewValueIsOutOfRangeError("amount", amount, 0, "unbounded")
	}
	if amount == 0 {
		return nil
	}

	if err := g.adjustBalance(ctx, from.Bytes(), -amount); err != nil {
		return err
	}

	return g.record(ctx, code, DirectionReserve, false, from.Bytes(), amount)
}

// Release pays the held deposit to the carrier.
func (g *GormLedgerGateway) Release(
	ctx context.Context,
	code kernel.TrackingCode,
	to kernel.UUID,
	amount int64,
) error {
	return g.payOut(ctx, code, DirectionRelease, to, amount)
}

// Refund pays the held deposit back to the creator.
func (g *GormLedgerGateway) Refund(
	ctx context.Context,
	code kernel.TrackingCode,
	to kernel.UUID,
	amount int64,
) error {
	return g.payOut(ctx, code, DirectionRefund, to, amount)
}

func (g *GormLedgerGateway) payOut(
	ctx context.Context,
	code kernel.TrackingCode,
	direction string,
	to kernel.UUID,
	amount int64,
) error {
	if amount <= 0 {
		return errs.NewValueIsOutOfRangeError("amount", amount, 1, "unbounded")
	}

	// Insert first: the partial unique index rejects a second outbound
	// movement before any balance is touched.
	if err := g.record(ctx, code, direction, true, to.Bytes(), amount); err != nil {
		return err
	}

	return g.adjustBalance(ctx, to.Bytes(), amount)
}

func (g *GormLedgerGateway) record(
	ctx context.Context,
	code kernel.TrackingCode,
	direction string,
	outbound bool,
	counterparty uuid.UUID,
	amount int64,
) error {
	dto := EscrowMovementDTO{
		TrackingCode:   code.String(),
		Direction:      direction,
		Outbound:       outbound,
		CounterpartyID: counterparty,
		Amount:         amount,
		OccurredAt:     g.clock.Now(),
	}

	return g.db.WithContext(ctx).Create(&dto).Error
}

func (g *GormLedgerGateway) adjustBalance(ctx context.Context, owner uuid.UUID, delta int64) error {
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"balance": gorm.Expr("escrow_accounts.balance + ?", delta),
			}),
		}).
		Create(&EscrowAccountDTO{OwnerID: owner, Balance: delta}).Error
}
