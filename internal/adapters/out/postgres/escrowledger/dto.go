// Package escrowledger implements the value-custody gateway on PostgreSQL.
// Deposits live in per-owner accounts; every transfer is recorded as a
// movement row. A partial unique index permits at most one outbound movement
// per tracking code, which makes the exactly-once settlement guarantee hold
// across process restarts regardless of what the in-memory flags say.
package escrowledger

import (
	"time"

	"github.com/google/uuid"
)

// Movement directions recorded in the ledger.
const (
	DirectionReserve = "reserve"
	DirectionRelease = "release"
	DirectionRefund  = "refund"
)

// EscrowAccountDTO represents one party's balance. The balance goes negative
// when a creator reserves more than they hold; admission control is the
// concern of the payment system in front of this service.
type EscrowAccountDTO struct {
	OwnerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Balance int64
}

// TableName specifies the database table name for escrow accounts.
func (EscrowAccountDTO) TableName() string {
	return "escrow_accounts"
}

// EscrowMovementDTO represents one recorded value transfer. Outbound rows
// (release or refund) carry outbound=true and are covered by a partial unique
// index on tracking_code, so a second settlement attempt fails at insert.
type EscrowMovementDTO struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	TrackingCode   string    `gorm:"size:64;index;uniqueIndex:ux_escrow_outbound,where:outbound"`
	Direction      string    `gorm:"size:16"`
	Outbound       bool
	CounterpartyID uuid.UUID `gorm:"type:uuid"`
	Amount         int64
	OccurredAt     time.Time
}

// TableName specifies the database table name for escrow movements.
func (EscrowMovementDTO) TableName() string {
	return "escrow_movements"
}
