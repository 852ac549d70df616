package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
//
// Every operation of the lifecycle engine runs inside one unit of work, so a
// rejected operation leaves no partial state. The ledger gateway joins the
// same transaction: an escrow flag write and its value movement commit or
// roll back together.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// ShipmentRepository returns a ShipmentRepository bound to the current transaction.
	ShipmentRepository() ShipmentRepository

	// TrackingRepository returns a TrackingRepository bound to the current transaction.
	TrackingRepository() TrackingRepository

	// ReputationRepository returns a ReputationRepository bound to the current transaction.
	ReputationRepository() ReputationRepository

	// RegistryRepository returns a RegistryRepository bound to the current transaction.
	RegistryRepository() RegistryRepository

	// OutboxRepository returns an OutboxRepository bound to the current transaction.
	OutboxRepository() OutboxRepository

	// LedgerGateway returns a LedgerGateway bound to the current transaction.
	LedgerGateway() LedgerGateway
}
