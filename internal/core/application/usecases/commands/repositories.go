// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
//
// Every command carries the acting identity explicitly; handlers take a Clock
// port for timestamps. An operation either commits completely or leaves no
// state behind.
package commands

import (
	"context"

	"freight/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repository set it actually touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// TrackingRepoFactory provides access to the audit trail repository within a transaction.
	TrackingRepoFactory interface {
		TrackingRepository() ports.TrackingRepository
	}

	// ReputationRepoFactory provides access to the carrier reputation repository within a transaction.
	ReputationRepoFactory interface {
		ReputationRepository() ports.ReputationRepository
	}

	// RegistryRepoFactory provides access to the authorization registry repository within a transaction.
	RegistryRepoFactory interface {
		RegistryRepository() ports.RegistryRepository
	}

	// OutboxRepoFactory provides access to the outbox repository within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// LedgerGatewayFactory provides access to the ledger gateway joined to the transaction.
	LedgerGatewayFactory interface {
		LedgerGateway() ports.LedgerGateway
	}

	// ShipmentUoW manages transactions for plain lifecycle transitions that
	// touch the shipment, its audit trails and the outbox.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
		TrackingRepoFactory
		OutboxRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// EscrowUoW manages transactions for transitions that settle escrow:
	// creation (reserve) and delivery (release).
	EscrowUoW interface {
		ShipmentUoW
		LedgerGatewayFactory
	}

	// EscrowUoWFactory creates new escrow unit of work instances.
	EscrowUoWFactory interface {
		Create() EscrowUoW
	}

	// AdminEscrowUoW manages transactions for admin-gated settling
	// transitions: cancellation and dispute resolution.
	AdminEscrowUoW interface {
		EscrowUoW
		RegistryRepoFactory
	}

	// AdminEscrowUoWFactory creates new admin escrow unit of work instances.
	AdminEscrowUoWFactory interface {
		Create() AdminEscrowUoW
	}

	// ActorsUoW manages transactions for role assignment, which consults the
	// authorization registry.
	ActorsUoW interface {
		TxManager
		ShipmentRepoFactory
		RegistryRepoFactory
	}

	// ActorsUoWFactory creates new actors unit of work instances.
	ActorsUoWFactory interface {
		Create() ActorsUoW
	}

	// EventUoW manages transactions for operational event appends, which need
	// the registry to recognize the admin.
	EventUoW interface {
		ShipmentUoW
		RegistryRepoFactory
	}

	// EventUoWFactory creates new event unit of work instances.
	EventUoWFactory interface {
		Create() EventUoW
	}

	// RatingUoW manages transactions for carrier rating, which updates the
	// reputation aggregate alongside the shipment.
	RatingUoW interface {
		ShipmentUoW
		ReputationRepoFactory
	}

	// RatingUoWFactory creates new rating unit of work instances.
	RatingUoWFactory interface {
		Create() RatingUoW
	}

	// RegistryUoW manages transactions for registry-only operations.
	RegistryUoW interface {
		TxManager
		RegistryRepoFactory
	}

	// RegistryUoWFactory creates new registry unit of work instances.
	RegistryUoWFactory interface {
		Create() RegistryUoW
	}

	// OutboxUoW manages transactions for the outbox relay.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	// OutboxUoWFactory creates new outbox unit of work instances.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
