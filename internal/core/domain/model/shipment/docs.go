// Package shipment provides domain entities and business logic for shipment
// tracking in the freight system. It implements the Shipment aggregate root
// with lifecycle management, escrow custody flags, dispute handling and the
// append-only audit trail entities.
//
// The package includes:
//   - Shipment: The aggregate root that manages identity, roles, the deposit and the lifecycle
//   - Status: A state machine that enforces valid shipment status transitions
//   - Flags: The monotonic confirmation flag record (only Disputed is ever cleared)
//   - Event / StatusChange: Immutable audit trail entries
//   - EventKind: The closed set of operational event categories with per-kind authorization
//   - DomainEvent: Integration events destined for the transactional outbox
//
// Key business rules:
//   - Status follows Pending -> WarehouseConfirmed -> QualityApproved -> InTransit -> Delivered,
//     with admin cancellation from any non-terminal state
//   - Every transition is tied to one required caller role
//   - EscrowReleased and EscrowRefunded are mutually exclusive and fire at most once
//   - An open dispute may be resolved by the admin into either terminal outcome,
//     bypassing the normal transition order
//   - A delivered shipment may be rated exactly once by its creator
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package shipment
