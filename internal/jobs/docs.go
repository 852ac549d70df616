// Package jobs provides scheduled background tasks for the freight service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the shipment lifecycle.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Runs every second to relay pending outbox messages to the message broker
// 2. EscrowAuditJob - Runs every minute to verify the escrow consistency invariants read-only
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(relayHandler, auditHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Relay job logs failures and retries on the next tick; delivery is at-least-once
// - Audit job logs every invariant violation it finds; it never mutates state
// - Failed job starts will stop any already running jobs
package jobs
