package jobs

import (
	"context"
	"log/slog"

	"freight/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// EscrowAuditJob is a read-only watchdog over the escrow invariants: no
// shipment may be both released and refunded, and no tracking code may have
// more than one outbound ledger movement. Violations are logged, never
// repaired — a hit means a bug or manual data surgery upstream.
type EscrowAuditJob struct {
	handler queries.GetEscrowAnomaliesQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewEscrowAuditJob creates a new escrow audit watchdog.
func NewEscrowAuditJob(handler queries.GetEscrowAnomaliesQueryHandler, logger *slog.Logger) *EscrowAuditJob {
	return &EscrowAuditJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "escrow_audit_job"),
	}
}

// Start begins the audit job to run once a minute.
func (j *EscrowAuditJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		query := queries.NewGetEscrowAnomaliesQuery()

		anomalies, handleErr := j.handler.Handle(ctx, query)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Escrow audit job failed", "error", handleErr)
			return
		}

		for _, anomaly := range anomalies {
			j.logger.ErrorContext(ctx, "Escrow invariant violated",
				"trackingCode", anomaly.TrackingCode,
				"anomaly", anomaly.Anomaly)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Escrow audit job started (running every minute)")
	return nil
}

// Stop stops the audit job.
func (j *EscrowAuditJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Escrow audit job stopped")
}
