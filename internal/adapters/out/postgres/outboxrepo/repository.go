package outboxrepo

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdateSkipLocked keeps concurrent relay passes from claiming the same
// batch of pending messages.
var forUpdateSkipLocked = clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db    *gorm.DB
	clock ports.Clock
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB, clock ports.Clock) *GormOutboxRepository {
	return &GormOutboxRepository{
		db:    db,
		clock: clock,
	}
}

// Add stores an integration event in the outbox.
func (r *GormOutboxRepository) Add(ctx context.Context, event shipment.DomainEvent) error {
	dto, err := fromDomain(event)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetUnpublished returns up to limit stored events that have not been relayed
// yet, oldest first. Rows are locked so concurrent relay passes do not pick
// up the same batch.
func (r *GormOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxMessageDTO
	err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("created_at, id").
		Limit(limit).
		Clauses(forUpdateSkipLocked).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		message, convErr := toMessage(dto)
		if convErr != nil {
			return nil, convErr
		}
		messages = append(messages, message)
	}

	return messages, nil
}

// MarkPublished records that the given events were relayed.
func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	now := r.clock.Now()
	return r.db.WithContext(ctx).
		Model(&OutboxMessageDTO{}).
		Where("id IN ?", raw).
		Update("published_at", &now).Error
}
