package commands

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/reputation"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// RateShipmentCommandHandler handles carrier rating: the shipment is marked
// rated exactly once and the carrier's reputation aggregate accumulates the
// rating in the same transaction. The cached scaled average is invalidated
// after a successful commit.
type RateShipmentCommandHandler struct {
	uowFactory  RatingUoWFactory
	ratingCache ports.RatingCache
	clock       ports.Clock
}

// NewRateShipmentCommandHandler creates a handler for carrier rating.
func NewRateShipmentCommandHandler(
	uowFactory RatingUoWFactory,
	ratingCache ports.RatingCache,
	clock ports.Clock,
) RateShipmentCommandHandler {
	return RateShipmentCommandHandler{
		uowFactory:  uowFactory,
		ratingCache: ratingCache,
		clock:       clock,
	}
}

// Handle processes the rating command.
func (h *RateShipmentCommandHandler) Handle(ctx context.Context, cmd RateShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.ShipmentRepository().Get(ctx, cmd.TrackingCode())
	if err != nil {
		return err
	}

	if err = aggregate.Rate(cmd.Actor(), cmd.Rating(), cmd.Feedback()); err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	stats, err := uow.ReputationRepository().Get(ctx, aggregate.Carrier())
	switch {
	case err == nil:
		if err = stats.AddRating(cmd.Rating()); err != nil {
			return err
		}
		if err = uow.ReputationRepository().Update(ctx, stats); err != nil {
			return err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		stats, err = reputation.NewCarrierStats(aggregate.Carrier())
		if err != nil {
			return err
		}
		if err = stats.AddRating(cmd.Rating()); err != nil {
			return err
		}
		if err = uow.ReputationRepository().Add(ctx, stats); err != nil {
			return err
		}
	default:
		return err
	}

	event, err := shipment.NewDomainEvent(shipment.EventCarrierRated, cmd.TrackingCode().String(), h.clock.Now(), map[string]any{
		"carrier": aggregate.Carrier().String(),
		"rating":  cmd.Rating(),
	})
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// Cache invalidation is best effort; the entry expires on its own.
	_ = h.ratingCache.Invalidate(ctx, aggregate.Carrier())

	return nil
}
