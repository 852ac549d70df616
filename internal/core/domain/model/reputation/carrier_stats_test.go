package reputation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/reputation"
	"freight/internal/pkg/errs"
)

func TestNewCarrierStats(t *testing.T) {
	t.Run("valid carrier", func(t *testing.T) {
		carrierID := kernel.NewUUID()

		stats, err := reputation.NewCarrierStats(carrierID)

		require.NoError(t, err)
		assert.NoError(t, stats.Validate())
		assert.True(t, stats.CarrierID().IsEqual(carrierID))
		assert.Equal(t, int64(0), stats.TotalRatingPoints())
		assert.Equal(t, int64(0), stats.RatingCount())
	})

	t.Run("invalid carrier", func(t *testing.T) {
		_, err := reputation.NewCarrierStats(kernel.UUID{})
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestRestoreCarrierStats(t *testing.T) {
	carrierID := kernel.NewUUID()

	t.Run("restores counters", func(t *testing.T) {
		stats, err := reputation.RestoreCarrierStats(carrierID, 17, 4)

		require.NoError(t, err)
		assert.Equal(t, int64(17), stats.TotalRatingPoints())
		assert.Equal(t, int64(4), stats.RatingCount())
	})

	t.Run("rejects negative counters", func(t *testing.T) {
		_, err := reputation.RestoreCarrierStats(carrierID, -1, 0)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = reputation.RestoreCarrierStats(carrierID, 0, -1)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestCarrierStats_Validate(t *testing.T) {
	t.Run("zero value stats", func(t *testing.T) {
		var stats reputation.CarrierStats
		assert.ErrorIs(t, stats.Validate(), reputation.ErrCarrierStatsIsNotConstructed)
	})

	t.Run("nil stats", func(t *testing.T) {
		var stats *reputation.CarrierStats
		assert.ErrorIs(t, stats.Validate(), reputation.ErrCarrierStatsIsNotConstructed)
	})
}

func TestCarrierStats_AddRating(t *testing.T) {
	t.Run("accumulates points and count", func(t *testing.T) {
		stats, err := reputation.NewCarrierStats(kernel.NewUUID())
		require.NoError(t, err)

		require.NoError(t, stats.AddRating(5))
		require.NoError(t, stats.AddRating(3))

		assert.Equal(t, int64(8), stats.TotalRatingPoints())
		assert.Equal(t, int64(2), stats.RatingCount())
	})

	t.Run("rejects out of range ratings", func(t *testing.T) {
		stats, err := reputation.NewCarrierStats(kernel.NewUUID())
		require.NoError(t, err)

		assert.ErrorIs(t, stats.AddRating(0), errs.ErrValueIsOutOfRange)
		assert.ErrorIs(t, stats.AddRating(6), errs.ErrValueIsOutOfRange)
		assert.Equal(t, int64(0), stats.RatingCount(), "rejected ratings must not count")
	})
}

func TestCarrierStats_AverageTimes100(t *testing.T) {
	t.Run("no ratings", func(t *testing.T) {
		stats, err := reputation.NewCarrierStats(kernel.NewUUID())
		require.NoError(t, err)

		assert.Equal(t, int64(0), stats.AverageTimes100())
	})

	t.Run("truncates toward zero", func(t *testing.T) {
		// 5 + 4 + 4 = 13 points over 3 ratings: 433.33... -> 433.
		stats, err := reputation.RestoreCarrierStats(kernel.NewUUID(), 13, 3)
		require.NoError(t, err)

		assert.Equal(t, int64(433), stats.AverageTimes100())
	})

	t.Run("exact average", func(t *testing.T) {
		stats, err := reputation.RestoreCarrierStats(kernel.NewUUID(), 8, 2)
		require.NoError(t, err)

		assert.Equal(t, int64(400), stats.AverageTimes100())
	})
}
