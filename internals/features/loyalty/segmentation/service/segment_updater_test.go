package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokoku_backend/internals/features/loyalty/segmentation/model"
)

func TestUpdateSegmentation_WithOrderEvent(t *testing.T) {
	completedAt := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	p := &model.CustomerSegmentProfile{
		SegmentProfileDaysSinceLastPurchase: 75,
		SegmentProfileTotalOrders:           4,
		SegmentProfileTotalSpent:            900,
	}

	UpdateSegmentation(p, &OrderEvent{
		OrderID:     uuid.New(),
		Amount:      300,
		CompletedAt: completedAt,
	})

	assert.Equal(t, 0, p.SegmentProfileDaysSinceLastPurchase)
	assert.Equal(t, 5, p.SegmentProfileTotalOrders)
	assert.Equal(t, 1200.0, p.SegmentProfileTotalSpent)
	assert.Equal(t, 240.0, p.SegmentProfileAverageOrderValue)
	require.NotNil(t, p.SegmentProfileLastPurchaseAt)
	assert.True(t, p.SegmentProfileLastPurchaseAt.Equal(completedAt))

	// Skor + segmen langsung ter-refresh: R5 F3 M3
	assert.Equal(t, 5, p.SegmentProfileRecencyScore)
	assert.Equal(t, 3, p.SegmentProfileFrequencyScore)
	assert.Equal(t, 3, p.SegmentProfileMonetaryScore)
	assert.Equal(t, 11, p.SegmentProfileCombinedScore)
	assert.Equal(t, model.SegmentPotentialLoyalist, p.SegmentProfilePrimarySegment)
	require.Len(t, p.SegmentProfileSegmentHistory, 1)
}

// ev == nil: total tidak berubah, tapi skor + klasifikasi tetap jalan.
func TestUpdateSegmentation_NilEvent(t *testing.T) {
	p := &model.CustomerSegmentProfile{
		SegmentProfileDaysSinceLastPurchase: 200,
		SegmentProfileTotalOrders:           3,
		SegmentProfileTotalSpent:            800,
	}

	UpdateSegmentation(p, nil)

	assert.Equal(t, 200, p.SegmentProfileDaysSinceLastPurchase)
	assert.Equal(t, 3, p.SegmentProfileTotalOrders)
	assert.Equal(t, 800.0, p.SegmentProfileTotalSpent)
	assert.Nil(t, p.SegmentProfileLastPurchaseAt)

	// R1 F2 M2 → hibernating
	assert.Equal(t, model.SegmentHibernating, p.SegmentProfilePrimarySegment)
	require.Len(t, p.SegmentProfileSegmentHistory, 1)
}

func TestUpdateSegmentation_ZeroCompletedAtDefaultsNow(t *testing.T) {
	p := &model.CustomerSegmentProfile{}
	before := time.Now()

	UpdateSegmentation(p, &OrderEvent{OrderID: uuid.New(), Amount: 150})

	require.NotNil(t, p.SegmentProfileLastPurchaseAt)
	assert.False(t, p.SegmentProfileLastPurchaseAt.Before(before))
	assert.Equal(t, 1, p.SegmentProfileTotalOrders)
	assert.Equal(t, 150.0, p.SegmentProfileAverageOrderValue)

	// Order pertama + baru belanja → new
	assert.Equal(t, model.SegmentNew, p.SegmentProfilePrimarySegment)
}

// Setiap order menambah satu entri riwayat, tanpa dedup.
func TestUpdateSegmentation_HistoryGrowsPerOrder(t *testing.T) {
	p := &model.CustomerSegmentProfile{}
	for i := 0; i < 5; i++ {
		UpdateSegmentation(p, &OrderEvent{OrderID: uuid.New(), Amount: 100, CompletedAt: time.Now()})
	}
	assert.Len(t, p.SegmentProfileSegmentHistory, 5)
	assert.Equal(t, 5, p.SegmentProfileTotalOrders)
	assert.Equal(t, 500.0, p.SegmentProfileTotalSpent)
}
