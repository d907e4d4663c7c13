package service

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokoku_backend/internals/features/pricing/dynamicprice/model"
)

func newPriceRecord(original, current float64) *model.DynamicPrice {
	return &model.DynamicPrice{
		DynamicPriceOriginalPrice: original,
		DynamicPriceCurrentPrice:  current,
	}
}

// Ledger mencatat harga SEBELUM perubahan, bukan harga baru.
func TestUpdatePrice_AppendsPreviousPrice(t *testing.T) {
	rec := newPriceRecord(100, 100)

	UpdatePrice(rec, ReasonManual, 80)

	require.Len(t, rec.DynamicPricePriceHistory, 1)
	assert.Equal(t, 100.0, rec.DynamicPricePriceHistory[0].Price)
	assert.Equal(t, ReasonManual, rec.DynamicPricePriceHistory[0].Reason)
	assert.False(t, rec.DynamicPricePriceHistory[0].ChangedAt.IsZero())
	assert.Equal(t, 80.0, rec.DynamicPriceCurrentPrice)
	assert.InDelta(t, -20.0, rec.DynamicPriceAdjustmentPercentage, 1e-9)

	UpdatePrice(rec, ReasonManual, 120)
	require.Len(t, rec.DynamicPricePriceHistory, 2)
	assert.Equal(t, 80.0, rec.DynamicPricePriceHistory[1].Price)
	assert.InDelta(t, 20.0, rec.DynamicPriceAdjustmentPercentage, 1e-9)
}

func TestUpdatePrice_ZeroOriginalSkipsAdjustmentPct(t *testing.T) {
	rec := newPriceRecord(0, 50)
	UpdatePrice(rec, ReasonManual, 75)

	assert.Equal(t, 0.0, rec.DynamicPriceAdjustmentPercentage)
	assert.Equal(t, 75.0, rec.DynamicPriceCurrentPrice)
}

// Regression: UpdatePrice MENERIMA harga di bawah minimum — guard minimum
// hanya hidup di ValidateMinimumPrice dan keputusan memanggilnya ada di
// caller. Perilaku ini jangan "diperbaiki" diam-diam.
func TestUpdatePrice_AcceptsBelowMinimum(t *testing.T) {
	rec := newPriceRecord(100, 100)
	rec.DynamicPriceMinimumPrice = 90

	UpdatePrice(rec, ReasonManual, 50)

	assert.Equal(t, 50.0, rec.DynamicPriceCurrentPrice)
	require.Len(t, rec.DynamicPricePriceHistory, 1)
}

func TestValidateMinimumPrice(t *testing.T) {
	rec := newPriceRecord(100, 100)
	rec.DynamicPriceMinimumPrice = 90

	assert.NoError(t, ValidateMinimumPrice(rec, 90))
	assert.NoError(t, ValidateMinimumPrice(rec, 150))

	err := ValidateMinimumPrice(rec, 89.99)
	require.Error(t, err)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusUnprocessableEntity, fe.Code)
}

func TestActivateFlashSale(t *testing.T) {
	start := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	t.Run("sukses 25 persen", func(t *testing.T) {
		rec := newPriceRecord(200, 200)
		cap := 50

		require.NoError(t, ActivateFlashSale(rec, 25, start, end, &cap))

		assert.True(t, rec.DynamicPriceFlashSaleActive)
		assert.Equal(t, 25.0, rec.DynamicPriceFlashSaleDiscount)
		require.NotNil(t, rec.DynamicPriceFlashSalePrice)
		assert.InDelta(t, 150.0, *rec.DynamicPriceFlashSalePrice, 1e-9)
		assert.InDelta(t, 150.0, rec.DynamicPriceCurrentPrice, 1e-9)
		require.Len(t, rec.DynamicPricePriceHistory, 1)
		assert.Equal(t, ReasonFlashSale, rec.DynamicPricePriceHistory[0].Reason)
		assert.Equal(t, 200.0, rec.DynamicPricePriceHistory[0].Price)
	})

	t.Run("diskon di luar range", func(t *testing.T) {
		rec := newPriceRecord(200, 200)
		for _, pct := range []float64{0, -5, 100, 150} {
			err := ActivateFlashSale(rec, pct, start, end, nil)
			var fe *fiber.Error
			require.ErrorAs(t, err, &fe, "pct=%.0f", pct)
			assert.Equal(t, fiber.StatusBadRequest, fe.Code)
		}
		assert.Empty(t, rec.DynamicPricePriceHistory)
	})

	t.Run("window terbalik", func(t *testing.T) {
		rec := newPriceRecord(200, 200)
		err := ActivateFlashSale(rec, 10, end, start, nil)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	})
}

func TestDeactivateFlashSale(t *testing.T) {
	start := time.Now()
	end := start.Add(24 * time.Hour)

	t.Run("restore ke harga original", func(t *testing.T) {
		rec := newPriceRecord(200, 200)
		require.NoError(t, ActivateFlashSale(rec, 30, start, end, nil))
		require.NoError(t, DeactivateFlashSale(rec))

		assert.False(t, rec.DynamicPriceFlashSaleActive)
		assert.Nil(t, rec.DynamicPriceFlashSalePrice)
		assert.Nil(t, rec.DynamicPriceFlashSaleStartAt)
		assert.Nil(t, rec.DynamicPriceFlashSaleEndAt)
		assert.Equal(t, 200.0, rec.DynamicPriceCurrentPrice)

		require.Len(t, rec.DynamicPricePriceHistory, 2)
		assert.Equal(t, ReasonFlashSaleEnd, rec.DynamicPricePriceHistory[1].Reason)
		assert.InDelta(t, 140.0, rec.DynamicPricePriceHistory[1].Price, 1e-9)
	})

	t.Run("tidak aktif → conflict", func(t *testing.T) {
		rec := newPriceRecord(200, 200)
		err := DeactivateFlashSale(rec)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusConflict, fe.Code)
	})
}

func TestApplyCompetitorRule(t *testing.T) {
	competitors := []model.CompetitorPrice{
		{CompetitorPriceSource: "toko-a", CompetitorPriceAmount: 95},
		{CompetitorPriceSource: "toko-b", CompetitorPriceAmount: 88},
		{CompetitorPriceSource: "toko-c", CompetitorPriceAmount: 99},
	}

	t.Run("strategi match ikut yang termurah", func(t *testing.T) {
		rec := newPriceRecord(100, 100)
		rec.DynamicPriceCompetitorStrategy = model.CompetitorStrategyMatch

		require.True(t, ApplyCompetitorRule(rec, competitors))
		assert.Equal(t, 88.0, rec.DynamicPriceCurrentPrice)
		require.Len(t, rec.DynamicPricePriceHistory, 1)
		assert.Equal(t, ReasonCompetitor, rec.DynamicPricePriceHistory[0].Reason)
	})

	t.Run("strategi undercut persen", func(t *testing.T) {
		rec := newPriceRecord(100, 100)
		rec.DynamicPriceCompetitorStrategy = model.CompetitorStrategyUndercut
		rec.DynamicPriceCompetitorUndercut = 10

		require.True(t, ApplyCompetitorRule(rec, competitors))
		assert.InDelta(t, 79.2, rec.DynamicPriceCurrentPrice, 1e-9)
	})

	t.Run("tanpa data kompetitor", func(t *testing.T) {
		rec := newPriceRecord(100, 100)
		assert.False(t, ApplyCompetitorRule(rec, nil))
		assert.Equal(t, 100.0, rec.DynamicPriceCurrentPrice)
		assert.Empty(t, rec.DynamicPricePriceHistory)
	})
}

func TestApplyTimeRules(t *testing.T) {
	rec := newPriceRecord(100, 100)
	rec.DynamicPriceTimeRules = []model.TimeRule{
		{Label: "pagi", StartHour: 6, EndHour: 9, AdjustmentPercentage: -10},
		{Label: "peak-malam", StartHour: 18, EndHour: 22, AdjustmentPercentage: 15},
	}

	t.Run("jam peak kena markup", func(t *testing.T) {
		now := time.Date(2026, 8, 25, 19, 30, 0, 0, time.UTC)
		require.True(t, ApplyTimeRules(rec, now))
		assert.InDelta(t, 115.0, rec.DynamicPriceCurrentPrice, 1e-9)
		assert.Equal(t, ReasonTimeRule, rec.DynamicPricePriceHistory[len(rec.DynamicPricePriceHistory)-1].Reason)
	})

	t.Run("end hour eksklusif", func(t *testing.T) {
		rec := newPriceRecord(100, 100)
		rec.DynamicPriceTimeRules = []model.TimeRule{{Label: "pagi", StartHour: 6, EndHour: 9, AdjustmentPercentage: -10}}
		now := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
		assert.False(t, ApplyTimeRules(rec, now))
		assert.Equal(t, 100.0, rec.DynamicPriceCurrentPrice)
	})

	t.Run("di luar semua window", func(t *testing.T) {
		rec := newPriceRecord(100, 100)
		now := time.Date(2026, 8, 25, 13, 0, 0, 0, time.UTC)
		assert.False(t, ApplyTimeRules(rec, now))
	})
}

func TestApplyInventoryRule(t *testing.T) {
	rules := []model.InventoryRule{
		{MaxStock: 10, AdjustmentPercentage: 20},
		{MaxStock: 50, AdjustmentPercentage: 5},
	}

	t.Run("stok menipis kena tier pertama", func(t *testing.T) {
		rec := newPriceRecord(100, 100)
		rec.DynamicPriceInventoryRules = rules

		require.True(t, ApplyInventoryRule(rec, 7))
		assert.Equal(t, 7, rec.DynamicPriceStockLevel)
		assert.InDelta(t, 120.0, rec.DynamicPriceCurrentPrice, 1e-9)
	})

	t.Run("stok menengah kena tier kedua", func(t *testing.T) {
		rec := newPriceRecord(100, 100)
		rec.DynamicPriceInventoryRules = rules

		require.True(t, ApplyInventoryRule(rec, 30))
		assert.InDelta(t, 105.0, rec.DynamicPriceCurrentPrice, 1e-9)
	})

	t.Run("stok banyak: tidak ada tier, level tetap tercatat", func(t *testing.T) {
		rec := newPriceRecord(100, 100)
		rec.DynamicPriceInventoryRules = rules

		assert.False(t, ApplyInventoryRule(rec, 200))
		assert.Equal(t, 200, rec.DynamicPriceStockLevel)
		assert.Equal(t, 100.0, rec.DynamicPriceCurrentPrice)
	})
}

func TestApplySegmentAdjustment(t *testing.T) {
	rec := newPriceRecord(100, 100)
	rec.DynamicPriceSegmentRules = []model.SegmentRule{
		{Segments: []string{"champion", "loyal"}, AdjustmentPercentage: -5},
		{Segments: []string{"at_risk"}, AdjustmentPercentage: -15},
	}

	require.True(t, ApplySegmentAdjustment(rec, "loyal"))
	assert.InDelta(t, 95.0, rec.DynamicPriceCurrentPrice, 1e-9)
	assert.Equal(t, ReasonSegment, rec.DynamicPricePriceHistory[0].Reason)

	assert.False(t, ApplySegmentAdjustment(rec, "hibernating"))
	assert.InDelta(t, 95.0, rec.DynamicPriceCurrentPrice, 1e-9)
}

// Layer tidak saling compose: yang terakhir jalan yang menang, selalu
// dihitung dari original price.
func TestRuleLayers_LastWriteWins(t *testing.T) {
	rec := newPriceRecord(100, 100)
	rec.DynamicPriceInventoryRules = []model.InventoryRule{{MaxStock: 10, AdjustmentPercentage: 20}}
	rec.DynamicPriceSegmentRules = []model.SegmentRule{{Segments: []string{"champion"}, AdjustmentPercentage: -5}}

	require.True(t, ApplyInventoryRule(rec, 5))
	assert.InDelta(t, 120.0, rec.DynamicPriceCurrentPrice, 1e-9)

	require.True(t, ApplySegmentAdjustment(rec, "champion"))
	// Bukan 120 × 0.95 — layer segmen mengabaikan hasil layer inventory.
	assert.InDelta(t, 95.0, rec.DynamicPriceCurrentPrice, 1e-9)
	require.Len(t, rec.DynamicPricePriceHistory, 2)
	assert.Equal(t, 120.0, rec.DynamicPricePriceHistory[1].Price)
}
