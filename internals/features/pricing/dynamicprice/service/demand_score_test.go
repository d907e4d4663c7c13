package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tokoku_backend/internals/features/pricing/dynamicprice/model"
)

func newRecordWithDefaultWeights() *model.DynamicPrice {
	return &model.DynamicPrice{
		DynamicPriceWeightPageViews:       DefaultWeightPageViews,
		DynamicPriceWeightCartAdds:        DefaultWeightCartAdds,
		DynamicPriceWeightWishlistAdds:    DefaultWeightWishlistAdds,
		DynamicPriceWeightSearchFrequency: DefaultWeightSearchFrequency,
		DynamicPriceWeightConversionRate:  DefaultWeightConversionRate,
	}
}

func TestCalculateDemandScore_AllZero(t *testing.T) {
	rec := newRecordWithDefaultWeights()
	CalculateDemandScore(rec)

	assert.Equal(t, 0.0, rec.DynamicPriceDemandScore)
	assert.Equal(t, model.DemandVeryLow, rec.DynamicPriceDemandLevel)
}

// Conversion rate 1.0 sendirian: 1.0 × 100 × 0.25 = 25 → "low".
func TestCalculateDemandScore_ConversionRateScaled(t *testing.T) {
	rec := newRecordWithDefaultWeights()
	rec.DynamicPriceConversionRate = 1.0
	CalculateDemandScore(rec)

	assert.InDelta(t, 25.0, rec.DynamicPriceDemandScore, 1e-9)
	assert.Equal(t, model.DemandLow, rec.DynamicPriceDemandLevel)
}

func TestCalculateDemandScore_WeightedSum(t *testing.T) {
	rec := newRecordWithDefaultWeights()
	rec.DynamicPricePageViews = 100       // 100 × 0.20 = 20
	rec.DynamicPriceCartAdds = 40         // 40 × 0.25 = 10
	rec.DynamicPriceWishlistAdds = 20     // 20 × 0.15 = 3
	rec.DynamicPriceSearchFrequency = 20  // 20 × 0.15 = 3
	rec.DynamicPriceConversionRate = 0.10 // 10 × 0.25 = 2.5
	CalculateDemandScore(rec)

	assert.InDelta(t, 38.5, rec.DynamicPriceDemandScore, 1e-9)
	assert.Equal(t, model.DemandVeryLow, DemandLevelFor(0))
	assert.Equal(t, model.DemandLow, rec.DynamicPriceDemandLevel)
}

func TestCalculateDemandScore_ClampUpper(t *testing.T) {
	rec := newRecordWithDefaultWeights()
	rec.DynamicPricePageViews = 100000
	CalculateDemandScore(rec)

	assert.Equal(t, 100.0, rec.DynamicPriceDemandScore)
	assert.Equal(t, model.DemandVeryHigh, rec.DynamicPriceDemandLevel)
}

// Bobot per record menimpa default.
func TestCalculateDemandScore_CustomWeights(t *testing.T) {
	rec := &model.DynamicPrice{
		DynamicPriceWeightPageViews:      1.0,
		DynamicPricePageViews:            55,
		DynamicPriceWeightConversionRate: 0, // sinyal lain dimatikan
		DynamicPriceConversionRate:       0.9,
	}
	CalculateDemandScore(rec)

	assert.InDelta(t, 55.0, rec.DynamicPriceDemandScore, 1e-9)
	assert.Equal(t, model.DemandMedium, rec.DynamicPriceDemandLevel)
}

func TestDemandLevelFor_Buckets(t *testing.T) {
	cases := []struct {
		score float64
		want  model.DemandLevel
	}{
		{0, model.DemandVeryLow},
		{19.99, model.DemandVeryLow},
		{20, model.DemandLow},
		{39.99, model.DemandLow},
		{40, model.DemandMedium},
		{59.99, model.DemandMedium},
		{60, model.DemandHigh},
		{79.99, model.DemandHigh},
		{80, model.DemandVeryHigh},
		{100, model.DemandVeryHigh},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DemandLevelFor(c.score), "score=%.2f", c.score)
	}
}
