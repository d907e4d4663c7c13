// file: internals/features/pricing/dynamicprice/service/demand_score.go
//
// Skor demand: kombinasi linear berbobot dari lima sinyal perilaku,
// di-clamp ke [0,100], lalu di-bucket ke lima level.
package service

import (
	"tokoku_backend/internals/features/pricing/dynamicprice/model"
)

// Bobot default per sinyal (dipakai saat record dibuat).
const (
	DefaultWeightPageViews       = 0.20
	DefaultWeightCartAdds        = 0.25
	DefaultWeightWishlistAdds    = 0.15
	DefaultWeightSearchFrequency = 0.15
	DefaultWeightConversionRate  = 0.25
)

// CalculateDemandScore menghitung ulang skor + level demand dari counter
// perilaku. Conversion rate pecahan 0–1 di-skala ×100 dulu sebelum
// dibobot supaya satu sumbu dengan counter lain.
func CalculateDemandScore(rec *model.DynamicPrice) {
	score := float64(rec.DynamicPricePageViews)*rec.DynamicPriceWeightPageViews +
		float64(rec.DynamicPriceCartAdds)*rec.DynamicPriceWeightCartAdds +
		float64(rec.DynamicPriceWishlistAdds)*rec.DynamicPriceWeightWishlistAdds +
		float64(rec.DynamicPriceSearchFrequency)*rec.DynamicPriceWeightSearchFrequency +
		rec.DynamicPriceConversionRate*100*rec.DynamicPriceWeightConversionRate

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	rec.DynamicPriceDemandScore = score
	rec.DynamicPriceDemandLevel = DemandLevelFor(score)
}

// DemandLevelFor: bucket 5 arah dari skor 0–100.
func DemandLevelFor(score float64) model.DemandLevel {
	switch {
	case score >= 80:
		return model.DemandVeryHigh
	case score >= 60:
		return model.DemandHigh
	case score >= 40:
		return model.DemandMedium
	case score >= 20:
		return model.DemandLow
	default:
		return model.DemandVeryLow
	}
}
