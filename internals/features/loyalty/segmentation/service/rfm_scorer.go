// file: internals/features/loyalty/segmentation/service/rfm_scorer.go
//
// Skoring RFM (Recency/Frequency/Monetary) + klasifikasi 12 segmen.
// Semua fungsi di file ini pure: tanpa I/O, hanya mutasi struct profil.
package service

import (
	"time"

	"tokoku_backend/internals/features/loyalty/segmentation/model"
)

// =========================================================
// THRESHOLDS — harus persis, dipakai sistem lama juga
// =========================================================

const (
	// Recency (hari sejak pembelian terakhir)
	recencyTier5 = 30
	recencyTier4 = 60
	recencyTier3 = 90
	recencyTier2 = 180

	// Frequency (total order)
	frequencyTier5 = 20
	frequencyTier4 = 10
	frequencyTier3 = 5
	frequencyTier2 = 2

	// Monetary (total belanja)
	monetaryTier5 = 5000
	monetaryTier4 = 2000
	monetaryTier3 = 1000
	monetaryTier2 = 500
)

// ScoreRecency: makin baru belanja, makin tinggi skor.
func ScoreRecency(daysSinceLastPurchase int) int {
	switch {
	case daysSinceLastPurchase <= recencyTier5:
		return 5
	case daysSinceLastPurchase <= recencyTier4:
		return 4
	case daysSinceLastPurchase <= recencyTier3:
		return 3
	case daysSinceLastPurchase <= recencyTier2:
		return 2
	default:
		return 1
	}
}

func ScoreFrequency(totalOrders int) int {
	switch {
	case totalOrders >= frequencyTier5:
		return 5
	case totalOrders >= frequencyTier4:
		return 4
	case totalOrders >= frequencyTier3:
		return 3
	case totalOrders >= frequencyTier2:
		return 2
	default:
		return 1
	}
}

func ScoreMonetary(totalSpent float64) int {
	switch {
	case totalSpent >= monetaryTier5:
		return 5
	case totalSpent >= monetaryTier4:
		return 4
	case totalSpent >= monetaryTier3:
		return 3
	case totalSpent >= monetaryTier2:
		return 2
	default:
		return 1
	}
}

// CalculateRFM menghitung ulang tiga sub-skor + skor gabungan dari raw input.
// Invariant: combined == recency + frequency + monetary setelah fungsi ini.
func CalculateRFM(p *model.CustomerSegmentProfile) {
	p.SegmentProfileRecencyScore = ScoreRecency(p.SegmentProfileDaysSinceLastPurchase)
	p.SegmentProfileFrequencyScore = ScoreFrequency(p.SegmentProfileTotalOrders)
	p.SegmentProfileMonetaryScore = ScoreMonetary(p.SegmentProfileTotalSpent)
	p.SegmentProfileCombinedScore = p.SegmentProfileRecencyScore +
		p.SegmentProfileFrequencyScore +
		p.SegmentProfileMonetaryScore
}

// =========================================================
// KLASIFIKASI — ordered rule list, first match wins
// =========================================================

type segmentRule struct {
	Match func(r, f, m int) bool
	Label model.SegmentLabel
}

// Urutan rule TIDAK boleh diubah: beberapa rule saling overlap dan hanya
// urutan evaluasi yang menentukan hasil. Catatan: rule at_risk
// (R==2 ∧ F≥3 ∧ M≥3) tidak pernah kena kalau F≥3 karena about_to_sleep
// (R==2 ∧ F≥2) dicek lebih dulu — branch mati ini dipertahankan demi
// kompatibilitas dengan data lama.
var segmentRules = []segmentRule{
	{func(r, f, m int) bool { return r >= 4 && f >= 4 && m >= 4 }, model.SegmentChampion},
	{func(r, f, m int) bool { return r >= 3 && f >= 4 }, model.SegmentLoyal},
	{func(r, f, m int) bool { return r >= 4 && f >= 2 && m >= 3 }, model.SegmentPotentialLoyalist},
	{func(r, f, m int) bool { return r >= 4 && f == 1 }, model.SegmentNew},
	{func(r, f, m int) bool { return r >= 3 && f == 1 }, model.SegmentPromising},
	{func(r, f, m int) bool { return r == 3 && f >= 2 && m >= 2 }, model.SegmentNeedsAttention},
	{func(r, f, m int) bool { return r == 2 && f >= 2 }, model.SegmentAboutToSleep},
	{func(r, f, m int) bool { return r == 2 && f >= 3 && m >= 3 }, model.SegmentAtRisk},
	{func(r, f, m int) bool { return r <= 2 && f >= 4 && m >= 4 }, model.SegmentCantLoseThem},
	{func(r, f, m int) bool { return r == 1 && f >= 2 }, model.SegmentHibernating},
	{func(r, f, m int) bool { return r == 1 && f == 1 }, model.SegmentLost},
}

// DetermineSegment memetakan (R,F,M) ke satu label via first-match.
// Kombinasi yang tidak kena rule manapun jatuh ke occasional.
func DetermineSegment(r, f, m int) model.SegmentLabel {
	for _, rule := range segmentRules {
		if rule.Match(r, f, m) {
			return rule.Label
		}
	}
	return model.SegmentOccasional
}

// Classify menetapkan primary segment dan SELALU menambah entri riwayat,
// walau segmen tidak berubah (tanpa dedup — analytics lama menghitung
// jumlah entri).
func Classify(p *model.CustomerSegmentProfile) {
	seg := DetermineSegment(
		p.SegmentProfileRecencyScore,
		p.SegmentProfileFrequencyScore,
		p.SegmentProfileMonetaryScore,
	)
	p.SegmentProfilePrimarySegment = seg
	p.SegmentProfileSegmentHistory = append(p.SegmentProfileSegmentHistory, model.SegmentHistoryEntry{
		Segment:   string(seg),
		StartDate: time.Now(),
		Reason:    "RFM Analysis",
	})
}

// RefreshRecency memperbarui daysSinceLastPurchase dari timestamp pembelian
// terakhir (kalau ada) sebelum skoring ulang.
func RefreshRecency(p *model.CustomerSegmentProfile, now time.Time) {
	if p.SegmentProfileLastPurchaseAt == nil {
		return
	}
	days := int(now.Sub(*p.SegmentProfileLastPurchaseAt).Hours() / 24)
	if days < 0 {
		days = 0
	}
	p.SegmentProfileDaysSinceLastPurchase = days
}
