// file: internals/features/loyalty/segmentation/service/segment_updater.go
package service

import (
	"time"

	"github.com/google/uuid"

	"tokoku_backend/internals/features/loyalty/segmentation/model"
)

// OrderEvent adalah ringkasan order yang baru selesai (completed).
type OrderEvent struct {
	OrderID     uuid.UUID
	Amount      float64
	CompletedAt time.Time
}

// UpdateSegmentation dipanggil setiap ada order completed:
// recency direset 0 hari, frequency naik, monetary bertambah, lalu
// scorer + classifier dijalankan berurutan.
//
// Kalau ev == nil, bagian order jadi no-op diam-diam — profil tetap
// di-skor ulang pakai total yang ada (perilaku sistem lama).
func UpdateSegmentation(p *model.CustomerSegmentProfile, ev *OrderEvent) {
	if ev != nil {
		completedAt := ev.CompletedAt
		if completedAt.IsZero() {
			completedAt = time.Now()
		}
		p.SegmentProfileDaysSinceLastPurchase = 0
		p.SegmentProfileLastPurchaseAt = &completedAt
		p.SegmentProfileTotalOrders++
		p.SegmentProfileTotalSpent += ev.Amount
		if p.SegmentProfileTotalOrders > 0 {
			p.SegmentProfileAverageOrderValue = p.SegmentProfileTotalSpent / float64(p.SegmentProfileTotalOrders)
		}
	}

	CalculateRFM(p)
	Classify(p)
}
