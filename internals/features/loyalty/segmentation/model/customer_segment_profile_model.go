// file: internals/features/loyalty/segmentation/model/customer_segment_profile_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — 12 segmen lifecycle pelanggan (mutually exclusive)
// =========================================================

type SegmentLabel string

const (
	SegmentChampion          SegmentLabel = "champion"
	SegmentLoyal             SegmentLabel = "loyal"
	SegmentPotentialLoyalist SegmentLabel = "potential_loyalist"
	SegmentNew               SegmentLabel = "new"
	SegmentPromising         SegmentLabel = "promising"
	SegmentNeedsAttention    SegmentLabel = "needs_attention"
	SegmentAboutToSleep      SegmentLabel = "about_to_sleep"
	SegmentAtRisk            SegmentLabel = "at_risk"
	SegmentCantLoseThem      SegmentLabel = "cant_lose_them"
	SegmentHibernating       SegmentLabel = "hibernating"
	SegmentLost              SegmentLabel = "lost"
	SegmentOccasional        SegmentLabel = "occasional"
)

// =========================================================
// VALUE OBJECT — entri riwayat segmen (append-only, tanpa dedup)
// =========================================================

type SegmentHistoryEntry struct {
	Segment   string    `json:"segment"`
	StartDate time.Time `json:"start_date"`
	Reason    string    `json:"reason"`
}

// =========================================================
// MODEL
// =========================================================

type CustomerSegmentProfile struct {
	// PK
	SegmentProfileID uuid.UUID `gorm:"column:segment_profile_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"segment_profile_id"`

	// FK → users(id), satu profil per user
	SegmentProfileUserID uuid.UUID `gorm:"column:segment_profile_user_id;type:uuid;not null;uniqueIndex:uniq_segment_profile_user" json:"segment_profile_user_id"`

	// Raw input RFM
	SegmentProfileDaysSinceLastPurchase int        `gorm:"column:segment_profile_days_since_last_purchase;not null;default:0" json:"segment_profile_days_since_last_purchase"`
	SegmentProfileTotalOrders           int        `gorm:"column:segment_profile_total_orders;not null;default:0" json:"segment_profile_total_orders"`
	SegmentProfileTotalSpent            float64    `gorm:"column:segment_profile_total_spent;not null;default:0" json:"segment_profile_total_spent"`
	SegmentProfileAverageOrderValue     float64    `gorm:"column:segment_profile_average_order_value;not null;default:0" json:"segment_profile_average_order_value"`
	SegmentProfileLastPurchaseAt        *time.Time `gorm:"column:segment_profile_last_purchase_at" json:"segment_profile_last_purchase_at,omitempty"`

	// Sub-skor 1–5 + skor gabungan 3–15
	SegmentProfileRecencyScore   int `gorm:"column:segment_profile_recency_score;not null;default:0;check:segment_profile_recency_score>=0 AND segment_profile_recency_score<=5" json:"segment_profile_recency_score"`
	SegmentProfileFrequencyScore int `gorm:"column:segment_profile_frequency_score;not null;default:0;check:segment_profile_frequency_score>=0 AND segment_profile_frequency_score<=5" json:"segment_profile_frequency_score"`
	SegmentProfileMonetaryScore  int `gorm:"column:segment_profile_monetary_score;not null;default:0;check:segment_profile_monetary_score>=0 AND segment_profile_monetary_score<=5" json:"segment_profile_monetary_score"`
	SegmentProfileCombinedScore  int `gorm:"column:segment_profile_combined_score;not null;default:0" json:"segment_profile_combined_score"`

	// Segmen utama — selalu hasil klasifikasi, tidak pernah di-set caller
	SegmentProfilePrimarySegment SegmentLabel `gorm:"column:segment_profile_primary_segment;type:varchar(32);not null;default:'new';index:ix_segment_profile_primary" json:"segment_profile_primary_segment"`

	// Riwayat segmen — ledger append-only (JSONB)
	SegmentProfileSegmentHistory datatypes.JSONSlice[SegmentHistoryEntry] `gorm:"column:segment_profile_segment_history;type:jsonb" json:"segment_profile_segment_history"`

	// Timestamps (eksplisit)
	SegmentProfileCreatedAt time.Time      `gorm:"column:segment_profile_created_at;not null;default:now()" json:"segment_profile_created_at"`
	SegmentProfileUpdatedAt time.Time      `gorm:"column:segment_profile_updated_at;not null;default:now()" json:"segment_profile_updated_at"`
	SegmentProfileDeletedAt gorm.DeletedAt `gorm:"column:segment_profile_deleted_at;index" json:"-"`
}

// TableName overrides the table name used by CustomerSegmentProfile
func (CustomerSegmentProfile) TableName() string {
	return "customer_segment_profiles"
}

// =====================================================
// HOOKS — set timestamps eksplisit
// =====================================================

func (m *CustomerSegmentProfile) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.SegmentProfileCreatedAt.IsZero() {
		m.SegmentProfileCreatedAt = now
	}
	m.SegmentProfileUpdatedAt = now
	return nil
}

func (m *CustomerSegmentProfile) BeforeUpdate(tx *gorm.DB) (err error) {
	m.SegmentProfileUpdatedAt = time.Now()
	return nil
}
