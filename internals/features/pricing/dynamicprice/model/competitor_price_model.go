// file: internals/features/pricing/dynamicprice/model/competitor_price_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Snapshot harga kompetitor per sumber, satu baris per (record, source).
type CompetitorPrice struct {
	// PK
	CompetitorPriceID uuid.UUID `gorm:"column:competitor_price_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"competitor_price_id"`

	// FK → dynamic_prices(dynamic_price_id)
	CompetitorPriceDynamicPriceID uuid.UUID `gorm:"column:competitor_price_dynamic_price_id;type:uuid;not null;index;uniqueIndex:uniq_competitor_source,priority:1" json:"competitor_price_dynamic_price_id"`

	CompetitorPriceSource string  `gorm:"column:competitor_price_source;type:varchar(80);not null;uniqueIndex:uniq_competitor_source,priority:2" json:"competitor_price_source"`
	CompetitorPriceAmount float64 `gorm:"column:competitor_price_amount;not null;check:competitor_price_amount>=0" json:"competitor_price_amount"`

	CompetitorPriceFetchedAt time.Time `gorm:"column:competitor_price_fetched_at;not null;default:now()" json:"competitor_price_fetched_at"`

	// Timestamps (eksplisit)
	CompetitorPriceCreatedAt time.Time      `gorm:"column:competitor_price_created_at;not null;default:now()" json:"competitor_price_created_at"`
	CompetitorPriceUpdatedAt time.Time      `gorm:"column:competitor_price_updated_at;not null;default:now()" json:"competitor_price_updated_at"`
	CompetitorPriceDeletedAt gorm.DeletedAt `gorm:"column:competitor_price_deleted_at;index" json:"-"`
}

func (CompetitorPrice) TableName() string {
	return "competitor_prices"
}

func (m *CompetitorPrice) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.CompetitorPriceCreatedAt.IsZero() {
		m.CompetitorPriceCreatedAt = now
	}
	if m.CompetitorPriceFetchedAt.IsZero() {
		m.CompetitorPriceFetchedAt = now
	}
	m.CompetitorPriceUpdatedAt = now
	return nil
}

func (m *CompetitorPrice) BeforeUpdate(tx *gorm.DB) (err error) {
	m.CompetitorPriceUpdatedAt = time.Now()
	return nil
}
