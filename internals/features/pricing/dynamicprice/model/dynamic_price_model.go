// file: internals/features/pricing/dynamicprice/model/dynamic_price_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — level demand (bucket dari skor 0–100)
// =========================================================

type DemandLevel string

const (
	DemandVeryHigh DemandLevel = "very-high"
	DemandHigh     DemandLevel = "high"
	DemandMedium   DemandLevel = "medium"
	DemandLow      DemandLevel = "low"
	DemandVeryLow  DemandLevel = "very-low"
)

// Strategi mengikuti harga kompetitor
type CompetitorStrategy string

const (
	CompetitorStrategyMatch    CompetitorStrategy = "match"
	CompetitorStrategyUndercut CompetitorStrategy = "undercut"
)

// =========================================================
// VALUE OBJECTS (JSONB)
// =========================================================

// Entri ledger harga: harga SEBELUM perubahan + alasan, append-only.
type PriceHistoryEntry struct {
	Price     float64   `json:"price"`
	Reason    string    `json:"reason"`
	ChangedAt time.Time `json:"changed_at"`
}

// Rule jadwal harga per jam (time-of-day / seasonal).
type TimeRule struct {
	Label                string  `json:"label"`
	StartHour            int     `json:"start_hour"` // inklusif, 0-23
	EndHour              int     `json:"end_hour"`   // eksklusif
	AdjustmentPercentage float64 `json:"adjustment_percentage"`
}

// Rule tier berbasis stok: berlaku kalau stok <= max_stock, first match.
type InventoryRule struct {
	MaxStock             int     `json:"max_stock"`
	AdjustmentPercentage float64 `json:"adjustment_percentage"`
}

// Rule penyesuaian per segmen pelanggan.
type SegmentRule struct {
	Segments             []string `json:"segments"`
	AdjustmentPercentage float64  `json:"adjustment_percentage"`
}

// =========================================================
// MODEL — satu record per produk
// =========================================================

type DynamicPrice struct {
	// PK
	DynamicPriceID uuid.UUID `gorm:"column:dynamic_price_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"dynamic_price_id"`

	// FK → products(id), satu record per produk
	DynamicPriceProductID   uuid.UUID      `gorm:"column:dynamic_price_product_id;type:uuid;not null;uniqueIndex:uniq_dynamic_price_product" json:"dynamic_price_product_id"`
	DynamicPriceProductName string         `gorm:"column:dynamic_price_product_name;type:varchar(120);not null" json:"dynamic_price_product_name"`
	DynamicPriceTags        pq.StringArray `gorm:"column:dynamic_price_tags;type:text[]" json:"dynamic_price_tags,omitempty"`

	// Base pricing
	DynamicPriceOriginalPrice float64 `gorm:"column:dynamic_price_original_price;not null;check:dynamic_price_original_price>=0" json:"dynamic_price_original_price"`
	DynamicPriceCostPrice     float64 `gorm:"column:dynamic_price_cost_price;not null;default:0" json:"dynamic_price_cost_price"`
	DynamicPriceMinimumPrice  float64 `gorm:"column:dynamic_price_minimum_price;not null;default:0" json:"dynamic_price_minimum_price"`

	// Harga berjalan
	DynamicPriceCurrentPrice         float64 `gorm:"column:dynamic_price_current_price;not null" json:"dynamic_price_current_price"`
	DynamicPriceAdjustmentPercentage float64 `gorm:"column:dynamic_price_adjustment_percentage;not null;default:0" json:"dynamic_price_adjustment_percentage"`

	// Counter sinyal perilaku
	DynamicPricePageViews       int     `gorm:"column:dynamic_price_page_views;not null;default:0" json:"dynamic_price_page_views"`
	DynamicPriceCartAdds        int     `gorm:"column:dynamic_price_cart_adds;not null;default:0" json:"dynamic_price_cart_adds"`
	DynamicPriceWishlistAdds    int     `gorm:"column:dynamic_price_wishlist_adds;not null;default:0" json:"dynamic_price_wishlist_adds"`
	DynamicPriceSearchFrequency int     `gorm:"column:dynamic_price_search_frequency;not null;default:0" json:"dynamic_price_search_frequency"`
	DynamicPriceConversionRate  float64 `gorm:"column:dynamic_price_conversion_rate;not null;default:0;check:dynamic_price_conversion_rate>=0 AND dynamic_price_conversion_rate<=1" json:"dynamic_price_conversion_rate"`

	// Bobot per sinyal (konfigurable per record)
	DynamicPriceWeightPageViews       float64 `gorm:"column:dynamic_price_weight_page_views;not null;default:0.20" json:"dynamic_price_weight_page_views"`
	DynamicPriceWeightCartAdds        float64 `gorm:"column:dynamic_price_weight_cart_adds;not null;default:0.25" json:"dynamic_price_weight_cart_adds"`
	DynamicPriceWeightWishlistAdds    float64 `gorm:"column:dynamic_price_weight_wishlist_adds;not null;default:0.15" json:"dynamic_price_weight_wishlist_adds"`
	DynamicPriceWeightSearchFrequency float64 `gorm:"column:dynamic_price_weight_search_frequency;not null;default:0.15" json:"dynamic_price_weight_search_frequency"`
	DynamicPriceWeightConversionRate  float64 `gorm:"column:dynamic_price_weight_conversion_rate;not null;default:0.25" json:"dynamic_price_weight_conversion_rate"`

	// Skor demand turunan
	DynamicPriceDemandScore float64     `gorm:"column:dynamic_price_demand_score;not null;default:0" json:"dynamic_price_demand_score"`
	DynamicPriceDemandLevel DemandLevel `gorm:"column:dynamic_price_demand_level;type:varchar(16);not null;default:'very-low'" json:"dynamic_price_demand_level"`

	// Flash sale
	DynamicPriceFlashSaleActive     bool       `gorm:"column:dynamic_price_flash_sale_active;not null;default:false" json:"dynamic_price_flash_sale_active"`
	DynamicPriceFlashSaleDiscount   float64    `gorm:"column:dynamic_price_flash_sale_discount;not null;default:0" json:"dynamic_price_flash_sale_discount"`
	DynamicPriceFlashSaleStartAt    *time.Time `gorm:"column:dynamic_price_flash_sale_start_at" json:"dynamic_price_flash_sale_start_at,omitempty"`
	DynamicPriceFlashSaleEndAt      *time.Time `gorm:"column:dynamic_price_flash_sale_end_at" json:"dynamic_price_flash_sale_end_at,omitempty"`
	DynamicPriceFlashSaleQuantity   *int       `gorm:"column:dynamic_price_flash_sale_quantity" json:"dynamic_price_flash_sale_quantity,omitempty"`
	DynamicPriceFlashSalePrice      *float64   `gorm:"column:dynamic_price_flash_sale_price" json:"dynamic_price_flash_sale_price,omitempty"`

	// Kompetitor
	DynamicPriceCompetitorStrategy CompetitorStrategy `gorm:"column:dynamic_price_competitor_strategy;type:varchar(16);not null;default:'match'" json:"dynamic_price_competitor_strategy"`
	DynamicPriceCompetitorUndercut float64            `gorm:"column:dynamic_price_competitor_undercut;not null;default:0" json:"dynamic_price_competitor_undercut"`

	// Stok terakhir yang dilaporkan (untuk inventory rule)
	DynamicPriceStockLevel int `gorm:"column:dynamic_price_stock_level;not null;default:0" json:"dynamic_price_stock_level"`

	// Ledger + rule tables (JSONB)
	DynamicPricePriceHistory   datatypes.JSONSlice[PriceHistoryEntry] `gorm:"column:dynamic_price_price_history;type:jsonb" json:"dynamic_price_price_history"`
	DynamicPriceTimeRules      datatypes.JSONSlice[TimeRule]          `gorm:"column:dynamic_price_time_rules;type:jsonb" json:"dynamic_price_time_rules"`
	DynamicPriceInventoryRules datatypes.JSONSlice[InventoryRule]     `gorm:"column:dynamic_price_inventory_rules;type:jsonb" json:"dynamic_price_inventory_rules"`
	DynamicPriceSegmentRules   datatypes.JSONSlice[SegmentRule]       `gorm:"column:dynamic_price_segment_rules;type:jsonb" json:"dynamic_price_segment_rules"`

	// Otomasi aktif?
	DynamicPriceAutomationEnabled bool `gorm:"column:dynamic_price_automation_enabled;not null;default:true;index:ix_dynamic_price_automation" json:"dynamic_price_automation_enabled"`

	// Timestamps (eksplisit)
	DynamicPriceCreatedAt time.Time      `gorm:"column:dynamic_price_created_at;not null;default:now()" json:"dynamic_price_created_at"`
	DynamicPriceUpdatedAt time.Time      `gorm:"column:dynamic_price_updated_at;not null;default:now()" json:"dynamic_price_updated_at"`
	DynamicPriceDeletedAt gorm.DeletedAt `gorm:"column:dynamic_price_deleted_at;index" json:"-"`
}

func (DynamicPrice) TableName() string {
	return "dynamic_prices"
}

// =====================================================
// HOOKS — set timestamps eksplisit
// =====================================================

func (m *DynamicPrice) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.DynamicPriceCreatedAt.IsZero() {
		m.DynamicPriceCreatedAt = now
	}
	m.DynamicPriceUpdatedAt = now
	return nil
}

func (m *DynamicPrice) BeforeUpdate(tx *gorm.DB) (err error) {
	m.DynamicPriceUpdatedAt = time.Now()
	return nil
}
