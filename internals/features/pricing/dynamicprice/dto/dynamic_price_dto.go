// file: internals/features/pricing/dynamicprice/dto/dynamic_price_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"tokoku_backend/internals/features/pricing/dynamicprice/model"
)

////////////////////////////////////////////////////////////////////////////////
// REQUESTS
////////////////////////////////////////////////////////////////////////////////

// Enable automation untuk satu produk (create record)
type DynamicPriceCreateDTO struct {
	ProductID     uuid.UUID `json:"product_id" validate:"required"`
	ProductName   string    `json:"product_name" validate:"required,max=120"`
	Tags          []string  `json:"tags,omitempty"`
	OriginalPrice float64   `json:"original_price" validate:"required,gt=0"`
	CostPrice     float64   `json:"cost_price" validate:"gte=0"`
	MinimumPrice  float64   `json:"minimum_price" validate:"gte=0"`
}

// Sinyal perilaku dari storefront
type BehaviorSignalDTO struct {
	ProductID      uuid.UUID `json:"product_id" validate:"required"`
	Signal         string    `json:"signal" validate:"required,oneof=view cart wishlist search"`
	ConversionRate *float64  `json:"conversion_rate,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// Manual price edit; enforce_minimum opsional (default false — guard
// minimum TIDAK otomatis, lihat service.ValidateMinimumPrice)
type ManualPriceUpdateDTO struct {
	NewPrice       float64 `json:"new_price" validate:"required,gt=0"`
	Reason         *string `json:"reason,omitempty"`
	EnforceMinimum bool    `json:"enforce_minimum"`
}

type FlashSaleActivateDTO struct {
	DiscountPercentage float64   `json:"discount_percentage" validate:"required,gt=0,lt=100"`
	StartAt            time.Time `json:"start_at" validate:"required"`
	EndAt              time.Time `json:"end_at" validate:"required"`
	QuantityCap        *int      `json:"quantity_cap,omitempty" validate:"omitempty,gt=0"`
}

type CompetitorPriceUpsertDTO struct {
	Source string  `json:"source" validate:"required,max=80"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// Patch rule tables + bobot (partial)
type DynamicPriceRulesUpdateDTO struct {
	TimeRules      *[]model.TimeRule      `json:"time_rules,omitempty"`
	InventoryRules *[]model.InventoryRule `json:"inventory_rules,omitempty"`
	SegmentRules   *[]model.SegmentRule   `json:"segment_rules,omitempty"`

	CompetitorStrategy *string  `json:"competitor_strategy,omitempty" validate:"omitempty,oneof=match undercut"`
	CompetitorUndercut *float64 `json:"competitor_undercut,omitempty" validate:"omitempty,gte=0,lt=100"`

	WeightPageViews       *float64 `json:"weight_page_views,omitempty" validate:"omitempty,gte=0,lte=1"`
	WeightCartAdds        *float64 `json:"weight_cart_adds,omitempty" validate:"omitempty,gte=0,lte=1"`
	WeightWishlistAdds    *float64 `json:"weight_wishlist_adds,omitempty" validate:"omitempty,gte=0,lte=1"`
	WeightSearchFrequency *float64 `json:"weight_search_frequency,omitempty" validate:"omitempty,gte=0,lte=1"`
	WeightConversionRate  *float64 `json:"weight_conversion_rate,omitempty" validate:"omitempty,gte=0,lte=1"`
}

type InventoryLevelDTO struct {
	Stock int `json:"stock" validate:"gte=0"`
}

////////////////////////////////////////////////////////////////////////////////
// RESPONSES
////////////////////////////////////////////////////////////////////////////////

type DynamicPriceResponse struct {
	DynamicPriceID uuid.UUID `json:"dynamic_price_id"`
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Tags           []string  `json:"tags,omitempty"`

	OriginalPrice        float64 `json:"original_price"`
	CostPrice            float64 `json:"cost_price"`
	MinimumPrice         float64 `json:"minimum_price"`
	CurrentPrice         float64 `json:"current_price"`
	AdjustmentPercentage float64 `json:"adjustment_percentage"`

	DemandScore float64 `json:"demand_score"`
	DemandLevel string  `json:"demand_level"`

	FlashSaleActive   bool       `json:"flash_sale_active"`
	FlashSaleDiscount float64    `json:"flash_sale_discount,omitempty"`
	FlashSaleStartAt  *time.Time `json:"flash_sale_start_at,omitempty"`
	FlashSaleEndAt    *time.Time `json:"flash_sale_end_at,omitempty"`
	FlashSalePrice    *float64   `json:"flash_sale_price,omitempty"`

	AutomationEnabled bool `json:"automation_enabled"`

	PriceHistory []model.PriceHistoryEntry `json:"price_history,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Respon publik untuk storefront: hanya harga berjalan + level demand.
type PublicPriceResponse struct {
	ProductID    uuid.UUID `json:"product_id"`
	CurrentPrice float64   `json:"current_price"`
	DemandLevel  string    `json:"demand_level"`
	FlashSale    bool      `json:"flash_sale"`
}

type CompetitorPriceResponse struct {
	CompetitorPriceID uuid.UUID `json:"competitor_price_id"`
	Source            string    `json:"source"`
	Amount            float64   `json:"amount"`
	FetchedAt         time.Time `json:"fetched_at"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS — Model -> DTO
////////////////////////////////////////////////////////////////////////////////

func ToDynamicPriceResponse(m model.DynamicPrice) DynamicPriceResponse {
	return DynamicPriceResponse{
		DynamicPriceID:       m.DynamicPriceID,
		ProductID:            m.DynamicPriceProductID,
		ProductName:          m.DynamicPriceProductName,
		Tags:                 m.DynamicPriceTags,
		OriginalPrice:        m.DynamicPriceOriginalPrice,
		CostPrice:            m.DynamicPriceCostPrice,
		MinimumPrice:         m.DynamicPriceMinimumPrice,
		CurrentPrice:         m.DynamicPriceCurrentPrice,
		AdjustmentPercentage: m.DynamicPriceAdjustmentPercentage,
		DemandScore:          m.DynamicPriceDemandScore,
		DemandLevel:          string(m.DynamicPriceDemandLevel),
		FlashSaleActive:      m.DynamicPriceFlashSaleActive,
		FlashSaleDiscount:    m.DynamicPriceFlashSaleDiscount,
		FlashSaleStartAt:     m.DynamicPriceFlashSaleStartAt,
		FlashSaleEndAt:       m.DynamicPriceFlashSaleEndAt,
		FlashSalePrice:       m.DynamicPriceFlashSalePrice,
		AutomationEnabled:    m.DynamicPriceAutomationEnabled,
		PriceHistory:         m.DynamicPricePriceHistory,
		CreatedAt:            m.DynamicPriceCreatedAt,
		UpdatedAt:            m.DynamicPriceUpdatedAt,
	}
}

func ToPublicPriceResponse(m model.DynamicPrice) PublicPriceResponse {
	return PublicPriceResponse{
		ProductID:    m.DynamicPriceProductID,
		CurrentPrice: m.DynamicPriceCurrentPrice,
		DemandLevel:  string(m.DynamicPriceDemandLevel),
		FlashSale:    m.DynamicPriceFlashSaleActive,
	}
}

func ToCompetitorPriceResponse(m model.CompetitorPrice) CompetitorPriceResponse {
	return CompetitorPriceResponse{
		CompetitorPriceID: m.CompetitorPriceID,
		Source:            m.CompetitorPriceSource,
		Amount:            m.CompetitorPriceAmount,
		FetchedAt:         m.CompetitorPriceFetchedAt,
	}
}
