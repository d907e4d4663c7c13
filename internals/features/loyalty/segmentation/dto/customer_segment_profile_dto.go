// file: internals/features/loyalty/segmentation/dto/customer_segment_profile_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"tokoku_backend/internals/features/loyalty/segmentation/model"
)

////////////////////////////////////////////////////////////////////////////////
// REQUEST — order completed hook
////////////////////////////////////////////////////////////////////////////////

type OrderCompletedRequest struct {
	UserID      uuid.UUID  `json:"user_id" validate:"required"`
	OrderID     uuid.UUID  `json:"order_id" validate:"required"`
	Amount      float64    `json:"amount" validate:"required,gt=0"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// RESPONSE
////////////////////////////////////////////////////////////////////////////////

type RFMRecencyResponse struct {
	DaysSinceLastPurchase int `json:"days_since_last_purchase"`
	Score                 int `json:"score"`
}

type RFMFrequencyResponse struct {
	TotalOrders int `json:"total_orders"`
	Score       int `json:"score"`
}

type RFMMonetaryResponse struct {
	TotalSpent float64 `json:"total_spent"`
	Score      int     `json:"score"`
}

type RFMResponse struct {
	Recency       RFMRecencyResponse   `json:"recency"`
	Frequency     RFMFrequencyResponse `json:"frequency"`
	Monetary      RFMMonetaryResponse  `json:"monetary"`
	CombinedScore int                  `json:"combined_score"`
}

type SegmentProfileResponse struct {
	SegmentProfileID     uuid.UUID `json:"segment_profile_id"`
	SegmentProfileUserID uuid.UUID `json:"segment_profile_user_id"`

	RFM RFMResponse `json:"rfm"`

	AverageOrderValue float64    `json:"average_order_value"`
	LastPurchaseAt    *time.Time `json:"last_purchase_at,omitempty"`

	PrimarySegment string                      `json:"primary_segment"`
	SegmentHistory []model.SegmentHistoryEntry `json:"segment_history"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS — Model -> DTO
////////////////////////////////////////////////////////////////////////////////

func ToSegmentProfileResponse(m model.CustomerSegmentProfile) SegmentProfileResponse {
	return SegmentProfileResponse{
		SegmentProfileID:     m.SegmentProfileID,
		SegmentProfileUserID: m.SegmentProfileUserID,
		RFM: RFMResponse{
			Recency: RFMRecencyResponse{
				DaysSinceLastPurchase: m.SegmentProfileDaysSinceLastPurchase,
				Score:                 m.SegmentProfileRecencyScore,
			},
			Frequency: RFMFrequencyResponse{
				TotalOrders: m.SegmentProfileTotalOrders,
				Score:       m.SegmentProfileFrequencyScore,
			},
			Monetary: RFMMonetaryResponse{
				TotalSpent: m.SegmentProfileTotalSpent,
				Score:      m.SegmentProfileMonetaryScore,
			},
			CombinedScore: m.SegmentProfileCombinedScore,
		},
		AverageOrderValue: m.SegmentProfileAverageOrderValue,
		LastPurchaseAt:    m.SegmentProfileLastPurchaseAt,
		PrimarySegment:    string(m.SegmentProfilePrimarySegment),
		SegmentHistory:    m.SegmentProfileSegmentHistory,
		CreatedAt:         m.SegmentProfileCreatedAt,
		UpdatedAt:         m.SegmentProfileUpdatedAt,
	}
}

func ToSegmentProfileResponses(ms []model.CustomerSegmentProfile) []SegmentProfileResponse {
	out := make([]SegmentProfileResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToSegmentProfileResponse(m))
	}
	return out
}
