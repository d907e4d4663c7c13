// file: internals/features/payment/installments/dto/installment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"tokoku_backend/internals/features/payment/installments/model"
)

////////////////////////////////////////////////////////////////////////////////
// REQUESTS
////////////////////////////////////////////////////////////////////////////////

type InstallmentPlanCreateDTO struct {
	OrderID              uuid.UUID  `json:"order_id" validate:"required"`
	TotalAmount          float64    `json:"total_amount" validate:"required,gt=0"`
	DownPaymentPercent   float64    `json:"down_payment_percent" validate:"gte=0,lt=100"`
	InterestRatePercent  float64    `json:"interest_rate_percent" validate:"gte=0"`
	NumberOfInstallments int        `json:"number_of_installments" validate:"required,gt=0,lte=36"`
	PlanType             string     `json:"plan_type" validate:"required,oneof=installment bnpl"`
	CreditApplicationID  *uuid.UUID `json:"credit_application_id,omitempty"`
}

type SchedulePreviewDTO struct {
	TotalAmount          float64 `json:"total_amount" validate:"required,gt=0"`
	DownPaymentPercent   float64 `json:"down_payment_percent" validate:"gte=0,lt=100"`
	InterestRatePercent  float64 `json:"interest_rate_percent" validate:"gte=0"`
	NumberOfInstallments int     `json:"number_of_installments" validate:"required,gt=0,lte=36"`
}

type PayInstallmentDTO struct {
	TransactionID string `json:"transaction_id" validate:"required,max=100"`
}

type OverdueSweepDTO struct {
	LateFeePercent float64 `json:"late_fee_percent" validate:"gte=0,lte=100"`
}

////////////////////////////////////////////////////////////////////////////////
// RESPONSES
////////////////////////////////////////////////////////////////////////////////

type InstallmentResponse struct {
	InstallmentID uuid.UUID `json:"installment_id"`
	Number        int       `json:"number"`
	Amount        float64   `json:"amount"`
	DueDate       time.Time `json:"due_date"`
	Status        string    `json:"status"`

	PaidAt        *time.Time `json:"paid_at,omitempty"`
	PaidAmount    *float64   `json:"paid_amount,omitempty"`
	LateFee       float64    `json:"late_fee"`
	TransactionID *string    `json:"transaction_id,omitempty"`
}

type InstallmentPlanResponse struct {
	InstallmentPlanID uuid.UUID  `json:"installment_plan_id"`
	UserID            uuid.UUID  `json:"user_id"`
	OrderID           uuid.UUID  `json:"order_id"`
	PlanType          string     `json:"plan_type"`
	CreditApplication *uuid.UUID `json:"credit_application_id,omitempty"`

	TotalAmount          float64 `json:"total_amount"`
	DownPaymentPercent   float64 `json:"down_payment_percent"`
	DownPaymentAmount    float64 `json:"down_payment_amount"`
	RemainingAmount      float64 `json:"remaining_amount"`
	InterestRatePercent  float64 `json:"interest_rate_percent"`
	NumberOfInstallments int     `json:"number_of_installments"`
	TotalInterest        float64 `json:"total_interest"`
	TotalPayable         float64 `json:"total_payable"`
	InstallmentAmount    float64 `json:"installment_amount"`

	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Installments []InstallmentResponse `json:"installments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type SchedulePreviewResponse struct {
	DownPaymentAmount float64               `json:"down_payment_amount"`
	RemainingAmount   float64               `json:"remaining_amount"`
	TotalInterest     float64               `json:"total_interest"`
	TotalPayable      float64               `json:"total_payable"`
	InstallmentAmount float64               `json:"installment_amount"`
	Schedule          []InstallmentResponse `json:"schedule"`
}

type SnapTokenResponse struct {
	OrderID   string `json:"order_id"`
	SnapToken string `json:"snap_token"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS — Model -> DTO
////////////////////////////////////////////////////////////////////////////////

func ToInstallmentResponse(m model.Installment) InstallmentResponse {
	return InstallmentResponse{
		InstallmentID: m.InstallmentID,
		Number:        m.InstallmentNumber,
		Amount:        m.InstallmentAmount,
		DueDate:       m.InstallmentDueDate,
		Status:        string(m.InstallmentStatus),
		PaidAt:        m.InstallmentPaidAt,
		PaidAmount:    m.InstallmentPaidAmount,
		LateFee:       m.InstallmentLateFee,
		TransactionID: m.InstallmentTransactionID,
	}
}

func ToInstallmentResponses(ms []model.Installment) []InstallmentResponse {
	out := make([]InstallmentResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToInstallmentResponse(m))
	}
	return out
}

func ToInstallmentPlanResponse(m model.InstallmentPlan, rows []model.Installment) InstallmentPlanResponse {
	return InstallmentPlanResponse{
		InstallmentPlanID:    m.InstallmentPlanID,
		UserID:               m.InstallmentPlanUserID,
		OrderID:              m.InstallmentPlanOrderID,
		PlanType:             string(m.InstallmentPlanType),
		CreditApplication:    m.InstallmentPlanCreditApplicationID,
		TotalAmount:          m.InstallmentPlanTotalAmount,
		DownPaymentPercent:   m.InstallmentPlanDownPaymentPercent,
		DownPaymentAmount:    m.InstallmentPlanDownPaymentAmount,
		RemainingAmount:      m.InstallmentPlanRemainingAmount,
		InterestRatePercent:  m.InstallmentPlanInterestRatePercent,
		NumberOfInstallments: m.InstallmentPlanNumberOfInstallments,
		TotalInterest:        m.InstallmentPlanTotalInterest,
		TotalPayable:         m.InstallmentPlanTotalPayable,
		InstallmentAmount:    m.InstallmentPlanInstallmentAmount,
		Status:               string(m.InstallmentPlanStatus),
		CompletedAt:          m.InstallmentPlanCompletedAt,
		Installments:         ToInstallmentResponses(rows),
		CreatedAt:            m.InstallmentPlanCreatedAt,
	}
}
