// file: internals/features/payment/installments/model/installment_plan_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — status & tipe plan
// =========================================================

type InstallmentPlanStatus string

const (
	PlanStatusActive    InstallmentPlanStatus = "active"
	PlanStatusCompleted InstallmentPlanStatus = "completed"
	PlanStatusCancelled InstallmentPlanStatus = "cancelled"
)

type InstallmentPlanType string

const (
	PlanTypeInstallment InstallmentPlanType = "installment"
	PlanTypeBNPL        InstallmentPlanType = "bnpl"
)

// =========================================================
// MODEL — satu plan per order yang dicicil
// =========================================================

type InstallmentPlan struct {
	// PK
	InstallmentPlanID uuid.UUID `gorm:"column:installment_plan_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"installment_plan_id"`

	// FK → users(id) & orders(id)
	InstallmentPlanUserID  uuid.UUID `gorm:"column:installment_plan_user_id;type:uuid;not null;index" json:"installment_plan_user_id"`
	InstallmentPlanOrderID uuid.UUID `gorm:"column:installment_plan_order_id;type:uuid;not null;uniqueIndex:uniq_installment_plan_order" json:"installment_plan_order_id"`

	// FK → credit_applications (khusus BNPL)
	InstallmentPlanCreditApplicationID *uuid.UUID `gorm:"column:installment_plan_credit_application_id;type:uuid;index" json:"installment_plan_credit_application_id,omitempty"`

	InstallmentPlanType InstallmentPlanType `gorm:"column:installment_plan_type;type:varchar(16);not null;default:'installment'" json:"installment_plan_type"`

	// Parameter cicilan (fixed saat create)
	InstallmentPlanTotalAmount          float64 `gorm:"column:installment_plan_total_amount;not null;check:installment_plan_total_amount>0" json:"installment_plan_total_amount"`
	InstallmentPlanDownPaymentPercent   float64 `gorm:"column:installment_plan_down_payment_percent;not null;default:0" json:"installment_plan_down_payment_percent"`
	InstallmentPlanDownPaymentAmount    float64 `gorm:"column:installment_plan_down_payment_amount;not null;default:0" json:"installment_plan_down_payment_amount"`
	InstallmentPlanRemainingAmount      float64 `gorm:"column:installment_plan_remaining_amount;not null" json:"installment_plan_remaining_amount"`
	InstallmentPlanInterestRatePercent  float64 `gorm:"column:installment_plan_interest_rate_percent;not null;default:0" json:"installment_plan_interest_rate_percent"`
	InstallmentPlanNumberOfInstallments int     `gorm:"column:installment_plan_number_of_installments;not null;check:installment_plan_number_of_installments>0" json:"installment_plan_number_of_installments"`

	// Hasil kalkulasi (flat interest)
	InstallmentPlanTotalInterest     float64 `gorm:"column:installment_plan_total_interest;not null;default:0" json:"installment_plan_total_interest"`
	InstallmentPlanTotalPayable      float64 `gorm:"column:installment_plan_total_payable;not null" json:"installment_plan_total_payable"`
	InstallmentPlanInstallmentAmount float64 `gorm:"column:installment_plan_installment_amount;not null" json:"installment_plan_installment_amount"`

	// Status plan
	InstallmentPlanStatus      InstallmentPlanStatus `gorm:"column:installment_plan_status;type:varchar(16);not null;default:'active';index:ix_installment_plan_status" json:"installment_plan_status"`
	InstallmentPlanCompletedAt *time.Time            `gorm:"column:installment_plan_completed_at" json:"installment_plan_completed_at,omitempty"`

	// Timestamps (eksplisit)
	InstallmentPlanCreatedAt time.Time      `gorm:"column:installment_plan_created_at;not null;default:now()" json:"installment_plan_created_at"`
	InstallmentPlanUpdatedAt time.Time      `gorm:"column:installment_plan_updated_at;not null;default:now()" json:"installment_plan_updated_at"`
	InstallmentPlanDeletedAt gorm.DeletedAt `gorm:"column:installment_plan_deleted_at;index" json:"-"`
}

func (InstallmentPlan) TableName() string {
	return "installment_plans"
}

func (m *InstallmentPlan) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.InstallmentPlanCreatedAt.IsZero() {
		m.InstallmentPlanCreatedAt = now
	}
	m.InstallmentPlanUpdatedAt = now
	return nil
}

func (m *InstallmentPlan) BeforeUpdate(tx *gorm.DB) (err error) {
	m.InstallmentPlanUpdatedAt = time.Now()
	return nil
}
