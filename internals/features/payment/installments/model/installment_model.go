// file: internals/features/payment/installments/model/installment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — status baris cicilan
// Transisi yang dimodelkan monoton: pending → paid (tidak ada "unpay").
// =========================================================

type InstallmentStatus string

const (
	InstallmentStatusPending InstallmentStatus = "pending"
	InstallmentStatusPaid    InstallmentStatus = "paid"
	InstallmentStatusOverdue InstallmentStatus = "overdue"
	InstallmentStatusSkipped InstallmentStatus = "skipped"
)

// =========================================================
// MODEL — satu baris cicilan, panjang schedule fixed saat create
// =========================================================

type Installment struct {
	// PK
	InstallmentID uuid.UUID `gorm:"column:installment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"installment_id"`

	// FK → installment_plans(installment_plan_id)
	InstallmentPlanID uuid.UUID `gorm:"column:installment_plan_id;type:uuid;not null;index;uniqueIndex:uniq_plan_number,priority:1" json:"installment_plan_id"`

	InstallmentNumber int     `gorm:"column:installment_number;not null;uniqueIndex:uniq_plan_number,priority:2" json:"installment_number"`
	InstallmentAmount float64 `gorm:"column:installment_amount;not null;check:installment_amount>=0" json:"installment_amount"`

	InstallmentDueDate time.Time         `gorm:"column:installment_due_date;not null;index:ix_installment_due" json:"installment_due_date"`
	InstallmentStatus  InstallmentStatus `gorm:"column:installment_status;type:varchar(16);not null;default:'pending';index:ix_installment_status" json:"installment_status"`

	// Pembayaran
	InstallmentPaidAt        *time.Time `gorm:"column:installment_paid_at" json:"installment_paid_at,omitempty"`
	InstallmentPaidAmount    *float64   `gorm:"column:installment_paid_amount" json:"installment_paid_amount,omitempty"`
	InstallmentLateFee       float64    `gorm:"column:installment_late_fee;not null;default:0" json:"installment_late_fee"`
	InstallmentTransactionID *string    `gorm:"column:installment_transaction_id;type:varchar(100)" json:"installment_transaction_id,omitempty"`
	InstallmentSnapToken     *string    `gorm:"column:installment_snap_token;type:varchar(120)" json:"installment_snap_token,omitempty"`

	// Timestamps (eksplisit)
	InstallmentCreatedAt time.Time      `gorm:"column:installment_created_at;not null;default:now()" json:"installment_created_at"`
	InstallmentUpdatedAt time.Time      `gorm:"column:installment_updated_at;not null;default:now()" json:"installment_updated_at"`
	InstallmentDeletedAt gorm.DeletedAt `gorm:"column:installment_deleted_at;index" json:"-"`
}

func (Installment) TableName() string {
	return "installments"
}

func (m *Installment) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.InstallmentCreatedAt.IsZero() {
		m.InstallmentCreatedAt = now
	}
	m.InstallmentUpdatedAt = now
	return nil
}

func (m *Installment) BeforeUpdate(tx *gorm.DB) (err error) {
	m.InstallmentUpdatedAt = time.Now()
	return nil
}
