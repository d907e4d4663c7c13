// file: internals/features/payment/installments/model/credit_application_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreditApplicationStatus string

const (
	CreditStatusApproved CreditApplicationStatus = "approved"
	CreditStatusClosed   CreditApplicationStatus = "closed"
)

// Aplikasi kredit BNPL: limit yang disetujui + jumlah terpakai.
// Limit terpakai dikembalikan saat plan BNPL lunas.
type CreditApplication struct {
	// PK
	CreditApplicationID uuid.UUID `gorm:"column:credit_application_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"credit_application_id"`

	// FK → users(id)
	CreditApplicationUserID uuid.UUID `gorm:"column:credit_application_user_id;type:uuid;not null;index" json:"credit_application_user_id"`

	CreditApplicationCreditLimit float64 `gorm:"column:credit_application_credit_limit;not null;check:credit_application_credit_limit>=0" json:"credit_application_credit_limit"`
	CreditApplicationUsedAmount  float64 `gorm:"column:credit_application_used_amount;not null;default:0;check:credit_application_used_amount>=0" json:"credit_application_used_amount"`

	CreditApplicationStatus CreditApplicationStatus `gorm:"column:credit_application_status;type:varchar(16);not null;default:'approved'" json:"credit_application_status"`

	// Timestamps (eksplisit)
	CreditApplicationCreatedAt time.Time      `gorm:"column:credit_application_created_at;not null;default:now()" json:"credit_application_created_at"`
	CreditApplicationUpdatedAt time.Time      `gorm:"column:credit_application_updated_at;not null;default:now()" json:"credit_application_updated_at"`
	CreditApplicationDeletedAt gorm.DeletedAt `gorm:"column:credit_application_deleted_at;index" json:"-"`
}

func (CreditApplication) TableName() string {
	return "credit_applications"
}

// Sisa limit yang bisa dipakai.
func (m *CreditApplication) AvailableLimit() float64 {
	return m.CreditApplicationCreditLimit - m.CreditApplicationUsedAmount
}

func (m *CreditApplication) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.CreditApplicationCreatedAt.IsZero() {
		m.CreditApplicationCreatedAt = now
	}
	m.CreditApplicationUpdatedAt = now
	return nil
}

func (m *CreditApplication) BeforeUpdate(tx *gorm.DB) (err error) {
	m.CreditApplicationUpdatedAt = time.Now()
	return nil
}
