// file: internals/features/payment/installments/service/webhook.go
package service

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"tokoku_backend/internals/features/payment/installments/model"
)

// HandleInstallmentStatusWebhook dipanggil saat menerima notifikasi dari
// Midtrans untuk order cicilan (order_id format INST-<plan>-<n>).
func HandleInstallmentStatusWebhook(db *gorm.DB, body map[string]interface{}) error {
	orderID, ok1 := body["order_id"].(string)
	status, ok2 := body["transaction_status"].(string)
	if !ok1 || !ok2 {
		log.Println("[ERROR] Payload webhook tidak lengkap:", body)
		return fmt.Errorf("invalid payload")
	}

	log.Println("📄 Order ID:", orderID)
	log.Println("📌 Transaction Status:", status)

	planID, number, err := ParseInstallmentOrderID(orderID)
	if err != nil {
		log.Println("[ERROR] order_id tidak dikenali:", err)
		return err
	}

	transactionID, _ := body["transaction_id"].(string)

	switch status {
	case "capture", "settlement":
		return db.Transaction(func(tx *gorm.DB) error {
			var plan model.InstallmentPlan
			if err := tx.First(&plan, "installment_plan_id = ?", planID).Error; err != nil {
				log.Println("[ERROR] Plan cicilan tidak ditemukan:", err)
				return fmt.Errorf("installment plan %s not found", planID)
			}

			var rows []model.Installment
			if err := tx.Where("installment_plan_id = ?", planID).
				Order("installment_number ASC").
				Find(&rows).Error; err != nil {
				return err
			}

			paid, completed, err := ApplyInstallmentPayment(&plan, rows, number, transactionID, time.Now())
			if err != nil {
				log.Println("[ERROR] Pembayaran cicilan ditolak:", err)
				return err
			}

			if err := tx.Save(paid).Error; err != nil {
				return err
			}
			if err := tx.Save(&plan).Error; err != nil {
				return err
			}

			// BNPL: plan lunas → kembalikan limit yang terpakai
			if completed && plan.InstallmentPlanType == model.PlanTypeBNPL && plan.InstallmentPlanCreditApplicationID != nil {
				var app model.CreditApplication
				if err := tx.First(&app, "credit_application_id = ?", *plan.InstallmentPlanCreditApplicationID).Error; err != nil {
					log.Println("[ERROR] Aplikasi kredit tidak ditemukan:", err)
					return err
				}
				RestoreCreditLimit(&app, plan.InstallmentPlanRemainingAmount)
				if err := tx.Save(&app).Error; err != nil {
					return err
				}
			}
			return nil
		})

	case "expire":
		log.Println("[INFO] Transaksi cicilan expired:", orderID)
	case "cancel":
		log.Println("[INFO] Transaksi cicilan dibatalkan:", orderID)
	default:
		log.Println("[INFO] Status tidak diproses:", status)
	}

	return nil
}
