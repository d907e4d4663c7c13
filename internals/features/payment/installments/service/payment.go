// file: internals/features/payment/installments/service/payment.go
//
// Transisi status pembayaran — pure, tanpa I/O. Controller/webhook yang
// load + save di dalam satu transaksi.
package service

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"tokoku_backend/internals/features/payment/installments/model"
)

// ApplyInstallmentPayment menandai satu baris paid.
//
// Error: 404 kalau nomor tidak ada di schedule, 409 kalau baris sudah
// paid (AlreadyPaid) atau plan tidak aktif — schedule tidak berubah.
// Return baris yang dibayar + true kalau semua baris sudah paid (plan
// lunas → status completed).
func ApplyInstallmentPayment(plan *model.InstallmentPlan, rows []model.Installment, installmentNumber int, transactionID string, paidAt time.Time) (*model.Installment, bool, error) {
	if plan.InstallmentPlanStatus != model.PlanStatusActive {
		return nil, false, fiber.NewError(fiber.StatusConflict,
			fmt.Sprintf("Plan sudah %s, tidak bisa menerima pembayaran", plan.InstallmentPlanStatus))
	}

	var target *model.Installment
	for i := range rows {
		if rows[i].InstallmentNumber == installmentNumber {
			target = &rows[i]
			break
		}
	}
	if target == nil {
		return nil, false, fiber.NewError(fiber.StatusNotFound, "Cicilan tidak ditemukan")
	}
	if target.InstallmentStatus == model.InstallmentStatusPaid {
		return nil, false, fiber.NewError(fiber.StatusConflict, "Cicilan sudah dibayar")
	}

	paidAmount := target.InstallmentAmount + target.InstallmentLateFee
	target.InstallmentStatus = model.InstallmentStatusPaid
	target.InstallmentPaidAt = &paidAt
	target.InstallmentPaidAmount = &paidAmount
	if transactionID != "" {
		target.InstallmentTransactionID = &transactionID
	}

	allPaid := true
	for i := range rows {
		if rows[i].InstallmentStatus != model.InstallmentStatusPaid {
			allPaid = false
			break
		}
	}
	if allPaid {
		plan.InstallmentPlanStatus = model.PlanStatusCompleted
		plan.InstallmentPlanCompletedAt = &paidAt
	}

	return target, allPaid, nil
}

// MarkOverdueRows: baris pending yang lewat jatuh tempo → overdue +
// late fee persentase dari amount. Return jumlah baris yang berubah.
func MarkOverdueRows(rows []model.Installment, now time.Time, lateFeePercent float64) int {
	changed := 0
	for i := range rows {
		if rows[i].InstallmentStatus == model.InstallmentStatusPending && rows[i].InstallmentDueDate.Before(now) {
			rows[i].InstallmentStatus = model.InstallmentStatusOverdue
			rows[i].InstallmentLateFee = rows[i].InstallmentAmount * lateFeePercent / 100
			changed++
		}
	}
	return changed
}

// CancelPlan: plan aktif → cancelled; baris yang belum dibayar di-skip.
func CancelPlan(plan *model.InstallmentPlan, rows []model.Installment) error {
	if plan.InstallmentPlanStatus != model.PlanStatusActive {
		return fiber.NewError(fiber.StatusConflict,
			fmt.Sprintf("Plan sudah %s, tidak bisa dibatalkan", plan.InstallmentPlanStatus))
	}

	plan.InstallmentPlanStatus = model.PlanStatusCancelled
	for i := range rows {
		if rows[i].InstallmentStatus == model.InstallmentStatusPending ||
			rows[i].InstallmentStatus == model.InstallmentStatusOverdue {
			rows[i].InstallmentStatus = model.InstallmentStatusSkipped
		}
	}
	return nil
}

// RestoreCreditLimit mengembalikan limit BNPL yang terpakai saat plan
// lunas. Clamp supaya used amount tidak negatif.
func RestoreCreditLimit(app *model.CreditApplication, amount float64) {
	app.CreditApplicationUsedAmount -= amount
	if app.CreditApplicationUsedAmount < 0 {
		app.CreditApplicationUsedAmount = 0
	}
}

// ConsumeCreditLimit memakai limit BNPL saat plan dibuat.
// 409 kalau sisa limit tidak cukup.
func ConsumeCreditLimit(app *model.CreditApplication, amount float64) error {
	if app.CreditApplicationStatus != model.CreditStatusApproved {
		return fiber.NewError(fiber.StatusConflict, "Aplikasi kredit tidak aktif")
	}
	if app.AvailableLimit() < amount {
		return fiber.NewError(fiber.StatusConflict,
			fmt.Sprintf("Limit kredit tidak cukup (sisa %.2f, butuh %.2f)", app.AvailableLimit(), amount))
	}
	app.CreditApplicationUsedAmount += amount
	return nil
}
