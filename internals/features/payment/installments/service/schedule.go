// file: internals/features/payment/installments/service/schedule.go
//
// Kalkulasi jadwal cicilan. Bunga FLAT dibagi rata per bulan:
//
//	totalInterest = remaining * ratePctAnnual * n / 1200
//
// Bukan EMI amortisasi — formula ini dipertahankan persis supaya output
// finansial cocok dengan data yang sudah ada.
package service

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"tokoku_backend/internals/features/payment/installments/model"
)

type ScheduleResult struct {
	DownPaymentAmount float64
	RemainingAmount   float64
	TotalInterest     float64
	TotalPayable      float64
	InstallmentAmount float64
	Rows              []model.Installment
}

// ComputeInstallmentSchedule membuat schedule penuh: n baris, jatuh tempo
// per bulan kalender mulai satu bulan dari createdAt, semua pending.
func ComputeInstallmentSchedule(totalAmount, downPaymentPercent, interestRatePctAnnual float64, numberOfInstallments int, createdAt time.Time) (*ScheduleResult, error) {
	if totalAmount <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Total amount harus lebih dari 0")
	}
	if downPaymentPercent < 0 || downPaymentPercent >= 100 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Persentase uang muka harus di antara 0 dan 100")
	}
	if interestRatePctAnnual < 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Suku bunga tidak boleh negatif")
	}
	if numberOfInstallments <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Jumlah cicilan harus lebih dari 0")
	}

	downPaymentAmount := totalAmount * downPaymentPercent / 100
	remaining := totalAmount - downPaymentAmount
	totalInterest := remaining * interestRatePctAnnual * float64(numberOfInstallments) / 1200
	totalPayable := remaining + totalInterest
	installmentAmount := totalPayable / float64(numberOfInstallments)

	rows := make([]model.Installment, 0, numberOfInstallments)
	for i := 1; i <= numberOfInstallments; i++ {
		rows = append(rows, model.Installment{
			InstallmentNumber:  i,
			InstallmentAmount:  installmentAmount,
			InstallmentDueDate: createdAt.AddDate(0, i, 0),
			InstallmentStatus:  model.InstallmentStatusPending,
		})
	}

	return &ScheduleResult{
		DownPaymentAmount: downPaymentAmount,
		RemainingAmount:   remaining,
		TotalInterest:     totalInterest,
		TotalPayable:      totalPayable,
		InstallmentAmount: installmentAmount,
		Rows:              rows,
	}, nil
}
