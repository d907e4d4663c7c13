// file: internals/features/payment/installments/service/midtrans.go
package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"tokoku_backend/internals/features/payment/installments/model"
)

var SnapClient snap.Client

// InitMidtrans menginisialisasi Midtrans Snap Client dengan server key.
func InitMidtrans(serverKey string) {
	SnapClient.New(serverKey, midtrans.Sandbox)
}

// InstallmentOrderID membentuk order id Midtrans untuk satu baris cicilan.
// Format: INST-<plan_id>-<nomor> (dipakai lagi saat parsing webhook).
func InstallmentOrderID(planID uuid.UUID, number int) string {
	return fmt.Sprintf("INST-%s-%d", planID, number)
}

// ParseInstallmentOrderID membalik format di atas.
func ParseInstallmentOrderID(orderID string) (uuid.UUID, int, error) {
	rest, ok := strings.CutPrefix(orderID, "INST-")
	if !ok {
		return uuid.Nil, 0, fmt.Errorf("order_id %q bukan order cicilan", orderID)
	}
	idx := strings.LastIndex(rest, "-")
	if idx < 0 {
		return uuid.Nil, 0, fmt.Errorf("order_id %q tidak valid", orderID)
	}
	planID, err := uuid.Parse(rest[:idx])
	if err != nil {
		return uuid.Nil, 0, fmt.Errorf("order_id %q: plan id tidak valid", orderID)
	}
	number, err := strconv.Atoi(rest[idx+1:])
	if err != nil || number < 1 {
		return uuid.Nil, 0, fmt.Errorf("order_id %q: nomor cicilan tidak valid", orderID)
	}
	return planID, number, nil
}

// GenerateInstallmentSnapToken membuat token Snap Midtrans untuk membayar
// satu baris cicilan (amount + late fee kalau ada).
func GenerateInstallmentSnapToken(plan model.InstallmentPlan, inst model.Installment, name string, email string) (string, error) {
	gross := inst.InstallmentAmount + inst.InstallmentLateFee

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  InstallmentOrderID(plan.InstallmentPlanID, inst.InstallmentNumber),
			GrossAmt: int64(math.Round(gross)),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: name,
			Email: email,
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", err
	}

	return resp.Token, nil
}
