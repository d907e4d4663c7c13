package service

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokoku_backend/internals/features/payment/installments/model"
)

func newActivePlanWithRows(n int) (*model.InstallmentPlan, []model.Installment) {
	plan := &model.InstallmentPlan{
		InstallmentPlanID:     uuid.New(),
		InstallmentPlanStatus: model.PlanStatusActive,
	}
	rows := make([]model.Installment, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, model.Installment{
			InstallmentPlanID:  plan.InstallmentPlanID,
			InstallmentNumber:  i,
			InstallmentAmount:  250,
			InstallmentDueDate: time.Date(2026, time.Month(i), 15, 0, 0, 0, 0, time.UTC),
			InstallmentStatus:  model.InstallmentStatusPending,
		})
	}
	return plan, rows
}

func TestApplyInstallmentPayment_HappyPath(t *testing.T) {
	plan, rows := newActivePlanWithRows(2)
	paidAt := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	inst, allPaid, err := ApplyInstallmentPayment(plan, rows, 1, "TRX-001", paidAt)
	require.NoError(t, err)
	require.NotNil(t, inst)
	assert.False(t, allPaid)

	assert.Equal(t, model.InstallmentStatusPaid, rows[0].InstallmentStatus)
	require.NotNil(t, rows[0].InstallmentPaidAt)
	assert.True(t, rows[0].InstallmentPaidAt.Equal(paidAt))
	require.NotNil(t, rows[0].InstallmentPaidAmount)
	assert.Equal(t, 250.0, *rows[0].InstallmentPaidAmount)
	require.NotNil(t, rows[0].InstallmentTransactionID)
	assert.Equal(t, "TRX-001", *rows[0].InstallmentTransactionID)
	assert.Equal(t, model.PlanStatusActive, plan.InstallmentPlanStatus)

	// Baris terakhir → plan lunas
	_, allPaid, err = ApplyInstallmentPayment(plan, rows, 2, "TRX-002", paidAt)
	require.NoError(t, err)
	assert.True(t, allPaid)
	assert.Equal(t, model.PlanStatusCompleted, plan.InstallmentPlanStatus)
	require.NotNil(t, plan.InstallmentPlanCompletedAt)
}

// Bayar dua kali baris yang sama: 409 dan schedule tidak berubah.
func TestApplyInstallmentPayment_AlreadyPaid(t *testing.T) {
	plan, rows := newActivePlanWithRows(2)
	paidAt := time.Now()

	_, _, err := ApplyInstallmentPayment(plan, rows, 1, "TRX-001", paidAt)
	require.NoError(t, err)
	firstPaidAt := *rows[0].InstallmentPaidAt

	_, _, err = ApplyInstallmentPayment(plan, rows, 1, "TRX-DUP", time.Now())
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusConflict, fe.Code)

	assert.True(t, rows[0].InstallmentPaidAt.Equal(firstPaidAt))
	assert.Equal(t, "TRX-001", *rows[0].InstallmentTransactionID)
	assert.Equal(t, model.InstallmentStatusPending, rows[1].InstallmentStatus)
}

func TestApplyInstallmentPayment_NumberNotFound(t *testing.T) {
	plan, rows := newActivePlanWithRows(3)

	_, _, err := ApplyInstallmentPayment(plan, rows, 99, "TRX-001", time.Now())
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}

func TestApplyInstallmentPayment_PlanNotActive(t *testing.T) {
	for _, status := range []model.InstallmentPlanStatus{model.PlanStatusCompleted, model.PlanStatusCancelled} {
		plan, rows := newActivePlanWithRows(2)
		plan.InstallmentPlanStatus = status

		_, _, err := ApplyInstallmentPayment(plan, rows, 1, "TRX-001", time.Now())
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe, "status=%s", status)
		assert.Equal(t, fiber.StatusConflict, fe.Code)
		assert.Equal(t, model.InstallmentStatusPending, rows[0].InstallmentStatus)
	}
}

// Denda keterlambatan ikut masuk paid amount.
func TestApplyInstallmentPayment_LateFeeIncluded(t *testing.T) {
	plan, rows := newActivePlanWithRows(1)
	rows[0].InstallmentStatus = model.InstallmentStatusOverdue
	rows[0].InstallmentLateFee = 12.5

	inst, allPaid, err := ApplyInstallmentPayment(plan, rows, 1, "TRX-001", time.Now())
	require.NoError(t, err)
	assert.True(t, allPaid)
	require.NotNil(t, inst.InstallmentPaidAmount)
	assert.InDelta(t, 262.5, *inst.InstallmentPaidAmount, 1e-9)
}

func TestMarkOverdueRows(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := []model.Installment{
		{InstallmentNumber: 1, InstallmentAmount: 100, InstallmentDueDate: now.AddDate(0, -2, 0), InstallmentStatus: model.InstallmentStatusPaid},
		{InstallmentNumber: 2, InstallmentAmount: 100, InstallmentDueDate: now.AddDate(0, -1, 0), InstallmentStatus: model.InstallmentStatusPending},
		{InstallmentNumber: 3, InstallmentAmount: 100, InstallmentDueDate: now.AddDate(0, 1, 0), InstallmentStatus: model.InstallmentStatusPending},
	}

	changed := MarkOverdueRows(rows, now, 5)

	assert.Equal(t, 1, changed)
	assert.Equal(t, model.InstallmentStatusPaid, rows[0].InstallmentStatus)
	assert.Equal(t, model.InstallmentStatusOverdue, rows[1].InstallmentStatus)
	assert.InDelta(t, 5.0, rows[1].InstallmentLateFee, 1e-9)
	assert.Equal(t, model.InstallmentStatusPending, rows[2].InstallmentStatus)
	assert.Equal(t, 0.0, rows[2].InstallmentLateFee)
}

func TestCancelPlan(t *testing.T) {
	t.Run("baris belum bayar di-skip, yang paid tetap", func(t *testing.T) {
		plan, rows := newActivePlanWithRows(3)
		_, _, err := ApplyInstallmentPayment(plan, rows, 1, "TRX-001", time.Now())
		require.NoError(t, err)
		rows[1].InstallmentStatus = model.InstallmentStatusOverdue

		require.NoError(t, CancelPlan(plan, rows))

		assert.Equal(t, model.PlanStatusCancelled, plan.InstallmentPlanStatus)
		assert.Equal(t, model.InstallmentStatusPaid, rows[0].InstallmentStatus)
		assert.Equal(t, model.InstallmentStatusSkipped, rows[1].InstallmentStatus)
		assert.Equal(t, model.InstallmentStatusSkipped, rows[2].InstallmentStatus)
	})

	t.Run("cancel dua kali → conflict", func(t *testing.T) {
		plan, rows := newActivePlanWithRows(2)
		require.NoError(t, CancelPlan(plan, rows))

		err := CancelPlan(plan, rows)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusConflict, fe.Code)
	})
}

func TestConsumeCreditLimit(t *testing.T) {
	t.Run("dalam limit", func(t *testing.T) {
		app := &model.CreditApplication{
			CreditApplicationCreditLimit: 1000,
			CreditApplicationUsedAmount:  300,
			CreditApplicationStatus:      model.CreditStatusApproved,
		}
		require.NoError(t, ConsumeCreditLimit(app, 700))
		assert.Equal(t, 1000.0, app.CreditApplicationUsedAmount)
		assert.Equal(t, 0.0, app.AvailableLimit())
	})

	t.Run("melebihi limit → conflict", func(t *testing.T) {
		app := &model.CreditApplication{
			CreditApplicationCreditLimit: 1000,
			CreditApplicationUsedAmount:  300,
			CreditApplicationStatus:      model.CreditStatusApproved,
		}
		err := ConsumeCreditLimit(app, 701)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusConflict, fe.Code)
		assert.Equal(t, 300.0, app.CreditApplicationUsedAmount)
	})

	t.Run("aplikasi closed → conflict", func(t *testing.T) {
		app := &model.CreditApplication{
			CreditApplicationCreditLimit: 1000,
			CreditApplicationStatus:      model.CreditStatusClosed,
		}
		err := ConsumeCreditLimit(app, 10)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, fiber.StatusConflict, fe.Code)
	})
}

func TestRestoreCreditLimit(t *testing.T) {
	app := &model.CreditApplication{
		CreditApplicationCreditLimit: 1000,
		CreditApplicationUsedAmount:  400,
		CreditApplicationStatus:      model.CreditStatusApproved,
	}

	RestoreCreditLimit(app, 150)
	assert.Equal(t, 250.0, app.CreditApplicationUsedAmount)

	// Clamp: restore lebih besar dari used tidak boleh bikin negatif
	RestoreCreditLimit(app, 9999)
	assert.Equal(t, 0.0, app.CreditApplicationUsedAmount)
}
