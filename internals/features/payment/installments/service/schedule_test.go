package service

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokoku_backend/internals/features/payment/installments/model"
)

var scheduleStart = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

func TestComputeInstallmentSchedule_NoInterestNoDownPayment(t *testing.T) {
	res, err := ComputeInstallmentSchedule(1000, 0, 0, 4, scheduleStart)
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.DownPaymentAmount)
	assert.Equal(t, 1000.0, res.RemainingAmount)
	assert.Equal(t, 0.0, res.TotalInterest)
	assert.Equal(t, 1000.0, res.TotalPayable)
	assert.Equal(t, 250.0, res.InstallmentAmount)

	require.Len(t, res.Rows, 4)
	for i, row := range res.Rows {
		assert.Equal(t, i+1, row.InstallmentNumber)
		assert.Equal(t, 250.0, row.InstallmentAmount)
		assert.Equal(t, model.InstallmentStatusPending, row.InstallmentStatus)
		assert.True(t, row.InstallmentDueDate.Equal(scheduleStart.AddDate(0, i+1, 0)), "baris %d", i+1)
	}
}

// Bunga flat: 800 × 12 × 6 / 1200 = 48, BUKAN amortisasi EMI.
func TestComputeInstallmentSchedule_FlatInterest(t *testing.T) {
	res, err := ComputeInstallmentSchedule(1000, 20, 12, 6, scheduleStart)
	require.NoError(t, err)

	assert.InDelta(t, 200.0, res.DownPaymentAmount, 1e-9)
	assert.InDelta(t, 800.0, res.RemainingAmount, 1e-9)
	assert.InDelta(t, 48.0, res.TotalInterest, 1e-9)
	assert.InDelta(t, 848.0, res.TotalPayable, 1e-9)
	assert.InDelta(t, 848.0/6, res.InstallmentAmount, 1e-9)
	require.Len(t, res.Rows, 6)
}

// Jumlah semua baris = total payable (modulo pembulatan float).
func TestComputeInstallmentSchedule_RowsSumToPayable(t *testing.T) {
	cases := []struct {
		total float64
		down  float64
		rate  float64
		n     int
	}{
		{1000, 0, 0, 4},
		{1000, 20, 12, 6},
		{2500, 10, 8.5, 12},
		{999.99, 33.3, 24, 36},
	}
	for _, c := range cases {
		res, err := ComputeInstallmentSchedule(c.total, c.down, c.rate, c.n, scheduleStart)
		require.NoError(t, err)

		sum := 0.0
		for _, row := range res.Rows {
			sum += row.InstallmentAmount
		}
		assert.InDelta(t, res.TotalPayable, sum, 1e-6, "total=%.2f n=%d", c.total, c.n)
		assert.InDelta(t, res.RemainingAmount+res.TotalInterest, res.TotalPayable, 1e-9)
	}
}

func TestComputeInstallmentSchedule_MonthlyDueDates(t *testing.T) {
	// 31 Januari: AddDate normalizes — perilaku time.AddDate standar.
	start := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	res, err := ComputeInstallmentSchedule(600, 0, 0, 3, start)
	require.NoError(t, err)

	assert.True(t, res.Rows[0].InstallmentDueDate.Equal(start.AddDate(0, 1, 0)))
	assert.True(t, res.Rows[1].InstallmentDueDate.Equal(start.AddDate(0, 2, 0)))
	assert.True(t, res.Rows[2].InstallmentDueDate.Equal(start.AddDate(0, 3, 0)))
}

func TestComputeInstallmentSchedule_Validation(t *testing.T) {
	cases := []struct {
		name  string
		total float64
		down  float64
		rate  float64
		n     int
	}{
		{"total nol", 0, 0, 0, 4},
		{"total negatif", -100, 0, 0, 4},
		{"down payment negatif", 1000, -1, 0, 4},
		{"down payment 100 persen", 1000, 100, 0, 4},
		{"bunga negatif", 1000, 0, -5, 4},
		{"nol cicilan", 1000, 0, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res, err := ComputeInstallmentSchedule(c.total, c.down, c.rate, c.n, scheduleStart)
			assert.Nil(t, res)
			var fe *fiber.Error
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, fiber.StatusBadRequest, fe.Code)
		})
	}
}
