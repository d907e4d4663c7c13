package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallmentOrderID_RoundTrip(t *testing.T) {
	planID := uuid.New()

	orderID := InstallmentOrderID(planID, 7)
	assert.Equal(t, "INST-"+planID.String()+"-7", orderID)

	gotPlan, gotNumber, err := ParseInstallmentOrderID(orderID)
	require.NoError(t, err)
	assert.Equal(t, planID, gotPlan)
	assert.Equal(t, 7, gotNumber)
}

func TestParseInstallmentOrderID_Invalid(t *testing.T) {
	cases := []string{
		"",
		"DONATION-123",                         // bukan prefix cicilan
		"INST-",                                // tanpa isi
		"INST-bukan-uuid-3",                    // plan id rusak
		"INST-" + uuid.New().String(),          // tanpa nomor
		"INST-" + uuid.New().String() + "-0",   // nomor < 1
		"INST-" + uuid.New().String() + "-abc", // nomor bukan angka
	}
	for _, orderID := range cases {
		_, _, err := ParseInstallmentOrderID(orderID)
		assert.Error(t, err, "order_id=%q", orderID)
	}
}
