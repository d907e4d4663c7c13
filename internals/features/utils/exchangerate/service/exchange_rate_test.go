package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRate(t *testing.T) {
	rate, err := Rate("USD", "IDR")
	require.NoError(t, err)
	assert.Equal(t, 16300.0, rate)

	rate, err = Rate("IDR", "USD")
	require.NoError(t, err)
	assert.InDelta(t, 1.0/16300, rate, 1e-12)

	// Case-insensitive + trim
	rate, err = Rate(" usd ", "idr")
	require.NoError(t, err)
	assert.Equal(t, 16300.0, rate)

	rate, err = Rate("EUR", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 1.0, rate)
}

func TestRate_UnknownCurrency(t *testing.T) {
	for _, pair := range [][2]string{{"XYZ", "IDR"}, {"IDR", "XYZ"}} {
		_, err := Rate(pair[0], pair[1])
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe, "%s→%s", pair[0], pair[1])
		assert.Equal(t, fiber.StatusNotFound, fe.Code)
	}
}

func TestConvert(t *testing.T) {
	got, err := Convert(2, "USD", "IDR")
	require.NoError(t, err)
	assert.Equal(t, 32600.0, got)

	got, err = Convert(32600, "IDR", "USD")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 1e-9)

	_, err = Convert(10, "USD", "BTC")
	assert.Error(t, err)
}
