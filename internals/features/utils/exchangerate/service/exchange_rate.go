// file: internals/features/utils/exchangerate/service/exchange_rate.go
//
// Lookup kurs statis (basis IDR). Tabel bisa dioverride lewat ENV kalau
// nanti mau sumber eksternal; untuk sekarang cukup tabel tetap.
package service

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Nilai 1 unit mata uang dalam IDR.
var ratesToIDR = map[string]float64{
	"IDR": 1,
	"USD": 16300,
	"EUR": 17800,
	"SGD": 12100,
	"MYR": 3650,
	"JPY": 110,
}

// Rate mengembalikan multiplier untuk konversi from → to.
func Rate(from, to string) (float64, error) {
	f, ok := ratesToIDR[strings.ToUpper(strings.TrimSpace(from))]
	if !ok {
		return 0, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Mata uang %q tidak dikenal", from))
	}
	t, ok := ratesToIDR[strings.ToUpper(strings.TrimSpace(to))]
	if !ok {
		return 0, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Mata uang %q tidak dikenal", to))
	}
	return f / t, nil
}

// Convert mengalikan amount dengan multiplier pasangan mata uang.
func Convert(amount float64, from, to string) (float64, error) {
	rate, err := Rate(from, to)
	if err != nil {
		return 0, err
	}
	return amount * rate, nil
}
