// file: internals/features/utils/exchangerate/controller/exchange_rate_controller.go
package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"tokoku_backend/internals/features/utils/exchangerate/service"
	helper "tokoku_backend/internals/helpers"
)

type ExchangeRateController struct{}

// GET /api/public/exchange-rates/:from/:to?amount=100
func (ctl *ExchangeRateController) Convert(c *fiber.Ctx) error {
	from := c.Params("from")
	to := c.Params("to")

	amount := 1.0
	if raw := c.Query("amount"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return helper.Error(c, fiber.StatusBadRequest, "Query amount tidak valid")
		}
		amount = v
	}

	rate, err := service.Rate(from, to)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Kurs berhasil diambil", fiber.Map{
		"from":      from,
		"to":        to,
		"rate":      rate,
		"amount":    amount,
		"converted": amount * rate,
	})
}
