// file: internals/features/pricing/dynamicprice/controller/dynamic_price_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tokoku_backend/internals/features/pricing/dynamicprice/dto"
	pricing "tokoku_backend/internals/features/pricing/dynamicprice/model"
	"tokoku_backend/internals/features/pricing/dynamicprice/service"
	helper "tokoku_backend/internals/helpers"
)

// =======================================================
// BOOTSTRAP
// =======================================================

type DynamicPriceController struct {
	DB *gorm.DB
}

var validate = validator.New()

// =======================================================
// HELPERS
// =======================================================

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

func isUniqueViolation(err error) bool {
	return err != nil &&
		(strings.Contains(err.Error(), "duplicate key value") ||
			strings.Contains(err.Error(), "unique constraint"))
}

func findRecord(tx *gorm.DB, id uuid.UUID) (*pricing.DynamicPrice, error) {
	var rec pricing.DynamicPrice
	if err := tx.First(&rec, "dynamic_price_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Record harga tidak ditemukan")
		}
		return nil, err
	}
	return &rec, nil
}

// =======================================================
// ADMIN — lifecycle record
// =======================================================

// POST /api/a/pricing
// Mengaktifkan automation harga untuk satu produk (create record).
func (ctl *DynamicPriceController) EnableAutomation(c *fiber.Ctx) error {
	var req dto.DynamicPriceCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.MinimumPrice > req.OriginalPrice {
		return helper.Error(c, fiber.StatusUnprocessableEntity, "Harga minimum tidak boleh di atas harga original")
	}

	rec := pricing.DynamicPrice{
		DynamicPriceProductID:     req.ProductID,
		DynamicPriceProductName:   req.ProductName,
		DynamicPriceTags:          req.Tags,
		DynamicPriceOriginalPrice: req.OriginalPrice,
		DynamicPriceCostPrice:     req.CostPrice,
		DynamicPriceMinimumPrice:  req.MinimumPrice,
		DynamicPriceCurrentPrice:  req.OriginalPrice,

		DynamicPriceWeightPageViews:       service.DefaultWeightPageViews,
		DynamicPriceWeightCartAdds:        service.DefaultWeightCartAdds,
		DynamicPriceWeightWishlistAdds:    service.DefaultWeightWishlistAdds,
		DynamicPriceWeightSearchFrequency: service.DefaultWeightSearchFrequency,
		DynamicPriceWeightConversionRate:  service.DefaultWeightConversionRate,

		DynamicPriceDemandLevel:       pricing.DemandVeryLow,
		DynamicPriceAutomationEnabled: true,
	}

	if err := ctl.DB.Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "Produk sudah punya record harga dinamis")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Automation harga diaktifkan", dto.ToDynamicPriceResponse(rec))
}

// GET /api/a/pricing/:id
func (ctl *DynamicPriceController) GetDetail(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tidak valid")
	}

	rec, err := findRecord(ctl.DB, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Record harga berhasil diambil", dto.ToDynamicPriceResponse(*rec))
}

// GET /api/a/pricing
func (ctl *DynamicPriceController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "updated_at", "desc", helper.AdminOpts)

	q := ctl.DB.Model(&pricing.DynamicPrice{})
	if lvl := strings.TrimSpace(c.Query("demand_level")); lvl != "" {
		q = q.Where("dynamic_price_demand_level = ?", lvl)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	allowedSort := map[string]string{
		"updated_at":    "dynamic_price_updated_at",
		"demand_score":  "dynamic_price_demand_score",
		"current_price": "dynamic_price_current_price",
	}
	orderClause, err := p.SafeOrderClause(allowedSort, "updated_at")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "sort_by tidak valid")
	}

	var rows []pricing.DynamicPrice
	if err := q.Order(strings.TrimPrefix(orderClause, "ORDER BY ")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.DynamicPriceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToDynamicPriceResponse(r))
	}
	return helper.SuccessList(c, "Daftar record harga berhasil diambil", out, helper.BuildMeta(total, p))
}

// PATCH /api/a/pricing/:id/price
// Manual edit. Guard minimum hanya jalan kalau enforce_minimum=true —
// default mengikuti perilaku lama (tanpa guard).
func (ctl *DynamicPriceController) UpdatePriceManual(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var req dto.ManualPriceUpdateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	reason := service.ReasonManual
	if req.Reason != nil && strings.TrimSpace(*req.Reason) != "" {
		reason = strings.TrimSpace(*req.Reason)
	}

	var out dto.DynamicPriceResponse
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		rec, err := findRecord(tx, id)
		if err != nil {
			return err
		}

		if req.EnforceMinimum {
			if err := service.ValidateMinimumPrice(rec, req.NewPrice); err != nil {
				return err
			}
		}

		service.UpdatePrice(rec, reason, req.NewPrice)

		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		out = dto.ToDynamicPriceResponse(*rec)
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Harga berhasil diperbarui", out)
}

// PATCH /api/a/pricing/:id/rules
// Partial update rule tables + bobot + strategi kompetitor.
func (ctl *DynamicPriceController) UpdateRules(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var req dto.DynamicPriceRulesUpdateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var out dto.DynamicPriceResponse
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		rec, err := findRecord(tx, id)
		if err != nil {
			return err
		}

		if req.TimeRules != nil {
			rec.DynamicPriceTimeRules = *req.TimeRules
		}
		if req.InventoryRules != nil {
			rec.DynamicPriceInventoryRules = *req.InventoryRules
		}
		if req.SegmentRules != nil {
			rec.DynamicPriceSegmentRules = *req.SegmentRules
		}
		if req.CompetitorStrategy != nil {
			rec.DynamicPriceCompetitorStrategy = pricing.CompetitorStrategy(*req.CompetitorStrategy)
		}
		if req.CompetitorUndercut != nil {
			rec.DynamicPriceCompetitorUndercut = *req.CompetitorUndercut
		}
		if req.WeightPageViews != nil {
			rec.DynamicPriceWeightPageViews = *req.WeightPageViews
		}
		if req.WeightCartAdds != nil {
			rec.DynamicPriceWeightCartAdds = *req.WeightCartAdds
		}
		if req.WeightWishlistAdds != nil {
			rec.DynamicPriceWeightWishlistAdds = *req.WeightWishlistAdds
		}
		if req.WeightSearchFrequency != nil {
			rec.DynamicPriceWeightSearchFrequency = *req.WeightSearchFrequency
		}
		if req.WeightConversionRate != nil {
			rec.DynamicPriceWeightConversionRate = *req.WeightConversionRate
		}

		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		out = dto.ToDynamicPriceResponse(*rec)
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Rule pricing berhasil diperbarui", out)
}

// =======================================================
// PUBLIC — storefront
// =======================================================

// GET /api/public/pricing/products/:product_id
func (ctl *DynamicPriceController) GetPublicPrice(c *fiber.Ctx) error {
	productID, err := parseUUIDParam(c, "product_id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "product_id tidak valid")
	}

	var rec pricing.DynamicPrice
	if err := ctl.DB.First(&rec, "dynamic_price_product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Record harga tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Harga berhasil diambil", dto.ToPublicPriceResponse(rec))
}

// =======================================================
// INTERNAL — sinyal perilaku
// =======================================================

// POST /api/internal/pricing/signals
// Increment counter saja; skor demand dihitung ulang lewat endpoint recalc.
func (ctl *DynamicPriceController) RecordSignal(c *fiber.Ctx) error {
	var req dto.BehaviorSignalDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var rec pricing.DynamicPrice
		if err := tx.First(&rec, "dynamic_price_product_id = ?", req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Record harga tidak ditemukan")
			}
			return err
		}

		switch req.Signal {
		case "view":
			rec.DynamicPricePageViews++
		case "cart":
			rec.DynamicPriceCartAdds++
		case "wishlist":
			rec.DynamicPriceWishlistAdds++
		case "search":
			rec.DynamicPriceSearchFrequency++
		}
		if req.ConversionRate != nil {
			rec.DynamicPriceConversionRate = *req.ConversionRate
		}

		return tx.Save(&rec).Error
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Sinyal perilaku dicatat", nil)
}
