// file: internals/features/pricing/dynamicprice/controller/price_rules_controller.go
//
// Aksi layer harga: demand recalc, flash sale, kompetitor, waktu, stok,
// segmen. Tiap layer memanggil service.UpdatePrice sendiri-sendiri —
// last write wins, tanpa pipeline.
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tokoku_backend/internals/features/pricing/dynamicprice/dto"
	pricing "tokoku_backend/internals/features/pricing/dynamicprice/model"
	"tokoku_backend/internals/features/pricing/dynamicprice/service"
	helper "tokoku_backend/internals/helpers"
)

// =======================================================
// DEMAND
// =======================================================

// POST /api/a/pricing/:id/recalculate-demand
func (ctl *DynamicPriceController) RecalculateDemand(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var out dto.DynamicPriceResponse
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		rec, err := findRecord(tx, id)
		if err != nil {
			return err
		}
		service.CalculateDemandScore(rec)
		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		out = dto.ToDynamicPriceResponse(*rec)
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Skor demand dihitung ulang", out)
}

// POST /api/a/pricing/recalculate-demand
// Batch = loop sinkron atas hasil query, dipicu HTTP call (bukan scheduler).
func (ctl *DynamicPriceController) RecalculateAllDemand(c *fiber.Ctx) error {
	var recs []pricing.DynamicPrice
	if err := ctl.DB.Where("dynamic_price_automation_enabled = ?", true).Find(&recs).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	updated := 0
	for i := range recs {
		service.CalculateDemandScore(&recs[i])
		if err := ctl.DB.Save(&recs[i]).Error; err != nil {
			log.Printf("[PRICING] gagal simpan demand score product=%s: %v", recs[i].DynamicPriceProductID, err)
			continue
		}
		updated++
	}

	return helper.Success(c, "Skor demand dihitung ulang untuk semua produk", fiber.Map{
		"total":   len(recs),
		"updated": updated,
	})
}

// =======================================================
// FLASH SALE
// =======================================================

// POST /api/a/pricing/:id/flash-sale
func (ctl *DynamicPriceController) ActivateFlashSale(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var req dto.FlashSaleActivateDTO
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
		if err := service.ActivateFlashSale(rec, req.DiscountPercentage, req.StartAt, req.EndAt, req.QuantityCap); err != nil {
			return err
		}
		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		out = dto.ToDynamicPriceResponse(*rec)
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Flash sale diaktifkan", out)
}

// DELETE /api/a/pricing/:id/flash-sale
func (ctl *DynamicPriceController) DeactivateFlashSale(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var out dto.DynamicPriceResponse
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		rec, err := findRecord(tx, id)
		if err != nil {
			return err
		}
		if err := service.DeactivateFlashSale(rec); err != nil {
			return err
		}
		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		out = dto.ToDynamicPriceResponse(*rec)
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Flash sale dinonaktifkan", out)
}

// =======================================================
// KOMPETITOR
// =======================================================

// PUT /api/a/pricing/:id/competitor-prices
// Upsert snapshot harga satu sumber kompetitor, lalu terapkan rule.
func (ctl *DynamicPriceController) UpsertCompetitorPrice(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var req dto.CompetitorPriceUpsertDTO
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

		var cp pricing.CompetitorPrice
		err = tx.Where("competitor_price_dynamic_price_id = ? AND competitor_price_source = ?", rec.DynamicPriceID, req.Source).
			First(&cp).Error
		switch {
		case err == nil:
			cp.CompetitorPriceAmount = req.Amount
			cp.CompetitorPriceFetchedAt = time.Now()
			if err := tx.Save(&cp).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			cp = pricing.CompetitorPrice{
				CompetitorPriceDynamicPriceID: rec.DynamicPriceID,
				CompetitorPriceSource:         req.Source,
				CompetitorPriceAmount:         req.Amount,
				CompetitorPriceFetchedAt:      time.Now(),
			}
			if err := tx.Create(&cp).Error; err != nil {
				return err
			}
		default:
			return err
		}

		var competitors []pricing.CompetitorPrice
		if err := tx.Where("competitor_price_dynamic_price_id = ?", rec.DynamicPriceID).Find(&competitors).Error; err != nil {
			return err
		}

		if service.ApplyCompetitorRule(rec, competitors) {
			if err := tx.Save(rec).Error; err != nil {
				return err
			}
		}
		out = dto.ToDynamicPriceResponse(*rec)
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Harga kompetitor dicatat & rule diterapkan", out)
}

// POST /api/a/pricing/recalculate-competitor
// Loop sinkron: semua record automation-enabled, terapkan rule kompetitor.
func (ctl *DynamicPriceController) RecalculateCompetitorAll(c *fiber.Ctx) error {
	var recs []pricing.DynamicPrice
	if err := ctl.DB.Where("dynamic_price_automation_enabled = ?", true).Find(&recs).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	applied := 0
	for i := range recs {
		var competitors []pricing.CompetitorPrice
		if err := ctl.DB.Where("competitor_price_dynamic_price_id = ?", recs[i].DynamicPriceID).Find(&competitors).Error; err != nil {
			log.Printf("[PRICING] gagal load kompetitor product=%s: %v", recs[i].DynamicPriceProductID, err)
			continue
		}
		if service.ApplyCompetitorRule(&recs[i], competitors) {
			if err := ctl.DB.Save(&recs[i]).Error; err != nil {
				log.Printf("[PRICING] gagal simpan harga kompetitor product=%s: %v", recs[i].DynamicPriceProductID, err)
				continue
			}
			applied++
		}
	}

	return helper.Success(c, "Rule kompetitor diterapkan", fiber.Map{
		"total":   len(recs),
		"applied": applied,
	})
}

// =======================================================
// WAKTU / STOK / SEGMEN
// =======================================================

// POST /api/a/pricing/:id/apply-time-rules
func (ctl *DynamicPriceController) ApplyTimeRules(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tidak valid")
	}

	applied := false
	var out dto.DynamicPriceResponse
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		rec, err := findRecord(tx, id)
		if err != nil {
			return err
		}
		applied = service.ApplyTimeRules(rec, time.Now())
		if applied {
			if err := tx.Save(rec).Error; err != nil {
				return err
			}
		}
		out = dto.ToDynamicPriceResponse(*rec)
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	msg := "Tidak ada time rule yang cocok"
	if applied {
		msg = "Time rule diterapkan"
	}
	return helper.Success(c, msg, out)
}

// POST /api/a/pricing/:id/apply-inventory-rule
func (ctl *DynamicPriceController) ApplyInventoryRule(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var req dto.InventoryLevelDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	applied := false
	var out dto.DynamicPriceResponse
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		rec, err := findRecord(tx, id)
		if err != nil {
			return err
		}
		applied = service.ApplyInventoryRule(rec, req.Stock)
		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		out = dto.ToDynamicPriceResponse(*rec)
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	msg := "Tidak ada inventory rule yang cocok"
	if applied {
		msg = "Inventory rule diterapkan"
	}
	return helper.Success(c, msg, out)
}

// POST /api/a/pricing/:id/apply-segment?segment=champion
func (ctl *DynamicPriceController) ApplySegmentAdjustment(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tidak valid")
	}
	seg := strings.TrimSpace(c.Query("segment"))
	if seg == "" {
		return helper.Error(c, fiber.StatusBadRequest, "Query segment wajib diisi")
	}

	applied := false
	var out dto.DynamicPriceResponse
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		rec, err := findRecord(tx, id)
		if err != nil {
			return err
		}
		applied = service.ApplySegmentAdjustment(rec, seg)
		if applied {
			if err := tx.Save(rec).Error; err != nil {
				return err
			}
		}
		out = dto.ToDynamicPriceResponse(*rec)
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	msg := "Tidak ada segment rule yang cocok"
	if applied {
		msg = "Segment rule diterapkan"
	}
	return helper.Success(c, msg, out)
}
