// file: internals/features/pricing/dynamicprice/service/price_rules.go
//
// Semua layer rule di sini independen dan sama-sama memanggil UpdatePrice:
// last write wins, TANPA pipeline komposisi. Sistem lama memang tidak
// menggabungkan beberapa layer jadi satu harga.
package service

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"tokoku_backend/internals/features/pricing/dynamicprice/model"
)

// Reason tag yang dipakai di ledger harga.
const (
	ReasonManual       = "manual"
	ReasonFlashSale    = "flash-sale"
	ReasonFlashSaleEnd = "flash-sale-end"
	ReasonCompetitor   = "competitor"
	ReasonTimeRule     = "time-rule"
	ReasonInventory    = "inventory"
	ReasonSegment      = "segment"
)

// UpdatePrice meng-append harga SEBELUMNYA (bukan yang baru) ke ledger,
// menghitung adjustment percentage terhadap original price, lalu commit
// harga baru sebagai current.
//
// Sengaja TIDAK memvalidasi newPrice >= minimum price di layer ini —
// caller yang bertanggung jawab (lihat ValidateMinimumPrice). Celah ini
// perilaku sistem lama dan dijaga regression test.
func UpdatePrice(rec *model.DynamicPrice, reason string, newPrice float64) {
	rec.DynamicPricePriceHistory = append(rec.DynamicPricePriceHistory, model.PriceHistoryEntry{
		Price:     rec.DynamicPriceCurrentPrice,
		Reason:    reason,
		ChangedAt: time.Now(),
	})

	if rec.DynamicPriceOriginalPrice > 0 {
		rec.DynamicPriceAdjustmentPercentage = (newPrice - rec.DynamicPriceOriginalPrice) / rec.DynamicPriceOriginalPrice * 100
	}
	rec.DynamicPriceCurrentPrice = newPrice
}

// ValidateMinimumPrice: guard terpisah yang caller boleh (tidak wajib)
// panggil sebelum UpdatePrice.
func ValidateMinimumPrice(rec *model.DynamicPrice, candidate float64) error {
	if candidate < rec.DynamicPriceMinimumPrice {
		return fiber.NewError(fiber.StatusUnprocessableEntity,
			fmt.Sprintf("Harga %.2f di bawah harga minimum %.2f", candidate, rec.DynamicPriceMinimumPrice))
	}
	return nil
}

// =========================================================
// FLASH SALE
// =========================================================

// ActivateFlashSale: flashPrice = original * (1 - diskon/100), simpan
// window + kuota, lalu langsung UpdatePrice dengan reason "flash-sale".
// Aktivasi bersamaan pada record yang sama tidak di-guard: last writer
// wins, sama seperti path lain di sistem ini.
func ActivateFlashSale(rec *model.DynamicPrice, discountPct float64, startAt, endAt time.Time, quantityCap *int) error {
	if discountPct <= 0 || discountPct >= 100 {
		return fiber.NewError(fiber.StatusBadRequest, "Persentase diskon harus di antara 0 dan 100")
	}
	if !endAt.After(startAt) {
		return fiber.NewError(fiber.StatusBadRequest, "Waktu selesai flash sale harus setelah waktu mulai")
	}

	flashPrice := rec.DynamicPriceOriginalPrice * (1 - discountPct/100)

	rec.DynamicPriceFlashSaleActive = true
	rec.DynamicPriceFlashSaleDiscount = discountPct
	rec.DynamicPriceFlashSaleStartAt = &startAt
	rec.DynamicPriceFlashSaleEndAt = &endAt
	rec.DynamicPriceFlashSaleQuantity = quantityCap
	rec.DynamicPriceFlashSalePrice = &flashPrice

	UpdatePrice(rec, ReasonFlashSale, flashPrice)
	return nil
}

// DeactivateFlashSale mengembalikan harga ke original price.
func DeactivateFlashSale(rec *model.DynamicPrice) error {
	if !rec.DynamicPriceFlashSaleActive {
		return fiber.NewError(fiber.StatusConflict, "Flash sale tidak sedang aktif")
	}

	rec.DynamicPriceFlashSaleActive = false
	rec.DynamicPriceFlashSaleDiscount = 0
	rec.DynamicPriceFlashSaleStartAt = nil
	rec.DynamicPriceFlashSaleEndAt = nil
	rec.DynamicPriceFlashSaleQuantity = nil
	rec.DynamicPriceFlashSalePrice = nil

	UpdatePrice(rec, ReasonFlashSaleEnd, rec.DynamicPriceOriginalPrice)
	return nil
}

// =========================================================
// LAYER INDEPENDEN — kompetitor / waktu / stok / segmen
// =========================================================

// ApplyCompetitorRule mengikuti kompetitor termurah sesuai strategi
// (match persis atau undercut N persen). Return false kalau tidak ada
// data kompetitor.
func ApplyCompetitorRule(rec *model.DynamicPrice, competitors []model.CompetitorPrice) bool {
	if len(competitors) == 0 {
		return false
	}

	cheapest := competitors[0].CompetitorPriceAmount
	for _, cp := range competitors[1:] {
		if cp.CompetitorPriceAmount < cheapest {
			cheapest = cp.CompetitorPriceAmount
		}
	}

	target := cheapest
	if rec.DynamicPriceCompetitorStrategy == model.CompetitorStrategyUndercut {
		target = cheapest * (1 - rec.DynamicPriceCompetitorUndercut/100)
	}

	UpdatePrice(rec, ReasonCompetitor, target)
	return true
}

// ApplyTimeRules mengevaluasi jadwal per jam; rule pertama yang cocok
// dengan jam `now` yang dipakai. Return false kalau tidak ada yang cocok.
func ApplyTimeRules(rec *model.DynamicPrice, now time.Time) bool {
	hour := now.Hour()
	for _, r := range rec.DynamicPriceTimeRules {
		if hour >= r.StartHour && hour < r.EndHour {
			UpdatePrice(rec, ReasonTimeRule, rec.DynamicPriceOriginalPrice*(1+r.AdjustmentPercentage/100))
			return true
		}
	}
	return false
}

// ApplyInventoryRule: tier pertama dengan stock <= max_stock yang kena.
// Rule diasumsikan terurut naik by max_stock.
func ApplyInventoryRule(rec *model.DynamicPrice, stock int) bool {
	rec.DynamicPriceStockLevel = stock
	for _, r := range rec.DynamicPriceInventoryRules {
		if stock <= r.MaxStock {
			UpdatePrice(rec, ReasonInventory, rec.DynamicPriceOriginalPrice*(1+r.AdjustmentPercentage/100))
			return true
		}
	}
	return false
}

// ApplySegmentAdjustment: penyesuaian personal per segmen pelanggan.
// Sama seperti layer lain, menimpa current price (bukan harga per-user).
func ApplySegmentAdjustment(rec *model.DynamicPrice, segment string) bool {
	for _, r := range rec.DynamicPriceSegmentRules {
		for _, s := range r.Segments {
			if s == segment {
				UpdatePrice(rec, ReasonSegment, rec.DynamicPriceOriginalPrice*(1+r.AdjustmentPercentage/100))
				return true
			}
		}
	}
	return false
}
