package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	pricingapi "tokoku_backend/internals/features/pricing/dynamicprice/controller"
)

// Admin routes — kelola record, rule, flash sale, kompetitor
func PricingAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := &pricingapi.DynamicPriceController{DB: db}

	grp := admin.Group("/pricing")
	{
		// =========================
		// Record lifecycle
		// =========================
		grp.Post("", ctl.EnableAutomation)
		grp.Get("", ctl.List)
		grp.Get("/:id", ctl.GetDetail)
		grp.Patch("/:id/price", ctl.UpdatePriceManual)
		grp.Patch("/:id/rules", ctl.UpdateRules)

		// =========================
		// Demand
		// =========================
		grp.Post("/recalculate-demand", ctl.RecalculateAllDemand)
		grp.Post("/:id/recalculate-demand", ctl.RecalculateDemand)

		// =========================
		// Flash sale
		// =========================
		grp.Post("/:id/flash-sale", ctl.ActivateFlashSale)
		grp.Delete("/:id/flash-sale", ctl.DeactivateFlashSale)

		// =========================
		// Kompetitor
		// =========================
		grp.Put("/:id/competitor-prices", ctl.UpsertCompetitorPrice)
		grp.Post("/recalculate-competitor", ctl.RecalculateCompetitorAll)

		// =========================
		// Layer waktu / stok / segmen
		// =========================
		grp.Post("/:id/apply-time-rules", ctl.ApplyTimeRules)
		grp.Post("/:id/apply-inventory-rule", ctl.ApplyInventoryRule)
		grp.Post("/:id/apply-segment", ctl.ApplySegmentAdjustment)
	}
}

// Public routes — harga berjalan untuk storefront
func PricingPublicRoutes(pub fiber.Router, db *gorm.DB) {
	ctl := &pricingapi.DynamicPriceController{DB: db}

	grp := pub.Group("/pricing")
	{
		grp.Get("/products/:product_id", ctl.GetPublicPrice)
	}
}

// Internal routes — sinyal perilaku dari storefront
func PricingInternalRoutes(internal fiber.Router, db *gorm.DB) {
	ctl := &pricingapi.DynamicPriceController{DB: db}

	grp := internal.Group("/pricing")
	{
		grp.Post("/signals", ctl.RecordSignal)
	}
}
