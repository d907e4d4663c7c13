package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	loyaltyapi "tokoku_backend/internals/features/loyalty/segmentation/controller"
)

// User routes — profil milik sendiri
func LoyaltyUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := &loyaltyapi.SegmentationController{DB: db}

	grp := user.Group("/loyalty")
	{
		grp.Get("/segment-profile", ctl.GetMine)
	}
}

// Admin routes — inspeksi & recalc
func LoyaltyAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := &loyaltyapi.SegmentationController{DB: db}

	grp := admin.Group("/loyalty")
	{
		grp.Get("/segment-profiles", ctl.ListBySegment)
		grp.Get("/segment-profiles/:user_id", ctl.GetByUser)
		grp.Post("/segment-profiles/:user_id/recalculate", ctl.Recalculate)
	}
}

// Internal routes — hook dari order service
func LoyaltyInternalRoutes(internal fiber.Router, db *gorm.DB) {
	ctl := &loyaltyapi.SegmentationController{DB: db}

	grp := internal.Group("/loyalty")
	{
		grp.Post("/order-completed", ctl.OrderCompleted)
	}
}
