package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	installmentapi "tokoku_backend/internals/features/payment/installments/controller"
)

// User routes — plan milik sendiri + pembayaran
func InstallmentUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := &installmentapi.InstallmentController{DB: db}

	grp := user.Group("/installments")
	{
		grp.Post("", ctl.CreatePlan)
		grp.Post("/preview", ctl.PreviewSchedule)
		grp.Get("", ctl.ListMine)
		grp.Get("/:id", ctl.GetDetail)
		grp.Post("/:id/installments/:number/token", ctl.RequestSnapToken)
		grp.Post("/:id/installments/:number/pay", ctl.PayInstallment)
	}
}

// Admin routes — cancel + sweep jatuh tempo
func InstallmentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := &installmentapi.InstallmentController{DB: db}

	grp := admin.Group("/installments")
	{
		grp.Post("/:id/cancel", ctl.Cancel)
		grp.Post("/overdue-sweep", ctl.OverdueSweep)
	}
}

// Webhook route — notifikasi status Midtrans
func InstallmentWebhookRoutes(pub fiber.Router, db *gorm.DB) {
	ctl := &installmentapi.InstallmentController{DB: db}

	pub.Post("/payments/midtrans/webhook", ctl.MidtransWebhook)
}
