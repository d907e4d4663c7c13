// file: internals/route/index.go
package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tokoku_backend/internals/constants"
	loyaltyRoute "tokoku_backend/internals/features/loyalty/segmentation/route"
	installmentRoute "tokoku_backend/internals/features/payment/installments/route"
	pricingRoute "tokoku_backend/internals/features/pricing/dynamicprice/route"
	exchangeapi "tokoku_backend/internals/features/utils/exchangerate/controller"
	middlewares "tokoku_backend/internals/middlewares"
	authMiddleware "tokoku_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	exchange := &exchangeapi.ExchangeRateController{}
	public.Get("/exchange-rates/:from/:to", exchange.Convert)

	pricingRoute.PricingPublicRoutes(public, db)

	// Webhook Midtrans — tanpa JWT, rate limit sendiri
	webhook := app.Group("/api/public", middlewares.WebhookRateLimiter())
	installmentRoute.InstallmentWebhookRoutes(webhook, db)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	user := app.Group("/api/u",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)

	loyaltyRoute.LoyaltyUserRoutes(user, db)
	installmentRoute.InstallmentUserRoutes(user, db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("backoffice"), constants.AdminAndAbove...),
	)

	loyaltyRoute.LoyaltyAdminRoutes(admin, db)
	pricingRoute.PricingAdminRoutes(admin, db)
	installmentRoute.InstallmentAdminRoutes(admin, db)

	// ===================== INTERNAL =====================
	// Hook dari order service & sinyal storefront: JWT user biasa cukup,
	// rate limit lebih longgar untuk trafik sinyal.
	log.Println("[INFO] Setting up INTERNAL group...")
	internal := app.Group("/api/internal",
		middlewares.BehaviorSignalRateLimiter(),
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret: os.Getenv("JWT_SECRET"),
		}),
	)

	loyaltyRoute.LoyaltyInternalRoutes(internal, db)
	pricingRoute.PricingInternalRoutes(internal, db)
}
