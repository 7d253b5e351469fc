package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "academyhub_backend/internals/features/finance/payments/controller"
	middlewares "academyhub_backend/internals/middlewares"
)

func PaymentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewPaymentController(db)

	g := r.Group("/finance/payments")
	g.Post("/", middlewares.FinanceWriteRateLimiter(), ctl.Create)
	g.Post("/backfill", ctl.Backfill)

	r.Get("/finance/obligations/:kind/:id/payments", ctl.ListByObligation)
	r.Post("/finance/obligations/:kind/:id/reconcile", ctl.Reconcile)
}
