package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "academyhub_backend/internals/features/finance/obligations/controller"
)

func ObligationAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewObligationController(db)

	g := r.Group("/finance/obligations")
	g.Post("/", ctl.Create)
	g.Get("/:kind/:id", ctl.GetByID)
	g.Post("/:kind/:id/cancel", ctl.Cancel)
}
