package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRoute "academyhub_backend/internals/features/academics/attendance/route"
	obligationRoute "academyhub_backend/internals/features/finance/obligations/route"
	paymentRoute "academyhub_backend/internals/features/finance/payments/route"
	middlewares "academyhub_backend/internals/middlewares"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== ADMIN (staff) =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		middlewares.AuthJWT(middlewares.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)

	log.Println("[INFO] Setting up FinanceAdminRoutes...")
	obligationRoute.ObligationAdminRoutes(admin, db)
	paymentRoute.PaymentAdminRoutes(admin, db)

	log.Println("[INFO] Setting up AttendanceAdminRoutes...")
	attendanceRoute.AttendanceAdminRoutes(admin, db)
}
