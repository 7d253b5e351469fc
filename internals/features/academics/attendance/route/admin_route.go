package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "academyhub_backend/internals/features/academics/attendance/controller"
)

// AttendanceAdminRoutes mounts the attendance planner and grid endpoints.
func AttendanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewAttendanceController(db)

	attendance := r.Group("/academics/courses/:course_id/attendance")
	attendance.Get("/sessions", ctl.ListSessions)
	attendance.Post("/sessions", ctl.CreateSession)
	attendance.Put("/sessions", ctl.SaveAttendance)
	attendance.Get("/grid", ctl.GetGrid)
}
