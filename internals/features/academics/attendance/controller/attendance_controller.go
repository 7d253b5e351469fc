package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "academyhub_backend/internals/features/academics/attendance/dto"
	service "academyhub_backend/internals/features/academics/attendance/service"
	helper "academyhub_backend/internals/helpers"
)

type AttendanceController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{
		DB:        db,
		Validator: validator.New(),
	}
}

func courseIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("course_id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}
	return id, nil
}

// GET /api/a/academics/courses/:course_id/attendance/sessions
func (ctl *AttendanceController) ListSessions(c *fiber.Ctx) error {
	courseID, err := courseIDParam(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	sessions, err := service.GetSessions(c.UserContext(), ctl.DB, courseID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if len(sessions) == 0 {
		return helper.Success(c, "No attendance data available", dto.NewSessionResponses(sessions))
	}
	return helper.Success(c, "OK", dto.NewSessionResponses(sessions))
}

// POST /api/a/academics/courses/:course_id/attendance/sessions
func (ctl *AttendanceController) CreateSession(c *fiber.Ctx) error {
	courseID, err := courseIDParam(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	date, err := service.ParseSessionDate(req.SessionDate)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	created, err := service.CreateSession(c.UserContext(), ctl.DB, courseID, date)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Session opened", fiber.Map{
		"session_date":    date.Format(service.SessionDateLayout),
		"records_created": created,
	})
}

// PUT /api/a/academics/courses/:course_id/attendance/sessions
func (ctl *AttendanceController) SaveAttendance(c *fiber.Ctx) error {
	courseID, err := courseIDParam(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.SaveAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := service.SaveAttendance(c.UserContext(), ctl.DB, courseID, req.SessionDate, req.PresenceByStudent); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Attendance saved", fiber.Map{
		"session_date":     req.SessionDate,
		"students_updated": len(req.PresenceByStudent),
	})
}

// GET /api/a/academics/courses/:course_id/attendance/grid
func (ctl *AttendanceController) GetGrid(c *fiber.Ctx) error {
	courseID, err := courseIDParam(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	grid, err := service.GetGrid(c.UserContext(), ctl.DB, courseID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "OK", dto.NewGridResponse(grid))
}
