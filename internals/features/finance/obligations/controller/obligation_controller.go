package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "academyhub_backend/internals/features/finance/obligations/dto"
	service "academyhub_backend/internals/features/finance/obligations/service"
	helper "academyhub_backend/internals/helpers"
)

const dateLayout = "2006-01-02"

type ObligationController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewObligationController(db *gorm.DB) *ObligationController {
	return &ObligationController{
		DB:        db,
		Validator: validator.New(),
	}
}

// POST /api/a/finance/obligations
func (ctl *ObligationController) Create(c *fiber.Ctx) error {
	var req dto.CreateObligationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	kind, err := service.ParseKind(req.ObligationKind)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	in := service.CreateObligationInput{
		Kind:        kind,
		StudentID:   req.StudentID,
		BranchID:    req.BranchID,
		TotalAmount: req.TotalAmount,
		CourseID:    req.CourseID,
		SeatLabel:   req.SeatLabel,
		RoomLabel:   req.RoomLabel,
		Seats:       req.Seats,
		OrderNumber: req.OrderNumber,
	}
	if req.BookingDate != nil {
		t, err := time.Parse(dateLayout, *req.BookingDate)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "booking_date invalid format, expected YYYY-MM-DD")
		}
		in.BookingDate = &t
	}

	ob, err := service.CreateObligation(c.UserContext(), ctl.DB, in)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Obligation created", dto.NewObligationResponse(ob))
}

// GET /api/a/finance/obligations/:kind/:id
func (ctl *ObligationController) GetByID(c *fiber.Ctx) error {
	kind, err := service.ParseKind(c.Params("kind"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid obligation id")
	}

	ob, err := service.GetObligation(c.UserContext(), ctl.DB, kind, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "OK", dto.NewObligationResponse(ob))
}

// POST /api/a/finance/obligations/:kind/:id/cancel?force=true
func (ctl *ObligationController) Cancel(c *fiber.Ctx) error {
	kind, err := service.ParseKind(c.Params("kind"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid obligation id")
	}
	force := c.QueryBool("force", false)

	ob, err := service.Cancel(c.UserContext(), ctl.DB, kind, id, force)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Obligation cancelled", dto.NewObligationResponse(ob))
}
