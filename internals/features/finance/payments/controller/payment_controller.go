package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	obligationService "academyhub_backend/internals/features/finance/obligations/service"
	dto "academyhub_backend/internals/features/finance/payments/dto"
	service "academyhub_backend/internals/features/finance/payments/service"
	helper "academyhub_backend/internals/helpers"
)

type PaymentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{
		DB:        db,
		Validator: validator.New(),
	}
}

// POST /api/a/finance/payments
func (ctl *PaymentController) Create(c *fiber.Ctx) error {
	var req dto.AppendPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	kind, err := obligationService.ParseKind(req.ObligationKind)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	actor, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	payment, res, err := service.AppendPayment(c.UserContext(), ctl.DB, service.AppendPaymentInput{
		Kind:           kind,
		ObligationID:   req.ObligationID,
		Amount:         req.Amount,
		Method:         req.PaymentMethod,
		ProcessedBy:    actor,
		Notes:          req.Notes,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Payment recorded",
		dto.NewAppendPaymentResponse(payment, res))
}

// GET /api/a/finance/obligations/:kind/:id/payments
func (ctl *PaymentController) ListByObligation(c *fiber.Ctx) error {
	kind, err := obligationService.ParseKind(c.Params("kind"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid obligation id")
	}

	// 404 for unknown obligations, empty list for known ones with no payments.
	if _, err := obligationService.GetObligation(c.UserContext(), ctl.DB, kind, id); err != nil {
		return helper.FromFiberError(c, err)
	}

	entries, err := service.ListPayments(c.UserContext(), ctl.DB, kind, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "OK", dto.NewPaymentResponses(entries))
}

// POST /api/a/finance/obligations/:kind/:id/reconcile
func (ctl *PaymentController) Reconcile(c *fiber.Ctx) error {
	kind, err := obligationService.ParseKind(c.Params("kind"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid obligation id")
	}

	res, err := service.Reconcile(c.UserContext(), ctl.DB, kind, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Obligation reconciled", res)
}

// POST /api/a/finance/payments/backfill
func (ctl *PaymentController) Backfill(c *fiber.Ctx) error {
	repaired, err := service.RunBackfill(c.UserContext(), ctl.DB)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Backfill completed", fiber.Map{
		"repaired_rows": repaired,
	})
}
