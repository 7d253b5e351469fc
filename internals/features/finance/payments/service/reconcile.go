package service

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	obligationModel "academyhub_backend/internals/features/finance/obligations/model"
	obligationService "academyhub_backend/internals/features/finance/obligations/service"
	model "academyhub_backend/internals/features/finance/payments/model"
)

/* ===================== Pure reconciliation core ===================== */
/* Derived fields are never the source of truth: every recomputation sums the
   ledger from scratch. Incrementing the cached aggregate would go stale under
   concurrent writers and after the legacy backfill. */

// ClassifyPaymentStatus derives the status purely from (total, paid, cancelled).
func ClassifyPaymentStatus(total, paid decimal.Decimal, cancelled bool) string {
	if cancelled {
		return obligationModel.PaymentStatusCancelled
	}
	switch {
	case paid.Cmp(total) >= 0:
		return obligationModel.PaymentStatusFullyPaid
	case paid.IsPositive():
		return obligationModel.PaymentStatusPartiallyPaid
	default:
		return obligationModel.PaymentStatusUnpaid
	}
}

// SumLedger adds up every ledger entry for one obligation.
func SumLedger(entries []model.PaymentModel) decimal.Decimal {
	total := decimal.Zero
	for i := range entries {
		total = total.Add(entries[i].PaymentAmount)
	}
	return total
}

// RemainingAmount clamps at zero; overpayment is accepted and recorded, the
// obligation just reads as fully paid with nothing left to collect.
func RemainingAmount(total, paid decimal.Decimal) decimal.Decimal {
	r := total.Sub(paid)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

/* ===================== Engine ===================== */

type AppendPaymentInput struct {
	Kind           string
	ObligationID   uuid.UUID
	Amount         decimal.Decimal
	Method         string
	ProcessedBy    uuid.UUID
	Notes          *string
	IdempotencyKey *string
}

type ReconcileResult struct {
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	PaymentStatus   string          `json:"payment_status"`
}

// AppendPayment records one payment event and recomputes the obligation's
// aggregates inside the same transaction. The obligation row is locked for
// the duration, so two staff members paying the same registration at once
// serialize instead of losing an update. Duplicate submissions are NOT
// deduplicated here; callers that retry must carry an idempotency key and
// dedupe upstream.
func AppendPayment(ctx context.Context, db *gorm.DB, in AppendPaymentInput) (*model.PaymentModel, *ReconcileResult, error) {
	if !in.Amount.IsPositive() {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "payment amount must be greater than zero")
	}
	if !model.IsValidPaymentMethod(in.Method) {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "unknown payment method (cash/instapay/fawry)")
	}

	var (
		row model.PaymentModel
		res *ReconcileResult
	)
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ob, err := obligationService.GetObligationForUpdate(ctx, tx, in.Kind, in.ObligationID)
		if err != nil {
			return err
		}
		if ob.PaymentStatus == obligationModel.PaymentStatusCancelled {
			return fiber.NewError(fiber.StatusConflict, "obligation is closed, payments are no longer accepted")
		}

		studentID := ob.StudentID
		branchID := ob.BranchID
		row = model.PaymentModel{
			PaymentAmount:         in.Amount,
			PaymentMethod:         in.Method,
			PaymentProcessedBy:    in.ProcessedBy,
			PaymentStudentID:      &studentID,
			PaymentBranchID:       &branchID,
			PaymentNotes:          in.Notes,
			PaymentIdempotencyKey: in.IdempotencyKey,
		}
		row.SetObligationRef(in.Kind, in.ObligationID)

		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		res, err = reconcileLocked(ctx, tx, ob)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return &row, res, nil
}

// ListPayments returns the ledger for one obligation, oldest first.
func ListPayments(ctx context.Context, db *gorm.DB, kind string, id uuid.UUID) ([]model.PaymentModel, error) {
	col := model.ObligationColumn(kind)
	if col == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "unknown obligation kind")
	}

	var entries []model.PaymentModel
	if err := db.WithContext(ctx).
		Where(col+" = ?", id).
		Order("payment_created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Reconcile is the standalone repair variant: lock, resum, persist. Safe to
// re-run any number of times.
func Reconcile(ctx context.Context, db *gorm.DB, kind string, id uuid.UUID) (*ReconcileResult, error) {
	var res *ReconcileResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ob, err := obligationService.GetObligationForUpdate(ctx, tx, kind, id)
		if err != nil {
			return err
		}
		res, err = reconcileLocked(ctx, tx, ob)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// reconcileLocked recomputes paid/remaining/status from the full ledger and
// persists them. The caller must already hold the obligation row lock.
func reconcileLocked(ctx context.Context, tx *gorm.DB, ob *obligationService.Obligation) (*ReconcileResult, error) {
	entries, err := ListPayments(ctx, tx, ob.Kind, ob.ID)
	if err != nil {
		return nil, err
	}

	paid := SumLedger(entries)
	remaining := RemainingAmount(ob.TotalAmount, paid)
	status := ClassifyPaymentStatus(ob.TotalAmount, paid, ob.PaymentStatus == obligationModel.PaymentStatusCancelled)

	if err := obligationService.UpdateAggregates(ctx, tx, ob.Kind, ob.ID, paid, remaining, status); err != nil {
		return nil, err
	}

	return &ReconcileResult{
		PaidAmount:      paid,
		RemainingAmount: remaining,
		PaymentStatus:   status,
	}, nil
}
