package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	model "academyhub_backend/internals/features/finance/obligations/model"
)

// Obligation is the kind-neutral financial view of a billable row.
type Obligation struct {
	Kind            string          `json:"obligation_kind"`
	ID              uuid.UUID       `json:"obligation_id"`
	StudentID       uuid.UUID       `json:"student_id"`
	BranchID        uuid.UUID       `json:"branch_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	PaymentStatus   string          `json:"payment_status"`
}

// kindMeta maps an obligation kind onto its table and column prefix. Every
// obligation table uses the same <prefix>_<field> column scheme.
type kindMeta struct {
	Table  string
	Prefix string
}

var kindMetas = map[string]kindMeta{
	model.ObligationKindCourseRegistration:     {Table: "course_registrations", Prefix: "course_registration"},
	model.ObligationKindWorkspaceBooking:       {Table: "workspace_bookings", Prefix: "workspace_booking"},
	model.ObligationKindSharedWorkspaceBooking: {Table: "shared_workspace_bookings", Prefix: "shared_workspace_booking"},
	model.ObligationKindCafeteriaOrder:         {Table: "cafeteria_orders", Prefix: "cafeteria_order"},
}

// ParseKind normalizes a client-supplied kind and rejects unknown values.
func ParseKind(raw string) (string, error) {
	k := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := kindMetas[k]; !ok {
		return "", fiber.NewError(fiber.StatusBadRequest,
			"unknown obligation kind (course_registration/workspace_booking/shared_workspace_booking/cafeteria_order)")
	}
	return k, nil
}

func metaFor(kind string) (kindMeta, error) {
	m, ok := kindMetas[kind]
	if !ok {
		return kindMeta{}, fiber.NewError(fiber.StatusBadRequest, "unknown obligation kind")
	}
	return m, nil
}

type obligationRow struct {
	ID              uuid.UUID       `gorm:"column:id"`
	StudentID       uuid.UUID       `gorm:"column:student_id"`
	BranchID        uuid.UUID       `gorm:"column:branch_id"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount"`
	PaidAmount      decimal.Decimal `gorm:"column:paid_amount"`
	RemainingAmount decimal.Decimal `gorm:"column:remaining_amount"`
	PaymentStatus   string          `gorm:"column:payment_status"`
}

// GetObligation reads one obligation without locking it.
func GetObligation(ctx context.Context, db *gorm.DB, kind string, id uuid.UUID) (*Obligation, error) {
	return getObligation(ctx, db, kind, id, false)
}

// GetObligationForUpdate reads one obligation with a row lock. Must run inside
// a transaction; the reconciliation engine relies on this to serialize
// concurrent payment appends against the same obligation.
func GetObligationForUpdate(ctx context.Context, tx *gorm.DB, kind string, id uuid.UUID) (*Obligation, error) {
	return getObligation(ctx, tx, kind, id, true)
}

func getObligation(ctx context.Context, db *gorm.DB, kind string, id uuid.UUID, lock bool) (*Obligation, error) {
	m, err := metaFor(kind)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		SELECT
			%[1]s_id               AS id,
			%[1]s_student_id       AS student_id,
			%[1]s_branch_id        AS branch_id,
			%[1]s_total_amount     AS total_amount,
			%[1]s_paid_amount      AS paid_amount,
			%[1]s_remaining_amount AS remaining_amount,
			%[1]s_payment_status   AS payment_status
		FROM %[2]s
		WHERE %[1]s_id = ? AND %[1]s_deleted_at IS NULL`, m.Prefix, m.Table)
	if lock {
		q += " FOR UPDATE"
	}

	var row obligationRow
	res := db.WithContext(ctx).Raw(q, id).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "obligation not found")
	}

	return &Obligation{
		Kind:            kind,
		ID:              row.ID,
		StudentID:       row.StudentID,
		BranchID:        row.BranchID,
		TotalAmount:     row.TotalAmount,
		PaidAmount:      row.PaidAmount,
		RemainingAmount: row.RemainingAmount,
		PaymentStatus:   row.PaymentStatus,
	}, nil
}

// UpdateAggregates persists the three derived fields. Only the reconciliation
// engine and Cancel are allowed to call this.
func UpdateAggregates(ctx context.Context, tx *gorm.DB, kind string, id uuid.UUID, paid, remaining decimal.Decimal, status string) error {
	m, err := metaFor(kind)
	if err != nil {
		return err
	}

	q := fmt.Sprintf(`
		UPDATE %[2]s SET
			%[1]s_paid_amount      = ?,
			%[1]s_remaining_amount = ?,
			%[1]s_payment_status   = ?,
			%[1]s_updated_at       = NOW()
		WHERE %[1]s_id = ? AND %[1]s_deleted_at IS NULL`, m.Prefix, m.Table)

	res := tx.WithContext(ctx).Exec(q, paid, remaining, status, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "obligation not found")
	}
	return nil
}

// CreateObligationInput carries the kind plus kind-specific extras.
type CreateObligationInput struct {
	Kind        string
	StudentID   uuid.UUID
	BranchID    uuid.UUID
	TotalAmount decimal.Decimal

	CourseID    *uuid.UUID // course_registration
	BookingDate *time.Time // workspace_booking / shared_workspace_booking
	SeatLabel   *string    // workspace_booking
	RoomLabel   *string    // shared_workspace_booking
	Seats       *int       // shared_workspace_booking
	OrderNumber *string    // cafeteria_order
}

// CreateObligation inserts a new billable row with paid=0, status unpaid.
func CreateObligation(ctx context.Context, db *gorm.DB, in CreateObligationInput) (*Obligation, error) {
	if in.TotalAmount.IsNegative() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "total amount must not be negative")
	}

	switch in.Kind {
	case model.ObligationKindCourseRegistration:
		if in.CourseID == nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "course_id is required for a course registration")
		}
		rec := model.CourseRegistrationModel{
			CourseRegistrationStudentID:       in.StudentID,
			CourseRegistrationCourseID:        *in.CourseID,
			CourseRegistrationBranchID:        in.BranchID,
			CourseRegistrationIsActive:        true,
			CourseRegistrationTotalAmount:     in.TotalAmount,
			CourseRegistrationPaidAmount:      decimal.Zero,
			CourseRegistrationRemainingAmount: in.TotalAmount,
			CourseRegistrationPaymentStatus:   model.PaymentStatusUnpaid,
		}
		if err := db.WithContext(ctx).Create(&rec).Error; err != nil {
			return nil, err
		}
		return GetObligation(ctx, db, in.Kind, rec.CourseRegistrationID)

	case model.ObligationKindWorkspaceBooking:
		if in.BookingDate == nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "booking_date is required for a workspace booking")
		}
		rec := model.WorkspaceBookingModel{
			WorkspaceBookingStudentID:       in.StudentID,
			WorkspaceBookingBranchID:        in.BranchID,
			WorkspaceBookingDate:            *in.BookingDate,
			WorkspaceBookingSeatLabel:       in.SeatLabel,
			WorkspaceBookingTotalAmount:     in.TotalAmount,
			WorkspaceBookingPaidAmount:      decimal.Zero,
			WorkspaceBookingRemainingAmount: in.TotalAmount,
			WorkspaceBookingPaymentStatus:   model.PaymentStatusUnpaid,
		}
		if err := db.WithContext(ctx).Create(&rec).Error; err != nil {
			return nil, err
		}
		return GetObligation(ctx, db, in.Kind, rec.WorkspaceBookingID)

	case model.ObligationKindSharedWorkspaceBooking:
		if in.BookingDate == nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "booking_date is required for a shared workspace booking")
		}
		seats := 1
		if in.Seats != nil && *in.Seats > 0 {
			seats = *in.Seats
		}
		rec := model.SharedWorkspaceBookingModel{
			SharedWorkspaceBookingStudentID:       in.StudentID,
			SharedWorkspaceBookingBranchID:        in.BranchID,
			SharedWorkspaceBookingDate:            *in.BookingDate,
			SharedWorkspaceBookingRoomLabel:       in.RoomLabel,
			SharedWorkspaceBookingSeats:           seats,
			SharedWorkspaceBookingTotalAmount:     in.TotalAmount,
			SharedWorkspaceBookingPaidAmount:      decimal.Zero,
			SharedWorkspaceBookingRemainingAmount: in.TotalAmount,
			SharedWorkspaceBookingPaymentStatus:   model.PaymentStatusUnpaid,
		}
		if err := db.WithContext(ctx).Create(&rec).Error; err != nil {
			return nil, err
		}
		return GetObligation(ctx, db, in.Kind, rec.SharedWorkspaceBookingID)

	case model.ObligationKindCafeteriaOrder:
		rec := model.CafeteriaOrderModel{
			CafeteriaOrderStudentID:       in.StudentID,
			CafeteriaOrderBranchID:        in.BranchID,
			CafeteriaOrderNumber:          in.OrderNumber,
			CafeteriaOrderTotalAmount:     in.TotalAmount,
			CafeteriaOrderPaidAmount:      decimal.Zero,
			CafeteriaOrderRemainingAmount: in.TotalAmount,
			CafeteriaOrderPaymentStatus:   model.PaymentStatusUnpaid,
		}
		if err := db.WithContext(ctx).Create(&rec).Error; err != nil {
			return nil, err
		}
		return GetObligation(ctx, db, in.Kind, rec.CafeteriaOrderID)
	}

	return nil, fiber.NewError(fiber.StatusBadRequest, "unknown obligation kind")
}

// Cancel marks an obligation as cancelled (terminal, freezes further payment
// application). A fully paid obligation needs force=true; repeated cancels
// are a no-op.
func Cancel(ctx context.Context, db *gorm.DB, kind string, id uuid.UUID, force bool) (*Obligation, error) {
	var out *Obligation
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ob, err := GetObligationForUpdate(ctx, tx, kind, id)
		if err != nil {
			return err
		}
		if ob.PaymentStatus == model.PaymentStatusCancelled {
			out = ob
			return nil
		}
		if !force && ob.PaidAmount.Cmp(ob.TotalAmount) >= 0 {
			return fiber.NewError(fiber.StatusConflict,
				"obligation is already fully paid; pass force=true to cancel anyway")
		}
		if err := UpdateAggregates(ctx, tx, kind, id, ob.PaidAmount, ob.RemainingAmount, model.PaymentStatusCancelled); err != nil {
			return err
		}
		ob.PaymentStatus = model.PaymentStatusCancelled
		out = ob
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
