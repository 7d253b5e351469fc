package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	obligationModel "academyhub_backend/internals/features/finance/obligations/model"
)

/* ===================== Enums (string) ===================== */

const (
	PaymentMethodCash     = "cash"
	PaymentMethodInstaPay = "instapay"
	PaymentMethodFawry    = "fawry"
)

func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodInstaPay, PaymentMethodFawry:
		return true
	default:
		return false
	}
}

/* ===================== Model ===================== */
/* Append-only ledger. One row per payment event; the obligation linkage is a
   kind discriminator plus per-kind nullable FKs (exactly one populated on
   write). Legacy imports may carry null kind/student/branch; the backfill
   pass repairs those, and only those; amount and the FK are immutable. */

type PaymentModel struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_id"`

	PaymentObligationKind *string `gorm:"column:payment_obligation_kind;type:varchar(32);index:idx_payment_obligation_kind" json:"payment_obligation_kind,omitempty"`

	PaymentCourseRegistrationID     *uuid.UUID `gorm:"column:payment_course_registration_id;type:uuid;index:idx_payment_course_registration" json:"payment_course_registration_id,omitempty"`
	PaymentWorkspaceBookingID       *uuid.UUID `gorm:"column:payment_workspace_booking_id;type:uuid;index:idx_payment_workspace_booking" json:"payment_workspace_booking_id,omitempty"`
	PaymentSharedWorkspaceBookingID *uuid.UUID `gorm:"column:payment_shared_workspace_booking_id;type:uuid;index:idx_payment_shared_workspace_booking" json:"payment_shared_workspace_booking_id,omitempty"`
	PaymentCafeteriaOrderID         *uuid.UUID `gorm:"column:payment_cafeteria_order_id;type:uuid;index:idx_payment_cafeteria_order" json:"payment_cafeteria_order_id,omitempty"`

	PaymentAmount decimal.Decimal `gorm:"column:payment_amount;type:numeric(12,2);not null;check:payment_amount > 0" json:"payment_amount"`
	PaymentMethod string          `gorm:"column:payment_method;type:varchar(16);not null" json:"payment_method"`

	PaymentProcessedBy uuid.UUID `gorm:"column:payment_processed_by;type:uuid;not null" json:"payment_processed_by"`

	// Denormalized, nullable, backfillable.
	PaymentStudentID *uuid.UUID `gorm:"column:payment_student_id;type:uuid;index:idx_payment_student" json:"payment_student_id,omitempty"`
	PaymentBranchID  *uuid.UUID `gorm:"column:payment_branch_id;type:uuid;index:idx_payment_branch" json:"payment_branch_id,omitempty"`

	PaymentNotes          *string           `gorm:"column:payment_notes;type:text" json:"payment_notes,omitempty"`
	PaymentMeta           datatypes.JSONMap `gorm:"column:payment_meta;type:jsonb" json:"payment_meta,omitempty"`
	PaymentIdempotencyKey *string           `gorm:"column:payment_idempotency_key" json:"payment_idempotency_key,omitempty"`

	CreatedAt time.Time      `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	UpdatedAt time.Time      `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"payment_deleted_at,omitempty"`
}

func (PaymentModel) TableName() string { return "payments" }

/* ===================== Helpers ===================== */

// ObligationRef derives the owning obligation from whichever FK is populated.
// Works for legacy rows whose kind discriminator is still null.
func (p *PaymentModel) ObligationRef() (kind string, id uuid.UUID, ok bool) {
	switch {
	case p.PaymentCourseRegistrationID != nil:
		return obligationModel.ObligationKindCourseRegistration, *p.PaymentCourseRegistrationID, true
	case p.PaymentWorkspaceBookingID != nil:
		return obligationModel.ObligationKindWorkspaceBooking, *p.PaymentWorkspaceBookingID, true
	case p.PaymentSharedWorkspaceBookingID != nil:
		return obligationModel.ObligationKindSharedWorkspaceBooking, *p.PaymentSharedWorkspaceBookingID, true
	case p.PaymentCafeteriaOrderID != nil:
		return obligationModel.ObligationKindCafeteriaOrder, *p.PaymentCafeteriaOrderID, true
	default:
		return "", uuid.Nil, false
	}
}

// SetObligationRef populates the kind discriminator plus the matching FK.
// The write path always calls this, so fresh rows never need the backfill.
func (p *PaymentModel) SetObligationRef(kind string, id uuid.UUID) {
	k := kind
	p.PaymentObligationKind = &k
	switch kind {
	case obligationModel.ObligationKindCourseRegistration:
		p.PaymentCourseRegistrationID = &id
	case obligationModel.ObligationKindWorkspaceBooking:
		p.PaymentWorkspaceBookingID = &id
	case obligationModel.ObligationKindSharedWorkspaceBooking:
		p.PaymentSharedWorkspaceBookingID = &id
	case obligationModel.ObligationKindCafeteriaOrder:
		p.PaymentCafeteriaOrderID = &id
	}
}

// ObligationColumn maps a kind to the payments FK column holding its id.
func ObligationColumn(kind string) string {
	switch kind {
	case obligationModel.ObligationKindCourseRegistration:
		return "payment_course_registration_id"
	case obligationModel.ObligationKindWorkspaceBooking:
		return "payment_workspace_booking_id"
	case obligationModel.ObligationKindSharedWorkspaceBooking:
		return "payment_shared_workspace_booking_id"
	case obligationModel.ObligationKindCafeteriaOrder:
		return "payment_cafeteria_order_id"
	default:
		return ""
	}
}
