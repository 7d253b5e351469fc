package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	service "academyhub_backend/internals/features/finance/obligations/service"
)

type CreateObligationRequest struct {
	ObligationKind string          `json:"obligation_kind" validate:"required"`
	StudentID      uuid.UUID       `json:"student_id" validate:"required"`
	BranchID       uuid.UUID       `json:"branch_id" validate:"required"`
	TotalAmount    decimal.Decimal `json:"total_amount"`

	// Kind-specific extras
	CourseID    *uuid.UUID `json:"course_id,omitempty"`
	BookingDate *string    `json:"booking_date,omitempty"` // YYYY-MM-DD
	SeatLabel   *string    `json:"seat_label,omitempty"`
	RoomLabel   *string    `json:"room_label,omitempty"`
	Seats       *int       `json:"seats,omitempty"`
	OrderNumber *string    `json:"order_number,omitempty"`
}

type ObligationResponse struct {
	ObligationKind  string          `json:"obligation_kind"`
	ObligationID    uuid.UUID       `json:"obligation_id"`
	StudentID       uuid.UUID       `json:"student_id"`
	BranchID        uuid.UUID       `json:"branch_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	PaymentStatus   string          `json:"payment_status"`
}

func NewObligationResponse(o *service.Obligation) ObligationResponse {
	return ObligationResponse{
		ObligationKind:  o.Kind,
		ObligationID:    o.ID,
		StudentID:       o.StudentID,
		BranchID:        o.BranchID,
		TotalAmount:     o.TotalAmount,
		PaidAmount:      o.PaidAmount,
		RemainingAmount: o.RemainingAmount,
		PaymentStatus:   o.PaymentStatus,
	}
}
