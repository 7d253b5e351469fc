package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	model "academyhub_backend/internals/features/finance/payments/model"
	service "academyhub_backend/internals/features/finance/payments/service"
)

type AppendPaymentRequest struct {
	ObligationKind string          `json:"obligation_kind" validate:"required"`
	ObligationID   uuid.UUID       `json:"obligation_id" validate:"required"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentMethod  string          `json:"payment_method" validate:"required,oneof=cash instapay fawry"`
	Notes          *string         `json:"notes,omitempty"`
	IdempotencyKey *string         `json:"idempotency_key,omitempty"`
}

type PaymentResponse struct {
	PaymentID      uuid.UUID       `json:"payment_id"`
	ObligationKind string          `json:"obligation_kind"`
	ObligationID   uuid.UUID       `json:"obligation_id"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentMethod  string          `json:"payment_method"`
	ProcessedBy    uuid.UUID       `json:"processed_by"`
	StudentID      *uuid.UUID      `json:"student_id,omitempty"`
	BranchID       *uuid.UUID      `json:"branch_id,omitempty"`
	Notes          *string         `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

func NewPaymentResponse(p *model.PaymentModel) PaymentResponse {
	kind, obID, _ := p.ObligationRef()
	return PaymentResponse{
		PaymentID:      p.PaymentID,
		ObligationKind: kind,
		ObligationID:   obID,
		Amount:         p.PaymentAmount,
		PaymentMethod:  p.PaymentMethod,
		ProcessedBy:    p.PaymentProcessedBy,
		StudentID:      p.PaymentStudentID,
		BranchID:       p.PaymentBranchID,
		Notes:          p.PaymentNotes,
		CreatedAt:      p.CreatedAt,
	}
}

func NewPaymentResponses(entries []model.PaymentModel) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(entries))
	for i := range entries {
		out = append(out, NewPaymentResponse(&entries[i]))
	}
	return out
}

type AppendPaymentResponse struct {
	Payment         PaymentResponse `json:"payment"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	PaymentStatus   string          `json:"payment_status"`
}

func NewAppendPaymentResponse(p *model.PaymentModel, res *service.ReconcileResult) AppendPaymentResponse {
	return AppendPaymentResponse{
		Payment:         NewPaymentResponse(p),
		PaidAmount:      res.PaidAmount,
		RemainingAmount: res.RemainingAmount,
		PaymentStatus:   res.PaymentStatus,
	}
}
