package service

import (
	"testing"

	"github.com/shopspring/decimal"

	obligationModel "academyhub_backend/internals/features/finance/obligations/model"
	model "academyhub_backend/internals/features/finance/payments/model"
)

func d(v string) decimal.Decimal {
	out, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return out
}

func ledger(amounts ...string) []model.PaymentModel {
	entries := make([]model.PaymentModel, 0, len(amounts))
	for _, a := range amounts {
		entries = append(entries, model.PaymentModel{PaymentAmount: d(a)})
	}
	return entries
}

func TestClassifyPaymentStatus(t *testing.T) {
	tests := []struct {
		name      string
		total     string
		paid      string
		cancelled bool
		want      string
	}{
		{name: "nothing paid", total: "1000", paid: "0", want: obligationModel.PaymentStatusUnpaid},
		{name: "partial", total: "1000", paid: "300", want: obligationModel.PaymentStatusPartiallyPaid},
		{name: "exact", total: "1000", paid: "1000", want: obligationModel.PaymentStatusFullyPaid},
		{name: "overpaid", total: "1000", paid: "1200", want: obligationModel.PaymentStatusFullyPaid},
		{name: "zero total", total: "0", paid: "0", want: obligationModel.PaymentStatusFullyPaid},
		{name: "cancelled wins over paid", total: "1000", paid: "1000", cancelled: true, want: obligationModel.PaymentStatusCancelled},
		{name: "cancelled wins over unpaid", total: "1000", paid: "0", cancelled: true, want: obligationModel.PaymentStatusCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyPaymentStatus(d(tt.total), d(tt.paid), tt.cancelled)
			if got != tt.want {
				t.Errorf("ClassifyPaymentStatus(%s, %s, %v) = %q, want %q",
					tt.total, tt.paid, tt.cancelled, got, tt.want)
			}
		})
	}
}

func TestSumLedger(t *testing.T) {
	tests := []struct {
		name    string
		entries []model.PaymentModel
		want    string
	}{
		{name: "empty ledger", entries: nil, want: "0"},
		{name: "single entry", entries: ledger("300"), want: "300"},
		{name: "two installments", entries: ledger("300", "400"), want: "700"},
		{name: "fractional amounts", entries: ledger("99.99", "0.01"), want: "100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SumLedger(tt.entries)
			if !got.Equal(d(tt.want)) {
				t.Errorf("SumLedger() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRemainingAmount(t *testing.T) {
	tests := []struct {
		name  string
		total string
		paid  string
		want  string
	}{
		{name: "untouched", total: "1000", paid: "0", want: "1000"},
		{name: "partial", total: "1000", paid: "700", want: "300"},
		{name: "settled", total: "1000", paid: "1000", want: "0"},
		{name: "overpayment clamps to zero", total: "1000", paid: "1200", want: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemainingAmount(d(tt.total), d(tt.paid))
			if !got.Equal(d(tt.want)) {
				t.Errorf("RemainingAmount(%s, %s) = %s, want %s", tt.total, tt.paid, got, tt.want)
			}
		})
	}
}

// Two installments against a 1000 registration, then a late third one that
// pushes the ledger past the total. Derived values must always come from
// re-summing the whole ledger, never from incrementing the prior aggregate.
func TestReconcileFromLedger(t *testing.T) {
	total := d("1000")

	entries := ledger("300", "400")
	paid := SumLedger(entries)
	if !paid.Equal(d("700")) {
		t.Fatalf("paid after two installments = %s, want 700", paid)
	}
	if rem := RemainingAmount(total, paid); !rem.Equal(d("300")) {
		t.Errorf("remaining = %s, want 300", rem)
	}
	if st := ClassifyPaymentStatus(total, paid, false); st != obligationModel.PaymentStatusPartiallyPaid {
		t.Errorf("status = %q, want %q", st, obligationModel.PaymentStatusPartiallyPaid)
	}

	entries = append(entries, model.PaymentModel{PaymentAmount: d("500")})
	paid = SumLedger(entries)
	if !paid.Equal(d("1200")) {
		t.Fatalf("paid after third installment = %s, want 1200", paid)
	}
	if rem := RemainingAmount(total, paid); !rem.IsZero() {
		t.Errorf("remaining = %s, want 0", rem)
	}
	if st := ClassifyPaymentStatus(total, paid, false); st != obligationModel.PaymentStatusFullyPaid {
		t.Errorf("status = %q, want %q", st, obligationModel.PaymentStatusFullyPaid)
	}
}
