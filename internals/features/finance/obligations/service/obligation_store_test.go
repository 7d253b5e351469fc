package service

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"

	model "academyhub_backend/internals/features/finance/obligations/model"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "exact", raw: "course_registration", want: model.ObligationKindCourseRegistration},
		{name: "uppercase normalized", raw: "CAFETERIA_ORDER", want: model.ObligationKindCafeteriaOrder},
		{name: "surrounding whitespace trimmed", raw: "  workspace_booking ", want: model.ObligationKindWorkspaceBooking},
		{name: "shared workspace", raw: "shared_workspace_booking", want: model.ObligationKindSharedWorkspaceBooking},
		{name: "unknown rejected", raw: "gym_membership", wantErr: true},
		{name: "empty rejected", raw: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKind(tt.raw)
			if tt.wantErr {
				var fe *fiber.Error
				if !errors.As(err, &fe) || fe.Code != fiber.StatusBadRequest {
					t.Fatalf("ParseKind(%q) err = %v, want 400", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestEveryKindHasMeta(t *testing.T) {
	for _, kind := range model.AllObligationKinds() {
		m, err := metaFor(kind)
		if err != nil {
			t.Errorf("metaFor(%s) errored: %v", kind, err)
			continue
		}
		if m.Table == "" || m.Prefix == "" {
			t.Errorf("metaFor(%s) returned incomplete meta %+v", kind, m)
		}
	}
}

func TestIsTerminalStatus(t *testing.T) {
	if !model.IsTerminalStatus(model.PaymentStatusCancelled) {
		t.Error("cancelled must be terminal")
	}
	for _, s := range []string{
		model.PaymentStatusUnpaid,
		model.PaymentStatusPartiallyPaid,
		model.PaymentStatusFullyPaid,
	} {
		if model.IsTerminalStatus(s) {
			t.Errorf("%s wrongly reported terminal", s)
		}
	}
}
