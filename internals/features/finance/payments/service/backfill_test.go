package service

import (
	"testing"

	"github.com/google/uuid"

	obligationModel "academyhub_backend/internals/features/finance/obligations/model"
	model "academyhub_backend/internals/features/finance/payments/model"
)

func strptr(s string) *string { return &s }

func TestPlanBackfill(t *testing.T) {
	regID := uuid.New()
	studentID := uuid.New()
	branchID := uuid.New()

	legacyRow := func() model.PaymentModel {
		return model.PaymentModel{
			PaymentID:                   uuid.New(),
			PaymentCourseRegistrationID: &regID,
			PaymentAmount:               d("250"),
		}
	}
	ref := ObligationRef{
		Kind:      obligationModel.ObligationKindCourseRegistration,
		StudentID: studentID,
		BranchID:  branchID,
	}

	t.Run("fills only null fields", func(t *testing.T) {
		row := legacyRow()
		row.PaymentStudentID = &studentID // already set, must stay untouched

		patches := PlanBackfill([]model.PaymentModel{row}, map[uuid.UUID]ObligationRef{row.PaymentID: ref})
		if len(patches) != 1 {
			t.Fatalf("got %d patches, want 1", len(patches))
		}
		p := patches[0]
		if p.Kind == nil || *p.Kind != obligationModel.ObligationKindCourseRegistration {
			t.Errorf("patch kind = %v, want course_registration", p.Kind)
		}
		if p.StudentID != nil {
			t.Errorf("patch touches already-populated student id")
		}
		if p.BranchID == nil || *p.BranchID != branchID {
			t.Errorf("patch branch = %v, want %s", p.BranchID, branchID)
		}
	})

	t.Run("empty kind string counts as missing", func(t *testing.T) {
		row := legacyRow()
		row.PaymentObligationKind = strptr("")

		patches := PlanBackfill([]model.PaymentModel{row}, map[uuid.UUID]ObligationRef{row.PaymentID: ref})
		if len(patches) != 1 || patches[0].Kind == nil {
			t.Fatalf("empty kind not repaired: %+v", patches)
		}
	})

	t.Run("fully populated row yields no patch", func(t *testing.T) {
		row := legacyRow()
		row.SetObligationRef(obligationModel.ObligationKindCourseRegistration, regID)
		row.PaymentStudentID = &studentID
		row.PaymentBranchID = &branchID

		patches := PlanBackfill([]model.PaymentModel{row}, map[uuid.UUID]ObligationRef{row.PaymentID: ref})
		if len(patches) != 0 {
			t.Fatalf("second pass produced %d patches, want 0", len(patches))
		}
	})

	t.Run("orphan without resolved ref is skipped", func(t *testing.T) {
		row := legacyRow()
		patches := PlanBackfill([]model.PaymentModel{row}, map[uuid.UUID]ObligationRef{})
		if len(patches) != 0 {
			t.Fatalf("orphan produced %d patches, want 0", len(patches))
		}
	})
}

func TestObligationRefRoundTrip(t *testing.T) {
	id := uuid.New()
	for _, kind := range obligationModel.AllObligationKinds() {
		var p model.PaymentModel
		p.SetObligationRef(kind, id)

		gotKind, gotID, ok := p.ObligationRef()
		if !ok || gotKind != kind || gotID != id {
			t.Errorf("ObligationRef after SetObligationRef(%s) = (%s, %s, %v)", kind, gotKind, gotID, ok)
		}
		if p.PaymentObligationKind == nil || *p.PaymentObligationKind != kind {
			t.Errorf("kind discriminator not set for %s", kind)
		}
		if model.ObligationColumn(kind) == "" {
			t.Errorf("no FK column mapped for %s", kind)
		}
	}

	var empty model.PaymentModel
	if _, _, ok := empty.ObligationRef(); ok {
		t.Error("ObligationRef on a row without FKs reported ok")
	}
}
