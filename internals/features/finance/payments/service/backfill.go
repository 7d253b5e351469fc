package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	obligationService "academyhub_backend/internals/features/finance/obligations/service"
	model "academyhub_backend/internals/features/finance/payments/model"
)

/* ===================== Legacy ledger backfill ===================== */
/* Rows imported from the old system carry only one FK column; the kind
   discriminator and the denormalized student/branch ids may be null. The
   pass fills exactly those fields by following the obligation reference.
   It never touches payment_amount, the FK itself, or any aggregate, and
   running it twice is the same as running it once. */

// ObligationRef is the linkage resolved from the owning obligation row.
type ObligationRef struct {
	Kind      string
	StudentID uuid.UUID
	BranchID  uuid.UUID
}

// BackfillPatch lists the null fields to fill on one ledger row. Fields left
// nil are already populated and stay untouched.
type BackfillPatch struct {
	PaymentID uuid.UUID
	Kind      *string
	StudentID *uuid.UUID
	BranchID  *uuid.UUID
}

// PlanBackfill compares ledger rows against their resolved refs and yields a
// patch per row that still has gaps. Rows with every field populated, or rows
// with no resolvable obligation (orphans), produce nothing, which is what
// makes the pass idempotent.
func PlanBackfill(entries []model.PaymentModel, refs map[uuid.UUID]ObligationRef) []BackfillPatch {
	patches := make([]BackfillPatch, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		ref, ok := refs[e.PaymentID]
		if !ok {
			continue
		}

		patch := BackfillPatch{PaymentID: e.PaymentID}
		dirty := false

		if e.PaymentObligationKind == nil || *e.PaymentObligationKind == "" {
			k := ref.Kind
			patch.Kind = &k
			dirty = true
		}
		if e.PaymentStudentID == nil {
			sid := ref.StudentID
			patch.StudentID = &sid
			dirty = true
		}
		if e.PaymentBranchID == nil {
			bid := ref.BranchID
			patch.BranchID = &bid
			dirty = true
		}

		if dirty {
			patches = append(patches, patch)
		}
	}
	return patches
}

// RunBackfill scans for ledger rows with missing denormalized linkage,
// resolves each through its obligation, and applies the patches in one
// transaction. Returns the number of repaired rows.
func RunBackfill(ctx context.Context, db *gorm.DB) (int, error) {
	var entries []model.PaymentModel
	if err := db.WithContext(ctx).
		Where("payment_obligation_kind IS NULL OR payment_student_id IS NULL OR payment_branch_id IS NULL").
		Order("payment_created_at ASC").
		Find(&entries).Error; err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}

	refs := make(map[uuid.UUID]ObligationRef, len(entries))
	for i := range entries {
		kind, obID, ok := entries[i].ObligationRef()
		if !ok {
			// Orphaned row: no FK at all. Left alone for manual review.
			log.Printf("[WARN] backfill: payment %s has no obligation reference", entries[i].PaymentID)
			continue
		}
		ob, err := obligationService.GetObligation(ctx, db, kind, obID)
		if err != nil {
			log.Printf("[WARN] backfill: payment %s references missing obligation %s/%s", entries[i].PaymentID, kind, obID)
			continue
		}
		refs[entries[i].PaymentID] = ObligationRef{
			Kind:      kind,
			StudentID: ob.StudentID,
			BranchID:  ob.BranchID,
		}
	}

	patches := PlanBackfill(entries, refs)
	if len(patches) == 0 {
		return 0, nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range patches {
			updates := map[string]interface{}{}
			if p.Kind != nil {
				updates["payment_obligation_kind"] = *p.Kind
			}
			if p.StudentID != nil {
				updates["payment_student_id"] = *p.StudentID
			}
			if p.BranchID != nil {
				updates["payment_branch_id"] = *p.BranchID
			}
			if len(updates) == 0 {
				continue
			}
			if err := tx.Model(&model.PaymentModel{}).
				Where("payment_id = ?", p.PaymentID).
				Updates(updates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(patches), nil
}
