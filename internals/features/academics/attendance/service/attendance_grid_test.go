package service

import (
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	model "academyhub_backend/internals/features/academics/attendance/model"
)

func TestRateOf(t *testing.T) {
	tests := []struct {
		name    string
		present int
		total   int
		want    float64
	}{
		{name: "zero sessions guards division", present: 0, total: 0, want: 0},
		{name: "all present", present: 4, total: 4, want: 1},
		{name: "half present", present: 2, total: 4, want: 0.5},
		{name: "none present", present: 0, total: 3, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RateOf(tt.present, tt.total); got != tt.want {
				t.Errorf("RateOf(%d, %d) = %v, want %v", tt.present, tt.total, got, tt.want)
			}
		})
	}
}

func record(studentID uuid.UUID, date time.Time, status model.AttendanceStatus) model.AttendanceRecordModel {
	return model.AttendanceRecordModel{
		AttendanceRecordStudentID:   studentID,
		AttendanceRecordSessionDate: date,
		AttendanceRecordStatus:      status,
	}
}

func TestBuildGrid(t *testing.T) {
	alice := GridStudent{StudentID: uuid.New(), StudentName: "Alice"}
	basma := GridStudent{StudentID: uuid.New(), StudentName: "Basma"}
	carol := GridStudent{StudentID: uuid.New(), StudentName: "Carol"}
	students := []GridStudent{alice, basma, carol}

	d1 := day("2026-01-05")
	d2 := day("2026-01-12")
	sessions := []SessionRef{RealSession(d1), RealSession(d2)}

	// Alice attends both, Basma neither, Carol only the second. Carol has no
	// record at all for the first session (registered late) and must read as
	// absent there.
	records := []model.AttendanceRecordModel{
		record(alice.StudentID, d1, model.AttendancePresent),
		record(alice.StudentID, d2, model.AttendancePresent),
		record(basma.StudentID, d1, model.AttendanceAbsent),
		record(basma.StudentID, d2, model.AttendanceAbsent),
		record(carol.StudentID, d2, model.AttendancePresent),
	}

	grid := BuildGrid(students, sessions, records)

	wantPresence := [][]bool{
		{true, true},
		{false, false},
		{false, true},
	}
	for si, row := range wantPresence {
		for gi, want := range row {
			if grid.Presence[si][gi] != want {
				t.Errorf("presence[%d][%d] = %v, want %v", si, gi, grid.Presence[si][gi], want)
			}
		}
	}

	wantRates := []float64{1, 0, 0.5}
	for si, want := range wantRates {
		if grid.StudentRates[si] != want {
			t.Errorf("rate[%d] = %v, want %v", si, grid.StudentRates[si], want)
		}
		if grid.StudentRates[si] < 0 || grid.StudentRates[si] > 1 {
			t.Errorf("rate[%d] = %v out of [0,1]", si, grid.StudentRates[si])
		}
	}

	// 3 of 6 cells present.
	if grid.OverallRate != 0.5 {
		t.Errorf("overall rate = %v, want 0.5", grid.OverallRate)
	}
}

func TestBuildGridPlaceholdersNeverPresent(t *testing.T) {
	st := GridStudent{StudentID: uuid.New(), StudentName: "Alice"}
	sessions := []SessionRef{PlaceholderSession(1), PlaceholderSession(2)}

	// Stray records cannot light up a placeholder column.
	records := []model.AttendanceRecordModel{
		record(st.StudentID, day("2026-01-05"), model.AttendancePresent),
	}

	grid := BuildGrid([]GridStudent{st}, sessions, records)
	for gi, cell := range grid.Presence[0] {
		if cell {
			t.Errorf("placeholder session %d marked present", gi+1)
		}
	}
	if grid.StudentRates[0] != 0 {
		t.Errorf("rate = %v, want 0 for placeholder-only course", grid.StudentRates[0])
	}
	if grid.OverallRate != 0 {
		t.Errorf("overall = %v, want 0", grid.OverallRate)
	}
}

func TestResolveRoster(t *testing.T) {
	s1 := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	s2 := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	stranger := uuid.New()
	registered := []uuid.UUID{s1, s2}

	t.Run("unregistered student rejects the whole batch", func(t *testing.T) {
		_, err := ResolveRoster(map[uuid.UUID]bool{s1: true, stranger: true}, registered)
		var fe *fiber.Error
		if !errors.As(err, &fe) || fe.Code != fiber.StatusBadRequest {
			t.Fatalf("err = %v, want 400", err)
		}
	})

	t.Run("registered students resolve in stable order", func(t *testing.T) {
		entries, err := ResolveRoster(map[uuid.UUID]bool{s2: false, s1: true}, registered)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("got %d entries, want 2", len(entries))
		}
		if entries[0].StudentID != s1 || entries[0].Status != model.AttendancePresent {
			t.Errorf("entry 0 = %+v, want %s present", entries[0], s1)
		}
		if entries[1].StudentID != s2 || entries[1].Status != model.AttendanceAbsent {
			t.Errorf("entry 1 = %+v, want %s absent", entries[1], s2)
		}
	})

	t.Run("omitted students are left alone", func(t *testing.T) {
		entries, err := ResolveRoster(map[uuid.UUID]bool{s2: true}, registered)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 1 || entries[0].StudentID != s2 {
			t.Errorf("entries = %+v, want only %s", entries, s2)
		}
	})

	t.Run("empty map is a no-op", func(t *testing.T) {
		entries, err := ResolveRoster(map[uuid.UUID]bool{}, registered)
		if err != nil || len(entries) != 0 {
			t.Errorf("got (%v, %v), want empty", entries, err)
		}
	})
}

func TestBuildGridEmpty(t *testing.T) {
	grid := BuildGrid(nil, nil, nil)
	if grid.OverallRate != 0 {
		t.Errorf("overall rate on empty grid = %v, want 0", grid.OverallRate)
	}
	if len(grid.Presence) != 0 || len(grid.StudentRates) != 0 {
		t.Errorf("empty grid has non-empty matrix")
	}
}
