package service

import (
	"context"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "academyhub_backend/internals/features/academics/attendance/model"
)

/* ===================== Grid core (pure) ===================== */

type GridStudent struct {
	StudentID   uuid.UUID `json:"student_id"`
	StudentName string    `json:"student_name"`
}

type AttendanceGrid struct {
	Students     []GridStudent
	Sessions     []SessionRef
	Presence     [][]bool // [student][session]
	StudentRates []float64
	OverallRate  float64
}

// RateOf guards the zero denominator: no sessions means a rate of 0, not a
// division error.
func RateOf(presentCount, totalSessions int) float64 {
	if totalSessions == 0 {
		return 0
	}
	return float64(presentCount) / float64(totalSessions)
}

// BuildGrid assembles the student x session presence matrix. A cell is true
// only when a record with status present exists; a registered student with no
// record for a session reads as absent (they may have joined after the
// session was opened). Placeholder sessions never have presence.
func BuildGrid(students []GridStudent, sessions []SessionRef, records []model.AttendanceRecordModel) *AttendanceGrid {
	present := make(map[string]bool, len(records))
	for i := range records {
		r := &records[i]
		if r.AttendanceRecordStatus != model.AttendancePresent {
			continue
		}
		present[presenceKey(r.AttendanceRecordStudentID, r.AttendanceRecordSessionDate)] = true
	}

	presence := make([][]bool, len(students))
	rates := make([]float64, len(students))
	totalPresent := 0

	for si, st := range students {
		row := make([]bool, len(sessions))
		presentCount := 0
		for gi, sess := range sessions {
			if sess.Kind != SessionKindReal {
				continue
			}
			if present[presenceKey(st.StudentID, sess.Date)] {
				row[gi] = true
				presentCount++
			}
		}
		presence[si] = row
		rates[si] = RateOf(presentCount, len(sessions))
		totalPresent += presentCount
	}

	overall := float64(0)
	if cells := len(students) * len(sessions); cells > 0 {
		overall = float64(totalPresent) / float64(cells)
	}

	return &AttendanceGrid{
		Students:     students,
		Sessions:     sessions,
		Presence:     presence,
		StudentRates: rates,
		OverallRate:  overall,
	}
}

func presenceKey(studentID uuid.UUID, date time.Time) string {
	return studentID.String() + "|" + date.Format(SessionDateLayout)
}

// RosterEntry is one resolved attendance mutation: a registered student and
// the status they were submitted with.
type RosterEntry struct {
	StudentID uuid.UUID
	Status    model.AttendanceStatus
}

// ResolveRoster checks a submitted presence map against the registered roster.
// A student id outside the roster fails the whole batch; students omitted from
// the map are simply not part of the result. Entries come back in a stable
// order so the write path behaves deterministically.
func ResolveRoster(presence map[uuid.UUID]bool, registered []uuid.UUID) ([]RosterEntry, error) {
	reg := make(map[uuid.UUID]bool, len(registered))
	for _, sid := range registered {
		reg[sid] = true
	}

	ids := make([]uuid.UUID, 0, len(presence))
	for sid := range presence {
		if !reg[sid] {
			return nil, fiber.NewError(fiber.StatusBadRequest, "student "+sid.String()+" is not registered to this course")
		}
		ids = append(ids, sid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	entries := make([]RosterEntry, 0, len(ids))
	for _, sid := range ids {
		status := model.AttendanceAbsent
		if presence[sid] {
			status = model.AttendancePresent
		}
		entries = append(entries, RosterEntry{StudentID: sid, Status: status})
	}
	return entries, nil
}

/* ===================== DB-backed operations ===================== */

// GetGrid loads everything needed for the attendance screen in one shot.
func GetGrid(ctx context.Context, db *gorm.DB, courseID uuid.UUID) (*AttendanceGrid, error) {
	sessions, err := GetSessions(ctx, db, courseID)
	if err != nil {
		return nil, err
	}

	var students []GridStudent
	if err := db.WithContext(ctx).
		Table("course_registrations cr").
		Select("s.student_id AS student_id, s.student_name AS student_name").
		Joins("JOIN students s ON s.student_id = cr.course_registration_student_id AND s.student_deleted_at IS NULL").
		Where(`cr.course_registration_course_id = ?
			AND cr.course_registration_is_active = TRUE
			AND cr.course_registration_payment_status <> 'cancelled'
			AND cr.course_registration_deleted_at IS NULL`, courseID).
		Order("s.student_name ASC").
		Scan(&students).Error; err != nil {
		return nil, err
	}

	var records []model.AttendanceRecordModel
	if err := db.WithContext(ctx).
		Where("attendance_record_course_id = ?", courseID).
		Find(&records).Error; err != nil {
		return nil, err
	}

	return BuildGrid(students, sessions, records), nil
}

// SaveAttendance overwrites presence for one real session. Students omitted
// from the map keep their prior value; students not registered to the course
// are rejected rather than silently dropped.
func SaveAttendance(ctx context.Context, db *gorm.DB, courseID uuid.UUID, rawDate string, presence map[uuid.UUID]bool) error {
	date, err := ParseSessionDate(rawDate)
	if err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&model.AttendanceRecordModel{}).
			Where("attendance_record_course_id = ? AND attendance_record_session_date = ?", courseID, date).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing == 0 {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "not a real session: no session opened for this date")
		}

		students, err := activeStudentIDs(ctx, tx, courseID)
		if err != nil {
			return err
		}
		entries, err := ResolveRoster(presence, students)
		if err != nil {
			return err
		}

		for _, entry := range entries {
			rec := model.AttendanceRecordModel{
				AttendanceRecordCourseID:    courseID,
				AttendanceRecordStudentID:   entry.StudentID,
				AttendanceRecordSessionDate: date,
				AttendanceRecordStatus:      entry.Status,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "attendance_record_course_id"},
					{Name: "attendance_record_student_id"},
					{Name: "attendance_record_session_date"},
				},
				DoUpdates: clause.AssignmentColumns([]string{
					"attendance_record_status",
					"attendance_record_updated_at",
				}),
			}).Create(&rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
