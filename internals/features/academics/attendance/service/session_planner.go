package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "academyhub_backend/internals/features/academics/attendance/model"
	courseModel "academyhub_backend/internals/features/academics/courses/model"
)

const SessionDateLayout = "2006-01-02"

/* ===================== Session identity ===================== */
/* A course's sessions are either real (a persisted attendance date) or
   placeholders ("Session N") sized to the course's planned session count.
   The two schemes are mutually exclusive: the first opened session
   permanently supersedes the placeholders. Mutations are only accepted
   against the real variant. */

type SessionKind string

const (
	SessionKindReal        SessionKind = "real"
	SessionKindPlaceholder SessionKind = "placeholder"
)

type SessionRef struct {
	Kind    SessionKind
	Date    time.Time // real only
	Ordinal int       // placeholder only, 1-based
}

func RealSession(date time.Time) SessionRef {
	return SessionRef{Kind: SessionKindReal, Date: date}
}

func PlaceholderSession(ordinal int) SessionRef {
	return SessionRef{Kind: SessionKindPlaceholder, Ordinal: ordinal}
}

func (s SessionRef) Label() string {
	if s.Kind == SessionKindReal {
		return s.Date.Format(SessionDateLayout)
	}
	return fmt.Sprintf("Session %d", s.Ordinal)
}

/* ===================== Planner core (pure) ===================== */

// PlanSessions derives the session set: real dates sorted ascending when any
// exist, otherwise sessionsCount ordinal placeholders, otherwise empty.
func PlanSessions(sessionsCount int, dates []time.Time) []SessionRef {
	if len(dates) > 0 {
		sorted := make([]time.Time, len(dates))
		copy(sorted, dates)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

		out := make([]SessionRef, 0, len(sorted))
		for _, d := range sorted {
			out = append(out, RealSession(d))
		}
		return out
	}

	if sessionsCount <= 0 {
		return []SessionRef{}
	}
	out := make([]SessionRef, 0, sessionsCount)
	for n := 1; n <= sessionsCount; n++ {
		out = append(out, PlaceholderSession(n))
	}
	return out
}

// ParseSessionDate accepts only a concrete YYYY-MM-DD date. Placeholder
// labels ("Session 3") and anything else unparseable are rejected before any
// write happens.
func ParseSessionDate(raw string) (time.Time, error) {
	t, err := time.Parse(SessionDateLayout, raw)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusUnprocessableEntity,
			"not a real session: expected a concrete date (YYYY-MM-DD)")
	}
	return t, nil
}

/* ===================== DB-backed operations ===================== */

func loadCourse(ctx context.Context, db *gorm.DB, courseID uuid.UUID) (*courseModel.CourseModel, error) {
	var course courseModel.CourseModel
	err := db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Take(&course).Error
	if err == gorm.ErrRecordNotFound {
		return nil, fiber.NewError(fiber.StatusNotFound, "course not found")
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// sessionDates returns the distinct real session dates for a course, oldest
// first.
func sessionDates(ctx context.Context, db *gorm.DB, courseID uuid.UUID) ([]time.Time, error) {
	var dates []time.Time
	err := db.WithContext(ctx).
		Model(&model.AttendanceRecordModel{}).
		Distinct("attendance_record_session_date").
		Where("attendance_record_course_id = ?", courseID).
		Order("attendance_record_session_date ASC").
		Pluck("attendance_record_session_date", &dates).Error
	if err != nil {
		return nil, err
	}
	return dates, nil
}

// activeStudentIDs lists the students currently registered to a course.
// Cancelled registrations do not take part in attendance.
func activeStudentIDs(ctx context.Context, db *gorm.DB, courseID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.WithContext(ctx).
		Table("course_registrations").
		Where(`course_registration_course_id = ?
			AND course_registration_is_active = TRUE
			AND course_registration_payment_status <> 'cancelled'
			AND course_registration_deleted_at IS NULL`, courseID).
		Order("course_registration_created_at ASC").
		Pluck("course_registration_student_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// GetSessions resolves the session set for a course (real dates or
// placeholders). 404 when the course does not exist; empty when the course
// has no planned sessions and no attendance yet.
func GetSessions(ctx context.Context, db *gorm.DB, courseID uuid.UUID) ([]SessionRef, error) {
	course, err := loadCourse(ctx, db, courseID)
	if err != nil {
		return nil, err
	}
	dates, err := sessionDates(ctx, db, courseID)
	if err != nil {
		return nil, err
	}
	return PlanSessions(course.CourseSessionsCount, dates), nil
}

// sessionOpenConflict maps a unique violation from the batch insert onto the
// same conflict the pre-check reports. Two staff members opening the same
// date at once can both pass the count check; the identity index decides the
// winner and the loser gets a 409, not a raw constraint error.
func sessionOpenConflict(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fiber.NewError(fiber.StatusConflict, "a session is already opened for this date")
	}
	return err
}

// CreateSession opens a real session: one Absent record per registered
// student, all or nothing. This is the only transition from placeholder to
// real sessions and it is irreversible. Returns the number of records
// created.
func CreateSession(ctx context.Context, db *gorm.DB, courseID uuid.UUID, date time.Time) (int, error) {
	if _, err := loadCourse(ctx, db, courseID); err != nil {
		return 0, err
	}

	created := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		students, err := activeStudentIDs(ctx, tx, courseID)
		if err != nil {
			return err
		}
		if len(students) == 0 {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "course has no registered students")
		}

		var existing int64
		if err := tx.WithContext(ctx).
			Model(&model.AttendanceRecordModel{}).
			Where("attendance_record_course_id = ? AND attendance_record_session_date = ?", courseID, date).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return fiber.NewError(fiber.StatusConflict, "a session is already opened for this date")
		}

		records := make([]model.AttendanceRecordModel, 0, len(students))
		for _, sid := range students {
			records = append(records, model.AttendanceRecordModel{
				AttendanceRecordCourseID:    courseID,
				AttendanceRecordStudentID:   sid,
				AttendanceRecordSessionDate: date,
				AttendanceRecordStatus:      model.AttendanceAbsent,
			})
		}
		if err := tx.Create(&records).Error; err != nil {
			return sessionOpenConflict(err)
		}
		created = len(records)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
