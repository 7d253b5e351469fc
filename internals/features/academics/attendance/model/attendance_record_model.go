package model

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

/* A persisted attendance fact. A "real" session exists for a course exactly
   when at least one record with its date exists; sessions are opened in
   batches (one record per registered student, default absent), never
   partially. */

type AttendanceRecordModel struct {
	AttendanceRecordID uuid.UUID `gorm:"column:attendance_record_id;type:uuid;default:gen_random_uuid();primaryKey" json:"attendance_record_id"`

	AttendanceRecordCourseID  uuid.UUID `gorm:"column:attendance_record_course_id;type:uuid;not null;uniqueIndex:uq_attendance_record_identity;index:idx_attendance_record_course" json:"attendance_record_course_id"`
	AttendanceRecordStudentID uuid.UUID `gorm:"column:attendance_record_student_id;type:uuid;not null;uniqueIndex:uq_attendance_record_identity;index:idx_attendance_record_student" json:"attendance_record_student_id"`

	// Identity of the real session this fact belongs to.
	AttendanceRecordSessionDate time.Time `gorm:"column:attendance_record_session_date;type:date;not null;uniqueIndex:uq_attendance_record_identity" json:"attendance_record_session_date"`

	AttendanceRecordStatus AttendanceStatus `gorm:"column:attendance_record_status;type:varchar(16);not null;default:absent" json:"attendance_record_status"`

	CreatedAt time.Time `gorm:"column:attendance_record_created_at;autoCreateTime" json:"attendance_record_created_at"`
	UpdatedAt time.Time `gorm:"column:attendance_record_updated_at;autoUpdateTime" json:"attendance_record_updated_at"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }
