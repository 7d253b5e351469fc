package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CourseModel is a data source for the attendance planner; course CRUD itself
// lives in the admin portal service.
type CourseModel struct {
	CourseID uuid.UUID `gorm:"column:course_id;type:uuid;default:gen_random_uuid();primaryKey" json:"course_id"`

	CourseBranchID uuid.UUID `gorm:"column:course_branch_id;type:uuid;not null;index:idx_course_branch" json:"course_branch_id"`

	CourseName  string          `gorm:"column:course_name;type:varchar(120);not null" json:"course_name"`
	CoursePrice decimal.Decimal `gorm:"column:course_price;type:numeric(12,2);not null;default:0" json:"course_price"`

	// Planned number of sessions; the upper bound for placeholder sessions
	// while no attendance has been recorded yet.
	CourseSessionsCount int `gorm:"column:course_sessions_count;not null;default:0" json:"course_sessions_count"`

	CreatedAt time.Time      `gorm:"column:course_created_at;autoCreateTime" json:"course_created_at"`
	UpdatedAt time.Time      `gorm:"column:course_updated_at;autoUpdateTime" json:"course_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:course_deleted_at;index" json:"course_deleted_at,omitempty"`
}

func (CourseModel) TableName() string { return "courses" }
