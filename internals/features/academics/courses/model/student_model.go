package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentModel struct {
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_id"`

	StudentBranchID uuid.UUID `gorm:"column:student_branch_id;type:uuid;not null;index:idx_student_branch" json:"student_branch_id"`

	StudentName  string  `gorm:"column:student_name;type:varchar(120);not null" json:"student_name"`
	StudentPhone *string `gorm:"column:student_phone;type:varchar(32)" json:"student_phone,omitempty"`

	CreatedAt time.Time      `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	UpdatedAt time.Time      `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }

type BranchModel struct {
	BranchID uuid.UUID `gorm:"column:branch_id;type:uuid;default:gen_random_uuid();primaryKey" json:"branch_id"`

	BranchName string `gorm:"column:branch_name;type:varchar(120);not null" json:"branch_name"`

	CreatedAt time.Time      `gorm:"column:branch_created_at;autoCreateTime" json:"branch_created_at"`
	UpdatedAt time.Time      `gorm:"column:branch_updated_at;autoUpdateTime" json:"branch_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:branch_deleted_at;index" json:"branch_deleted_at,omitempty"`
}

func (BranchModel) TableName() string { return "branches" }
