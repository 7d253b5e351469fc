package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */
/* Kept in sync with the Postgres CHECK constraints:
   payment_status, obligation_kind
*/

const (
	PaymentStatusUnpaid        = "unpaid"
	PaymentStatusPartiallyPaid = "partially_paid"
	PaymentStatusFullyPaid     = "fully_paid"
	PaymentStatusCancelled     = "cancelled"
)

const (
	ObligationKindCourseRegistration     = "course_registration"
	ObligationKindWorkspaceBooking       = "workspace_booking"
	ObligationKindSharedWorkspaceBooking = "shared_workspace_booking"
	ObligationKindCafeteriaOrder         = "cafeteria_order"
)

/* ===================== Models ===================== */
/* One table per obligation kind. Every kind carries the same financial
   columns (total/paid/remaining/status); paid, remaining and status are
   derived fields owned by the reconciliation engine and are never written
   directly by controllers. */

type CourseRegistrationModel struct {
	CourseRegistrationID uuid.UUID `gorm:"column:course_registration_id;type:uuid;default:gen_random_uuid();primaryKey" json:"course_registration_id"`

	CourseRegistrationStudentID uuid.UUID `gorm:"column:course_registration_student_id;type:uuid;not null;index:idx_course_registration_student" json:"course_registration_student_id"`
	CourseRegistrationCourseID  uuid.UUID `gorm:"column:course_registration_course_id;type:uuid;not null;index:idx_course_registration_course" json:"course_registration_course_id"`
	CourseRegistrationBranchID  uuid.UUID `gorm:"column:course_registration_branch_id;type:uuid;not null" json:"course_registration_branch_id"`

	// Active registrations take part in attendance sessions.
	CourseRegistrationIsActive bool `gorm:"column:course_registration_is_active;not null;default:true" json:"course_registration_is_active"`

	CourseRegistrationTotalAmount     decimal.Decimal `gorm:"column:course_registration_total_amount;type:numeric(12,2);not null" json:"course_registration_total_amount"`
	CourseRegistrationPaidAmount      decimal.Decimal `gorm:"column:course_registration_paid_amount;type:numeric(12,2);not null;default:0" json:"course_registration_paid_amount"`
	CourseRegistrationRemainingAmount decimal.Decimal `gorm:"column:course_registration_remaining_amount;type:numeric(12,2);not null;default:0" json:"course_registration_remaining_amount"`
	CourseRegistrationPaymentStatus   string          `gorm:"column:course_registration_payment_status;type:varchar(20);not null;default:'unpaid'" json:"course_registration_payment_status"`

	CreatedAt time.Time      `gorm:"column:course_registration_created_at;autoCreateTime" json:"course_registration_created_at"`
	UpdatedAt time.Time      `gorm:"column:course_registration_updated_at;autoUpdateTime" json:"course_registration_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:course_registration_deleted_at;index" json:"course_registration_deleted_at,omitempty"`
}

func (CourseRegistrationModel) TableName() string { return "course_registrations" }

type WorkspaceBookingModel struct {
	WorkspaceBookingID uuid.UUID `gorm:"column:workspace_booking_id;type:uuid;default:gen_random_uuid();primaryKey" json:"workspace_booking_id"`

	WorkspaceBookingStudentID uuid.UUID `gorm:"column:workspace_booking_student_id;type:uuid;not null;index:idx_workspace_booking_student" json:"workspace_booking_student_id"`
	WorkspaceBookingBranchID  uuid.UUID `gorm:"column:workspace_booking_branch_id;type:uuid;not null" json:"workspace_booking_branch_id"`

	WorkspaceBookingDate      time.Time `gorm:"column:workspace_booking_date;type:date;not null" json:"workspace_booking_date"`
	WorkspaceBookingSeatLabel *string   `gorm:"column:workspace_booking_seat_label;type:varchar(32)" json:"workspace_booking_seat_label,omitempty"`

	WorkspaceBookingTotalAmount     decimal.Decimal `gorm:"column:workspace_booking_total_amount;type:numeric(12,2);not null" json:"workspace_booking_total_amount"`
	WorkspaceBookingPaidAmount      decimal.Decimal `gorm:"column:workspace_booking_paid_amount;type:numeric(12,2);not null;default:0" json:"workspace_booking_paid_amount"`
	WorkspaceBookingRemainingAmount decimal.Decimal `gorm:"column:workspace_booking_remaining_amount;type:numeric(12,2);not null;default:0" json:"workspace_booking_remaining_amount"`
	WorkspaceBookingPaymentStatus   string          `gorm:"column:workspace_booking_payment_status;type:varchar(20);not null;default:'unpaid'" json:"workspace_booking_payment_status"`

	CreatedAt time.Time      `gorm:"column:workspace_booking_created_at;autoCreateTime" json:"workspace_booking_created_at"`
	UpdatedAt time.Time      `gorm:"column:workspace_booking_updated_at;autoUpdateTime" json:"workspace_booking_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:workspace_booking_deleted_at;index" json:"workspace_booking_deleted_at,omitempty"`
}

func (WorkspaceBookingModel) TableName() string { return "workspace_bookings" }

type SharedWorkspaceBookingModel struct {
	SharedWorkspaceBookingID uuid.UUID `gorm:"column:shared_workspace_booking_id;type:uuid;default:gen_random_uuid();primaryKey" json:"shared_workspace_booking_id"`

	SharedWorkspaceBookingStudentID uuid.UUID `gorm:"column:shared_workspace_booking_student_id;type:uuid;not null;index:idx_shared_workspace_booking_student" json:"shared_workspace_booking_student_id"`
	SharedWorkspaceBookingBranchID  uuid.UUID `gorm:"column:shared_workspace_booking_branch_id;type:uuid;not null" json:"shared_workspace_booking_branch_id"`

	SharedWorkspaceBookingDate      time.Time `gorm:"column:shared_workspace_booking_date;type:date;not null" json:"shared_workspace_booking_date"`
	SharedWorkspaceBookingRoomLabel *string   `gorm:"column:shared_workspace_booking_room_label;type:varchar(32)" json:"shared_workspace_booking_room_label,omitempty"`
	SharedWorkspaceBookingSeats     int       `gorm:"column:shared_workspace_booking_seats;not null;default:1" json:"shared_workspace_booking_seats"`

	SharedWorkspaceBookingTotalAmount     decimal.Decimal `gorm:"column:shared_workspace_booking_total_amount;type:numeric(12,2);not null" json:"shared_workspace_booking_total_amount"`
	SharedWorkspaceBookingPaidAmount      decimal.Decimal `gorm:"column:shared_workspace_booking_paid_amount;type:numeric(12,2);not null;default:0" json:"shared_workspace_booking_paid_amount"`
	SharedWorkspaceBookingRemainingAmount decimal.Decimal `gorm:"column:shared_workspace_booking_remaining_amount;type:numeric(12,2);not null;default:0" json:"shared_workspace_booking_remaining_amount"`
	SharedWorkspaceBookingPaymentStatus   string          `gorm:"column:shared_workspace_booking_payment_status;type:varchar(20);not null;default:'unpaid'" json:"shared_workspace_booking_payment_status"`

	CreatedAt time.Time      `gorm:"column:shared_workspace_booking_created_at;autoCreateTime" json:"shared_workspace_booking_created_at"`
	UpdatedAt time.Time      `gorm:"column:shared_workspace_booking_updated_at;autoUpdateTime" json:"shared_workspace_booking_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:shared_workspace_booking_deleted_at;index" json:"shared_workspace_booking_deleted_at,omitempty"`
}

func (SharedWorkspaceBookingModel) TableName() string { return "shared_workspace_bookings" }

type CafeteriaOrderModel struct {
	CafeteriaOrderID uuid.UUID `gorm:"column:cafeteria_order_id;type:uuid;default:gen_random_uuid();primaryKey" json:"cafeteria_order_id"`

	CafeteriaOrderStudentID uuid.UUID `gorm:"column:cafeteria_order_student_id;type:uuid;not null;index:idx_cafeteria_order_student" json:"cafeteria_order_student_id"`
	CafeteriaOrderBranchID  uuid.UUID `gorm:"column:cafeteria_order_branch_id;type:uuid;not null" json:"cafeteria_order_branch_id"`

	CafeteriaOrderNumber *string `gorm:"column:cafeteria_order_number;type:varchar(32)" json:"cafeteria_order_number,omitempty"`

	CafeteriaOrderTotalAmount     decimal.Decimal `gorm:"column:cafeteria_order_total_amount;type:numeric(12,2);not null" json:"cafeteria_order_total_amount"`
	CafeteriaOrderPaidAmount      decimal.Decimal `gorm:"column:cafeteria_order_paid_amount;type:numeric(12,2);not null;default:0" json:"cafeteria_order_paid_amount"`
	CafeteriaOrderRemainingAmount decimal.Decimal `gorm:"column:cafeteria_order_remaining_amount;type:numeric(12,2);not null;default:0" json:"cafeteria_order_remaining_amount"`
	CafeteriaOrderPaymentStatus   string          `gorm:"column:cafeteria_order_payment_status;type:varchar(20);not null;default:'unpaid'" json:"cafeteria_order_payment_status"`

	CreatedAt time.Time      `gorm:"column:cafeteria_order_created_at;autoCreateTime" json:"cafeteria_order_created_at"`
	UpdatedAt time.Time      `gorm:"column:cafeteria_order_updated_at;autoUpdateTime" json:"cafeteria_order_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:cafeteria_order_deleted_at;index" json:"cafeteria_order_deleted_at,omitempty"`
}

func (CafeteriaOrderModel) TableName() string { return "cafeteria_orders" }

/* ===================== Helpers ===================== */

func IsTerminalStatus(status string) bool {
	return status == PaymentStatusCancelled
}

func AllObligationKinds() []string {
	return []string{
		ObligationKindCourseRegistration,
		ObligationKindWorkspaceBooking,
		ObligationKindSharedWorkspaceBooking,
		ObligationKindCafeteriaOrder,
	}
}
