package leave

import (
	"time"

	"go-hrms/internal/employee"

	"github.com/google/uuid"
)

type LeaveType string

const (
	TypeCasual LeaveType = "casual"
	TypeSick   LeaveType = "sick"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Leave struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	LeaveType   LeaveType  `gorm:"type:varchar(10);not null"`
	FromDate    time.Time  `gorm:"not null"`
	ToDate      time.Time  `gorm:"not null"`
	Days        int        `gorm:"not null"`
	Reason      string     `gorm:"type:text;not null"`
	Status      Status     `gorm:"type:varchar(10);not null;default:'pending';index"`
	ApproverID  *uuid.UUID `gorm:"type:uuid"`
	AppliedDate time.Time  `gorm:"not null"`
	DecidedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Employee *employee.Employee `gorm:"foreignKey:EmployeeID"`
}

func (Leave) TableName() string {
	return "leave_requests"
}
