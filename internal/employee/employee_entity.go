package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Address struct {
	Street  string `gorm:"type:varchar(255)"`
	City    string `gorm:"type:varchar(100)"`
	State   string `gorm:"type:varchar(100)"`
	ZipCode string `gorm:"type:varchar(20)"`
	Country string `gorm:"type:varchar(100)"`
}

// LeaveBalance holds the running leave counters. Only the leave ledger
// writes them, through Repository.AdjustLeaveBalance.
type LeaveBalance struct {
	Casual   int `gorm:"not null;default:0"`
	Sick     int `gorm:"not null;default:0"`
	Pending  int `gorm:"not null;default:0"`
	Approved int `gorm:"not null;default:0"`
	Rejected int `gorm:"not null;default:0"`
}

type Employee struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	IdentityID    *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	EmployeeCode  string          `gorm:"type:varchar(20);uniqueIndex;not null"`
	Name          string          `gorm:"type:varchar(255);not null"`
	Email         string          `gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone         string          `gorm:"type:varchar(30)"`
	Designation   string          `gorm:"type:varchar(100)"`
	Department    string          `gorm:"type:varchar(100);index"`
	Salary        decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	DateOfJoining *time.Time      `gorm:"type:date"`
	Address       Address         `gorm:"embedded;embeddedPrefix:address_"`
	ProfileImage  string          `gorm:"type:varchar(500)"`
	LeaveBalance  LeaveBalance    `gorm:"embedded;embeddedPrefix:leave_"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// LeaveBalanceDelta is a signed change applied atomically per column.
type LeaveBalanceDelta struct {
	Casual   int
	Sick     int
	Pending  int
	Approved int
	Rejected int
}

func (d LeaveBalanceDelta) IsZero() bool {
	return d == LeaveBalanceDelta{}
}

// Add combines two deltas.
func (d LeaveBalanceDelta) Add(o LeaveBalanceDelta) LeaveBalanceDelta {
	return LeaveBalanceDelta{
		Casual:   d.Casual + o.Casual,
		Sick:     d.Sick + o.Sick,
		Pending:  d.Pending + o.Pending,
		Approved: d.Approved + o.Approved,
		Rejected: d.Rejected + o.Rejected,
	}
}

// Apply returns b with d added. Used by tests and in-memory callers; the
// database path never reads-then-writes.
func (b LeaveBalance) Apply(d LeaveBalanceDelta) LeaveBalance {
	return LeaveBalance{
		Casual:   b.Casual + d.Casual,
		Sick:     b.Sick + d.Sick,
		Pending:  b.Pending + d.Pending,
		Approved: b.Approved + d.Approved,
		Rejected: b.Rejected + d.Rejected,
	}
}
