package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type AddressDTO struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

type CreateEmployeeRequest struct {
	Name          string          `json:"name" binding:"required,max=255"`
	Email         string          `json:"email" binding:"required,email"`
	Phone         string          `json:"phone" binding:"omitempty,max=30"`
	Designation   string          `json:"designation" binding:"omitempty,max=100"`
	Department    string          `json:"department" binding:"omitempty,max=100"`
	Salary        decimal.Decimal `json:"salary"`
	DateOfJoining string          `json:"date_of_joining" binding:"omitempty"`
	Address       AddressDTO      `json:"address"`
	ProfileImage  string          `json:"profile_image" binding:"omitempty,url"`

	// Password, when set, also creates a login identity for the employee.
	Password string `json:"password" binding:"omitempty,min=6,max=72"`
	Role     string `json:"role" binding:"omitempty"`
}

type UpdateEmployeeRequest struct {
	Name          string          `json:"name" binding:"required,max=255"`
	Email         string          `json:"email" binding:"required,email"`
	Phone         string          `json:"phone" binding:"omitempty,max=30"`
	Designation   string          `json:"designation" binding:"omitempty,max=100"`
	Department    string          `json:"department" binding:"omitempty,max=100"`
	Salary        decimal.Decimal `json:"salary"`
	DateOfJoining string          `json:"date_of_joining" binding:"omitempty"`
	Address       AddressDTO      `json:"address"`
	ProfileImage  string          `json:"profile_image" binding:"omitempty,url"`
}

type ListParams struct {
	Page       int
	Limit      int
	Search     string
	Department string
}

func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type LeaveBalanceResponse struct {
	Casual   int `json:"casual"`
	Sick     int `json:"sick"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

type EmployeeResponse struct {
	ID            string               `json:"id"`
	IdentityID    string               `json:"identity_id,omitempty"`
	EmployeeCode  string               `json:"employee_code"`
	Name          string               `json:"name"`
	Email         string               `json:"email"`
	Phone         string               `json:"phone,omitempty"`
	Designation   string               `json:"designation,omitempty"`
	Department    string               `json:"department,omitempty"`
	Salary        decimal.Decimal      `json:"salary"`
	DateOfJoining string               `json:"date_of_joining,omitempty"`
	Address       AddressDTO           `json:"address"`
	ProfileImage  string               `json:"profile_image,omitempty"`
	LeaveBalance  LeaveBalanceResponse `json:"leave_balance"`
	CreatedAt     time.Time            `json:"created_at"`
}

type EmployeeOptionResponse struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	Name         string `json:"name"`
}
