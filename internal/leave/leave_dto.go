package leave

import "time"

// ApplyLeaveRequest takes the range as fromDate/toDate. The older from/to
// spelling is still accepted; fromDate/toDate win when both are sent.
type ApplyLeaveRequest struct {
	LeaveType string `json:"leaveType" binding:"required"`
	FromDate  string `json:"fromDate" binding:"required_without=From"`
	ToDate    string `json:"toDate" binding:"required_without=To"`
	From      string `json:"from,omitempty" binding:"omitempty"`
	To        string `json:"to,omitempty" binding:"omitempty"`
	Reason    string `json:"reason" binding:"required,max=2000"`
}

func (r ApplyLeaveRequest) Range() (from, to string) {
	from, to = r.FromDate, r.ToDate
	if from == "" {
		from = r.From
	}
	if to == "" {
		to = r.To
	}
	return from, to
}

type DecideLeaveRequest struct {
	Status string `json:"status" binding:"required"`
}

type EmployeeSummary struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Department   string `json:"department,omitempty"`
	Designation  string `json:"designation,omitempty"`
}

type LeaveResponse struct {
	ID          string           `json:"id"`
	EmployeeID  string           `json:"employee_id"`
	Employee    *EmployeeSummary `json:"employee,omitempty"`
	LeaveType   string           `json:"leave_type"`
	FromDate    time.Time        `json:"from_date"`
	ToDate      time.Time        `json:"to_date"`
	Days        int              `json:"days"`
	Reason      string           `json:"reason"`
	Status      string           `json:"status"`
	ApproverID  string           `json:"approver_id,omitempty"`
	AppliedDate time.Time        `json:"applied_date"`
	DecidedAt   *time.Time       `json:"decided_at,omitempty"`
}

type DecisionResponse struct {
	Message string        `json:"message"`
	Leave   LeaveResponse `json:"leave"`
}

type BalanceResponse struct {
	TotalLeaves int `json:"totalLeaves"`
	Approved    int `json:"approved"`
	Rejected    int `json:"rejected"`
	Pending     int `json:"pending"`
	Casual      int `json:"casual"`
	Sick        int `json:"sick"`
}
