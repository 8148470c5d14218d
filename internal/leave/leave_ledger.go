package leave

import (
	"strings"
	"time"

	"go-hrms/internal/employee"
	leaveerrors "go-hrms/internal/leave/errors"
)

// Counter arithmetic for every ledger transition. Each function returns the
// exact delta to apply to the owning employee's leave balance.

func ParseLeaveType(s string) (LeaveType, bool) {
	switch t := LeaveType(strings.ToLower(strings.TrimSpace(s))); t {
	case TypeCasual, TypeSick:
		return t, true
	}
	return "", false
}

// ParseDecision accepts only the two terminal statuses.
func ParseDecision(s string) (Status, bool) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusApproved, StatusRejected:
		return st, true
	}
	return "", false
}

// CountDays is floor((to - from) / 24h) + 1. A range that runs backwards
// yields zero or a negative count and is stored as is. The span is taken in
// whole seconds since time.Duration saturates past roughly 292 years.
func CountDays(from, to time.Time) int {
	secs := to.Unix() - from.Unix()
	if to.Nanosecond() < from.Nanosecond() {
		secs--
	}
	days := secs / secondsPerDay
	if secs%secondsPerDay < 0 {
		days--
	}
	return int(days) + 1
}

const secondsPerDay = 24 * 60 * 60

func ApplyDelta(t LeaveType) employee.LeaveBalanceDelta {
	return typeDelta(t, 1).Add(employee.LeaveBalanceDelta{Pending: 1})
}

func DecisionDelta(t LeaveType, decision Status) employee.LeaveBalanceDelta {
	d := typeDelta(t, -1).Add(employee.LeaveBalanceDelta{Pending: -1})
	switch decision {
	case StatusApproved:
		d.Approved = 1
	case StatusRejected:
		d.Rejected = 1
	}
	return d
}

// DeletionDelta reverses only the category the request currently sits in.
func DeletionDelta(t LeaveType, status Status) employee.LeaveBalanceDelta {
	switch status {
	case StatusPending:
		return typeDelta(t, -1).Add(employee.LeaveBalanceDelta{Pending: -1})
	case StatusApproved:
		return employee.LeaveBalanceDelta{Approved: -1}
	case StatusRejected:
		return employee.LeaveBalanceDelta{Rejected: -1}
	}
	return employee.LeaveBalanceDelta{}
}

func typeDelta(t LeaveType, n int) employee.LeaveBalanceDelta {
	switch t {
	case TypeCasual:
		return employee.LeaveBalanceDelta{Casual: n}
	case TypeSick:
		return employee.LeaveBalanceDelta{Sick: n}
	}
	return employee.LeaveBalanceDelta{}
}

const dateLayout = "2006-01-02"

// parseDate accepts a calendar date or a full RFC3339 timestamp.
func parseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(dateLayout, v); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Time{}, leaveerrors.ErrInvalidDateFormat
}
