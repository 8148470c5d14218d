package leave

import (
	"testing"
	"time"

	"go-hrms/internal/employee"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, v string) time.Time {
	t.Helper()
	d, err := parseDate(v)
	require.NoError(t, err)
	return d
}

func TestCountDays(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     int
	}{
		{"three day range", "2024-01-01", "2024-01-03", 3},
		{"same day", "2024-01-01", "2024-01-01", 1},
		{"one day backwards", "2024-01-02", "2024-01-01", 0},
		{"backwards range", "2024-01-05", "2024-01-01", -3},
		{"partial day floors", "2024-01-01T00:00:00Z", "2024-01-02T12:00:00Z", 2},
		{"partial backwards day floors", "2024-01-02T12:00:00Z", "2024-01-01T00:00:00Z", -1},
		{"whole calendar range", "0001-01-01", "9999-12-31", 3652059},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountDays(mustDate(t, tt.from), mustDate(t, tt.to)))
		})
	}
}

func TestParseLeaveType(t *testing.T) {
	lt, ok := ParseLeaveType(" Casual ")
	assert.True(t, ok)
	assert.Equal(t, TypeCasual, lt)

	lt, ok = ParseLeaveType("SICK")
	assert.True(t, ok)
	assert.Equal(t, TypeSick, lt)

	_, ok = ParseLeaveType("annual")
	assert.False(t, ok)
}

func TestParseDecision(t *testing.T) {
	st, ok := ParseDecision("Approved")
	assert.True(t, ok)
	assert.Equal(t, StatusApproved, st)

	_, ok = ParseDecision("pending")
	assert.False(t, ok)
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2024-03-01T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, 8, d.UTC().Hour())

	_, err = parseDate("01/03/2024")
	assert.Error(t, err)
}

func TestApplyDelta(t *testing.T) {
	assert.Equal(t, employee.LeaveBalanceDelta{Casual: 1, Pending: 1}, ApplyDelta(TypeCasual))
	assert.Equal(t, employee.LeaveBalanceDelta{Sick: 1, Pending: 1}, ApplyDelta(TypeSick))
}

func TestDecisionDelta(t *testing.T) {
	tests := []struct {
		leaveType LeaveType
		decision  Status
		want      employee.LeaveBalanceDelta
	}{
		{TypeCasual, StatusApproved, employee.LeaveBalanceDelta{Pending: -1, Casual: -1, Approved: 1}},
		{TypeSick, StatusApproved, employee.LeaveBalanceDelta{Pending: -1, Sick: -1, Approved: 1}},
		{TypeCasual, StatusRejected, employee.LeaveBalanceDelta{Pending: -1, Casual: -1, Rejected: 1}},
		{TypeSick, StatusRejected, employee.LeaveBalanceDelta{Pending: -1, Sick: -1, Rejected: 1}},
	}
	for _, tt := range tests {
		t.Run(string(tt.leaveType)+"_"+string(tt.decision), func(t *testing.T) {
			assert.Equal(t, tt.want, DecisionDelta(tt.leaveType, tt.decision))
		})
	}
}

func TestDeletionDelta(t *testing.T) {
	assert.Equal(t, employee.LeaveBalanceDelta{Pending: -1, Casual: -1}, DeletionDelta(TypeCasual, StatusPending))
	assert.Equal(t, employee.LeaveBalanceDelta{Approved: -1}, DeletionDelta(TypeSick, StatusApproved))
	assert.Equal(t, employee.LeaveBalanceDelta{Rejected: -1}, DeletionDelta(TypeCasual, StatusRejected))

	pending := employee.LeaveBalance{Pending: 1, Casual: 1}
	assert.Equal(t, employee.LeaveBalance{}, pending.Apply(DeletionDelta(TypeCasual, StatusPending)))
}

func TestLedgerRoundTrip(t *testing.T) {
	var b employee.LeaveBalance
	b = b.Apply(ApplyDelta(TypeSick))
	b = b.Apply(DecisionDelta(TypeSick, StatusRejected))
	assert.Equal(t, employee.LeaveBalance{Rejected: 1}, b)

	b = b.Apply(DeletionDelta(TypeSick, StatusRejected))
	assert.Equal(t, employee.LeaveBalance{}, b)
}
