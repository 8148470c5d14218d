package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-hrms/internal/domain"
	"go-hrms/internal/employee"
	leaveerrors "go-hrms/internal/leave/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&employee.Employee{}, &Leave{}))
	return db
}

func seedEmployee(t *testing.T, db *gorm.DB, balance employee.LeaveBalance) *employee.Employee {
	t.Helper()
	e := &employee.Employee{
		ID:           uuid.New(),
		EmployeeCode: "EMP-" + uuid.NewString()[:6],
		Name:         "Jane",
		Email:        uuid.NewString() + "@example.com",
		Department:   "IT",
		Salary:       decimal.NewFromInt(100),
		LeaveBalance: balance,
	}
	require.NoError(t, db.Create(e).Error)
	return e
}

func seedLeave(t *testing.T, repo Repository, employeeID uuid.UUID, lt LeaveType, status Status) *Leave {
	t.Helper()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := &Leave{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		LeaveType:   lt,
		FromDate:    from,
		ToDate:      from.AddDate(0, 0, 2),
		Days:        3,
		Reason:      "family",
		Status:      status,
		AppliedDate: time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), l))
	return l
}

func balanceOf(t *testing.T, db *gorm.DB, id uuid.UUID) employee.LeaveBalance {
	t.Helper()
	var e employee.Employee
	require.NoError(t, db.Unscoped().First(&e, "id = ?", id).Error)
	return e.LeaveBalance
}

func TestRepository_UpdateStatusIsCompareAndSet(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	e := seedEmployee(t, db, employee.LeaveBalance{})
	l := seedLeave(t, repo, e.ID, TypeCasual, StatusPending)

	approver := uuid.New()
	first := Decision{Status: StatusApproved, ApproverID: &approver, DecidedAt: time.Now()}
	require.NoError(t, repo.UpdateStatus(ctx, l.ID, first))

	second := Decision{Status: StatusRejected, DecidedAt: time.Now()}
	err := repo.UpdateStatus(ctx, l.ID, second)
	assert.True(t, errors.Is(err, ErrStatusChanged))

	got, err := repo.FindByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, got.Status)
	require.NotNil(t, got.ApproverID)
	assert.Equal(t, approver, *got.ApproverID)
	assert.NotNil(t, got.DecidedAt)
}

func TestRepository_DeleteWithStatus(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	e := seedEmployee(t, db, employee.LeaveBalance{})
	l := seedLeave(t, repo, e.ID, TypeSick, StatusApproved)

	err := repo.DeleteWithStatus(ctx, l.ID, StatusPending)
	assert.True(t, errors.Is(err, ErrStatusChanged))

	require.NoError(t, repo.DeleteWithStatus(ctx, l.ID, StatusApproved))
	_, err = repo.FindByID(ctx, l.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepository_FindAllPreloadsEmployee(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	e := seedEmployee(t, db, employee.LeaveBalance{})
	seedLeave(t, repo, e.ID, TypeCasual, StatusPending)
	seedLeave(t, repo, e.ID, TypeSick, StatusRejected)

	leaves, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, leaves, 2)
	assert.False(t, leaves[0].AppliedDate.Before(leaves[1].AppliedDate))
	require.NotNil(t, leaves[0].Employee)
	assert.Equal(t, e.EmployeeCode, leaves[0].Employee.EmployeeCode)

	mine, err := repo.FindByEmployee(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func newLedger(t *testing.T) (*gorm.DB, Service) {
	t.Helper()
	db := openTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	return db, NewService(sqlDB, NewRepository(db), employee.NewRepository(db), nil)
}

func TestLedger_ApplyDecideDeleteAgainstDatabase(t *testing.T) {
	db, svc := newLedger(t)
	ctx := context.Background()
	e := seedEmployee(t, db, employee.LeaveBalance{})
	emp := domain.Principal{IdentityID: uuid.New(), EmployeeID: e.ID, Role: domain.RoleEmployee}
	hr := domain.Principal{IdentityID: uuid.New(), EmployeeID: uuid.New(), Role: domain.RoleHR}
	admin := domain.Principal{IdentityID: uuid.New(), Role: domain.RoleAdmin}

	applied, err := svc.Apply(ctx, emp, ApplyLeaveRequest{
		LeaveType: "Casual", FromDate: "2024-01-01", ToDate: "2024-01-03", Reason: "trip",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, applied.Days)
	assert.Equal(t, employee.LeaveBalance{Casual: 1, Pending: 1}, balanceOf(t, db, e.ID))

	t.Run("delete pending reverses pending and type", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, admin, applied.ID))
		assert.Equal(t, employee.LeaveBalance{}, balanceOf(t, db, e.ID))
	})

	sick, err := svc.Apply(ctx, emp, ApplyLeaveRequest{
		LeaveType: "sick", FromDate: "2024-02-01", ToDate: "2024-02-01", Reason: "flu",
	})
	require.NoError(t, err)

	t.Run("reject sick decrements sick", func(t *testing.T) {
		res, err := svc.Decide(ctx, hr, sick.ID, DecideLeaveRequest{Status: "REJECTED"})
		require.NoError(t, err)
		assert.Equal(t, "Leave rejected successfully", res.Message)
		assert.Equal(t, hr.EmployeeID.String(), res.Leave.ApproverID)
		assert.Equal(t, employee.LeaveBalance{Rejected: 1}, balanceOf(t, db, e.ID))
	})

	t.Run("re-decide is a conflict and leaves counters alone", func(t *testing.T) {
		_, err := svc.Decide(ctx, hr, sick.ID, DecideLeaveRequest{Status: "approved"})
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveAlreadyDecided)
		assert.Equal(t, employee.LeaveBalance{Rejected: 1}, balanceOf(t, db, e.ID))
	})

	t.Run("balance totals", func(t *testing.T) {
		b, err := svc.GetBalance(ctx, emp)
		require.NoError(t, err)
		assert.Equal(t, BalanceResponse{TotalLeaves: 1, Rejected: 1}, b)
	})
}

func TestLedger_ApplyWithoutProfileRow(t *testing.T) {
	db, svc := newLedger(t)
	ghost := domain.Principal{IdentityID: uuid.New(), EmployeeID: uuid.New(), Role: domain.RoleEmployee}

	_, err := svc.Apply(context.Background(), ghost, ApplyLeaveRequest{
		LeaveType: "casual", FromDate: "2024-01-01", ToDate: "2024-01-02", Reason: "x",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrEmployeeProfileNotFound)

	var count int64
	require.NoError(t, db.Model(&Leave{}).Count(&count).Error)
	assert.Zero(t, count)
}
