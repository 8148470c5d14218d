package employee

import (
	"context"
	"errors"
	"testing"

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
	require.NoError(t, db.AutoMigrate(&Employee{}))
	return db
}

func seedEmployee(t *testing.T, repo Repository, name string, balance LeaveBalance) *Employee {
	t.Helper()
	e := &Employee{
		ID:           uuid.New(),
		EmployeeCode: "EMP-" + name,
		Name:         name,
		Email:        name + "@example.com",
		Department:   "IT",
		Salary:       decimal.NewFromInt(100),
		LeaveBalance: balance,
	}
	require.NoError(t, repo.Create(context.Background(), e))
	return e
}

func TestRepository_AdjustLeaveBalance(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	t.Run("pending casual reversal reaches zero", func(t *testing.T) {
		e := seedEmployee(t, repo, "alice", LeaveBalance{Casual: 1, Pending: 1})

		err := repo.AdjustLeaveBalance(ctx, e.ID, LeaveBalanceDelta{Casual: -1, Pending: -1})
		require.NoError(t, err)

		got, err := repo.FindByID(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, LeaveBalance{}, got.LeaveBalance)
	})

	t.Run("only touched columns change", func(t *testing.T) {
		e := seedEmployee(t, repo, "bob", LeaveBalance{Sick: 2, Pending: 2, Approved: 4})

		err := repo.AdjustLeaveBalance(ctx, e.ID, LeaveBalanceDelta{Sick: -1, Pending: -1, Approved: 1})
		require.NoError(t, err)

		got, err := repo.FindByID(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, LeaveBalance{Sick: 1, Pending: 1, Approved: 5}, got.LeaveBalance)
	})

	t.Run("zero delta is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.AdjustLeaveBalance(ctx, uuid.New(), LeaveBalanceDelta{}))
	})

	t.Run("unknown employee", func(t *testing.T) {
		err := repo.AdjustLeaveBalance(ctx, uuid.New(), LeaveBalanceDelta{Pending: 1})
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	})
}

func TestRepository_UpdateLeavesCountersAlone(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	e := seedEmployee(t, repo, "carol", LeaveBalance{Approved: 2})

	// a stale copy must not clobber counters moved in the meantime
	stale := *e
	require.NoError(t, repo.AdjustLeaveBalance(ctx, e.ID, LeaveBalanceDelta{Approved: 1}))

	stale.Name = "Carol Renamed"
	require.NoError(t, repo.Update(ctx, &stale))

	got, err := repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carol Renamed", got.Name)
	assert.Equal(t, 3, got.LeaveBalance.Approved)
}

func TestRepository_FindAllAndDelete(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	a := seedEmployee(t, repo, "dave", LeaveBalance{})
	seedEmployee(t, repo, "erin", LeaveBalance{})

	emps, total, err := repo.FindAll(ctx, ListParams{Page: 1, Limit: 10, Search: "DAV"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, emps, 1)
	assert.Equal(t, a.ID, emps[0].ID)

	require.NoError(t, repo.Delete(ctx, a.ID))

	_, err = repo.FindByID(ctx, a.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	err = repo.Delete(ctx, a.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	_, total, err = repo.FindAll(ctx, ListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
