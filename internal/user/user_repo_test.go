package user

import (
	"context"
	"testing"
	"time"

	"go-hrms/internal/auth"
	"go-hrms/internal/domain"

	"github.com/google/uuid"
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
	require.NoError(t, db.AutoMigrate(&auth.Identity{}))
	return db
}

func seedIdentity(t *testing.T, db *gorm.DB, name, email string, role domain.Role, at time.Time) auth.Identity {
	t.Helper()
	identity := auth.Identity{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Password:  "hash",
		Role:      role,
		IsActive:  true,
		CreatedAt: at,
	}
	require.NoError(t, db.Create(&identity).Error)
	return identity
}

func TestRepository_FindAllFiltersAndSearches(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seedIdentity(t, db, "Ann Admin", "ann@acme.io", domain.RoleAdmin, base)
	seedIdentity(t, db, "Hal HR", "hal@acme.io", domain.RoleHR, base.Add(time.Hour))
	seedIdentity(t, db, "Anna Staff", "anna@acme.io", domain.RoleEmployee, base.Add(2*time.Hour))

	items, total, err := repo.FindAll(ctx, ListParams{Page: 1, Limit: 10, Search: "ANN"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	assert.Equal(t, "Anna Staff", items[0].Name)

	items, total, err = repo.FindAll(ctx, ListParams{Page: 1, Limit: 10, Role: "HR"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Hal HR", items[0].Name)

	items, total, err = repo.FindAll(ctx, ListParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Ann Admin", items[0].Name)
}

func TestRepository_UpdateFields(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	identity := seedIdentity(t, db, "Eve", "eve@acme.io", domain.RoleEmployee, time.Now())

	require.NoError(t, repo.UpdateFields(ctx, identity.ID, map[string]any{"is_active": false}))

	got, err := repo.FindByID(ctx, identity.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	err = repo.UpdateFields(ctx, uuid.New(), map[string]any{"is_active": true})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
