package counter

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/connection"

	"gorm.io/gorm"
)

const EmployeeCode = "employee_code"

//go:generate mockgen -source=counter_repo.go -destination=mock/counter_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	GetNextValue(ctx context.Context, name string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

// GetNextValue bumps the named sequence and returns the new value. The
// upsert is a single statement so concurrent callers never see the same value.
func (r *repository) GetNextValue(ctx context.Context, name string) (int64, error) {
	var next int64

	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO counters (name, value)
		VALUES (?, 1)
		ON CONFLICT (name) DO UPDATE
		SET value = counters.value + 1
		RETURNING value
	`, name).Scan(&next).Error
	if err != nil {
		return 0, err
	}

	return next, nil
}
