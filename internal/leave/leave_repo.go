package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-hrms/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrStatusChanged reports that a guarded write matched no row because the
// request left the expected status in the meantime.
var ErrStatusChanged = errors.New("leave status changed")

// Decision is the column set written when a pending request is decided.
type Decision struct {
	Status     Status
	ApproverID *uuid.UUID
	DecidedAt  time.Time
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindAll(ctx context.Context) ([]Leave, error)
	FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]Leave, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Leave, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, d Decision) error
	DeleteWithStatus(ctx context.Context, id uuid.UUID, status Status) error
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Preload("Employee", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped().Select("id", "employee_code", "name", "email", "department", "designation")
		}).
		Order("applied_date DESC").
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("applied_date DESC").
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Leave, error) {
	var l Leave
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// UpdateStatus moves a pending request to its decision. It is a
// compare-and-set: a request that is no longer pending is left untouched and
// ErrStatusChanged is returned.
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, d Decision) error {
	res := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]any{
			"status":      d.Status,
			"approver_id": d.ApproverID,
			"decided_at":  d.DecidedAt,
			"updated_at":  d.DecidedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

func (r *repository) DeleteWithStatus(ctx context.Context, id uuid.UUID, status Status) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, status).
		Delete(&Leave{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}
