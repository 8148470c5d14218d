package employee

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-hrms/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindAll(ctx context.Context, params ListParams) ([]Employee, int64, error)
	FindOptions(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByIdentityID(ctx context.Context, identityID uuid.UUID) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	AdjustLeaveBalance(ctx context.Context, id uuid.UUID, delta LeaveBalanceDelta) error
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context, params ListParams) ([]Employee, int64, error) {
	q := r.db.WithContext(ctx).Model(&Employee{})

	if s := strings.TrimSpace(params.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(employee_code) LIKE ?", like, like, like)
	}
	if params.Department != "" {
		q = q.Where("department = ?", params.Department)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var emps []Employee
	err := q.Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&emps).Error
	return emps, total, err
}

func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var emps []Employee
	err := r.db.WithContext(ctx).
		Select("id", "employee_code", "name").
		Order("name ASC").
		Find(&emps).Error
	return emps, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var e Employee
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindByIdentityID(ctx context.Context, identityID uuid.UUID) (*Employee, error) {
	var e Employee
	if err := r.db.WithContext(ctx).First(&e, "identity_id = ?", identityID).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// Update writes profile columns only. Leave counters are left alone so a
// concurrent ledger transition is never overwritten by a stale read.
func (r *repository) Update(ctx context.Context, e *Employee) error {
	res := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", e.ID).
		Updates(map[string]any{
			"name":             e.Name,
			"email":            e.Email,
			"phone":            e.Phone,
			"designation":      e.Designation,
			"department":       e.Department,
			"salary":           e.Salary,
			"date_of_joining":  e.DateOfJoining,
			"address_street":   e.Address.Street,
			"address_city":     e.Address.City,
			"address_state":    e.Address.State,
			"address_zip_code": e.Address.ZipCode,
			"address_country":  e.Address.Country,
			"profile_image":    e.ProfileImage,
			"updated_at":       time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AdjustLeaveBalance applies delta as column = column + n in one UPDATE, so
// concurrent transitions on the same employee never lose an increment.
func (r *repository) AdjustLeaveBalance(ctx context.Context, id uuid.UUID, delta LeaveBalanceDelta) error {
	updates := map[string]any{}
	add := func(col string, n int) {
		if n != 0 {
			updates[col] = gorm.Expr(col+" + ?", n)
		}
	}
	add("leave_casual", delta.Casual)
	add("leave_sick", delta.Sick)
	add("leave_pending", delta.Pending)
	add("leave_approved", delta.Approved)
	add("leave_rejected", delta.Rejected)

	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()

	res := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		UpdateColumns(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
