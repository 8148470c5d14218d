package user

import (
	"context"
	"strings"

	"go-hrms/internal/auth"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context, params ListParams) ([]auth.Identity, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*auth.Identity, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context, params ListParams) ([]auth.Identity, int64, error) {
	q := r.db.WithContext(ctx).Model(&auth.Identity{})
	if params.Role != "" {
		q = q.Where("role = ?", params.Role)
	}
	if s := strings.ToLower(strings.TrimSpace(params.Search)); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []auth.Identity
	err := q.Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&items).Error
	return items, total, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*auth.Identity, error) {
	var identity auth.Identity
	if err := r.db.WithContext(ctx).First(&identity, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &identity, nil
}

// UpdateFields writes only the named columns. A missing row is
// gorm.ErrRecordNotFound.
func (r *repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&auth.Identity{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
