package announcement

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=announcement_repo.go -destination=mock/announcement_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Announcement) error
	FindAll(ctx context.Context, params ListParams) ([]Announcement, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Announcement, error)
	Update(ctx context.Context, a *Announcement) error
	Delete(ctx context.Context, id uuid.UUID) (*Announcement, error)
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

func (r *repository) Create(ctx context.Context, a *Announcement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// FindAll pages newest first. A non-empty audience matches that audience and
// announcements addressed to everyone.
func (r *repository) FindAll(ctx context.Context, params ListParams) ([]Announcement, int64, error) {
	q := r.db.WithContext(ctx).Model(&Announcement{})
	if params.Audience != "" && params.Audience != AudienceAll {
		q = q.Where("audience IN ?", []string{AudienceAll, params.Audience})
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []Announcement
	err := q.Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&items).Error
	return items, total, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Announcement, error) {
	var a Announcement
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) Update(ctx context.Context, a *Announcement) error {
	return r.db.WithContext(ctx).
		Model(a).
		Select("title", "content", "audience", "updated_at").
		Updates(a).Error
}

// Delete removes the row and returns what was removed.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) (*Announcement, error) {
	a, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&Announcement{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return a, nil
}
