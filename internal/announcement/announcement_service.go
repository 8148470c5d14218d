package announcement

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	announcementerrors "go-hrms/internal/announcement/errors"
	"go-hrms/internal/domain"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// ListVersionKey is bumped on every write; list pages are cached under
	// the current version so stale pages simply stop being read.
	ListVersionKey = "announcements:version"
	listCacheTTL   = 30 * time.Minute
)

func ListCacheKey(version int64, params ListParams) string {
	return fmt.Sprintf("announcements:list:v%d:%s:%d:%d", version, params.Audience, params.Page, params.Limit)
}

//go:generate mockgen -source=announcement_service.go -destination=mock/announcement_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, author domain.Principal, req CreateAnnouncementRequest) (AnnouncementResponse, error)
	GetAll(ctx context.Context, params ListParams) (ListResult, error)
	GetByID(ctx context.Context, id string) (AnnouncementResponse, error)
	Update(ctx context.Context, id string, req UpdateAnnouncementRequest) (AnnouncementResponse, error)
	Delete(ctx context.Context, id string) (string, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("announcement.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("announcement.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, logger: l}
}

func (s *service) Create(ctx context.Context, author domain.Principal, req CreateAnnouncementRequest) (AnnouncementResponse, error) {
	a := &Announcement{
		ID:       uuid.New(),
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
		Audience: normalizeAudience(req.Audience),
	}
	if author.IdentityID != uuid.Nil {
		id := author.IdentityID
		a.AuthorID = &id
	}

	if err := s.repo.Create(ctx, a); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("create announcement failed", zap.Error(err))
		return AnnouncementResponse{}, err
	}
	s.bumpVersion(ctx)
	return mapToResponse(*a), nil
}

func (s *service) GetAll(ctx context.Context, params ListParams) (ListResult, error) {
	params.Audience = strings.TrimSpace(params.Audience)

	var key string
	if s.rdb != nil {
		version, err := s.rdb.Get(ctx, ListVersionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			s.logger.Warn("read announcement cache version failed", zap.Error(err))
		}
		key = ListCacheKey(version, params)
		if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var res ListResult
			if json.Unmarshal(cached, &res) == nil {
				return res, nil
			}
		}
	}

	items, total, err := s.repo.FindAll(ctx, params)
	if err != nil {
		return ListResult{}, err
	}
	res := ListResult{Items: mapToListResponse(items), Total: total}

	if s.rdb != nil {
		if data, err := json.Marshal(res); err == nil {
			if err := s.rdb.Set(ctx, key, data, listCacheTTL).Err(); err != nil {
				s.logger.Warn("cache announcement page failed", zap.Error(err))
			}
		}
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (AnnouncementResponse, error) {
	aid, err := uuid.Parse(id)
	if err != nil {
		return AnnouncementResponse{}, announcementerrors.ErrInvalidAnnouncementID
	}
	a, err := s.repo.FindByID(ctx, aid)
	if err != nil {
		return AnnouncementResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*a), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateAnnouncementRequest) (AnnouncementResponse, error) {
	aid, err := uuid.Parse(id)
	if err != nil {
		return AnnouncementResponse{}, announcementerrors.ErrInvalidAnnouncementID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AnnouncementResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := qtx.FindByID(ctx, aid)
	if err != nil {
		return AnnouncementResponse{}, mapRepositoryError(err)
	}

	a.Title = strings.TrimSpace(req.Title)
	a.Content = req.Content
	if req.Audience != "" {
		a.Audience = normalizeAudience(req.Audience)
	}
	a.UpdatedAt = time.Now()

	if err := qtx.Update(ctx, a); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("update announcement failed", zap.Error(err))
		return AnnouncementResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AnnouncementResponse{}, err
	}
	s.bumpVersion(ctx)
	return mapToResponse(*a), nil
}

// Delete returns the confirmation message naming the removed title.
func (s *service) Delete(ctx context.Context, id string) (string, error) {
	aid, err := uuid.Parse(id)
	if err != nil {
		return "", announcementerrors.ErrInvalidAnnouncementID
	}
	a, err := s.repo.Delete(ctx, aid)
	if err != nil {
		return "", mapRepositoryError(err)
	}
	s.bumpVersion(ctx)
	return fmt.Sprintf("Announcement with title %q was deleted", a.Title), nil
}

func (s *service) bumpVersion(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Incr(ctx, ListVersionKey).Err(); err != nil {
		s.logger.Error("failed to invalidate announcement cache", zap.Error(err))
	}
}

func normalizeAudience(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, AudienceAll) {
		return AudienceAll
	}
	return v
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return announcementerrors.ErrAnnouncementNotFound
	}
	return err
}

func mapToResponse(a Announcement) AnnouncementResponse {
	res := AnnouncementResponse{
		ID:        a.ID.String(),
		Title:     a.Title,
		Content:   a.Content,
		Audience:  a.Audience,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.AuthorID != nil {
		res.AuthorID = a.AuthorID.String()
	}
	return res
}

func mapToListResponse(items []Announcement) []AnnouncementResponse {
	res := make([]AnnouncementResponse, len(items))
	for i, a := range items {
		res[i] = mapToResponse(a)
	}
	return res
}
