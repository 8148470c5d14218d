package user

import (
	"context"
	"errors"

	"go-hrms/internal/auth"
	"go-hrms/internal/domain"
	"go-hrms/internal/shared/audit"
	"go-hrms/internal/shared/contextutil"
	usererrors "go-hrms/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, params ListParams) (ListResult, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	SetStatus(ctx context.Context, caller domain.Principal, id string, isActive bool) error
	SetRole(ctx context.Context, caller domain.Principal, id string, role string) error
	ChangePassword(ctx context.Context, caller domain.Principal, req ChangePasswordRequest) error
	ResetPassword(ctx context.Context, caller domain.Principal, id string, newPassword string) error
}

type service struct {
	repo   Repository
	audit  audit.Logger
	logger *zap.Logger
}

func NewService(repo Repository, auditLogger audit.Logger, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	if auditLogger == nil {
		auditLogger = audit.Nop{}
	}
	return &service{repo: repo, audit: auditLogger, logger: l}
}

func (s *service) GetAll(ctx context.Context, params ListParams) (ListResult, error) {
	if params.Role != "" {
		role, ok := domain.ParseRole(params.Role)
		if !ok {
			return ListResult{}, usererrors.ErrInvalidRole
		}
		params.Role = role.String()
	}

	items, total, err := s.repo.FindAll(ctx, params)
	if err != nil {
		return ListResult{}, err
	}

	res := ListResult{Items: make([]UserResponse, len(items)), Total: total}
	for i, identity := range items {
		res.Items[i] = mapToResponse(identity)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	identity, err := s.find(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	return mapToResponse(*identity), nil
}

// SetStatus switches an identity on or off. A deactivated identity fails
// authentication on its next request, whatever tokens it still holds.
func (s *service) SetStatus(ctx context.Context, caller domain.Principal, id string, isActive bool) error {
	identity, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if identity.ID == caller.IdentityID {
		return usererrors.ErrCannotModifySelf
	}

	if err := s.update(ctx, identity.ID, map[string]any{"is_active": isActive}); err != nil {
		return err
	}

	s.audit.Log(ctx, audit.Entry{
		Action:  audit.ActionIdentityStatusChanged,
		Message: "identity status changed",
		Meta: map[string]any{
			"identity_id": identity.ID.String(),
			"is_active":   isActive,
			"by":          caller.IdentityID.String(),
		},
	})
	return nil
}

func (s *service) SetRole(ctx context.Context, caller domain.Principal, id string, role string) error {
	parsed, ok := domain.ParseRole(role)
	if !ok {
		return usererrors.ErrInvalidRole
	}

	identity, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if identity.ID == caller.IdentityID {
		return usererrors.ErrCannotModifySelf
	}
	if identity.Role == parsed {
		return nil
	}

	if err := s.update(ctx, identity.ID, map[string]any{"role": parsed.String()}); err != nil {
		return err
	}

	s.audit.Log(ctx, audit.Entry{
		Action:  audit.ActionIdentityRoleChanged,
		Message: "identity role changed",
		Meta: map[string]any{
			"identity_id": identity.ID.String(),
			"from":        identity.Role.String(),
			"to":          parsed.String(),
			"by":          caller.IdentityID.String(),
		},
	})
	return nil
}

func (s *service) ChangePassword(ctx context.Context, caller domain.Principal, req ChangePasswordRequest) error {
	identity, err := s.repo.FindByID(ctx, caller.IdentityID)
	if err != nil {
		return mapFindError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.Password), []byte(req.CurrentPassword)); err != nil {
		return usererrors.ErrWrongPassword
	}

	return s.setPassword(ctx, identity.ID, req.NewPassword)
}

func (s *service) ResetPassword(ctx context.Context, caller domain.Principal, id string, newPassword string) error {
	identity, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.setPassword(ctx, identity.ID, newPassword); err != nil {
		return err
	}

	s.audit.Log(ctx, audit.Entry{
		Action:  audit.ActionPasswordReset,
		Message: "password reset by administrator",
		Meta: map[string]any{
			"identity_id": identity.ID.String(),
			"by":          caller.IdentityID.String(),
		},
	})
	return nil
}

func (s *service) setPassword(ctx context.Context, id uuid.UUID, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return usererrors.ErrPasswordTooLong
	}
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to hash password", zap.Error(err))
		return err
	}
	return s.update(ctx, id, map[string]any{"password": string(hashed)})
}

func (s *service) find(ctx context.Context, id string) (*auth.Identity, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, usererrors.ErrInvalidUserID
	}
	identity, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return nil, mapFindError(err)
	}
	return identity, nil
}

func (s *service) update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrUserNotFound
		}
		contextutil.GetLogger(ctx, s.logger).Error("failed to update identity",
			zap.String("identity_id", id.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func mapFindError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}
	return err
}

func mapToResponse(identity auth.Identity) UserResponse {
	return UserResponse{
		ID:         identity.ID.String(),
		Name:       identity.Name,
		Email:      identity.Email,
		Role:       identity.Role.String(),
		Department: identity.Department,
		IsActive:   identity.IsActive,
		CreatedAt:  identity.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
