package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/domain"
	"go-hrms/internal/employee"
	"go-hrms/internal/rbac"
	"go-hrms/internal/shared/audit"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*MeResponse, error)
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Authenticate(ctx context.Context, token string) (domain.Principal, error)

	employee.IdentityProvisioner
}

// ProfileFinder resolves the employee linked to an identity.
type ProfileFinder interface {
	FindByIdentityID(ctx context.Context, identityID uuid.UUID) (*employee.Employee, error)
}

type service struct {
	repo     Repository
	tokens   *TokenManager
	profiles ProfileFinder
	rbac     rbac.Service
	audit    audit.Logger
	logger   *zap.Logger
}

func NewService(
	repo Repository,
	tokens *TokenManager,
	profiles ProfileFinder,
	rbacService rbac.Service,
	auditLogger audit.Logger,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	if auditLogger == nil {
		auditLogger = audit.Nop{}
	}
	return &service{
		repo:     repo,
		tokens:   tokens,
		profiles: profiles,
		rbac:     rbacService,
		audit:    auditLogger,
		logger:   l,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	identity, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("login lookup failed", zap.Error(err))
			return "", "", AuthResponse{}, err
		}
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.Password), []byte(password)); err != nil {
		log.Info("login rejected", zap.String("identity_id", identity.ID.String()))
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if !identity.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrAccountInactive
	}

	access, refresh, err := s.issuePair(*identity)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	log.Info("login success", zap.String("identity_id", identity.ID.String()), zap.String("role", identity.Role.String()))
	return access, refresh, s.toResponse(ctx, *identity), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	claims, err := s.tokens.Parse(refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	identity, err := s.activeIdentity(ctx, claims.Subject)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	access, refresh, err := s.issuePair(*identity)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	return access, refresh, s.toResponse(ctx, *identity), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*MeResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	identity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, autherrors.ErrIdentityNotFound
		}
		return nil, err
	}

	perms := []string{}
	if s.rbac != nil {
		perms = s.rbac.PermissionsFor(identity.Role)
	}

	return &MeResponse{
		AuthResponse: s.toResponse(ctx, *identity),
		Department:   identity.Department,
		Permissions:  perms,
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return AuthResponse{}, autherrors.ErrInvalidRole
	}

	identity, err := newIdentity(employee.NewIdentity{
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Name,
		Department: req.Department,
		Role:       role,
	})
	if err != nil {
		return AuthResponse{}, err
	}

	if err := s.repo.Create(ctx, identity); err != nil {
		return AuthResponse{}, mapCreateError(err)
	}

	s.audit.Log(ctx, audit.Entry{
		Action:  audit.ActionIdentityCreated,
		Message: "identity registered",
		Meta: map[string]any{
			"identity_id": identity.ID.String(),
			"role":        identity.Role.String(),
		},
	})
	return s.toResponse(ctx, *identity), nil
}

// Authenticate verifies an access token and resolves the caller. A missing
// employee profile is not an error; the principal just carries no employee id.
func (s *service) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	claims, err := s.tokens.Parse(token, TokenTypeAccess)
	if err != nil {
		return domain.Principal{}, autherrors.ErrInvalidToken
	}

	identity, err := s.activeIdentity(ctx, claims.Subject)
	if err != nil {
		return domain.Principal{}, err
	}

	principal := domain.Principal{
		IdentityID: identity.ID,
		Role:       identity.Role,
		Email:      identity.Email,
		Name:       identity.Name,
	}
	if empl := s.lookupProfile(ctx, identity.ID); empl != nil {
		principal.EmployeeID = empl.ID
	}
	return principal, nil
}

func (s *service) ProvisionIdentity(ctx context.Context, tx *sql.Tx, in employee.NewIdentity) (uuid.UUID, error) {
	if in.Role == "" {
		in.Role = domain.RoleEmployee
	}
	if !in.Role.Valid() {
		return uuid.Nil, autherrors.ErrInvalidRole
	}

	identity, err := newIdentity(in)
	if err != nil {
		return uuid.Nil, err
	}

	repo := s.repo
	if tx != nil {
		repo = repo.WithTx(tx)
	}
	if err := repo.Create(ctx, identity); err != nil {
		return uuid.Nil, mapCreateError(err)
	}
	return identity.ID, nil
}

func (s *service) FindIdentityIDByEmail(ctx context.Context, email string) (uuid.UUID, bool, error) {
	identity, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, err
	}
	return identity.ID, true, nil
}

func (s *service) activeIdentity(ctx context.Context, subject string) (*Identity, error) {
	id, err := uuid.Parse(subject)
	if err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	identity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, autherrors.ErrInvalidToken
		}
		return nil, err
	}
	if !identity.IsActive {
		return nil, autherrors.ErrAccountInactive
	}
	return identity, nil
}

func (s *service) lookupProfile(ctx context.Context, identityID uuid.UUID) *employee.Employee {
	if s.profiles == nil {
		return nil
	}
	empl, err := s.profiles.FindByIdentityID(ctx, identityID)
	if err != nil {
		log := contextutil.GetLogger(ctx, s.logger)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Debug("no employee profile for identity", zap.String("identity_id", identityID.String()))
		} else {
			log.Warn("employee profile lookup failed", zap.String("identity_id", identityID.String()), zap.Error(err))
		}
		return nil
	}
	return empl
}

func (s *service) issuePair(identity Identity) (string, string, error) {
	access, err := s.tokens.Issue(identity, TokenTypeAccess)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.Issue(identity, TokenTypeRefresh)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *service) toResponse(ctx context.Context, identity Identity) AuthResponse {
	resp := AuthResponse{
		ID:    identity.ID.String(),
		Email: identity.Email,
		Name:  identity.Name,
		Role:  identity.Role.String(),
	}
	if empl := s.lookupProfile(ctx, identity.ID); empl != nil {
		resp.EmployeeID = empl.ID.String()
	}
	return resp
}

func newIdentity(in employee.NewIdentity) (*Identity, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, autherrors.ErrPasswordTooLong
	}
	if err != nil {
		return nil, err
	}
	return &Identity{
		ID:         uuid.New(),
		Name:       in.Name,
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		Password:   string(hashed),
		Role:       in.Role,
		Department: in.Department,
		IsActive:   true,
	}, nil
}

func mapCreateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return autherrors.ErrEmailAlreadyRegistered
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "unique constraint failed") {
		return autherrors.ErrEmailAlreadyRegistered
	}
	return err
}
