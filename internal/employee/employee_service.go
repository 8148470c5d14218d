package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go-hrms/internal/domain"
	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeOptionsKey = "employees:options"
	optionsCacheTTL    = time.Hour
	dateLayout         = "2006-01-02"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, params ListParams) ([]EmployeeResponse, int64, error)
	GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	GetByIdentityID(ctx context.Context, identityID string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db         *sql.DB
	repo       Repository
	counter    counter.Repository
	outbox     kafka.OutboxRepository
	identities IdentityProvisioner
	rdb        *redis.Client
	sf         *singleflight.Group
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	identities IdentityProvisioner,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		counter:    counter,
		outbox:     outboxRepo,
		identities: identities,
		rdb:        rdb,
		sf:         &singleflight.Group{},
		logger:     l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create employee requested", zap.String("email", req.Email))

	joined, err := parseDate(req.DateOfJoining)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if req.Salary.IsNegative() {
		return EmployeeResponse{}, employeeerrors.ErrInvalidSalary
	}
	role := domain.RoleEmployee
	if req.Role != "" {
		r, ok := domain.ParseRole(req.Role)
		if !ok {
			return EmployeeResponse{}, employeeerrors.ErrInvalidRole
		}
		role = r
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	seq, err := s.counter.WithTx(tx).GetNextValue(ctx, counter.EmployeeCode)
	if err != nil {
		log.Error("create employee generate code failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		ID:            uuid.New(),
		EmployeeCode:  fmt.Sprintf("EMP-%06d", seq),
		Name:          req.Name,
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         req.Phone,
		Designation:   req.Designation,
		Department:    req.Department,
		Salary:        req.Salary,
		DateOfJoining: joined,
		Address:       addressFromDTO(req.Address),
		ProfileImage:  req.ProfileImage,
	}

	identityID, err := s.resolveIdentity(ctx, tx, empl, req.Password, role)
	if err != nil {
		return EmployeeResponse{}, err
	}
	empl.IdentityID = identityID

	if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
		log.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:    events.EmployeeCreatedType,
			RequestID:    rid,
			EmployeeID:   empl.ID.String(),
			EmployeeCode: empl.EmployeeCode,
			Name:         empl.Name,
			Email:        empl.Email,
			Designation:  empl.Designation,
			Department:   empl.Department,
			HasLogin:     empl.IdentityID != nil,
			OccurredAt:   time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return EmployeeResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.ID.String(),
			EventType:     event.EventType,
			Topic:         events.EmployeeLifecycleTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			log.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)

	log.Info("create employee success",
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_code", empl.EmployeeCode),
		zap.Bool("has_login", empl.IdentityID != nil),
	)
	return mapToResponse(*empl), nil
}

// resolveIdentity provisions a new identity when a password is supplied,
// otherwise links an existing identity with the same email if there is one.
func (s *service) resolveIdentity(ctx context.Context, tx *sql.Tx, empl *Employee, password string, role domain.Role) (*uuid.UUID, error) {
	if s.identities == nil {
		if password != "" {
			s.logger.Warn("create employee: password ignored, no identity provisioner configured")
		}
		return nil, nil
	}

	if password != "" {
		id, err := s.identities.ProvisionIdentity(ctx, tx, NewIdentity{
			Email:      empl.Email,
			Password:   password,
			Name:       empl.Name,
			Department: empl.Department,
			Role:       role,
		})
		if err != nil {
			return nil, err
		}
		return &id, nil
	}

	id, found, err := s.identities.FindIdentityIDByEmail(ctx, empl.Email)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &id, nil
}

func (s *service) GetAll(ctx context.Context, params ListParams) ([]EmployeeResponse, int64, error) {
	emps, total, err := s.repo.FindAll(ctx, params)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get all employees failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}
	return mapToListResponse(emps), total, nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// collapse concurrent cache misses into one query
	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (any, error) {
		emps, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOptionResponse, len(emps))
		for i, e := range emps {
			resp[i] = EmployeeOptionResponse{ID: e.ID.String(), EmployeeCode: e.EmployeeCode, Name: e.Name}
		}

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, EmployeeOptionsKey, data, optionsCacheTTL).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]EmployeeOptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	eid, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, eid)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) GetByIdentityID(ctx context.Context, identityID string) (EmployeeResponse, error) {
	iid, err := uuid.Parse(identityID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrProfileNotFound
	}

	empl, err := s.repo.FindByIdentityID(ctx, iid)
	if err != nil {
		mapped := mapRepositoryError(err)
		if mapped == employeeerrors.ErrEmployeeNotFound {
			return EmployeeResponse{}, employeeerrors.ErrProfileNotFound
		}
		return EmployeeResponse{}, mapped
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	eid, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	joined, err := parseDate(req.DateOfJoining)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if req.Salary.IsNegative() {
		return EmployeeResponse{}, employeeerrors.ErrInvalidSalary
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, eid)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.Name = req.Name
	empl.Email = strings.ToLower(strings.TrimSpace(req.Email))
	empl.Phone = req.Phone
	empl.Designation = req.Designation
	empl.Department = req.Department
	empl.Salary = req.Salary
	empl.DateOfJoining = joined
	empl.Address = addressFromDTO(req.Address)
	empl.ProfileImage = req.ProfileImage

	if err := qtx.Update(ctx, empl); err != nil {
		log.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	log.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	eid, err := uuid.Parse(id)
	if err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	if err := s.repo.Delete(ctx, eid); err != nil {
		return mapRepositoryError(err)
	}

	s.invalidateOptions(ctx)
	contextutil.GetLogger(ctx, s.logger).Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache", zap.Error(err))
	}
}

func parseDate(v string) (*time.Time, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, employeeerrors.ErrInvalidDateOfJoining
	}
	return &t, nil
}

func addressFromDTO(a AddressDTO) Address {
	return Address{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
		Country: a.Country,
	}
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:           e.ID.String(),
		EmployeeCode: e.EmployeeCode,
		Name:         e.Name,
		Email:        e.Email,
		Phone:        e.Phone,
		Designation:  e.Designation,
		Department:   e.Department,
		Salary:       e.Salary,
		Address: AddressDTO{
			Street:  e.Address.Street,
			City:    e.Address.City,
			State:   e.Address.State,
			ZipCode: e.Address.ZipCode,
			Country: e.Address.Country,
		},
		ProfileImage: e.ProfileImage,
		LeaveBalance: LeaveBalanceResponse{
			Casual:   e.LeaveBalance.Casual,
			Sick:     e.LeaveBalance.Sick,
			Pending:  e.LeaveBalance.Pending,
			Approved: e.LeaveBalance.Approved,
			Rejected: e.LeaveBalance.Rejected,
		},
		CreatedAt: e.CreatedAt,
	}
	if e.IdentityID != nil {
		resp.IdentityID = e.IdentityID.String()
	}
	if e.DateOfJoining != nil {
		resp.DateOfJoining = e.DateOfJoining.Format(dateLayout)
	}
	return resp
}

func mapToListResponse(emps []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(emps))
	for i, e := range emps {
		res[i] = mapToResponse(e)
	}
	return res
}
