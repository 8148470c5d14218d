package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-hrms/internal/domain"
	"go-hrms/internal/employee"
	employeeerrors "go-hrms/internal/employee/errors"
	employeeMock "go-hrms/internal/employee/mock"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	kafkaMock "go-hrms/internal/messaging/kafka/mock"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/counter"
	counterMock "go-hrms/internal/shared/counter/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	service    employee.Service
	repo       *employeeMock.MockRepository
	counter    *counterMock.MockRepository
	outbox     *kafkaMock.MockOutboxRepository
	identities *employeeMock.MockIdentityProvisioner
	redismock  redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rdb, redisMock := redismock.NewClientMock()
	repo := employeeMock.NewMockRepository(ctrl)
	counterRepo := counterMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)
	identities := employeeMock.NewMockIdentityProvisioner(ctrl)

	svc := employee.NewServiceWithOutbox(db, repo, counterRepo, outboxRepo, identities, rdb)

	return &serviceDeps{
		db:         db,
		sqlMock:    sqlMock,
		service:    svc,
		repo:       repo,
		counter:    counterRepo,
		outbox:     outboxRepo,
		identities: identities,
		redismock:  redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

type outboxRIDMatcher struct {
	rid string
}

func (m outboxRIDMatcher) Matches(x any) bool {
	ev, ok := x.(kafka.OutboxEvent)
	if !ok {
		return false
	}
	var payload events.EmployeeCreatedEvent
	if err := json.Unmarshal(ev.Payload, &payload); err != nil {
		return false
	}
	return ev.RequestID == m.rid &&
		payload.RequestID == m.rid &&
		ev.Topic == events.EmployeeLifecycleTopic &&
		ev.Status == kafka.OutboxStatusPending
}

func (m outboxRIDMatcher) String() string {
	return "outbox event carrying request id " + m.rid
}

func TestEmployeeService_Create(t *testing.T) {
	t.Run("success - generates code and links existing identity", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := context.Background()
		identityID := uuid.New()

		req := employee.CreateEmployeeRequest{
			Name:          "Jane Doe",
			Email:         "Jane@Example.com",
			Designation:   "Engineer",
			Department:    "IT",
			Salary:        decimal.NewFromInt(5000),
			DateOfJoining: "2026-01-01",
		}

		expectTx(t, deps.sqlMock, true)
		deps.counter.EXPECT().WithTx(gomock.Any()).Return(deps.counter)
		deps.counter.EXPECT().GetNextValue(ctx, counter.EmployeeCode).Return(int64(123), nil)
		deps.identities.EXPECT().FindIdentityIDByEmail(ctx, "jane@example.com").Return(identityID, true, nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				assert.Equal(t, "EMP-000123", e.EmployeeCode)
				assert.Equal(t, "jane@example.com", e.Email)
				assert.Equal(t, identityID, *e.IdentityID)
				assert.Equal(t, employee.LeaveBalance{}, e.LeaveBalance)
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.redismock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "EMP-000123", resp.EmployeeCode)
		assert.Equal(t, identityID.String(), resp.IdentityID)
		assert.Equal(t, "2026-01-01", resp.DateOfJoining)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success - provisions identity when password is given", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := context.Background()
		identityID := uuid.New()

		req := employee.CreateEmployeeRequest{
			Name:     "Hank",
			Email:    "hank@example.com",
			Password: "secret123",
			Role:     "hr",
		}

		expectTx(t, deps.sqlMock, true)
		deps.counter.EXPECT().WithTx(gomock.Any()).Return(deps.counter)
		deps.counter.EXPECT().GetNextValue(ctx, counter.EmployeeCode).Return(int64(1), nil)
		deps.identities.EXPECT().
			ProvisionIdentity(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sql.Tx, in employee.NewIdentity) (uuid.UUID, error) {
				assert.Equal(t, domain.RoleHR, in.Role)
				assert.Equal(t, "secret123", in.Password)
				return identityID, nil
			})
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.redismock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, identityID.String(), resp.IdentityID)
	})

	t.Run("success - outbox event carries request id", func(t *testing.T) {
		deps := setupServiceTest(t)
		rid := "REQ-123-ABC"
		ctx := contextutil.WithRequestID(context.Background(), rid)

		expectTx(t, deps.sqlMock, true)
		deps.counter.EXPECT().WithTx(gomock.Any()).Return(deps.counter)
		deps.counter.EXPECT().GetNextValue(gomock.Any(), gomock.Any()).Return(int64(7), nil)
		deps.identities.EXPECT().FindIdentityIDByEmail(gomock.Any(), gomock.Any()).Return(uuid.Nil, false, nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), outboxRIDMatcher{rid: rid}).Return(nil)
		deps.redismock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)

		resp, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{Name: "John", Email: "john@example.com"})

		assert.NoError(t, err)
		assert.Empty(t, resp.IdentityID)
	})

	t.Run("invalid date of joining", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(context.Background(), employee.CreateEmployeeRequest{
			Name:          "John",
			Email:         "john@example.com",
			DateOfJoining: "01/02/2026",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidDateOfJoining)
	})

	t.Run("invalid role", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(context.Background(), employee.CreateEmployeeRequest{
			Name:     "John",
			Email:    "john@example.com",
			Password: "secret123",
			Role:     "Manager",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidRole)
	})

	t.Run("duplicate email -> conflict and rollback", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := context.Background()

		expectTx(t, deps.sqlMock, false)
		deps.counter.EXPECT().WithTx(gomock.Any()).Return(deps.counter)
		deps.counter.EXPECT().GetNextValue(ctx, counter.EmployeeCode).Return(int64(2), nil)
		deps.identities.EXPECT().FindIdentityIDByEmail(ctx, gomock.Any()).Return(uuid.Nil, false, nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "employees_email_key"})

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{Name: "Dup", Email: "dup@example.com"})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("counter error -> rollback", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := context.Background()

		expectTx(t, deps.sqlMock, false)
		deps.counter.EXPECT().WithTx(gomock.Any()).Return(deps.counter)
		deps.counter.EXPECT().GetNextValue(ctx, counter.EmployeeCode).Return(int64(0), errors.New("db down"))

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{Name: "X", Email: "x@example.com"})

		assert.EqualError(t, err, "db down")
	})
}

func TestEmployeeService_GetAll(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()
	params := employee.ListParams{Page: 1, Limit: 10, Search: "an"}

	t.Run("success", func(t *testing.T) {
		emps := []employee.Employee{
			{ID: uuid.New(), Name: "Andi", Email: "andi@example.com"},
			{ID: uuid.New(), Name: "Dani", Email: "dani@example.com"},
		}
		deps.repo.EXPECT().FindAll(ctx, params).Return(emps, int64(12), nil)

		resp, total, err := deps.service.GetAll(ctx, params)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, int64(12), total)
		assert.Equal(t, "Andi", resp[0].Name)
	})

	t.Run("repository error", func(t *testing.T) {
		deps.repo.EXPECT().FindAll(ctx, params).Return(nil, int64(0), errors.New("db error"))

		resp, _, err := deps.service.GetAll(ctx, params)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the database", func(t *testing.T) {
		deps := setupServiceTest(t)
		cached := []employee.EmployeeOptionResponse{{ID: uuid.NewString(), EmployeeCode: "EMP-000001", Name: "Caca"}}
		data, _ := json.Marshal(cached)
		deps.redismock.ExpectGet(employee.EmployeeOptionsKey).SetVal(string(data))

		resp, err := deps.service.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Equal(t, cached, resp)
	})

	t.Run("cache miss loads from db and stores", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		deps.redismock.ExpectGet(employee.EmployeeOptionsKey).RedisNil()
		deps.repo.EXPECT().FindOptions(gomock.Any()).
			Return([]employee.Employee{{ID: id, EmployeeCode: "EMP-000002", Name: "Deni"}}, nil)

		expected := []employee.EmployeeOptionResponse{{ID: id.String(), EmployeeCode: "EMP-000002", Name: "Deni"}}
		data, _ := json.Marshal(expected)
		deps.redismock.ExpectSet(employee.EmployeeOptionsKey, data, time.Hour).SetVal("OK")

		resp, err := deps.service.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Equal(t, expected, resp)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(employee.EmployeeOptionsKey).RedisNil()
		deps.repo.EXPECT().FindOptions(gomock.Any()).Return(nil, errors.New("database connection lost"))

		resp, err := deps.service.GetOptions(ctx)

		assert.EqualError(t, err, "database connection lost")
		assert.Nil(t, resp)
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps.repo.EXPECT().FindByID(ctx, id).Return(&employee.Employee{
			ID:           id,
			Name:         "HR",
			LeaveBalance: employee.LeaveBalance{Casual: 1, Pending: 1},
		}, nil)

		resp, err := deps.service.GetByID(ctx, id.String())

		assert.NoError(t, err)
		assert.Equal(t, id.String(), resp.ID)
		assert.Equal(t, 1, resp.LeaveBalance.Pending)
	})

	t.Run("not found", func(t *testing.T) {
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, id.String())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := deps.service.GetByID(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})
}

func TestEmployeeService_GetByIdentityID(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()
	identityID := uuid.New()

	deps.repo.EXPECT().FindByIdentityID(ctx, identityID).Return(nil, gorm.ErrRecordNotFound)

	_, err := deps.service.GetByIdentityID(ctx, identityID.String())

	assert.ErrorIs(t, err, employeeerrors.ErrProfileNotFound)
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	req := employee.UpdateEmployeeRequest{
		Name:       "HR Updated",
		Email:      "hr.updated@example.com",
		Department: "People",
		Salary:     decimal.RequireFromString("1234.50"),
	}

	t.Run("success keeps leave balance", func(t *testing.T) {
		deps := setupServiceTest(t)
		existing := &employee.Employee{
			ID:           id,
			Name:         "Old HR",
			LeaveBalance: employee.LeaveBalance{Approved: 3},
		}

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(existing, nil)
		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				assert.Equal(t, "HR Updated", e.Name)
				assert.Equal(t, "People", e.Department)
				return nil
			})
		deps.redismock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)

		resp, err := deps.service.Update(ctx, id.String(), req)

		assert.NoError(t, err)
		assert.Equal(t, "HR Updated", resp.Name)
		assert.Equal(t, 3, resp.LeaveBalance.Approved)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found -> rollback", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, id.String(), req)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative salary", func(t *testing.T) {
		deps := setupServiceTest(t)
		bad := req
		bad.Salary = decimal.NewFromInt(-1)

		_, err := deps.service.Update(ctx, id.String(), bad)

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidSalary)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()
	id := uuid.New()

	t.Run("success invalidates options cache", func(t *testing.T) {
		deps.repo.EXPECT().Delete(ctx, id).Return(nil)
		deps.redismock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)

		err := deps.service.Delete(ctx, id.String())

		assert.NoError(t, err)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps.repo.EXPECT().Delete(ctx, id).Return(gorm.ErrRecordNotFound)

		err := deps.service.Delete(ctx, id.String())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
