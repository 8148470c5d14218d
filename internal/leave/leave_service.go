package leave

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go-hrms/internal/domain"
	"go-hrms/internal/employee"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/observability/metrics"
	"go-hrms/internal/shared/audit"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const MessageDeleted = "Leave deleted successfully"

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, caller domain.Principal, req ApplyLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetMine(ctx context.Context, caller domain.Principal) ([]LeaveResponse, error)
	GetBalance(ctx context.Context, caller domain.Principal) (BalanceResponse, error)
	Decide(ctx context.Context, caller domain.Principal, id string, req DecideLeaveRequest) (DecisionResponse, error)
	Delete(ctx context.Context, caller domain.Principal, id string) error
	Export(ctx context.Context, w io.Writer) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	audit     audit.Logger
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employees employee.Repository, auditLogger audit.Logger, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if auditLogger == nil {
		auditLogger = audit.Nop{}
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		audit:     auditLogger,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Apply(ctx context.Context, caller domain.Principal, req ApplyLeaveRequest) (LeaveResponse, error) {
	fromDate, toDate := req.Range()
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("apply leave requested",
		zap.String("employee_id", caller.EmployeeID.String()),
		zap.String("leave_type", req.LeaveType),
		zap.String("from_date", fromDate),
		zap.String("to_date", toDate),
	)

	if !caller.HasEmployee() {
		return LeaveResponse{}, leaveerrors.ErrEmployeeProfileNotFound
	}
	leaveType, ok := ParseLeaveType(req.LeaveType)
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}
	from, err := parseDate(fromDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	to, err := parseDate(toDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return LeaveResponse{}, leaveerrors.ErrReasonRequired
	}

	now := s.now()
	l := &Leave{
		ID:          uuid.New(),
		EmployeeID:  caller.EmployeeID,
		LeaveType:   leaveType,
		FromDate:    from,
		ToDate:      to,
		Days:        CountDays(from, to),
		Reason:      reason,
		Status:      StatusPending,
		AppliedDate: now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("apply leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	// The counter update doubles as the existence check on the profile row.
	if err := s.employees.WithTx(tx).AdjustLeaveBalance(ctx, caller.EmployeeID, ApplyDelta(leaveType)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrEmployeeProfileNotFound
		}
		log.Error("apply leave adjust balance failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.repo.WithTx(tx).Create(ctx, l); err != nil {
		log.Error("apply leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("apply leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	metrics.ObserveLeaveTransition("apply", string(leaveType))
	log.Info("apply leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", caller.EmployeeID.String()),
		zap.Int("days", l.Days),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetMine(ctx context.Context, caller domain.Principal) ([]LeaveResponse, error) {
	if !caller.HasEmployee() {
		return nil, leaveerrors.ErrEmployeeProfileNotFound
	}
	leaves, err := s.repo.FindByEmployee(ctx, caller.EmployeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetBalance(ctx context.Context, caller domain.Principal) (BalanceResponse, error) {
	if !caller.HasEmployee() {
		return BalanceResponse{}, leaveerrors.ErrEmployeeProfileNotFound
	}
	e, err := s.employees.FindByID(ctx, caller.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, leaveerrors.ErrEmployeeProfileNotFound
		}
		return BalanceResponse{}, err
	}
	b := e.LeaveBalance
	return BalanceResponse{
		TotalLeaves: b.Pending + b.Approved + b.Rejected,
		Approved:    b.Approved,
		Rejected:    b.Rejected,
		Pending:     b.Pending,
		Casual:      b.Casual,
		Sick:        b.Sick,
	}, nil
}

func (s *service) Decide(ctx context.Context, caller domain.Principal, id string, req DecideLeaveRequest) (DecisionResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("decide leave requested",
		zap.String("leave_id", id),
		zap.String("status", req.Status),
		zap.String("actor_id", caller.IdentityID.String()),
	)

	leaveID, err := uuid.Parse(id)
	if err != nil {
		return DecisionResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	decision, ok := ParseDecision(req.Status)
	if !ok {
		return DecisionResponse{}, leaveerrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("decide leave begin tx failed", zap.Error(err))
		return DecisionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DecisionResponse{}, leaveerrors.ErrLeaveNotFound
		}
		log.Error("decide leave lookup failed", zap.Error(err))
		return DecisionResponse{}, err
	}
	if l.Status != StatusPending {
		log.Warn("decide leave rejected, already decided",
			zap.String("leave_id", id),
			zap.String("current_status", string(l.Status)),
		)
		return DecisionResponse{}, leaveerrors.ErrLeaveAlreadyDecided
	}

	d := Decision{Status: decision, DecidedAt: s.now()}
	if caller.HasEmployee() {
		approver := caller.EmployeeID
		d.ApproverID = &approver
	}
	if err := qtx.UpdateStatus(ctx, leaveID, d); err != nil {
		if errors.Is(err, ErrStatusChanged) {
			return DecisionResponse{}, leaveerrors.ErrLeaveAlreadyDecided
		}
		log.Error("decide leave update failed", zap.Error(err))
		return DecisionResponse{}, err
	}

	if err := s.adjustOwner(ctx, tx, l, DecisionDelta(l.LeaveType, decision)); err != nil {
		return DecisionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("decide leave commit failed", zap.Error(err))
		return DecisionResponse{}, err
	}

	l.Status = decision
	l.ApproverID = d.ApproverID
	l.DecidedAt = &d.DecidedAt
	l.UpdatedAt = d.DecidedAt

	metrics.ObserveLeaveTransition(string(decision), string(l.LeaveType))
	s.audit.Log(ctx, audit.Entry{
		Action:  audit.ActionLeaveDecided,
		Message: fmt.Sprintf("leave %s %s", l.ID, decision),
		Meta: map[string]any{
			"leave_id":    l.ID.String(),
			"employee_id": l.EmployeeID.String(),
			"status":      string(decision),
			"actor_id":    caller.IdentityID.String(),
		},
	})
	log.Info("decide leave success",
		zap.String("leave_id", id),
		zap.String("status", string(decision)),
	)

	return DecisionResponse{
		Message: fmt.Sprintf("Leave %s successfully", decision),
		Leave:   mapToResponse(*l),
	}, nil
}

func (s *service) Delete(ctx context.Context, caller domain.Principal, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	leaveID, err := uuid.Parse(id)
	if err != nil {
		return leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("delete leave begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		log.Error("delete leave lookup failed", zap.Error(err))
		return err
	}

	if err := qtx.DeleteWithStatus(ctx, leaveID, l.Status); err != nil {
		if errors.Is(err, ErrStatusChanged) {
			return leaveerrors.ErrLeaveChanged
		}
		log.Error("delete leave failed", zap.Error(err))
		return err
	}

	if err := s.adjustOwner(ctx, tx, l, DeletionDelta(l.LeaveType, l.Status)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("delete leave commit failed", zap.Error(err))
		return err
	}

	metrics.ObserveLeaveTransition("delete", string(l.LeaveType))
	s.audit.Log(ctx, audit.Entry{
		Action:  audit.ActionLeaveDeleted,
		Message: fmt.Sprintf("leave %s deleted", l.ID),
		Meta: map[string]any{
			"leave_id":    l.ID.String(),
			"employee_id": l.EmployeeID.String(),
			"status":      string(l.Status),
			"actor_id":    caller.IdentityID.String(),
		},
	})
	log.Info("delete leave success", zap.String("leave_id", id), zap.String("status", string(l.Status)))
	return nil
}

// adjustOwner applies delta to the request owner's counters. A removed
// owner has no counters left to keep, so the transition still goes through.
func (s *service) adjustOwner(ctx context.Context, tx *sql.Tx, l *Leave, delta employee.LeaveBalanceDelta) error {
	err := s.employees.WithTx(tx).AdjustLeaveBalance(ctx, l.EmployeeID, delta)
	if err == nil {
		return nil
	}
	log := contextutil.GetLogger(ctx, s.logger)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn("leave owner missing, counters not adjusted",
			zap.String("leave_id", l.ID.String()),
			zap.String("employee_id", l.EmployeeID.String()),
		)
		return nil
	}
	log.Error("adjust leave balance failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
	return err
}

func (s *service) Export(ctx context.Context, w io.Writer) error {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		return err
	}
	if err := writeWorkbook(w, leaves); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("export leave workbook failed", zap.Error(err))
		return err
	}
	return nil
}

func mapToResponse(l Leave) LeaveResponse {
	res := LeaveResponse{
		ID:          l.ID.String(),
		EmployeeID:  l.EmployeeID.String(),
		LeaveType:   string(l.LeaveType),
		FromDate:    l.FromDate,
		ToDate:      l.ToDate,
		Days:        l.Days,
		Reason:      l.Reason,
		Status:      string(l.Status),
		AppliedDate: l.AppliedDate,
		DecidedAt:   l.DecidedAt,
	}
	if l.ApproverID != nil {
		res.ApproverID = l.ApproverID.String()
	}
	if l.Employee != nil {
		res.Employee = &EmployeeSummary{
			ID:           l.Employee.ID.String(),
			EmployeeCode: l.Employee.EmployeeCode,
			Name:         l.Employee.Name,
			Email:        l.Employee.Email,
			Department:   l.Employee.Department,
			Designation:  l.Employee.Designation,
		}
	}
	return res
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	res := make([]LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		res = append(res, mapToResponse(l))
	}
	return res
}
