package audit

import (
	"context"
	"time"

	"go-hrms/internal/shared/contextutil"

	"go.uber.org/zap"
)

const (
	ActionServerShutdown  = "SERVER_SHUTDOWN"
	ActionLeaveDecided    = "LEAVE_DECIDED"
	ActionLeaveDeleted    = "LEAVE_DELETED"
	ActionIdentityCreated = "IDENTITY_REGISTERED"
	ActionEmployeeDeleted = "EMPLOYEE_DELETED"

	ActionIdentityStatusChanged = "IDENTITY_STATUS_CHANGED"
	ActionIdentityRoleChanged   = "IDENTITY_ROLE_CHANGED"
	ActionPasswordReset         = "PASSWORD_RESET"
)

type Entry struct {
	Action  string
	Message string
	Meta    map[string]any
}

type Logger interface {
	Log(ctx context.Context, entry Entry)
}

// ZapLogger writes audit entries as structured log lines on the "audit"
// logger, tagged with the caller found in ctx.
type ZapLogger struct {
	logger *zap.Logger
}

func NewZapLogger(logger ...*zap.Logger) *ZapLogger {
	l := zap.L().Named("audit")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit")
	}
	return &ZapLogger{logger: l}
}

func (l *ZapLogger) Log(ctx context.Context, entry Entry) {
	fields := []zap.Field{
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	}
	fields = append(fields, contextutil.ExtractMetadata(ctx).Fields()...)
	l.logger.Info("audit event", fields...)
}

// Nop discards entries.
type Nop struct{}

func (Nop) Log(context.Context, Entry) {}
