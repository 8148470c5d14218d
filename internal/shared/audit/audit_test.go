package audit

import (
	"context"
	"testing"

	"go-hrms/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewZapLogger(zap.New(core))

	ctx := contextutil.WithRequestID(context.Background(), "req-9")
	ctx = contextutil.WithUserID(ctx, "user-1")

	l.Log(ctx, Entry{
		Action:  ActionLeaveDeleted,
		Message: "leave request deleted",
		Meta:    map[string]any{"leave_id": "abc"},
	})

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "audit", entries[0].LoggerName)

	fields := entries[0].ContextMap()
	assert.Equal(t, ActionLeaveDeleted, fields["action"])
	assert.Equal(t, "req-9", fields["request_id"])
	assert.Equal(t, "user-1", fields["user_id"])
}

func TestNop(t *testing.T) {
	var l Logger = Nop{}
	assert.NotPanics(t, func() { l.Log(context.Background(), Entry{Action: "x"}) })
}
