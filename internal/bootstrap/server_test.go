package bootstrap

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"go-hrms/internal/shared/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAudit struct {
	entries []audit.Entry
}

func (r *recordingAudit) Log(_ context.Context, e audit.Entry) {
	r.entries = append(r.entries, e)
}

func TestServeListener_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	server := NewHTTPServer(handler, ServerConfig{ReadTimeout: time.Second, WriteTimeout: time.Second})

	rec := &recordingAudit{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ServeListener(ctx, server, ln, rec) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	require.Len(t, rec.entries, 1)
	assert.Equal(t, audit.ActionServerShutdown, rec.entries[0].Action)
}
