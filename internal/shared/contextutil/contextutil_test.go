package contextutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMetadataRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithUserID(ctx, "user-1")
	ctx = WithEmployeeID(ctx, "emp-1")

	md := ExtractMetadata(ctx)

	assert.Equal(t, Metadata{RequestID: "req-1", UserID: "user-1", EmployeeID: "emp-1"}, md)
	assert.Len(t, md.Fields(), 3)
}

func TestMetadataFields_SkipsEmpty(t *testing.T) {
	md := ExtractMetadata(WithRequestID(context.Background(), "req-1"))

	assert.Len(t, md.Fields(), 1)
}

func TestGetLogger_Fallbacks(t *testing.T) {
	l := zap.NewExample()

	assert.Same(t, l, GetLogger(WithLogger(context.Background(), l), nil))
	assert.Same(t, l, GetLogger(context.Background(), l))
	assert.NotNil(t, GetLogger(context.Background(), nil))
}
