package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReturnsSameInstance(t *testing.T) {
	l1 := Get(0)
	l2 := Get(0)
	require.NotNil(t, l1)
	assert.Same(t, l1, l2, "Get must return the same logger on subsequent calls")
}

func TestWithLoggerRoundTrip(t *testing.T) {
	lg := Get(0)
	ctx := WithLogger(context.Background(), lg)

	assert.Same(t, lg, FromContext(ctx))
}

func TestWithLoggerIsIdempotent(t *testing.T) {
	lg := Get(0)
	ctx := WithLogger(context.Background(), lg)
	ctx2 := WithLogger(ctx, lg)

	assert.Equal(t, ctx, ctx2, "re-attaching the same logger must not grow the context")
}

func TestFromContextFallsBackToGlobal(t *testing.T) {
	_ = Get(0)
	got := FromContext(context.Background())
	require.NotNil(t, got)
}

func TestGetNoopLoggerDiscards(t *testing.T) {
	lg := GetNoopLogger()
	require.NotNil(t, lg)
	assert.False(t, lg.Enabled())
}

func TestWithValuesReturnsNewLogger(t *testing.T) {
	base := GetNoopLogger()
	augmented := WithValues(base, "widget", "suggest")
	require.NotNil(t, augmented)
	assert.NotSame(t, base, augmented)
}
