package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessors(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, SessionID(ctx))
	assert.Empty(t, RequestID(ctx))

	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ctx = WithSessionID(ctx, "s-1")
	ctx = WithRequestID(ctx, "r-1")
	ctx = WithTime(ctx, fixed)

	assert.Equal(t, "s-1", SessionID(ctx))
	assert.Equal(t, "r-1", RequestID(ctx))
	assert.Equal(t, fixed, Now(ctx))
}

func TestNowFallsBackToClock(t *testing.T) {
	before := time.Now()
	assert.False(t, Now(context.Background()).Before(before))
}
