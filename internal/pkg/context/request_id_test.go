package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))

	assert.Equal(t, ctx, WithRequestID(ctx, "   "))
	assert.Equal(t, "req-1", GetRequestID(WithRequestID(ctx, " req-1 ")))
}
