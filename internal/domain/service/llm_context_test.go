package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskProviderContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", TaskFromContext(ctx))
	assert.Equal(t, "unknown", ProviderFromContext(ctx))

	ctx = WithTaskProvider(ctx, " review ", "openai")
	assert.Equal(t, "review", TaskFromContext(ctx))
	assert.Equal(t, "openai", ProviderFromContext(ctx))

	assert.Equal(t, ctx, WithTask(ctx, "  "))
}
