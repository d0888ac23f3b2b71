// Package service 提供领域层的上下文辅助
package service

import (
	"context"
	"strings"
)

type llmCtxKey string

const (
	llmCtxKeyTask     llmCtxKey = "llm_task"
	llmCtxKeyProvider llmCtxKey = "llm_provider"
)

// WithTask 记录当前 AI 任务名称，供回调打点使用
func WithTask(ctx context.Context, task string) context.Context {
	if ctx == nil {
		return nil
	}
	t := strings.TrimSpace(task)
	if t == "" {
		return ctx
	}
	return context.WithValue(ctx, llmCtxKeyTask, t)
}

func WithProvider(ctx context.Context, provider string) context.Context {
	if ctx == nil {
		return nil
	}
	p := strings.TrimSpace(provider)
	if p == "" {
		return ctx
	}
	return context.WithValue(ctx, llmCtxKeyProvider, p)
}

func WithTaskProvider(ctx context.Context, task, provider string) context.Context {
	return WithProvider(WithTask(ctx, task), provider)
}

func TaskFromContext(ctx context.Context) string {
	return valueOrUnknown(ctx, llmCtxKeyTask)
}

func ProviderFromContext(ctx context.Context) string {
	return valueOrUnknown(ctx, llmCtxKeyProvider)
}

func valueOrUnknown(ctx context.Context, key llmCtxKey) string {
	if ctx == nil {
		return "unknown"
	}
	s, ok := ctx.Value(key).(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
