// Package llmtest 提供测试用的对话模型替身
package llmtest

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"novel-studio-api/internal/workflow/port"
)

// Call 一次模型调用的记录
type Call struct {
	Provider  string
	Penalties port.Penalties
	Messages  []*schema.Message
	Options   *model.Options
}

// Model 返回固定回复的对话模型
type Model struct {
	Reply  string
	Chunks []string
	Err    error

	mu    sync.Mutex
	calls []Call
}

// Generate 实现 model.BaseChatModel
func (m *Model) Generate(ctx context.Context, msgs []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.record(ctx, msgs, opts)
	if m.Err != nil {
		return nil, m.Err
	}
	return schema.AssistantMessage(m.Reply, nil), nil
}

// Stream 实现 model.BaseChatModel，按 Chunks 逐段返回
func (m *Model) Stream(ctx context.Context, msgs []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	m.record(ctx, msgs, opts)
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]*schema.Message, 0, len(m.Chunks))
	for _, c := range m.Chunks {
		out = append(out, schema.AssistantMessage(c, nil))
	}
	return schema.StreamReaderFromArray(out), nil
}

func (m *Model) record(ctx context.Context, msgs []*schema.Message, opts []model.Option) {
	m.mu.Lock()
	defer m.mu.Unlock()
	call := Call{Messages: msgs, Options: model.GetCommonOptions(nil, opts...)}
	if meta, ok := ctx.Value(factoryKey{}).(Call); ok {
		call.Provider = meta.Provider
		call.Penalties = meta.Penalties
	}
	m.calls = append(m.calls, call)
}

// Calls 返回调用记录副本
func (m *Model) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// LastCall 最近一次调用，无调用时 ok 为 false
func (m *Model) LastCall() (Call, bool) {
	calls := m.Calls()
	if len(calls) == 0 {
		return Call{}, false
	}
	return calls[len(calls)-1], true
}

type factoryKey struct{}

// Factory 始终返回同一个 Model 的工厂
type Factory struct {
	Model     *Model
	Providers []string
}

// Get 实现 port.ChatModelFactory
func (f *Factory) Get(_ context.Context, provider string, penalties port.Penalties) (model.BaseChatModel, error) {
	return &boundModel{inner: f.Model, meta: Call{Provider: provider, Penalties: penalties}}, nil
}

// Has 判断提供商是否可用，未设置 Providers 时只接受 openai
func (f *Factory) Has(name string) bool {
	providers := f.Providers
	if len(providers) == 0 {
		providers = []string{"openai"}
	}
	for _, p := range providers {
		if p == name {
			return true
		}
	}
	return false
}

// boundModel 把工厂参数带入调用记录
type boundModel struct {
	inner *Model
	meta  Call
}

func (b *boundModel) Generate(ctx context.Context, msgs []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	return b.inner.Generate(context.WithValue(ctx, factoryKey{}, b.meta), msgs, opts...)
}

func (b *boundModel) Stream(ctx context.Context, msgs []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return b.inner.Stream(context.WithValue(ctx, factoryKey{}, b.meta), msgs, opts...)
}
