// Package llm 提供 LLM 客户端构建
package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"novel-studio-api/internal/config"
	"novel-studio-api/internal/workflow/port"
)

// EinoFactory 管理多个 Eino ChatModel 客户端实例
// 同一 provider 的不同惩罚参数各自缓存一个实例。
type EinoFactory struct {
	config *config.LLMConfig
	models map[string]model.BaseChatModel
	mu     sync.RWMutex
}

// NewEinoFactory 创建 Eino LLM 工厂
func NewEinoFactory(cfg *config.Config) *EinoFactory {
	return &EinoFactory{
		config: &cfg.LLM,
		models: make(map[string]model.BaseChatModel),
	}
}

// Get 获取指定 provider 的 ChatModel，未指定时使用默认 provider
func (f *EinoFactory) Get(ctx context.Context, name string, penalties port.Penalties) (model.BaseChatModel, error) {
	if name == "" {
		name = f.config.DefaultProvider
	}
	key := cacheKey(name, penalties)

	f.mu.RLock()
	m, ok := f.models[key]
	f.mu.RUnlock()
	if ok {
		return m, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if m, ok = f.models[key]; ok {
		return m, nil
	}

	providerCfg, ok := f.config.Providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %s not found in LLM config", name)
	}

	chatModel, err := openai.NewChatModel(ctx, buildChatModelConfig(providerCfg, penalties))
	if err != nil {
		return nil, fmt.Errorf("failed to create eino chat model for %s: %w", name, err)
	}

	f.models[key] = chatModel
	return chatModel, nil
}

// Has 检查 provider 是否已配置
func (f *EinoFactory) Has(name string) bool {
	_, ok := f.config.Providers[name]
	return ok
}

func buildChatModelConfig(p config.ProviderConfig, penalties port.Penalties) *openai.ChatModelConfig {
	maxTokens := p.MaxTokens
	cfg := &openai.ChatModelConfig{
		APIKey:      p.APIKey,
		BaseURL:     p.BaseURL,
		Model:       p.Model,
		MaxTokens:   &maxTokens,
		Temperature: ptrFloat32(float32(p.Temperature)),
		Timeout:     p.Timeout,
	}
	if !penalties.IsZero() {
		cfg.FrequencyPenalty = ptrFloat32(penalties.Frequency)
		cfg.PresencePenalty = ptrFloat32(penalties.Presence)
	}
	return cfg
}

func cacheKey(name string, p port.Penalties) string {
	return fmt.Sprintf("%s|%.2f|%.2f", name, p.Frequency, p.Presence)
}

func ptrFloat32(f float32) *float32 {
	return &f
}

var _ port.ChatModelFactory = (*EinoFactory)(nil)
