// Package chain 组装提示词与模型调用
package chain

import (
	"context"
	"fmt"
	"strings"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	llmctx "novel-studio-api/internal/domain/service"
	wfmodel "novel-studio-api/internal/workflow/model"
	workflowport "novel-studio-api/internal/workflow/port"
	workflowprompt "novel-studio-api/internal/workflow/prompt"
)

// TaskChain 按任务渲染提示词并调用 ChatModel
type TaskChain struct {
	factory  workflowport.ChatModelFactory
	registry *workflowprompt.Registry
}

func NewTaskChain(factory workflowport.ChatModelFactory) *TaskChain {
	return &TaskChain{factory: factory, registry: workflowprompt.NewRegistry()}
}

// Invoke 同步生成
func (c *TaskChain) Invoke(ctx context.Context, in *wfmodel.TaskInput) (*schema.Message, error) {
	ctx, chatModel, msgs, err := c.prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	outMsg, err := chatModel.Generate(ctx, msgs, buildModelOptions(in)...)
	if err != nil {
		return nil, err
	}
	if outMsg == nil {
		return nil, fmt.Errorf("empty llm response")
	}
	return outMsg, nil
}

// Stream 返回 Eino StreamReader；调用方负责 Close()。
// 流可能在最后返回一个 Content 为空但包含 Usage 的消息。
func (c *TaskChain) Stream(ctx context.Context, in *wfmodel.TaskInput) (*schema.StreamReader[*schema.Message], error) {
	ctx, chatModel, msgs, err := c.prepare(ctx, in)
	if err != nil {
		return nil, err
	}
	return chatModel.Stream(ctx, msgs, buildModelOptions(in)...)
}

func (c *TaskChain) prepare(ctx context.Context, in *wfmodel.TaskInput) (context.Context, model.BaseChatModel, []*schema.Message, error) {
	if c == nil || c.factory == nil {
		return ctx, nil, nil, fmt.Errorf("llm factory not configured")
	}
	if in == nil {
		return ctx, nil, nil, fmt.Errorf("input is nil")
	}

	provider := strings.TrimSpace(in.Provider)
	ctx = llmctx.WithTaskProvider(ctx, string(in.Task), provider)
	ctx = einocb.InitCallbacks(ctx, &einocb.RunInfo{
		Name:      string(in.Task),
		Type:      "OpenAI",
		Component: components.ComponentOfChatModel,
	})

	chatModel, err := c.factory.Get(ctx, provider, in.Sampling.Penalties)
	if err != nil {
		return ctx, nil, nil, err
	}

	tpl, err := c.registry.ChatTemplate(in.Prompt)
	if err != nil {
		return ctx, nil, nil, err
	}
	msgs, err := tpl.Format(ctx, in.Vars)
	if err != nil {
		return ctx, nil, nil, fmt.Errorf("format prompt %s: %w", in.Prompt, err)
	}
	return ctx, chatModel, msgs, nil
}

func buildModelOptions(in *wfmodel.TaskInput) []model.Option {
	opts := make([]model.Option, 0, 4)
	s := in.Sampling
	opts = append(opts, model.WithTemperature(s.Temperature), model.WithTopP(s.TopP))
	if s.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(s.MaxTokens))
	}
	if m := strings.TrimSpace(in.Model); m != "" {
		opts = append(opts, model.WithModel(m))
	}
	return opts
}
