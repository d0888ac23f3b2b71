package chain

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wfmodel "novel-studio-api/internal/workflow/model"
	"novel-studio-api/internal/workflow/port"
	"novel-studio-api/internal/workflow/prompt"
)

type fakeModel struct {
	reply  string
	chunks []string
	msgs   []*schema.Message
	opts   *model.Options
}

func (m *fakeModel) Generate(_ context.Context, msgs []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.msgs = msgs
	m.opts = model.GetCommonOptions(nil, opts...)
	return schema.AssistantMessage(m.reply, nil), nil
}

func (m *fakeModel) Stream(_ context.Context, msgs []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	m.msgs = msgs
	m.opts = model.GetCommonOptions(nil, opts...)
	out := make([]*schema.Message, 0, len(m.chunks))
	for _, c := range m.chunks {
		out = append(out, schema.AssistantMessage(c, nil))
	}
	return schema.StreamReaderFromArray(out), nil
}

type fakeFactory struct {
	model     *fakeModel
	provider  string
	penalties port.Penalties
	err       error
}

func (f *fakeFactory) Get(_ context.Context, provider string, penalties port.Penalties) (model.BaseChatModel, error) {
	f.provider = provider
	f.penalties = penalties
	if f.err != nil {
		return nil, f.err
	}
	return f.model, nil
}

func continueInput() *wfmodel.TaskInput {
	return &wfmodel.TaskInput{
		Task:     wfmodel.TaskContinueWriting,
		Prompt:   prompt.PromptContinueWritingV1,
		Provider: "openai",
		Model:    "gpt-4o-mini",
		Vars: map[string]any{
			"content": "夜色渐深。", "context": "", "style": "", "direction": "", "length": 800,
		},
		Sampling: wfmodel.Sampling{
			Temperature: 0.8, MaxTokens: 1600, TopP: 0.9,
			Penalties: port.Penalties{Frequency: 0.3, Presence: 0.3},
		},
	}
}

func TestTaskChainInvoke(t *testing.T) {
	fm := &fakeModel{reply: "城门缓缓打开。"}
	ff := &fakeFactory{model: fm}
	c := NewTaskChain(ff)

	out, err := c.Invoke(context.Background(), continueInput())
	require.NoError(t, err)
	assert.Equal(t, "城门缓缓打开。", out.Content)

	assert.Equal(t, "openai", ff.provider)
	assert.Equal(t, port.Penalties{Frequency: 0.3, Presence: 0.3}, ff.penalties)

	require.Len(t, fm.msgs, 2)
	assert.Equal(t, schema.System, fm.msgs[0].Role)
	assert.Contains(t, fm.msgs[1].Content, "夜色渐深。")

	require.NotNil(t, fm.opts.Temperature)
	assert.InDelta(t, 0.8, *fm.opts.Temperature, 1e-6)
	require.NotNil(t, fm.opts.MaxTokens)
	assert.Equal(t, 1600, *fm.opts.MaxTokens)
	require.NotNil(t, fm.opts.TopP)
	assert.InDelta(t, 0.9, *fm.opts.TopP, 1e-6)
	require.NotNil(t, fm.opts.Model)
	assert.Equal(t, "gpt-4o-mini", *fm.opts.Model)
}

func TestTaskChainStream(t *testing.T) {
	fm := &fakeModel{chunks: []string{"城门", "缓缓", "打开。"}}
	c := NewTaskChain(&fakeFactory{model: fm})

	sr, err := c.Stream(context.Background(), continueInput())
	require.NoError(t, err)
	defer sr.Close()

	var got string
	for {
		msg, err := sr.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got += msg.Content
	}
	assert.Equal(t, "城门缓缓打开。", got)
}

func TestTaskChainFactoryError(t *testing.T) {
	c := NewTaskChain(&fakeFactory{err: errors.New("provider missing")})
	_, err := c.Invoke(context.Background(), continueInput())
	assert.EqualError(t, err, "provider missing")

	var nilChain *TaskChain
	_, err = nilChain.Invoke(context.Background(), continueInput())
	assert.Error(t, err)
}
