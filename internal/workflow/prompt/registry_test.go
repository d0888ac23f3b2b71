package prompt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLoadsEveryTemplate(t *testing.T) {
	r := NewRegistry()
	for _, id := range IDs() {
		tpl, err := r.ChatTemplate(id)
		require.NoError(t, err, id)
		again, err := r.ChatTemplate(id)
		require.NoError(t, err)
		assert.Equal(t, tpl, again)
	}

	_, err := r.ChatTemplate("missing_v1")
	assert.Error(t, err)
}

func TestContinueTemplateOmitsEmptyFields(t *testing.T) {
	tpl, err := NewRegistry().ChatTemplate(PromptContinueWritingV1)
	require.NoError(t, err)

	msgs, err := tpl.Format(context.Background(), map[string]any{
		"content":   "夜色渐深。",
		"context":   "",
		"style":     "",
		"direction": "主角决定出城",
		"length":    800,
	})
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	user := msgs[1].Content
	assert.Contains(t, user, "夜色渐深。")
	assert.Contains(t, user, "续写方向：主角决定出城")
	assert.Contains(t, user, "请续写约800字的内容。")
	assert.NotContains(t, user, "故事背景")
}

func TestReviewSystemPromptKeepsJSONBraces(t *testing.T) {
	tpl, err := NewRegistry().ChatTemplate(PromptReviewV1)
	require.NoError(t, err)

	msgs, err := tpl.Format(context.Background(), map[string]any{"content": "x", "focus": "综合评估"})
	require.NoError(t, err)
	assert.Contains(t, msgs[0].Content, `{"strengths": ["..."]`)
}
