package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONReply(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"upper fence", "```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding prose", "好的，结果如下：{\"a\":[1,2]} 希望有帮助", `{"a":[1,2]}`},
		{"array", "结果：[1,2,3]", `[1,2,3]`},
		{"not json", "抱歉，我无法完成", "抱歉，我无法完成"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONReply(tt.in))
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, "正文", StripCodeFence("```\n正文\n```"))
}
