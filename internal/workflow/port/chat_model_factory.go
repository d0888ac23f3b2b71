// Package port 定义工作流层依赖的外部能力
package port

import (
	"context"

	"github.com/cloudwego/eino/components/model"
)

// Penalties 重复惩罚参数，在构建 ChatModel 时固定
type Penalties struct {
	Frequency float32
	Presence  float32
}

// IsZero 是否未设置惩罚
func (p Penalties) IsZero() bool {
	return p.Frequency == 0 && p.Presence == 0
}

// ChatModelFactory 定义工作流层对 LLM ChatModel 的最小依赖（port）。
type ChatModelFactory interface {
	Get(ctx context.Context, provider string, penalties Penalties) (model.BaseChatModel, error)
}
