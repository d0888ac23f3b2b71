// Package repository 定义数据访问层接口
package repository

import (
	"context"
)

// TxKey 事务上下文键类型
type TxKey struct{}

// Transactor 事务管理接口
type Transactor interface {
	// WithTransaction 在事务中执行操作，fn 返回错误时回滚
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// SortOrder 排序方向
type SortOrder string

const (
	SortOrderAsc  SortOrder = "ASC"
	SortOrderDesc SortOrder = "DESC"
)

// ParseSortOrder 解析排序方向，默认降序
func ParseSortOrder(s string) SortOrder {
	switch s {
	case "asc", "ASC":
		return SortOrderAsc
	default:
		return SortOrderDesc
	}
}

// Take 列表数量限制
type Take struct {
	Default int
	Max     int
}

// Clamp 将请求的数量限制到 [1, Max]，非正数时返回默认值
func (t Take) Clamp(n int) int {
	if n <= 0 {
		return t.Default
	}
	if n > t.Max {
		return t.Max
	}
	return n
}

// 各资源的列表数量限制
var (
	CharacterTake = Take{Default: 50, Max: 200}
	OutlineTake   = Take{Default: 50, Max: 200}
	WorldTake     = Take{Default: 20, Max: 100}
)

// KeywordFilter 按小说与关键字过滤子资源
type KeywordFilter struct {
	NovelID string
	Keyword string
	Take    int
}
