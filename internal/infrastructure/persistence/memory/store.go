// Package memory 提供进程内的仓储实现，用于本地开发与测试
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
)

type tables struct {
	novels     map[string]*entity.Novel
	chapters   map[string]*entity.Chapter
	characters map[string]*entity.Character
	outlines   map[string]*entity.Outline
	worlds     map[string]*entity.WorldEntry
}

func newTables() tables {
	return tables{
		novels:     map[string]*entity.Novel{},
		chapters:   map[string]*entity.Chapter{},
		characters: map[string]*entity.Character{},
		outlines:   map[string]*entity.Outline{},
		worlds:     map[string]*entity.WorldEntry{},
	}
}

func cloneMap[T any](m map[string]*T, clone func(*T) *T) map[string]*T {
	out := make(map[string]*T, len(m))
	for k, v := range m {
		out[k] = clone(v)
	}
	return out
}

func (t tables) clone() tables {
	return tables{
		novels:     cloneMap(t.novels, cloneNovel),
		chapters:   cloneMap(t.chapters, cloneValue[entity.Chapter]),
		characters: cloneMap(t.characters, cloneValue[entity.Character]),
		outlines:   cloneMap(t.outlines, cloneValue[entity.Outline]),
		worlds:     cloneMap(t.worlds, cloneValue[entity.WorldEntry]),
	}
}

func cloneValue[T any](v *T) *T {
	cp := *v
	return &cp
}

func cloneNovel(n *entity.Novel) *entity.Novel {
	cp := *n
	cp.Tags = append(cp.Tags[:0:0], n.Tags...)
	return &cp
}

// Store 进程内存储，事务通过快照回滚实现。
// 事务外的写入同样需要 txMu，保证回滚快照时不会覆盖并发写入
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data tables
	now  func() time.Time
}

// NewStore 创建内存存储
func NewStore() *Store {
	return &Store{data: newTables(), now: time.Now}
}

type txMarker struct{}

// WithTransaction 串行执行事务，fn 失败时恢复到事务开始前的快照
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, repository.TxKey{}, txMarker{})); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func inTx(ctx context.Context) bool {
	_, ok := ctx.Value(repository.TxKey{}).(txMarker)
	return ok
}

// lockWrite 获取写锁；事务外调用时先排在进行中的事务之后
func (s *Store) lockWrite(ctx context.Context) func() {
	if inTx(ctx) {
		s.mu.Lock()
		return s.mu.Unlock
	}
	s.txMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

func (s *Store) touch(created, updated *time.Time) {
	now := s.now()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func matchesKeyword(keyword string, fields ...string) bool {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return true
	}
	for _, f := range fields {
		if containsFold(f, keyword) {
			return true
		}
	}
	return false
}

// sortByTime 按时间排序，时间相同时按 ID 保证稳定
func sortByTime[T any](items []*T, at func(*T) time.Time, id func(*T) string, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, tj := at(items[i]), at(items[j])
		if ti.Equal(tj) {
			return id(items[i]) < id(items[j])
		}
		if desc {
			return ti.After(tj)
		}
		return ti.Before(tj)
	})
}

func limit[T any](items []*T, n int) []*T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

var (
	_ repository.Transactor          = (*Store)(nil)
	_ repository.NovelRepository     = (*NovelRepository)(nil)
	_ repository.ChapterRepository   = (*ChapterRepository)(nil)
	_ repository.CharacterRepository = (*CharacterRepository)(nil)
	_ repository.OutlineRepository   = (*OutlineRepository)(nil)
	_ repository.WorldRepository     = (*WorldRepository)(nil)
)
