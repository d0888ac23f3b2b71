// Package prompt 管理内嵌的提示词模板
package prompt

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed templates/*.txt
var templatesFS embed.FS

type PromptID string

const (
	PromptContinueWritingV1 PromptID = "continue_writing_v1"
	PromptReviewV1          PromptID = "review_v1"
	PromptNamingV1          PromptID = "naming_v1"
	PromptDeconstructV1     PromptID = "deconstruct_v1"
	PromptNovelGenerateV1   PromptID = "novel_generate_v1"
	PromptCharacterGenV1    PromptID = "character_gen_v1"
	PromptOutlineGenV1      PromptID = "outline_gen_v1"
	PromptWorldGenV1        PromptID = "world_gen_v1"
)

// IDs 返回全部已注册的模板
func IDs() []PromptID {
	return []PromptID{
		PromptContinueWritingV1,
		PromptReviewV1,
		PromptNamingV1,
		PromptDeconstructV1,
		PromptNovelGenerateV1,
		PromptCharacterGenV1,
		PromptOutlineGenV1,
		PromptWorldGenV1,
	}
}

// Registry 模板缓存，system/user 两段均为 Go template 语法
type Registry struct {
	mu    sync.RWMutex
	cache map[PromptID]einoprompt.ChatTemplate
}

func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[PromptID]einoprompt.ChatTemplate),
	}
}

func (r *Registry) ChatTemplate(id PromptID) (einoprompt.ChatTemplate, error) {
	if r == nil {
		return nil, fmt.Errorf("prompt registry is nil")
	}

	r.mu.RLock()
	if tpl, ok := r.cache[id]; ok {
		r.mu.RUnlock()
		return tpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.cache[id]; ok {
		return tpl, nil
	}

	if !known(id) {
		return nil, fmt.Errorf("unknown prompt id: %s", id)
	}
	system, err := readEmbeddedText("templates/" + string(id) + ".system.txt")
	if err != nil {
		return nil, err
	}
	user, err := readEmbeddedText("templates/" + string(id) + ".user.txt")
	if err != nil {
		return nil, err
	}

	tpl := einoprompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(system),
		schema.UserMessage(user),
	)
	r.cache[id] = tpl
	return tpl, nil
}

func known(id PromptID) bool {
	for _, candidate := range IDs() {
		if candidate == id {
			return true
		}
	}
	return false
}

func readEmbeddedText(path string) (string, error) {
	b, err := templatesFS.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
