package assistant

import (
	"strings"

	wfmodel "novel-studio-api/internal/workflow/model"
	"novel-studio-api/internal/workflow/port"
)

var repetitionPenalties = port.Penalties{Frequency: 0.3, Presence: 0.3}

// 各任务的采样预设
var (
	reviewSampling      = wfmodel.Sampling{Temperature: 0.4, MaxTokens: 1200, TopP: 0.8}
	namingSampling      = wfmodel.Sampling{Temperature: 0.7, MaxTokens: 800, TopP: 0.9}
	deconstructSampling = wfmodel.Sampling{Temperature: 0.7, MaxTokens: 1600, TopP: 0.9}
	generatorSampling   = wfmodel.Sampling{Temperature: 0.8, MaxTokens: 2000, TopP: 0.9}
)

const (
	defaultContinueLength = 800
	maxContinueTokens     = 2000
	maxNameSuggestions    = 5
	defaultChapterCount   = 20
)

// continueSampling 续写的最大 token 为目标字数的两倍，上限 2000
func continueSampling(length int) wfmodel.Sampling {
	return wfmodel.Sampling{
		Temperature: 0.8,
		MaxTokens:   min(length*2, maxContinueTokens),
		TopP:        0.9,
		Penalties:   repetitionPenalties,
	}
}

var focusDescriptions = map[string]string{
	"plot":      "分析剧情逻辑、冲突设置以及节奏安排是否合理。",
	"character": "关注人物动机、性格一致性与成长曲线。",
	"style":     "评估语言风格、叙述视角以及氛围营造。",
	"pacing":    "检查段落节奏、转场衔接与张弛节奏。",
}

var defaultReviewFocus = []string{"plot", "character", "style"}

// focusText 拼接审稿关注点，未识别的项被忽略
func focusText(focus []string) string {
	parts := make([]string, 0, len(focus))
	for _, f := range focus {
		if desc, ok := focusDescriptions[f]; ok {
			parts = append(parts, desc)
		}
	}
	if len(parts) == 0 {
		return "综合评估"
	}
	return strings.Join(parts, "\n")
}

var namingTypeHints = map[string]string{
	"character":    "角色名字，需要考虑性格、身份与时代背景。",
	"organization": "组织或势力名，需要体现定位、理念与风格。",
	"location":     "地点/场景名，需要有空间感与象征意义。",
	"artifact":     "重要物品、圣物或技能名称，需要突出独特性。",
}

var namingStyleHints = map[string]string{
	"classical": "古典、雅致、带有诗意或历史感。",
	"modern":    "现代、简洁、易读易记。",
	"fantasy":   "奇幻、浪漫、富有想象力。",
	"mystery":   "悬疑、冷冽、暗示神秘感。",
}

var genreNames = map[string]string{
	"fantasy": "奇幻玄幻",
	"romance": "都市言情",
	"scifi":   "科幻未来",
	"mystery": "悬疑推理",
	"history": "历史架空",
	"wuxia":   "武侠仙侠",
}

var styleNames = map[string]string{
	"descriptive": "细腻描写",
	"dialogue":    "对话驱动",
	"action":      "动作场面",
	"emotional":   "情感丰富",
	"humorous":    "幽默风趣",
}

// lengthSpec 篇幅规格
type lengthSpec struct {
	Min         int
	Max         int
	Description string
	MaxTokens   int
}

var lengthSpecs = map[string]lengthSpec{
	"short":  {Min: 1000, Max: 3000, Description: "短篇", MaxTokens: 2000},
	"medium": {Min: 3000, Max: 8000, Description: "中篇", MaxTokens: 4000},
	"long":   {Min: 8000, Max: 15000, Description: "长篇", MaxTokens: 8000},
}

// 未指定篇幅时的默认要求
var defaultLengthSpec = lengthSpec{Min: 3000, Max: 5000, Description: "中篇", MaxTokens: 4000}

func resolveLength(length string) lengthSpec {
	if spec, ok := lengthSpecs[length]; ok {
		return spec
	}
	return defaultLengthSpec
}

func novelSampling(spec lengthSpec) wfmodel.Sampling {
	return wfmodel.Sampling{
		Temperature: 0.8,
		MaxTokens:   spec.MaxTokens,
		TopP:        0.9,
		Penalties:   repetitionPenalties,
	}
}

const unspecified = "未指定"

func labelOr(m map[string]string, key, fallback string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}
