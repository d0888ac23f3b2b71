package assistant

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"

	"novel-studio-api/internal/workflow/node"
)

var (
	errEmptyReply = errors.New("AI 生成失败")
	errParseReply = errors.New("AI 返回结果解析失败")
)

// Scoring 审稿评分
type Scoring struct {
	Plot      float64 `json:"plot"`
	Character float64 `json:"character"`
	Style     float64 `json:"style"`
}

// Review 审稿结果
type Review struct {
	Strengths   []string `json:"strengths"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
	Scoring     *Scoring `json:"scoring,omitempty"`
}

// NameSuggestion 命名建议
type NameSuggestion struct {
	Name    string `json:"name"`
	Meaning string `json:"meaning"`
}

// CharacterInsight 拆书中的人物分析
type CharacterInsight struct {
	Name    string `json:"name"`
	Insight string `json:"insight"`
}

// Analysis 拆书报告
type Analysis struct {
	Summary     string             `json:"summary"`
	PlotBeats   []string           `json:"plotBeats"`
	Characters  []CharacterInsight `json:"characters"`
	Themes      []string           `json:"themes"`
	Suggestions []string           `json:"suggestions"`
}

// parseJSONReply 清理模型输出并校验为 JSON
func parseJSONReply(reply string) (gjson.Result, error) {
	raw := node.CleanJSONReply(reply)
	if raw == "" || !gjson.Valid(raw) {
		return gjson.Result{}, errParseReply
	}
	return gjson.Parse(raw), nil
}

func parseReview(reply string) (*Review, error) {
	root, err := parseJSONReply(reply)
	if err != nil {
		return nil, err
	}
	review := &Review{
		Strengths:   stringList(root.Get("strengths")),
		Issues:      stringList(root.Get("issues")),
		Suggestions: stringList(root.Get("suggestions")),
	}
	if scoring := root.Get("scoring"); scoring.IsObject() {
		review.Scoring = &Scoring{
			Plot:      clampScore(scoring.Get("plot").Float()),
			Character: clampScore(scoring.Get("character").Float()),
			Style:     clampScore(scoring.Get("style").Float()),
		}
	}
	return review, nil
}

func parseNaming(reply string) ([]NameSuggestion, error) {
	root, err := parseJSONReply(reply)
	if err != nil {
		return nil, err
	}
	out := make([]NameSuggestion, 0, maxNameSuggestions)
	root.Get("suggestions").ForEach(func(_, item gjson.Result) bool {
		if len(out) == maxNameSuggestions {
			return false
		}
		s := NameSuggestion{
			Name:    firstString(item, "name", "Name"),
			Meaning: firstString(item, "meaning", "Meaning"),
		}
		if s.Name != "" {
			out = append(out, s)
		}
		return true
	})
	return out, nil
}

func parseAnalysis(reply string) (*Analysis, error) {
	root, err := parseJSONReply(reply)
	if err != nil {
		return nil, err
	}
	analysis := &Analysis{
		Summary:     strings.TrimSpace(root.Get("summary").String()),
		PlotBeats:   stringList(root.Get("plotBeats")),
		Characters:  []CharacterInsight{},
		Themes:      stringList(root.Get("themes")),
		Suggestions: stringList(root.Get("suggestions")),
	}
	root.Get("characters").ForEach(func(_, item gjson.Result) bool {
		name := firstString(item, "name")
		if name != "" {
			analysis.Characters = append(analysis.Characters, CharacterInsight{
				Name:    name,
				Insight: firstString(item, "insight"),
			})
		}
		return true
	})
	return analysis, nil
}

// stringList 读取字符串数组，非数组返回空切片，跳过对象与空值
func stringList(r gjson.Result) []string {
	out := []string{}
	if !r.IsArray() {
		return out
	}
	for _, item := range r.Array() {
		if item.IsObject() || item.IsArray() {
			continue
		}
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func firstString(r gjson.Result, keys ...string) string {
	if !r.IsObject() {
		return ""
	}
	for _, k := range keys {
		if v := strings.TrimSpace(r.Get(k).String()); v != "" {
			return v
		}
	}
	return ""
}

func clampScore(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 10:
		return 10
	default:
		return v
	}
}
