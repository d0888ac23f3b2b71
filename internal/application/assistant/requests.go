package assistant

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"novel-studio-api/internal/application/shared"
	wfmodel "novel-studio-api/internal/workflow/model"
)

// Options 请求级模型参数
type Options = wfmodel.Overrides

const (
	msgTemperature = "temperature 取值范围为 0-2"
	msgTopP        = "topP 取值范围为 0-1"
	msgMaxTokens   = "maxTokens 取值范围为 1-16000"
)

func validateOptions(o Options) error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Provider, validation.RuneLength(0, 32).Error("模型提供商名称过长")),
		validation.Field(&o.Model, validation.RuneLength(0, 64).Error("模型名称过长")),
		validation.Field(&o.Temperature, validation.Min(float32(0)).Error(msgTemperature), validation.Max(float32(2)).Error(msgTemperature)),
		validation.Field(&o.TopP, validation.Min(float32(0)).Error(msgTopP), validation.Max(float32(1)).Error(msgTopP)),
		validation.Field(&o.MaxTokens, validation.Min(1).Error(msgMaxTokens), validation.Max(16000).Error(msgMaxTokens)),
	)
}

// ContinueRequest 续写请求
type ContinueRequest struct {
	Content   string
	Context   string
	Style     string
	Direction string
	Length    int
	Options   Options
}

func (r ContinueRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, shared.NotBlank("现有内容不能为空")),
		validation.Field(&r.Length, validation.Max(20000).Error("续写长度过长")),
	)
}

// ReviewRequest 审稿请求
type ReviewRequest struct {
	Content string
	Focus   []string
	Options Options
}

func (r ReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, shared.NotBlank("审稿文本不能为空")),
	)
}

// NamingRequest 命名请求
type NamingRequest struct {
	Type       string
	Gender     string
	Style      string
	Keywords   string
	Background string
	Options    Options
}

func (r NamingRequest) Validate() error {
	if strings.TrimSpace(r.Keywords) == "" && strings.TrimSpace(r.Background) == "" {
		return validation.Errors{"keywords": validation.NewError("validation_required", "请提供至少一个关键词或背景描述")}
	}
	return nil
}

// DeconstructRequest 拆书请求
type DeconstructRequest struct {
	Content string
	Scope   string
	Title   string
	Options Options
}

func (r DeconstructRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, shared.NotBlank("需要解析的文本不能为空")),
	)
}

// NovelRequest 小说生成请求
type NovelRequest struct {
	Prompt  string
	Genre   string
	Style   string
	Length  string
	Options Options
}

func (r NovelRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Prompt, shared.NotBlank("请输入创作提示")),
	)
}

// CharacterRequest 角色生成请求
type CharacterRequest struct {
	Name         string
	Role         string
	Personality  string
	Background   string
	StoryContext string
	Options      Options
}

func (r CharacterRequest) Validate() error {
	if allBlank(r.Name, r.Role, r.Personality, r.Background, r.StoryContext) {
		return validation.Errors{"name": validation.NewError("validation_required", "请提供至少一项角色信息")}
	}
	return nil
}

// OutlineRequest 大纲生成请求
type OutlineRequest struct {
	Title        string
	Genre        string
	MainPlot     string
	Characters   []string
	ChapterCount int
	Style        string
	Options      Options
}

func (r OutlineRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, shared.NotBlank("请输入小说标题")),
		validation.Field(&r.ChapterCount, validation.Max(200).Error("章节数量不能超过 200")),
	)
}

// WorldRequest 世界观生成请求
type WorldRequest struct {
	WorldName  string
	WorldType  string
	TimePeriod string
	Technology string
	Magic      string
	Geography  string
	Culture    string
	Politics   string
	Religion   string
	Additional string
	Options    Options
}

func (r WorldRequest) Validate() error {
	if allBlank(r.WorldName, r.WorldType, r.TimePeriod, r.Technology, r.Magic,
		r.Geography, r.Culture, r.Politics, r.Religion, r.Additional) {
		return validation.Errors{"worldName": validation.NewError("validation_required", "请提供至少一项世界观信息")}
	}
	return nil
}

func allBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func orDefault(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}
