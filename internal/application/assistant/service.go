// Package assistant 提供 AI 写作助手：续写、审稿、命名、拆书与设定生成
package assistant

import (
	"context"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"novel-studio-api/internal/application/shared"
	"novel-studio-api/internal/workflow/chain"
	wfmodel "novel-studio-api/internal/workflow/model"
	"novel-studio-api/internal/workflow/prompt"
	apperrors "novel-studio-api/pkg/errors"
	"novel-studio-api/pkg/logger"
	"novel-studio-api/pkg/metrics"
	"novel-studio-api/pkg/tracer"
	"novel-studio-api/pkg/wordcount"
)

// ProviderCatalog 已配置的模型提供商
type ProviderCatalog interface {
	Has(name string) bool
}

// 各任务对外的失败提示
var failureMessages = map[wfmodel.Task]string{
	wfmodel.TaskContinueWriting:   "续写失败，请稍后重试",
	wfmodel.TaskReview:            "审稿失败，请稍后重试",
	wfmodel.TaskNaming:            "生成名称失败，请稍后重试",
	wfmodel.TaskDeconstruct:       "拆书解析失败，请稍后重试",
	wfmodel.TaskNovelGenerate:     "小说生成失败，请稍后重试",
	wfmodel.TaskCharacterGenerate: "角色生成失败，请稍后重试",
	wfmodel.TaskOutlineGenerate:   "大纲生成失败，请稍后重试",
	wfmodel.TaskWorldGenerate:     "世界观生成失败，请稍后重试",
}

// ContinueResult 续写结果
type ContinueResult struct {
	Content   string `json:"content"`
	WordCount int    `json:"wordCount"`
}

// NovelMetadata 小说生成元信息
type NovelMetadata struct {
	Genre     string `json:"genre"`
	Style     string `json:"style"`
	Length    string `json:"length"`
	WordCount int    `json:"wordCount"`
}

// NovelResult 小说生成结果
type NovelResult struct {
	Content  string        `json:"content"`
	Metadata NovelMetadata `json:"metadata"`
}

// Service AI 写作助手服务
// 每次调用都直接请求模型，不做重试与缓存。
type Service struct {
	chain           *chain.TaskChain
	providers       ProviderCatalog
	defaultProvider string
}

// NewService 创建助手服务
func NewService(taskChain *chain.TaskChain, providers ProviderCatalog, defaultProvider string) *Service {
	return &Service{chain: taskChain, providers: providers, defaultProvider: defaultProvider}
}

// ContinueWriting 续写
func (s *Service) ContinueWriting(ctx context.Context, req ContinueRequest) (*ContinueResult, error) {
	in, err := s.continueInput(req)
	if err != nil {
		return nil, err
	}
	text, err := s.generate(ctx, in)
	if err != nil {
		return nil, err
	}
	return &ContinueResult{Content: text, WordCount: wordcount.Count(text)}, nil
}

func (s *Service) continueInput(req ContinueRequest) (*wfmodel.TaskInput, error) {
	if req.Length <= 0 {
		req.Length = defaultContinueLength
	}
	if err := s.validate(req, req.Options); err != nil {
		return nil, err
	}
	return s.taskInput(wfmodel.TaskContinueWriting, prompt.PromptContinueWritingV1, continueSampling(req.Length), req.Options, map[string]any{
		"content":   req.Content,
		"context":   strings.TrimSpace(req.Context),
		"style":     strings.TrimSpace(req.Style),
		"direction": strings.TrimSpace(req.Direction),
		"length":    req.Length,
	})
}

// Review 审稿
func (s *Service) Review(ctx context.Context, req ReviewRequest) (*Review, error) {
	if req.Focus == nil {
		req.Focus = defaultReviewFocus
	}
	if err := s.validate(req, req.Options); err != nil {
		return nil, err
	}
	in, err := s.taskInput(wfmodel.TaskReview, prompt.PromptReviewV1, reviewSampling, req.Options, map[string]any{
		"content": req.Content,
		"focus":   focusText(req.Focus),
	})
	if err != nil {
		return nil, err
	}
	return generateJSON(ctx, s, in, parseReview)
}

// Naming 命名建议，最多 5 条
func (s *Service) Naming(ctx context.Context, req NamingRequest) ([]NameSuggestion, error) {
	if err := s.validate(req, req.Options); err != nil {
		return nil, err
	}
	kind := orDefault(req.Type, "character")
	style := orDefault(req.Style, "classical")
	in, err := s.taskInput(wfmodel.TaskNaming, prompt.PromptNamingV1, namingSampling, req.Options, map[string]any{
		"type":       kind,
		"type_hint":  namingTypeHints[kind],
		"gender":     orDefault(req.Gender, "any"),
		"style_hint": namingStyleHints[style],
		"keywords":   strings.TrimSpace(req.Keywords),
		"background": strings.TrimSpace(req.Background),
	})
	if err != nil {
		return nil, err
	}
	return generateJSON(ctx, s, in, parseNaming)
}

// Deconstruct 拆书分析
func (s *Service) Deconstruct(ctx context.Context, req DeconstructRequest) (*Analysis, error) {
	if err := s.validate(req, req.Options); err != nil {
		return nil, err
	}
	in, err := s.taskInput(wfmodel.TaskDeconstruct, prompt.PromptDeconstructV1, deconstructSampling, req.Options, map[string]any{
		"title":   orDefault(req.Title, "未命名作品"),
		"scope":   orDefault(req.Scope, "chapter"),
		"content": req.Content,
	})
	if err != nil {
		return nil, err
	}
	return generateJSON(ctx, s, in, parseAnalysis)
}

// GenerateNovel 按主题生成完整小说
func (s *Service) GenerateNovel(ctx context.Context, req NovelRequest) (*NovelResult, error) {
	if err := s.validate(req, req.Options); err != nil {
		return nil, err
	}
	spec := resolveLength(req.Length)
	in, err := s.taskInput(wfmodel.TaskNovelGenerate, prompt.PromptNovelGenerateV1, novelSampling(spec), req.Options, map[string]any{
		"prompt":             strings.TrimSpace(req.Prompt),
		"genre":              genreNames[req.Genre],
		"style":              styleNames[req.Style],
		"length_description": spec.Description,
		"min_words":          spec.Min,
		"max_words":          spec.Max,
	})
	if err != nil {
		return nil, err
	}
	text, err := s.generate(ctx, in)
	if err != nil {
		return nil, err
	}
	return &NovelResult{
		Content: text,
		Metadata: NovelMetadata{
			Genre:     labelOr(genreNames, req.Genre, unspecified),
			Style:     labelOr(styleNames, req.Style, unspecified),
			Length:    spec.Description,
			WordCount: wordcount.Count(text),
		},
	}, nil
}

// GenerateCharacter 生成角色档案
func (s *Service) GenerateCharacter(ctx context.Context, req CharacterRequest) (string, error) {
	if err := s.validate(req, req.Options); err != nil {
		return "", err
	}
	in, err := s.taskInput(wfmodel.TaskCharacterGenerate, prompt.PromptCharacterGenV1, generatorSampling, req.Options, map[string]any{
		"name":          strings.TrimSpace(req.Name),
		"role":          strings.TrimSpace(req.Role),
		"personality":   strings.TrimSpace(req.Personality),
		"background":    strings.TrimSpace(req.Background),
		"story_context": strings.TrimSpace(req.StoryContext),
	})
	if err != nil {
		return "", err
	}
	return s.generate(ctx, in)
}

// GenerateOutline 生成故事大纲
func (s *Service) GenerateOutline(ctx context.Context, req OutlineRequest) (string, error) {
	if req.ChapterCount <= 0 {
		req.ChapterCount = defaultChapterCount
	}
	if err := s.validate(req, req.Options); err != nil {
		return "", err
	}
	characters := make([]string, 0, len(req.Characters))
	for _, c := range req.Characters {
		if c = strings.TrimSpace(c); c != "" {
			characters = append(characters, c)
		}
	}
	in, err := s.taskInput(wfmodel.TaskOutlineGenerate, prompt.PromptOutlineGenV1, generatorSampling, req.Options, map[string]any{
		"title":         strings.TrimSpace(req.Title),
		"genre":         strings.TrimSpace(req.Genre),
		"main_plot":     strings.TrimSpace(req.MainPlot),
		"characters":    strings.Join(characters, "、"),
		"style":         strings.TrimSpace(req.Style),
		"chapter_count": strconv.Itoa(req.ChapterCount),
	})
	if err != nil {
		return "", err
	}
	return s.generate(ctx, in)
}

// GenerateWorld 生成世界观设定
func (s *Service) GenerateWorld(ctx context.Context, req WorldRequest) (string, error) {
	if err := s.validate(req, req.Options); err != nil {
		return "", err
	}
	in, err := s.taskInput(wfmodel.TaskWorldGenerate, prompt.PromptWorldGenV1, generatorSampling, req.Options, map[string]any{
		"world_name":  strings.TrimSpace(req.WorldName),
		"world_type":  strings.TrimSpace(req.WorldType),
		"time_period": strings.TrimSpace(req.TimePeriod),
		"technology":  strings.TrimSpace(req.Technology),
		"magic":       strings.TrimSpace(req.Magic),
		"geography":   strings.TrimSpace(req.Geography),
		"culture":     strings.TrimSpace(req.Culture),
		"politics":    strings.TrimSpace(req.Politics),
		"religion":    strings.TrimSpace(req.Religion),
		"additional":  strings.TrimSpace(req.Additional),
	})
	if err != nil {
		return "", err
	}
	return s.generate(ctx, in)
}

// validate 校验请求体与模型参数，失败时不会发起任何模型调用
func (s *Service) validate(req validation.Validatable, opts Options) error {
	if err := shared.Validate(req); err != nil {
		return err
	}
	if err := validateOptions(opts); err != nil {
		return shared.FromValidation(err)
	}
	return nil
}

func (s *Service) taskInput(task wfmodel.Task, id prompt.PromptID, preset wfmodel.Sampling, opts Options, vars map[string]any) (*wfmodel.TaskInput, error) {
	provider := strings.TrimSpace(opts.Provider)
	if provider == "" {
		provider = s.defaultProvider
	}
	if s.providers != nil && !s.providers.Has(provider) {
		return nil, apperrors.Validation("未知的模型提供商").WithDetail(provider)
	}
	return &wfmodel.TaskInput{
		Task:     task,
		Prompt:   id,
		Vars:     vars,
		Provider: provider,
		Model:    strings.TrimSpace(opts.Model),
		Sampling: opts.Apply(preset),
	}, nil
}

// generate 调用模型并返回去除首尾空白的文本，空回复视为生成失败
func (s *Service) generate(ctx context.Context, in *wfmodel.TaskInput) (string, error) {
	ctx = logger.WithAITask(ctx, string(in.Task))
	ctx, span := tracer.Start(ctx, "assistant."+string(in.Task))
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.AITaskDuration.WithLabelValues(string(in.Task)).Observe(time.Since(start).Seconds())
	}()

	msg, err := s.chain.Invoke(ctx, in)
	if err != nil {
		tracer.RecordError(span, err)
		return "", s.fail(ctx, in.Task, apperrors.CodeLLMCallFailed, err)
	}
	text := strings.TrimSpace(msg.Content)
	if text == "" {
		return "", s.fail(ctx, in.Task, apperrors.CodeGenerationFailed, errEmptyReply)
	}

	metrics.AITaskTotal.WithLabelValues(string(in.Task), "success").Inc()
	logger.Info(ctx, "ai task completed", "provider", in.Provider, "reply_runes", len([]rune(text)))
	return text, nil
}

func generateJSON[T any](ctx context.Context, s *Service, in *wfmodel.TaskInput, parse func(string) (T, error)) (T, error) {
	var zero T
	text, err := s.generate(ctx, in)
	if err != nil {
		return zero, err
	}
	out, err := parse(text)
	if err != nil {
		return zero, s.fail(ctx, in.Task, apperrors.CodeParseFailed, err)
	}
	return out, nil
}

func (s *Service) fail(ctx context.Context, task wfmodel.Task, code apperrors.ErrorCode, cause error) error {
	status := "error"
	if code == apperrors.CodeParseFailed {
		status = "parse_error"
	}
	metrics.AITaskTotal.WithLabelValues(string(task), status).Inc()
	logger.Error(ctx, "ai task failed", cause, "task", string(task))
	return apperrors.Wrap(cause, code, failureMessages[task])
}

// StreamContinueWriting 流式续写，调用方负责 Close
func (s *Service) StreamContinueWriting(ctx context.Context, req ContinueRequest) (*TextStream, error) {
	in, err := s.continueInput(req)
	if err != nil {
		return nil, err
	}
	ctx = logger.WithAITask(ctx, string(in.Task))
	reader, err := s.chain.Stream(ctx, in)
	if err != nil {
		return nil, s.fail(ctx, in.Task, apperrors.CodeLLMCallFailed, err)
	}
	return newTextStream(ctx, s, in.Task, reader), nil
}
