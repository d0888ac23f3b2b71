// Package model 定义工作流的输入输出结构
package model

import (
	"novel-studio-api/internal/workflow/port"
	"novel-studio-api/internal/workflow/prompt"
)

// Task AI 任务类型
type Task string

const (
	TaskContinueWriting   Task = "continue_writing"
	TaskReview            Task = "review"
	TaskNaming            Task = "naming"
	TaskDeconstruct       Task = "deconstruct"
	TaskNovelGenerate     Task = "novel_generate"
	TaskCharacterGenerate Task = "character_generate"
	TaskOutlineGenerate   Task = "outline_generate"
	TaskWorldGenerate     Task = "world_generate"
)

// Sampling 采样参数
type Sampling struct {
	Temperature float32
	MaxTokens   int
	TopP        float32
	Penalties   port.Penalties
}

// Overrides 请求级覆盖参数，nil/空值表示沿用预设
type Overrides struct {
	Provider    string
	Model       string
	Temperature *float32
	MaxTokens   *int
	TopP        *float32
}

// Apply 将覆盖参数应用到预设上
func (o Overrides) Apply(s Sampling) Sampling {
	if o.Temperature != nil {
		s.Temperature = *o.Temperature
	}
	if o.MaxTokens != nil {
		s.MaxTokens = *o.MaxTokens
	}
	if o.TopP != nil {
		s.TopP = *o.TopP
	}
	return s
}

// TaskInput 一次模型调用的完整输入
type TaskInput struct {
	Task     Task
	Prompt   prompt.PromptID
	Vars     map[string]any
	Provider string
	Model    string
	Sampling Sampling
}
