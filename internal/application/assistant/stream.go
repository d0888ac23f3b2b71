package assistant

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino/schema"

	wfmodel "novel-studio-api/internal/workflow/model"
	apperrors "novel-studio-api/pkg/errors"
	"novel-studio-api/pkg/logger"
	"novel-studio-api/pkg/metrics"
	"novel-studio-api/pkg/wordcount"
)

// TextStream 流式生成的文本片段
type TextStream struct {
	ctx     context.Context
	svc     *Service
	task    wfmodel.Task
	reader  *schema.StreamReader[*schema.Message]
	start   time.Time
	builder strings.Builder

	once   sync.Once
	failed bool
	done   bool
}

func newTextStream(ctx context.Context, svc *Service, task wfmodel.Task, reader *schema.StreamReader[*schema.Message]) *TextStream {
	return &TextStream{ctx: ctx, svc: svc, task: task, reader: reader, start: time.Now()}
}

// Next 返回下一个非空片段，结束时返回 io.EOF；整段回复为空白时返回生成失败
func (t *TextStream) Next() (string, error) {
	for {
		msg, err := t.reader.Recv()
		if errors.Is(err, io.EOF) {
			if t.Content() == "" {
				t.failed = true
				return "", t.svc.fail(t.ctx, t.task, apperrors.CodeGenerationFailed, errEmptyReply)
			}
			t.done = true
			return "", io.EOF
		}
		if err != nil {
			t.failed = true
			return "", t.svc.fail(t.ctx, t.task, apperrors.CodeLLMCallFailed, err)
		}
		if msg == nil || msg.Content == "" {
			continue
		}
		t.builder.WriteString(msg.Content)
		return msg.Content, nil
	}
}

// Content 已接收的全部文本
func (t *TextStream) Content() string {
	return strings.TrimSpace(t.builder.String())
}

// WordCount 已接收文本的字数
func (t *TextStream) WordCount() int {
	return wordcount.Count(t.builder.String())
}

// Close 关闭底层流并记录任务指标，可重复调用
func (t *TextStream) Close() {
	t.once.Do(func() {
		t.reader.Close()
		task := string(t.task)
		metrics.AITaskDuration.WithLabelValues(task).Observe(time.Since(t.start).Seconds())
		if t.failed {
			return
		}
		status := "success"
		if !t.done {
			// 未读到结尾即被关闭（如客户端断开）
			status = "aborted"
		}
		metrics.AITaskTotal.WithLabelValues(task, status).Inc()
		logger.Info(t.ctx, "ai stream closed", "status", status, "word_count", t.WordCount())
	})
}
