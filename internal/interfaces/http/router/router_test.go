package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novel-studio-api/internal/application/assistant"
	"novel-studio-api/internal/application/library"
	"novel-studio-api/internal/config"
	"novel-studio-api/internal/infrastructure/llm/llmtest"
	"novel-studio-api/internal/infrastructure/persistence/memory"
	"novel-studio-api/internal/interfaces/http/handler"
	"novel-studio-api/internal/workflow/chain"
)

type testServer struct {
	engine *gin.Engine
	model  *llmtest.Model
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	novels := memory.NewNovelRepository(store)
	chapters := memory.NewChapterRepository(store)
	characters := memory.NewCharacterRepository(store)
	outlines := memory.NewOutlineRepository(store)
	worlds := memory.NewWorldRepository(store)

	stats := library.NewStatsService(store, novels, chapters, nil)
	model := &llmtest.Model{}
	factory := &llmtest.Factory{Model: model}

	h := &Handlers{
		Health:    handler.NewHealthHandler("test", map[string]handler.HealthChecker{"postgres": nil, "redis": nil}),
		Novel:     handler.NewNovelHandler(library.NewNovelService(store, novels, chapters, characters, outlines, worlds, stats)),
		Chapter:   handler.NewChapterHandler(library.NewChapterService(store, novels, chapters, stats)),
		Character: handler.NewCharacterHandler(library.NewCharacterService(store, novels, characters)),
		Outline:   handler.NewOutlineHandler(library.NewOutlineService(store, novels, outlines)),
		World:     handler.NewWorldHandler(library.NewWorldService(store, novels, worlds)),
		Assistant: handler.NewAssistantHandler(assistant.NewService(chain.NewTaskChain(factory), factory, "openai")),
	}
	cfg := &config.Config{}
	return &testServer{engine: New(cfg, h, nil).Engine(), model: model}
}

func (s *testServer) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "text/event-stream" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}

func field(t *testing.T, m map[string]any, keys ...string) any {
	t.Helper()
	var cur any = m
	for _, k := range keys {
		obj, ok := cur.(map[string]any)
		require.True(t, ok, "expected object at %q", k)
		cur = obj[k]
	}
	return cur
}

func TestNovelChapterStatsFlow(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodPost, "/api/novels", gin.H{"title": "雪国", "tags": []string{"冬", " ", "冬"}})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 0, field(t, body, "novel", "wordCount"))
	assert.EqualValues(t, 0, field(t, body, "novel", "chapterCount"))
	assert.Equal(t, []any{"冬"}, field(t, body, "novel", "tags"))
	novelID := field(t, body, "novel", "id").(string)

	code, body = s.do(t, http.MethodPost, "/api/novels/"+novelID+"/chapters", gin.H{"title": "第一章", "content": "Hello world"})
	require.Equal(t, http.StatusCreated, code)
	assert.EqualValues(t, 10, field(t, body, "chapter", "wordCount"))
	assert.EqualValues(t, 1, field(t, body, "chapter", "order"))
	chapterID := field(t, body, "chapter", "id").(string)

	code, body = s.do(t, http.MethodGet, "/api/novels/"+novelID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 10, field(t, body, "novel", "wordCount"))
	assert.EqualValues(t, 1, field(t, body, "novel", "chapterCount"))
	assert.Equal(t, "writing", field(t, body, "novel", "status"))
	assert.Len(t, field(t, body, "novel", "chapters"), 1)
	assert.Equal(t, []any{}, field(t, body, "novel", "characters"))
	assert.Nil(t, field(t, body, "novel", "worldBuilding"))

	code, body = s.do(t, http.MethodPut, "/api/chapters/"+chapterID, gin.H{"content": "一二三"})
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 3, field(t, body, "novel", "wordCount"))

	code, body = s.do(t, http.MethodDelete, "/api/chapters/"+chapterID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, field(t, body, "novel", "chapterCount"))
	assert.Equal(t, "draft", field(t, body, "novel", "status"))
}

func TestReorderChapters(t *testing.T) {
	s := newTestServer(t)
	_, body := s.do(t, http.MethodPost, "/api/novels", gin.H{"title": "三章"})
	novelID := field(t, body, "novel", "id").(string)

	ids := make([]string, 3)
	for i, title := range []string{"一", "二", "三"} {
		_, body = s.do(t, http.MethodPost, "/api/novels/"+novelID+"/chapters", gin.H{"title": title})
		ids[i] = field(t, body, "chapter", "id").(string)
	}

	code, body := s.do(t, http.MethodPatch, "/api/novels/"+novelID+"/chapters", gin.H{"chapterIds": []string{ids[0], ids[1]}})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, body["error"])

	code, _ = s.do(t, http.MethodPatch, "/api/novels/"+novelID+"/chapters", gin.H{"chapterIds": []string{ids[2], ids[0], ids[1]}})
	require.Equal(t, http.StatusOK, code)

	_, body = s.do(t, http.MethodGet, "/api/novels/"+novelID+"/chapters", nil)
	list := body["chapters"].([]any)
	require.Len(t, list, 3)
	for i, want := range []string{ids[2], ids[0], ids[1]} {
		ch := list[i].(map[string]any)
		assert.Equal(t, want, ch["id"])
		assert.EqualValues(t, i+1, ch["order"])
	}
}

func TestRecalculateRoute(t *testing.T) {
	s := newTestServer(t)
	_, body := s.do(t, http.MethodPost, "/api/novels", gin.H{"title": "重算"})
	novelID := field(t, body, "novel", "id").(string)
	s.do(t, http.MethodPost, "/api/novels/"+novelID+"/chapters", gin.H{"title": "一", "content": "春眠不觉晓"})

	for i := 0; i < 2; i++ {
		code, body := s.do(t, http.MethodPost, "/api/novels/"+novelID+"/recalculate", nil)
		require.Equal(t, http.StatusOK, code)
		assert.EqualValues(t, 5, field(t, body, "novel", "wordCount"))
		assert.EqualValues(t, 1, field(t, body, "novel", "chapterCount"))
	}

	code, _ := s.do(t, http.MethodPost, "/api/novels/missing/recalculate", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestNotFoundAndValidation(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodGet, "/api/novels/missing", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "未找到小说", body["error"])

	code, _ = s.do(t, http.MethodPost, "/api/novels/missing/chapters", gin.H{"title": "x"})
	assert.Equal(t, http.StatusNotFound, code)

	code, body = s.do(t, http.MethodPost, "/api/novels", gin.H{"title": "  "})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "小说标题不能为空", body["error"])

	code, body = s.do(t, http.MethodPost, "/api/characters", gin.H{"name": "沈砚"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "缺少 novelId 参数", body["error"])
}

func TestCatalogRoutes(t *testing.T) {
	s := newTestServer(t)
	_, body := s.do(t, http.MethodPost, "/api/novels", gin.H{"title": "设定集"})
	novelID := field(t, body, "novel", "id").(string)

	code, body := s.do(t, http.MethodPost, "/api/worlds", gin.H{"novelId": novelID, "title": "大陆", "content": "九州"})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "setting", field(t, body, "world", "type"))

	code, body = s.do(t, http.MethodPost, "/api/outlines", gin.H{"novelId": novelID, "title": "开端", "content": "相遇"})
	require.Equal(t, http.StatusCreated, code)
	assert.EqualValues(t, 1, field(t, body, "outline", "order"))

	code, body = s.do(t, http.MethodGet, "/api/outlines?novelId="+novelID+"&q=开端", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["outlines"], 1)

	_, body = s.do(t, http.MethodGet, "/api/novels/"+novelID, nil)
	assert.Equal(t, "大陆", field(t, body, "novel", "worldBuilding", "title"))
}

func TestLegacySaveIsGone(t *testing.T) {
	s := newTestServer(t)
	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut} {
		code, body := s.do(t, method, "/api/novel/save", nil)
		assert.Equal(t, http.StatusGone, code)
		assert.Equal(t, "API 已废弃，请使用新的 /api/novels 接口。", body["error"])
	}
}

func TestContinueWritingRoute(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodPost, "/api/ai/continue-writing", gin.H{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "现有内容不能为空", body["error"])
	assert.Empty(t, s.model.Calls())

	s.model.Reply = "雪落无声。"
	code, body = s.do(t, http.MethodPost, "/api/ai/continue-writing", gin.H{"content": "夜色渐深。", "temperature": 0.5})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "雪落无声。", body["content"])
	assert.EqualValues(t, 5, body["wordCount"])
}

func TestReviewRouteParseFailure(t *testing.T) {
	s := newTestServer(t)
	s.model.Reply = "not json"

	code, body := s.do(t, http.MethodPost, "/api/ai/review", gin.H{"content": "正文"})
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "审稿失败，请稍后重试", body["error"])
	assert.NotEmpty(t, body["details"])
}

func TestStreamContinueWriting(t *testing.T) {
	s := newTestServer(t)
	s.model.Chunks = []string{"风", "起了"}

	req := httptest.NewRequest(http.MethodPost, "/api/ai/continue-writing/stream", bytes.NewBufferString(`{"content":"开头"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	out := w.Body.String()
	assert.Contains(t, out, "event:content")
	assert.Contains(t, out, `"chunk":"起了"`)
	assert.Contains(t, out, "event:done")
	assert.Contains(t, out, `"wordCount":3`)
}

func TestStreamContinueWritingBlankReply(t *testing.T) {
	s := newTestServer(t)
	s.model.Chunks = []string{"", "   ", "\n"}

	req := httptest.NewRequest(http.MethodPost, "/api/ai/continue-writing/stream", bytes.NewBufferString(`{"content":"开头"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	out := w.Body.String()
	assert.Contains(t, out, "event:error")
	assert.Contains(t, out, "续写失败，请稍后重试")
	assert.NotContains(t, out, "event:done")
}

func TestHealthRoutes(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "disabled", field(t, body, "checks", "postgres", "status"))

	code, body = s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}
