package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{CodeInvalidParam, http.StatusBadRequest},
		{CodeNovelNotFound, http.StatusNotFound},
		{CodeChapterNotFound, http.StatusNotFound},
		{CodeGone, http.StatusGone},
		{CodeParseFailed, http.StatusInternalServerError},
		{CodeDatabaseError, http.StatusInternalServerError},
		{CodeTooManyRequests, http.StatusTooManyRequests},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, New(tt.code, "x").HTTPStatus, string(tt.code))
	}
}

func TestWithErrorDoesNotMutateSentinel(t *testing.T) {
	wrapped := ErrNovelNotFound.WithError(stderrors.New("row missing"))

	assert.Nil(t, ErrNovelNotFound.Err)
	assert.Equal(t, "row missing", wrapped.Details())
	assert.True(t, stderrors.Is(wrapped, ErrNovelNotFound))
}

func TestAsAppErrorUnwrapsChain(t *testing.T) {
	err := fmt.Errorf("reorder: %w", Validation("章节列表包含无效 ID"))

	appErr := AsAppError(err)
	assert.Equal(t, CodeInvalidParam, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.True(t, IsAppError(err))

	unknown := AsAppError(stderrors.New("plain"))
	assert.Equal(t, CodeUnknown, unknown.Code)
	assert.Equal(t, http.StatusInternalServerError, unknown.HTTPStatus)
}
