package shared

import (
	"net/http"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "novel-studio-api/pkg/errors"
)

type sample struct {
	Title   string
	Content *string
}

func (s sample) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Title, NotBlank("标题不能为空")),
		validation.Field(&s.Content, NotBlank("内容不能为空")),
	)
}

func TestValidateReturnsFirstFieldMessage(t *testing.T) {
	blank := "  "
	err := Validate(sample{Title: " ", Content: &blank})
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Equal(t, "内容不能为空", appErr.Message)
	assert.Contains(t, appErr.Detail, "标题不能为空")
}

func TestValidateNilPointerIsOptional(t *testing.T) {
	assert.NoError(t, Validate(sample{Title: "ok"}))
}

func TestTrimPtr(t *testing.T) {
	assert.Nil(t, TrimPtr(nil))
	s := "  x "
	assert.Equal(t, "x", *TrimPtr(&s))
}
