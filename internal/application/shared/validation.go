// Package shared 提供应用层共用的辅助函数
package shared

import (
	stderrors "errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	apperrors "novel-studio-api/pkg/errors"
)

// Validate 执行校验并把结果转换为 400 错误，消息取第一个失败字段
func Validate(v validation.Validatable) error {
	err := v.Validate()
	if err == nil {
		return nil
	}
	return FromValidation(err)
}

// FromValidation 把 ozzo-validation 错误转换为 AppError
func FromValidation(err error) error {
	var verrs validation.Errors
	if !stderrors.As(err, &verrs) {
		var internal validation.InternalError
		if stderrors.As(err, &internal) {
			return apperrors.Wrap(err, apperrors.CodeInternalError, "参数校验异常")
		}
		return apperrors.Validation(err.Error())
	}

	fields := make([]string, 0, len(verrs))
	for field := range verrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msg := "invalid parameter"
	if len(fields) > 0 {
		msg = firstMessage(verrs[fields[0]])
	}
	return apperrors.Validation(msg).WithDetail(verrs.Error())
}

func firstMessage(err error) string {
	var nested validation.Errors
	if stderrors.As(err, &nested) {
		fields := make([]string, 0, len(nested))
		for f := range nested {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		if len(fields) > 0 {
			return firstMessage(nested[fields[0]])
		}
	}
	return err.Error()
}

// NotBlank 要求字符串去除空白后非空，nil 指针视为未提供
func NotBlank(message string) validation.Rule {
	return validation.By(func(value any) error {
		var s string
		switch v := value.(type) {
		case string:
			s = v
		case *string:
			if v == nil {
				return nil
			}
			s = *v
		default:
			return nil
		}
		if strings.TrimSpace(s) == "" {
			return validation.NewError("validation_not_blank", message)
		}
		return nil
	})
}

// TrimPtr 去除指针字符串两端空白
func TrimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
