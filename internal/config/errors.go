package config

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials 表示 RestURL 或 RestToken 缺失，调用方据此走 fail-fast 分支。
var ErrMissingCredentials = errors.New("missing remote store credentials")

// FieldError 提供字段路径与错误原因，便于 CLI 向用户反馈。
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// newFieldError 创建包含字段路径与原因的 error，便于 CLI 定位。
func newFieldError(field, reason string) error {
	return FieldError{Field: field, Reason: reason}
}

// missingCredential 同时携带 ErrMissingCredentials 与具体字段，errors.Is/As 均可识别。
func missingCredential(field, env string) error {
	return fmt.Errorf("%w: %w", ErrMissingCredentials, newFieldError(field, env+" 不能为空"))
}

// skipField 拼接 Skip 列表下标形式的字段路径，例如 Skip[2]。
func skipField(idx int) string {
	return fmt.Sprintf("Skip[%d]", idx)
}
