package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound 记录不存在或不属于当前用户
	ErrNotFound = errors.New("记录不存在")
	// ErrValidation 参数校验失败
	ErrValidation = errors.New("参数错误")
	// ErrConsistency 余额回滚时找不到原始状态，继续写入会导致余额漂移
	ErrConsistency = errors.New("账户余额一致性错误")
)

// ValidationError 带具体原因的参数错误，errors.Is(err, ErrValidation) 为真
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func consistency(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConsistency, fmt.Sprintf(format, args...))
}

// notFound 将 gorm 的 ErrRecordNotFound 统一为 ErrNotFound
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s%w", what, ErrNotFound)
	}
	return fmt.Errorf("查询%s失败: %w", what, err)
}
