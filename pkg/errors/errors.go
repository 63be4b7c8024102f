package errors

import (
	"errors"
	"fmt"
)

// Kind 业务错误分类，决定对外暴露的 HTTP 状态
type Kind int

const (
	KindValidation      Kind = iota + 1 // 输入非法或违反状态规则
	KindAuthorization                   // 操作者不是资源所有者 / 非目标方
	KindNotFound                        // 引用的 ID 不存在
	KindConflict                        // 重复或并发冲突
	KindUnauthenticated                 // 身份无效
)

// String 返回分类名称（用于日志）
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// AppError 结构化业务错误
// Code 为模块错误码（与 API 文档约定一致），Message 为可读提示
type AppError struct {
	Kind    Kind
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// New 创建业务错误
func New(kind Kind, code int, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

// Validation 校验类错误
func Validation(code int, message string) *AppError {
	return New(KindValidation, code, message)
}

// Authorization 权限类错误
func Authorization(code int, message string) *AppError {
	return New(KindAuthorization, code, message)
}

// NotFound 资源不存在
func NotFound(code int, message string) *AppError {
	return New(KindNotFound, code, message)
}

// Conflict 冲突类错误
func Conflict(code int, message string) *AppError {
	return New(KindConflict, code, message)
}

// Unauthenticated 认证类错误
func Unauthenticated(code int, message string) *AppError {
	return New(KindUnauthenticated, code, message)
}

// Wrap 在业务错误上附加上下文，errors.Is / errors.As 仍可识别
func Wrap(base *AppError, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", base, fmt.Sprintf(format, args...))
}

// As 提取错误链中的 AppError
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf 返回错误分类，非业务错误返回 0
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return 0
}

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = Conflict(10009, "数据已被其他操作修改，请刷新后重试")
