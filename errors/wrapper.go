package errors

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"jpqlkit/logging"
)

// Wrap 包装错误，添加错误码和上下文信息
func Wrap(ctx context.Context, err error, code ErrorCode, msg string) error {
	if err == nil {
		return nil
	}

	_, file, line, _ := runtime.Caller(1)
	wrapped := WrapError(err, code, msg)

	logging.GetLogger().Debug(ctx, fmt.Sprintf("错误包装: %s (位置: %s:%d)", msg, file, line))

	return wrapped
}

// WrapWithLog 包装错误并记录警告日志
func WrapWithLog(ctx context.Context, err error, code ErrorCode, msg string, fields ...logging.Field) error {
	if err == nil {
		return nil
	}

	_, file, line, _ := runtime.Caller(1)
	wrapped := WrapError(err, code, msg)

	allFields := append([]logging.Field{
		logging.Error(err),
		logging.String("error_code", string(code)),
		logging.String("location", fmt.Sprintf("%s:%d", file, line)),
	}, fields...)

	logging.GetLogger().Warn(ctx, msg, allFields...)

	return wrapped
}

// WrapDatabaseError 包装数据库错误
//
// 已经带错误码的错误（例如构建阶段的参数数量不匹配）原样返回，
// 其余错误统一归类为 ErrCodeDatabase 并记录警告日志。
func WrapDatabaseError(ctx context.Context, err error, operation string) error {
	if err == nil {
		return nil
	}

	if _, ok := err.(IError); ok {
		return err
	}

	return WrapWithLog(ctx, err, ErrCodeDatabase,
		fmt.Sprintf("数据库操作失败: %s", operation),
		logging.String("operation", operation),
	)
}

// New 创建新错误，消息末尾附带调用位置
func New(code ErrorCode, msg string) error {
	return newAt(2, code, msg)
}

// NewValidationError 创建验证错误，调用位置指向校验函数本身
func NewValidationError(msg string) error {
	return newAt(2, ErrCodeValidation, msg)
}

func newAt(skip int, code ErrorCode, msg string) error {
	_, file, line, _ := runtime.Caller(skip)
	return NewError(code, fmt.Sprintf("%s (位置: %s:%d)", msg, filepath.Base(file), line))
}
