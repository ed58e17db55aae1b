package jpql

import (
	"fmt"

	"jpqlkit/errors"
)

// ErrParameterCountMismatch 占位符数量与参数数量不一致。
//
// Build 返回的错误与其按错误码匹配，可直接用于 errors.Is。
var ErrParameterCountMismatch = errors.NewError(errors.ErrCodeParameterCountMismatch, "参数数量不匹配")

// IsParameterCountMismatch 判断 err 是否为参数数量不匹配错误
func IsParameterCountMismatch(err error) bool {
	return errors.IsErrorCode(err, errors.ErrCodeParameterCountMismatch)
}

func validate(markers, params int) error {
	if markers == params {
		return nil
	}
	return errors.NewError(errors.ErrCodeParameterCountMismatch,
		fmt.Sprintf("参数数量不匹配: 占位符 %d 个，参数 %d 个", markers, params)).
		WithDetails(map[string]any{
			"markers": markers,
			"params":  params,
		})
}
