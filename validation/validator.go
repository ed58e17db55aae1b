// Package validation 提供配置校验用的小型校验函数，失败时返回 ErrCodeValidation 错误
package validation

import (
	"fmt"
	"strings"

	"jpqlkit/errors"
)

// ValidateRequired 验证必填字段
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewValidationError(
			fmt.Sprintf("%s不能为空", fieldName))
	}
	return nil
}

// ValidateNonNegative 验证非负整数
func ValidateNonNegative(value int, fieldName string) error {
	if value < 0 {
		return errors.NewValidationError(
			fmt.Sprintf("%s不能为负数（当前%d）", fieldName, value))
	}
	return nil
}

// ValidateEnum 验证枚举值（大小写不敏感）
func ValidateEnum(value, fieldName string, validValues []string) error {
	for _, valid := range validValues {
		if strings.EqualFold(strings.TrimSpace(value), valid) {
			return nil
		}
	}
	return errors.NewValidationError(
		fmt.Sprintf("%s的值无效，必须是以下之一: %v（当前%q）", fieldName, validValues, value))
}

// First 依次执行校验，返回第一个错误
func First(checks ...error) error {
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}
