package core

import (
	"errors"
	"fmt"
	"strings"
)

// DomainError 是领域层的统一错误类型。
//
// 所有校验类错误（权重格式、缺列、非正权重和等）都用此类型表达，
// 上层通过 IsXXX 检查函数区分错误种类，而不是比较错误字符串。
//
// Fields 记录与错误相关的字段名（如缺失的列），顺序即发现顺序。
type DomainError struct {
	Code    string   // 错误代码（如 "SCHEMA_ERROR"）
	Message string   // 错误消息
	Module  string   // 模块名称（如 "weight", "rank"）
	Fields  []string // 相关字段
}

func (e *DomainError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + ": [" + strings.Join(e.Fields, ", ") + "]"
}

// IsDomainError 检查错误链中是否包含 DomainError
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
}

// GetDomainError 获取错误链中的 DomainError，如果没有则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string, fields ...string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
		Fields:  fields,
	}
}

// Errorf 以格式化消息创建领域错误
func Errorf(module, code, format string, args ...any) *DomainError {
	return NewDomainError(module, code, fmt.Sprintf(format, args...))
}

// 错误代码常量
const (
	ErrorCodeNotFound       = "NOT_FOUND"        // 资源不存在
	ErrorCodeNotSupported   = "NOT_SUPPORTED"    // 操作不支持
	ErrorCodeInvalidInput   = "INVALID_INPUT"    // 输入/配置无效
	ErrorCodeFormat         = "FORMAT_ERROR"     // 权重描述语法错误
	ErrorCodeMissingField   = "MISSING_FIELD"    // 必需的分数字段没有对应权重
	ErrorCodeNonPositiveSum = "NON_POSITIVE_SUM" // 权重和 <= 0
	ErrorCodeSchema         = "SCHEMA_ERROR"     // 输入表缺少必需列
	ErrorCodeFieldNotFound  = "FIELD_NOT_FOUND"  // 归一化的列不存在
	ErrorCodeInvalidValue   = "INVALID_VALUE"    // 分数单元格不是有限数值
)

// 模块名称常量
const (
	ModuleWeight  = "weight"
	ModuleFeature = "feature"
	ModuleRank    = "rank"
	ModuleInput   = "input"
	ModuleStore   = "store"
	ModuleConfig  = "config"
)

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool { return hasCode(err, ErrorCodeNotFound) }

// IsInvalidInput 检查错误是否为 INVALID_INPUT
func IsInvalidInput(err error) bool { return hasCode(err, ErrorCodeInvalidInput) }

// IsFormatError 检查错误是否为权重描述语法错误
func IsFormatError(err error) bool { return hasCode(err, ErrorCodeFormat) }

// IsMissingField 检查错误是否为分数字段缺少权重
func IsMissingField(err error) bool { return hasCode(err, ErrorCodeMissingField) }

// IsNonPositiveSum 检查错误是否为权重和不为正
func IsNonPositiveSum(err error) bool { return hasCode(err, ErrorCodeNonPositiveSum) }

// IsSchemaError 检查错误是否为输入表缺列
func IsSchemaError(err error) bool { return hasCode(err, ErrorCodeSchema) }

// IsFieldNotFound 检查错误是否为归一化列不存在
func IsFieldNotFound(err error) bool { return hasCode(err, ErrorCodeFieldNotFound) }

// IsInvalidValue 检查错误是否为单元格数值非法
func IsInvalidValue(err error) bool { return hasCode(err, ErrorCodeInvalidValue) }
