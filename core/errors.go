package core

import "errors"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）、模块（Module）和消息（Message）
//   - 支持 errors.Is（按 Module + Code 匹配）与 errors.Unwrap（Cause）
//
// 使用场景：
//   - Power 错误：INVALID_PARAMETER, FAILED_CONVERGENCE
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED, INVALID_INPUT
//   - Pipeline 错误：INVALID_INPUT
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "INVALID_PARAMETER"）
	Message string // 错误消息
	Module  string // 模块名称（如 "power", "store"）
	Cause   error  // 底层错误，可为 nil
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is 让 errors.Is(err, ErrInvalidParameter) 这类哨兵比较按 Module + Code 生效，忽略 Message。
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Module == t.Module && e.Code == t.Code
}

// Wrap 返回携带 cause 的副本。
func (e *DomainError) Wrap(cause error) *DomainError {
	cp := *e
	cp.Cause = cause
	return &cp
}

// IsDomainError 检查错误链中是否存在 DomainError
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
}

// GetDomainError 获取错误链中的第一个 DomainError，如果没有则返回 nil
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
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound          = "NOT_FOUND"          // 资源不存在
	ErrorCodeNotSupported      = "NOT_SUPPORTED"      // 操作不支持
	ErrorCodeUnavailable       = "UNAVAILABLE"        // 服务不可用
	ErrorCodeInvalidInput      = "INVALID_INPUT"      // 输入无效（数据无法解码等）
	ErrorCodeInternalError     = "INTERNAL_ERROR"     // 内部错误
	ErrorCodeInvalidParameter  = "INVALID_PARAMETER"  // 参数越界（阻尼系数、迭代参数、偏好取值）
	ErrorCodeFailedConvergence = "FAILED_CONVERGENCE" // 迭代中出现非有限值
)

// 模块名称常量
const (
	ModuleStore    = "store"    // 存储模块
	ModulePower    = "power"    // 排名引擎
	ModulePipeline = "pipeline" // Pipeline / Node
	ModuleService  = "service"  // 服务模块
)

// 排名引擎的哨兵错误，配合 errors.Is 使用。
var (
	ErrInvalidParameter  = NewDomainError(ModulePower, ErrorCodeInvalidParameter, "power: invalid parameter")
	ErrFailedConvergence = NewDomainError(ModulePower, ErrorCodeFailedConvergence, "power: failed convergence")
)

// NewInvalidParameter 创建带具体描述的 INVALID_PARAMETER 错误。
func NewInvalidParameter(message string) *DomainError {
	return NewDomainError(ModulePower, ErrorCodeInvalidParameter, "power: invalid parameter: "+message)
}

// NewFailedConvergence 创建带具体描述的 FAILED_CONVERGENCE 错误。
func NewFailedConvergence(message string) *DomainError {
	return NewDomainError(ModulePower, ErrorCodeFailedConvergence, "power: failed convergence: "+message)
}

// IsInvalidParameter 检查错误是否为 INVALID_PARAMETER
func IsInvalidParameter(err error) bool {
	return hasCode(err, ErrorCodeInvalidParameter)
}

// IsFailedConvergence 检查错误是否为 FAILED_CONVERGENCE
func IsFailedConvergence(err error) bool {
	return hasCode(err, ErrorCodeFailedConvergence)
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	return hasCode(err, ErrorCodeNotFound)
}

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool {
	return hasCode(err, ErrorCodeNotSupported)
}

// IsUnavailable 检查错误是否为 UNAVAILABLE
func IsUnavailable(err error) bool {
	return hasCode(err, ErrorCodeUnavailable)
}

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}
