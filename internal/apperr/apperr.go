package apperr

import (
	"errors"
	"net/http"
)

// Code 业务错误码
type Code string

const (
	CodeValidationFailed Code = "VALIDATION_FAILED" // 参数校验失败
	CodeUnauthorized     Code = "UNAUTHORIZED"      // 未认证
	CodeForbidden        Code = "FORBIDDEN"         // 无权限
	CodeNotFound         Code = "NOT_FOUND"         // 资源不存在
	CodeConflict         Code = "CONFLICT"          // 状态冲突
	CodeInternal         Code = "INTERNAL_ERROR"    // 内部错误
)

// Error 业务错误，携带稳定的错误码和面向用户的消息
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// New 创建业务错误
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// From 提取业务错误；非业务错误返回nil
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// Is 判断错误是否为指定错误码的业务错误
func Is(err error, code Code) bool {
	e := From(err)
	return e != nil && e.Code == code
}

// HTTPStatus 错误码对应的HTTP状态码
func HTTPStatus(code Code) int {
	switch code {
	case CodeValidationFailed:
		return http.StatusUnprocessableEntity
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
