package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/bookstore/internal/apperr"
	"github.com/blues/bookstore/internal/logger"
	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Code:    code,
		Message: message,
	})
}

// FailWithError 业务错误按错误码翻译为HTTP响应；意外错误记日志并返回500
func FailWithError(c *gin.Context, err error) {
	if e := apperr.From(err); e != nil {
		ErrorResponse(c, apperr.HTTPStatus(e.Code), string(e.Code), e.Message)
		return
	}
	logger.Error("unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	ErrorResponse(c, http.StatusInternalServerError, string(apperr.CodeInternal), "服务器内部错误")
}

// parsePage 解析分页参数
func parsePage(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

// parseID 解析路径中的数字ID
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", "无效的"+name)
		return 0, false
	}
	return id, true
}
