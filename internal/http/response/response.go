package response

import (
	"net/http"

	"github.com/elisiyan/internal/constants"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	StatusCode int         `json:"status_code"` // 0 成功，否则与 HTTP 状态码一致
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data"`
}

// PageResponse 分页响应结构
type PageResponse struct {
	Response
	Pagination Pagination `json:"pagination"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

func write(c *gin.Context, httpStatus, code int, msg string, data interface{}) {
	c.JSON(httpStatus, Response{StatusCode: code, Msg: msg, Data: data})
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	write(c, http.StatusOK, CodeOK, "success", data)
}

// SuccessWithMsg 成功响应（自定义消息）
func SuccessWithMsg(c *gin.Context, msg string, data interface{}) {
	write(c, http.StatusOK, CodeOK, msg, data)
}

// Created 创建成功（HTTP 201）
func Created(c *gin.Context, msg string, data interface{}) {
	if msg == "" {
		msg = "created"
	}
	write(c, http.StatusCreated, CodeOK, msg, data)
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, PageResponse{
		Response:   Response{StatusCode: CodeOK, Msg: "success", Data: data},
		Pagination: pagination,
	})
}

// Error 错误响应，data 中带上 request_id 便于排查
func Error(c *gin.Context, code int, msg string) {
	write(c, HTTPStatus(code), code, msg, requestIDPayload(c))
}

// NotFound 404
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}

func requestIDPayload(c *gin.Context) interface{} {
	if c == nil {
		return nil
	}
	if id := c.GetString(constants.ContextKeyRequest); id != "" {
		return gin.H{"request_id": id}
	}
	return nil
}
