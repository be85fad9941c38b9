package response

import "net/http"

// 错误码与 HTTP 状态码一致，成功固定为 0
const (
	CodeOK              = 0
	CodeBadRequest      = http.StatusBadRequest
	CodeUnauthorized    = http.StatusUnauthorized
	CodeForbidden       = http.StatusForbidden
	CodeNotFound        = http.StatusNotFound
	CodeTooManyRequests = http.StatusTooManyRequests
	CodeInternal        = http.StatusInternalServerError
)

// HTTPStatus 业务错误码对应的 HTTP 状态码，非 4xx/5xx 的错误码按 500 处理
func HTTPStatus(code int) int {
	switch {
	case code == CodeOK:
		return http.StatusOK
	case code >= 400 && code < 600:
		return code
	default:
		return http.StatusInternalServerError
	}
}
