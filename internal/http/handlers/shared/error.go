package shared

import (
	"strings"

	"github.com/elisiyan/internal/constants"
	"github.com/elisiyan/internal/http/response"
	"github.com/elisiyan/internal/i18n"
	"github.com/elisiyan/internal/logger"
	"github.com/elisiyan/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get(constants.ContextKeyRequest); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	RespondAppError(c, response.NewAppError(code, key, err))
}

// RespondErrorWithMsg 返回已渲染文案的错误响应。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	RespondAppError(c, response.NewAppError(code, "", err).WithMessage(msg))
}

// RespondAppError 渲染 AppError；5xx 记 error 日志，其余带原始错误的记 warn
func RespondAppError(c *gin.Context, appErr *response.AppError) {
	msg := appErr.Message
	if msg == "" {
		msg = Msg(c, appErr.Key)
	}
	if appErr.Err != nil {
		fields := []interface{}{
			"code", appErr.Code,
			"key", appErr.Key,
			"path", c.FullPath(),
			"error", appErr.Err,
		}
		if appErr.Server() {
			RequestLog(c).Errorw("handler_error", fields...)
		} else {
			RequestLog(c).Warnw("handler_rejected", fields...)
		}
	}
	response.Error(c, appErr.Code, msg)
}

// Msg 返回当前请求语言的提示文案，尺码与颜色错误附带全部可选值
func Msg(c *gin.Context, key string) string {
	locale := i18n.ResolveLocale(c)
	switch key {
	case keySizeInvalid:
		return i18n.Sprintf(locale, key, joinChoices(models.ClothingSizes()))
	case keyColorInvalid:
		return i18n.Sprintf(locale, key, joinChoices(models.ClothingColors()))
	default:
		return i18n.T(locale, key)
	}
}

func joinChoices[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
