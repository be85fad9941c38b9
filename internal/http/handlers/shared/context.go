package shared

import (
	"strconv"
	"strings"

	"github.com/elisiyan/internal/constants"
	"github.com/elisiyan/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetUserID 读取鉴权中间件写入的当前用户 ID，缺失时直接返回 401
func GetUserID(c *gin.Context) (uint, bool) {
	raw, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	id, ok := raw.(uint)
	if !ok {
		RespondError(c, response.CodeInternal, "error.user_id_type_invalid", nil)
		return 0, false
	}
	if id == 0 {
		RespondError(c, response.CodeUnauthorized, "error.user_id_invalid", nil)
		return 0, false
	}
	return id, true
}

// ParseIDParam 解析路径中的正整数 ID，失败时直接返回 400
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 0)
	if err != nil || id == 0 {
		RespondError(c, response.CodeBadRequest, "error.id_invalid", nil)
		return 0, false
	}
	return uint(id), true
}
