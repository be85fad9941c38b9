package admin

import (
	handlershared "github.com/elisiyan/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// getOperatorID 当前操作的后台用户
func getOperatorID(c *gin.Context) (uint, bool) {
	return handlershared.GetUserID(c)
}

func parseIDParam(c *gin.Context) (uint, bool) {
	return handlershared.ParseIDParam(c, "id")
}
