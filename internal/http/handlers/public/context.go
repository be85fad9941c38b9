package public

import (
	handlershared "github.com/elisiyan/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetUserID(c)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	return handlershared.ParseIDParam(c, name)
}
