package admin

import (
	"strconv"

	"github.com/elisiyan/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetAdminInterface 后台总览（商品、分类、评价、用户数量及排行）
func (h *Handler) GetAdminInterface(c *gin.Context) {
	forceRefresh, _ := strconv.ParseBool(c.DefaultQuery("refresh", "false"))
	overview, err := h.DashboardService.GetOverview(c.Request.Context(), forceRefresh)
	if err != nil {
		respondError(c, response.CodeInternal, "error.dashboard_fetch_failed", err)
		return
	}
	response.Success(c, overview)
}
