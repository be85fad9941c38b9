package admin

import (
	"github.com/elisiyan/internal/constants"
	"github.com/elisiyan/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetAuthzPolicies 导出当前授权策略表与角色继承关系
func (h *Handler) GetAuthzPolicies(c *gin.Context) {
	policies, links, err := h.AuthzService.ListPolicies()
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"role":     c.GetString(constants.ContextKeyUserRole),
		"policies": policies,
		"roles":    links,
	})
}
