package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/elisiyan/internal/http/handlers/shared"
	"github.com/elisiyan/internal/http/response"
	"github.com/elisiyan/internal/repository"
	"github.com/elisiyan/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateUserFlagsRequest 管理员更新用户标记请求
type UpdateUserFlagsRequest struct {
	IsActive    *bool `json:"is_active"`
	IsStaff     *bool `json:"is_staff"`
	IsSuperuser *bool `json:"is_superuser"`
}

// GetAdminUsers 用户列表
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c.DefaultQuery("page", "1"), c.DefaultQuery("page_size", "20"))
	filter := repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
	}
	var ok bool
	if filter.IsActive, ok = parseOptionalBool(c, "is_active"); !ok {
		return
	}
	if filter.IsStaff, ok = parseOptionalBool(c, "is_staff"); !ok {
		return
	}

	users, total, err := h.UserAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, handlershared.PresentUsers(users), handlershared.BuildPagination(page, pageSize, total))
}

// GetAdminUser 用户详情
func (h *Handler) GetAdminUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	user, err := h.UserAdminService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, response.CodeInternal, "error.user_fetch_failed")
		return
	}
	response.Success(c, handlershared.PresentUser(*user))
}

// UpdateAdminUser 更新用户激活状态与角色标记
func (h *Handler) UpdateAdminUser(c *gin.Context) {
	operatorID, ok := getOperatorID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateUserFlagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.UserAdminService.UpdateFlags(operatorID, id, service.UserFlagsInput{
		IsActive:    req.IsActive,
		IsStaff:     req.IsStaff,
		IsSuperuser: req.IsSuperuser,
	})
	if err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, response.CodeInternal, "error.user_update_failed")
		return
	}
	response.Success(c, handlershared.PresentUser(*user))
}

// DeleteAdminUser 删除用户（资料、评价、心愿单与激活令牌一并删除）
func (h *Handler) DeleteAdminUser(c *gin.Context) {
	operatorID, ok := getOperatorID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.UserAdminService.Delete(operatorID, id); err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, response.CodeInternal, "error.user_delete_failed")
		return
	}
	response.SuccessWithMsg(c, handlershared.Msg(c, "msg.deleted"), nil)
}

// GetAdminUserLoginAudits 用户登录记录
func (h *Handler) GetAdminUserLoginAudits(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	user, err := h.UserAdminService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, response.CodeInternal, "error.login_audit_fetch_failed")
		return
	}
	page, pageSize := handlershared.ParsePagination(c.DefaultQuery("page", "1"), c.DefaultQuery("page_size", "20"))
	audits, total, err := h.LoginAuditService.List(repository.LoginAuditListFilter{
		Page:       page,
		PageSize:   pageSize,
		UserID:     user.ID,
		Identities: []string{user.Username, user.Email},
		Status:     c.Query("status"),
	})
	if err != nil {
		respondWithMappedError(c, err, loginAuditErrorRules, response.CodeInternal, "error.login_audit_fetch_failed")
		return
	}
	response.SuccessWithPage(c, handlershared.PresentLoginAudits(audits), handlershared.BuildPagination(page, pageSize, total))
}

func parseOptionalBool(c *gin.Context, key string) (*bool, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return nil, false
	}
	return &value, true
}
