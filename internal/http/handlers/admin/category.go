package admin

import (
	handlershared "github.com/elisiyan/internal/http/handlers/shared"
	"github.com/elisiyan/internal/http/response"
	"github.com/elisiyan/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类创建/更新请求，parent_id 为空表示根分类
type CategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentID *uint  `json:"parent_id"`
}

// GetAdminCategories 后台分类列表
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, handlershared.PresentCategories(categories))
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Create(service.CategoryInput{Name: req.Name, ParentID: req.ParentID})
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "error.category_save_failed")
		return
	}
	response.Created(c, handlershared.Msg(c, "msg.created"), handlershared.PresentCategory(*category))
}

// UpdateCategory 更新分类名称与父分类，父分类变更会做环路检查
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Update(id, service.CategoryInput{Name: req.Name, ParentID: req.ParentID})
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "error.category_save_failed")
		return
	}
	response.Success(c, handlershared.PresentCategory(*category))
}

// DeleteCategory 删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(id); err != nil {
		respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "error.category_delete_failed")
		return
	}
	response.SuccessWithMsg(c, handlershared.Msg(c, "msg.deleted"), nil)
}
