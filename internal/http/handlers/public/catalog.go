package public

import (
	handlershared "github.com/elisiyan/internal/http/handlers/shared"
	"github.com/elisiyan/internal/http/response"
	"github.com/elisiyan/internal/service"

	"github.com/gin-gonic/gin"
)

// ListClothingItems 商品列表（过滤、排序、可选分页）
func (h *Handler) ListClothingItems(c *gin.Context) {
	var query service.CatalogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	items, filter, total, err := h.CatalogService.ListItems(query)
	if err != nil {
		respondCatalogQueryError(c, err)
		return
	}

	records := handlershared.PresentCatalogItems(items)
	if filter.PageSize > 0 {
		response.SuccessWithPage(c, records, handlershared.BuildPagination(filter.Page, filter.PageSize, total))
		return
	}
	response.Success(c, records)
}

// GetClothingItem 商品详情（含平均评分）
func (h *Handler) GetClothingItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	item, err := h.CatalogService.GetItem(id)
	if err != nil {
		respondWithMappedError(c, err, clothingItemNotFoundRules, response.CodeInternal, "error.catalog_fetch_failed")
		return
	}
	response.Success(c, handlershared.PresentClothingItem(item.Item, item.Rating))
}

// ListCategories 分类平铺列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, handlershared.PresentCategories(categories))
}

// GetCategoryTree 分类树
func (h *Handler) GetCategoryTree(c *gin.Context) {
	nodes, err := h.CategoryService.Tree()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, handlershared.PresentCategoryTree(nodes))
}

// GetCategory 分类详情
func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	category, err := h.CategoryService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, categoryFetchErrorRules, response.CodeInternal, "error.category_fetch_failed")
		return
	}
	response.Success(c, handlershared.PresentCategory(*category))
}
