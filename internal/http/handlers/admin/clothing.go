package admin

import (
	handlershared "github.com/elisiyan/internal/http/handlers/shared"
	"github.com/elisiyan/internal/http/response"
	"github.com/elisiyan/internal/models"
	"github.com/elisiyan/internal/service"

	"github.com/gin-gonic/gin"
)

// ClothingItemRequest 商品创建/更新请求
type ClothingItemRequest struct {
	Name        string       `json:"name" binding:"required"`
	Description string       `json:"description"`
	Price       models.Money `json:"price"`
	Popularity  int          `json:"popularity"`
	Image       string       `json:"image"`
	Category    uint         `json:"category"`
	Size        string       `json:"size" binding:"clothing_size"`
	Color       string       `json:"color" binding:"clothing_color"`
}

func (r ClothingItemRequest) toInput() service.ClothingItemInput {
	return service.ClothingItemInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Popularity:  r.Popularity,
		Image:       r.Image,
		CategoryID:  r.Category,
		Size:        r.Size,
		Color:       r.Color,
	}
}

// GetAdminClothingItems 后台商品列表，查询参数与前台一致
func (h *Handler) GetAdminClothingItems(c *gin.Context) {
	var query service.CatalogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if query.PageSize == "" {
		query.PageSize = "20"
	}
	items, filter, total, err := h.CatalogService.ListItems(query)
	if err != nil {
		respondWithMappedError(c, err, catalogQueryErrorRules, response.CodeInternal, "error.catalog_fetch_failed")
		return
	}
	response.SuccessWithPage(c, handlershared.PresentCatalogItems(items), handlershared.BuildPagination(filter.Page, filter.PageSize, total))
}

// GetAdminClothingItem 后台商品详情
func (h *Handler) GetAdminClothingItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	item, err := h.CatalogService.GetItem(id)
	if err != nil {
		respondWithMappedError(c, err, clothingItemErrorRules, response.CodeInternal, "error.catalog_fetch_failed")
		return
	}
	response.Success(c, handlershared.PresentClothingItem(item.Item, item.Rating))
}

// CreateClothingItem 创建商品
func (h *Handler) CreateClothingItem(c *gin.Context) {
	var req ClothingItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, handlershared.BindingErrorKey(err), err)
		return
	}
	item, err := h.ClothingItemService.Create(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, clothingItemErrorRules, response.CodeInternal, "error.clothing_item_save_failed")
		return
	}
	response.Created(c, handlershared.Msg(c, "msg.created"), handlershared.PresentClothingItem(*item, service.RatingSummary{}))
}

// UpdateClothingItem 更新商品
func (h *Handler) UpdateClothingItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req ClothingItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, handlershared.BindingErrorKey(err), err)
		return
	}
	item, err := h.ClothingItemService.Update(id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, clothingItemErrorRules, response.CodeInternal, "error.clothing_item_save_failed")
		return
	}
	rating, err := h.RatingAggregator.ForItem(item.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.catalog_fetch_failed", err)
		return
	}
	response.Success(c, handlershared.PresentClothingItem(*item, rating))
}

// DeleteClothingItem 删除商品（评价与心愿单记录级联删除）
func (h *Handler) DeleteClothingItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ClothingItemService.Delete(id); err != nil {
		respondWithMappedError(c, err, clothingItemErrorRules, response.CodeInternal, "error.clothing_item_delete_failed")
		return
	}
	response.SuccessWithMsg(c, handlershared.Msg(c, "msg.deleted"), nil)
}
