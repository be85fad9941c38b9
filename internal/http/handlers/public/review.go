package public

import (
	"strconv"
	"strings"

	handlershared "github.com/elisiyan/internal/http/handlers/shared"
	"github.com/elisiyan/internal/http/response"
	"github.com/elisiyan/internal/repository"
	"github.com/elisiyan/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateReviewRequest 创建评价请求
type CreateReviewRequest struct {
	ClothingItem uint   `json:"clothing_item" binding:"required"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}

// CreateReview 当前用户对商品发表评价
func (h *Handler) CreateReview(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	review, err := h.ReviewService.Create(service.CreateReviewInput{
		UserID:         userID,
		ClothingItemID: req.ClothingItem,
		Rating:         req.Rating,
		Comment:        req.Comment,
	})
	if err != nil {
		respondReviewCreateError(c, err)
		return
	}
	response.Created(c, handlershared.Msg(c, "msg.review_created"), handlershared.PresentReview(*review))
}

// ListReviews 评价列表，可按 clothing_item 过滤
func (h *Handler) ListReviews(c *gin.Context) {
	filter := repository.ReviewListFilter{}
	if raw := strings.TrimSpace(c.Query("clothing_item")); raw != "" {
		itemID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || itemID == 0 {
			respondError(c, response.CodeBadRequest, "error.id_invalid", nil)
			return
		}
		filter.ClothingItemID = uint(itemID)
	}
	paginated := strings.TrimSpace(c.Query("page_size")) != ""
	if paginated {
		filter.Page, filter.PageSize = handlershared.ParsePagination(c.Query("page"), c.Query("page_size"))
	}

	reviews, total, err := h.ReviewService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.review_fetch_failed", err)
		return
	}
	records := handlershared.PresentReviews(reviews)
	if paginated {
		response.SuccessWithPage(c, records, handlershared.BuildPagination(filter.Page, filter.PageSize, total))
		return
	}
	response.Success(c, records)
}

// GetReview 评价详情
func (h *Handler) GetReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	review, err := h.ReviewService.Get(id)
	if err != nil {
		respondReviewFetchError(c, err)
		return
	}
	response.Success(c, handlershared.PresentReview(*review))
}

// ListItemReviews 指定商品的全部评价
func (h *Handler) ListItemReviews(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reviews, err := h.ReviewService.ListByItem(id)
	if err != nil {
		respondReviewFetchError(c, err)
		return
	}
	response.Success(c, handlershared.PresentReviews(reviews))
}
