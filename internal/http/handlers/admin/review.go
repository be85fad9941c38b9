package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/elisiyan/internal/http/handlers/shared"
	"github.com/elisiyan/internal/http/response"
	"github.com/elisiyan/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetAdminReviews 后台评价列表，支持按商品与用户过滤
func (h *Handler) GetAdminReviews(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c.DefaultQuery("page", "1"), c.DefaultQuery("page_size", "20"))
	filter := repository.ReviewListFilter{Page: page, PageSize: pageSize}

	itemID, ok := parseOptionalID(c, "clothing_item")
	if !ok {
		return
	}
	userID, ok := parseOptionalID(c, "user")
	if !ok {
		return
	}
	filter.ClothingItemID = itemID
	filter.UserID = userID

	reviews, total, err := h.ReviewService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.review_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, handlershared.PresentReviews(reviews), handlershared.BuildPagination(page, pageSize, total))
}

func parseOptionalID(c *gin.Context, key string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.id_invalid", nil)
		return 0, false
	}
	return uint(id), true
}
