package public

import (
	handlershared "github.com/elisiyan/internal/http/handlers/shared"
	"github.com/elisiyan/internal/http/response"
	"github.com/elisiyan/internal/models"

	"github.com/gin-gonic/gin"
)

// WishlistItemRequest 心愿单操作请求
type WishlistItemRequest struct {
	ClothingItem uint `json:"clothing_item" binding:"required"`
}

// AddToWishlist 加入心愿单
func (h *Handler) AddToWishlist(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req WishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	entry, err := h.WishlistService.Add(userID, req.ClothingItem)
	if err != nil {
		respondWishlistError(c, err)
		return
	}
	records, err := h.presentWishlist([]models.Wishlist{*entry})
	if err != nil {
		respondError(c, response.CodeInternal, "error.wishlist_fetch_failed", err)
		return
	}
	response.Created(c, handlershared.Msg(c, "msg.wishlist_added"), records[0])
}

// RemoveFromWishlist 移出心愿单
func (h *Handler) RemoveFromWishlist(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req WishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.WishlistService.Remove(userID, req.ClothingItem); err != nil {
		respondWishlistError(c, err)
		return
	}
	response.SuccessWithMsg(c, handlershared.Msg(c, "msg.wishlist_removed"), gin.H{"clothing_item": req.ClothingItem})
}

// ViewWishlist 当前用户心愿单
func (h *Handler) ViewWishlist(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	entries, err := h.WishlistService.List(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.wishlist_fetch_failed", err)
		return
	}
	records, err := h.presentWishlist(entries)
	if err != nil {
		respondError(c, response.CodeInternal, "error.wishlist_fetch_failed", err)
		return
	}
	response.Success(c, records)
}

func (h *Handler) presentWishlist(entries []models.Wishlist) ([]handlershared.WishlistRecord, error) {
	records := make([]handlershared.WishlistRecord, 0, len(entries))
	if len(entries) == 0 {
		return records, nil
	}
	ids := make([]uint, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ClothingItemID)
	}
	ratings, err := h.RatingAggregator.ForItems(ids)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		records = append(records, handlershared.PresentWishlist(entry, ratings))
	}
	return records, nil
}
