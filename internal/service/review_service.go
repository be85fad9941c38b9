package service

import (
	"strings"

	"github.com/elisiyan/internal/models"
	"github.com/elisiyan/internal/repository"
)

const (
	minReviewRating = 1
	maxReviewRating = 5
)

// ReviewService 商品评价服务
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	itemRepo   repository.ClothingItemRepository
}

// NewReviewService 创建评价服务
func NewReviewService(reviewRepo repository.ReviewRepository, itemRepo repository.ClothingItemRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		itemRepo:   itemRepo,
	}
}

// CreateReviewInput 创建评价输入
type CreateReviewInput struct {
	UserID         uint
	ClothingItemID uint
	Rating         int
	Comment        string
}

// Create 创建评价，同一用户对同一商品只能评价一次
// 先查重走快速路径，最终以唯一索引为准
func (s *ReviewService) Create(input CreateReviewInput) (*models.Review, error) {
	if input.UserID == 0 {
		return nil, ErrUserNotFound
	}
	if input.Rating < minReviewRating || input.Rating > maxReviewRating {
		return nil, ErrReviewRatingInvalid
	}
	comment := strings.TrimSpace(input.Comment)
	if comment == "" {
		return nil, ErrReviewCommentRequired
	}
	if input.ClothingItemID == 0 {
		return nil, ErrClothingItemNotFound
	}
	item, err := s.itemRepo.GetByID(input.ClothingItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrClothingItemNotFound
	}

	count, err := s.reviewRepo.CountByItemAndUser(item.ID, input.UserID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrReviewExists
	}

	review := &models.Review{
		ClothingItemID: item.ID,
		UserID:         input.UserID,
		Comment:        comment,
		Rating:         input.Rating,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrReviewExists
		}
		return nil, err
	}
	return s.Get(review.ID)
}

// Get 获取评价详情
func (s *ReviewService) Get(id uint) (*models.Review, error) {
	if id == 0 {
		return nil, ErrReviewNotFound
	}
	review, err := s.reviewRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

// List 分页获取评价列表
func (s *ReviewService) List(filter repository.ReviewListFilter) ([]models.Review, int64, error) {
	return s.reviewRepo.List(filter)
}

// ListByItem 获取商品下的全部评价，商品不存在时返回 NotFound
func (s *ReviewService) ListByItem(itemID uint) ([]models.Review, error) {
	if itemID == 0 {
		return nil, ErrClothingItemNotFound
	}
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrClothingItemNotFound
	}
	return s.reviewRepo.ListByItem(item.ID)
}
