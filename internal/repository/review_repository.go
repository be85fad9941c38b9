package repository

import (
	"github.com/elisiyan/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewRepository 评价数据访问接口
type ReviewRepository interface {
	Create(review *models.Review) error
	GetByID(id uint) (*models.Review, error)
	ListByItem(itemID uint) ([]models.Review, error)
	List(filter ReviewListFilter) ([]models.Review, int64, error)
	ListRatingsByItemIDs(itemIDs []uint) ([]ItemRating, error)
	CountByItemAndUser(itemID, userID uint) (int64, error)
	Count() (int64, error)
}

// ItemRating 商品单条评分
type ItemRating struct {
	ClothingItemID uint
	Rating         int
}

// GormReviewRepository GORM 实现
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓库
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Create 创建评价
func (r *GormReviewRepository) Create(review *models.Review) error {
	return r.db.Omit(clause.Associations).Create(review).Error
}

// GetByID 根据 ID 获取评价（含评价人）
func (r *GormReviewRepository) GetByID(id uint) (*models.Review, error) {
	return firstOrNil[models.Review](r.db.Preload("User"), id)
}

// ListByItem 获取商品的全部评价
func (r *GormReviewRepository) ListByItem(itemID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Preload("User").
		Where("clothing_item_id = ?", itemID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// List 评价列表
func (r *GormReviewRepository) List(filter ReviewListFilter) ([]models.Review, int64, error) {
	query := r.db.Model(&models.Review{})
	if filter.ClothingItemID != 0 {
		query = query.Where("clothing_item_id = ?", filter.ClothingItemID)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	return countAndFind[models.Review](query, filter.Page, filter.PageSize, "id DESC", "User")
}

// ListRatingsByItemIDs 读取商品当前的全部评分
func (r *GormReviewRepository) ListRatingsByItemIDs(itemIDs []uint) ([]ItemRating, error) {
	if len(itemIDs) == 0 {
		return []ItemRating{}, nil
	}
	var rows []ItemRating
	if err := r.db.Model(&models.Review{}).
		Select("clothing_item_id, rating").
		Where("clothing_item_id IN ?", itemIDs).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountByItemAndUser 统计用户对商品的评价数量
func (r *GormReviewRepository) CountByItemAndUser(itemID, userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Review{}).
		Where("clothing_item_id = ? AND user_id = ?", itemID, userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Count 评价总数
func (r *GormReviewRepository) Count() (int64, error) {
	return countOf(r.db.Model(&models.Review{}))
}
