package repository

import (
	"github.com/elisiyan/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WishlistRepository 心愿单数据访问接口
type WishlistRepository interface {
	Create(entry *models.Wishlist) error
	GetByID(id uint) (*models.Wishlist, error)
	DeleteByUserAndItem(userID, itemID uint) (int64, error)
	ListByUser(userID uint) ([]models.Wishlist, error)
	CountByUserAndItem(userID, itemID uint) (int64, error)
}

// GormWishlistRepository GORM 实现
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建心愿单仓库
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// Create 加入心愿单
func (r *GormWishlistRepository) Create(entry *models.Wishlist) error {
	return r.db.Omit(clause.Associations).Create(entry).Error
}

// GetByID 根据 ID 获取心愿单记录（含用户与商品）
func (r *GormWishlistRepository) GetByID(id uint) (*models.Wishlist, error) {
	return firstOrNil[models.Wishlist](r.db.Preload("User").Preload("ClothingItem.Category"), id)
}

// DeleteByUserAndItem 移出心愿单，返回删除行数
func (r *GormWishlistRepository) DeleteByUserAndItem(userID, itemID uint) (int64, error) {
	result := r.db.Where("user_id = ? AND clothing_item_id = ?", userID, itemID).Delete(&models.Wishlist{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ListByUser 用户心愿单（最近加入的在前）
func (r *GormWishlistRepository) ListByUser(userID uint) ([]models.Wishlist, error) {
	var entries []models.Wishlist
	if err := r.db.Preload("User").Preload("ClothingItem.Category").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CountByUserAndItem 统计用户心愿单中指定商品的记录数
func (r *GormWishlistRepository) CountByUserAndItem(userID, itemID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Wishlist{}).
		Where("user_id = ? AND clothing_item_id = ?", userID, itemID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
