package repository

import (
	"strings"

	"github.com/elisiyan/internal/constants"
	"github.com/elisiyan/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClothingItemRepository 商品数据访问接口
type ClothingItemRepository interface {
	List(filter ClothingItemListFilter) ([]models.ClothingItem, int64, error)
	GetByID(id uint) (*models.ClothingItem, error)
	Create(item *models.ClothingItem) error
	Update(item *models.ClothingItem) error
	Delete(id uint) error
	Count() (int64, error)
}

// GormClothingItemRepository GORM 实现
type GormClothingItemRepository struct {
	db *gorm.DB
}

// NewClothingItemRepository 创建商品仓库
func NewClothingItemRepository(db *gorm.DB) *GormClothingItemRepository {
	return &GormClothingItemRepository{db: db}
}

// List 商品列表
// 排序键相同时按 id 升序，保证结果顺序稳定
func (r *GormClothingItemRepository) List(filter ClothingItemListFilter) ([]models.ClothingItem, int64, error) {
	query := r.db.Model(&models.ClothingItem{})

	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Where(containsAny(r.db, name, "clothing_items.name"))
	}
	if filter.Size != "" {
		query = query.Where("clothing_items.size = ?", filter.Size)
	}
	if filter.Color != "" {
		query = query.Where("clothing_items.color = ?", filter.Color)
	}
	if filter.CategoryID != 0 {
		query = query.Where("clothing_items.category_id = ?", filter.CategoryID)
	}
	if filter.PriceMin != nil {
		query = query.Where("clothing_items.price >= ?", filter.PriceMin.StringFixed(2))
	}
	if filter.PriceMax != nil {
		query = query.Where("clothing_items.price <= ?", filter.PriceMax.StringFixed(2))
	}

	items, total, err := countAndFind[models.ClothingItem](
		query,
		filter.Page,
		filter.PageSize,
		clothingItemOrder(filter.SortBy),
		"Category",
	)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func clothingItemOrder(sortBy string) string {
	switch sortBy {
	case constants.SortByPopularity:
		return "clothing_items.popularity DESC, clothing_items.id ASC"
	default:
		return "clothing_items.price ASC, clothing_items.id ASC"
	}
}

// GetByID 根据 ID 获取商品（含分类）
func (r *GormClothingItemRepository) GetByID(id uint) (*models.ClothingItem, error) {
	return firstOrNil[models.ClothingItem](r.db.Preload("Category"), id)
}

// Create 创建商品
func (r *GormClothingItemRepository) Create(item *models.ClothingItem) error {
	return r.db.Omit(clause.Associations).Create(item).Error
}

// Update 更新商品
func (r *GormClothingItemRepository) Update(item *models.ClothingItem) error {
	return r.db.Omit(clause.Associations).Save(item).Error
}

// Delete 删除商品及其评价、心愿单记录
func (r *GormClothingItemRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("clothing_item_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("clothing_item_id = ?", id).Delete(&models.Wishlist{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ClothingItem{}, id).Error
	})
}

// Count 商品总数
func (r *GormClothingItemRepository) Count() (int64, error) {
	return countOf(r.db.Model(&models.ClothingItem{}))
}
