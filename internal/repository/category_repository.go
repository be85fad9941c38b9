package repository

import (
	"time"

	"github.com/elisiyan/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	List() ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	GetByName(name string) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
	CountChildren(id uint) (int64, error)
	CountItems(id uint) (int64, error)
	Count() (int64, error)
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// List 分类列表
func (r *GormCategoryRepository) List() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByID 根据 ID 获取分类
func (r *GormCategoryRepository) GetByID(id uint) (*models.Category, error) {
	return firstOrNil[models.Category](r.db, id)
}

// GetByName 根据名称获取分类（忽略大小写）
func (r *GormCategoryRepository) GetByName(name string) (*models.Category, error) {
	return firstOrNil[models.Category](r.db.Where(equalFold("name", name)))
}

// Create 创建分类
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Omit("Parent").Create(category).Error
}

// Update 更新分类
func (r *GormCategoryRepository) Update(category *models.Category) error {
	category.UpdatedAt = time.Now()
	updates := map[string]interface{}{
		"name":       category.Name,
		"parent_id":  gorm.Expr("NULL"),
		"updated_at": category.UpdatedAt,
	}
	if category.ParentID != nil {
		updates["parent_id"] = *category.ParentID
	}
	return r.db.Model(&models.Category{}).Where("id = ?", category.ID).Updates(updates).Error
}

// Delete 删除分类
func (r *GormCategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}

// CountChildren 统计直接子分类数量
func (r *GormCategoryRepository) CountChildren(id uint) (int64, error) {
	return countOf(r.db.Model(&models.Category{}).Where("parent_id = ?", id))
}

// CountItems 统计分类下的商品数量
func (r *GormCategoryRepository) CountItems(id uint) (int64, error) {
	return countOf(r.db.Model(&models.ClothingItem{}).Where("category_id = ?", id))
}

// Count 分类总数
func (r *GormCategoryRepository) Count() (int64, error) {
	return countOf(r.db.Model(&models.Category{}))
}
