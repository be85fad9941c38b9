package repository

import (
	"github.com/elisiyan/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository 用户资料数据访问接口
type ProfileRepository interface {
	GetByUserID(userID uint) (*models.Profile, error)
	Create(profile *models.Profile) error
	Update(profile *models.Profile) error
	WithTx(tx *gorm.DB) ProfileRepository
}

// GormProfileRepository GORM 实现
type GormProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 创建用户资料仓库
func NewProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProfileRepository) WithTx(tx *gorm.DB) ProfileRepository {
	if tx == nil {
		return r
	}
	return &GormProfileRepository{db: tx}
}

// GetByUserID 获取用户资料
func (r *GormProfileRepository) GetByUserID(userID uint) (*models.Profile, error) {
	return firstOrNil[models.Profile](r.db.Where("user_id = ?", userID))
}

// Create 创建用户资料
func (r *GormProfileRepository) Create(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

// Update 更新用户资料
func (r *GormProfileRepository) Update(profile *models.Profile) error {
	return r.db.Save(profile).Error
}
