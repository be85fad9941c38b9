package repository

import (
	"time"

	"github.com/elisiyan/internal/models"

	"gorm.io/gorm"
)

// ActivationTokenRepository 激活令牌数据访问接口
type ActivationTokenRepository interface {
	Create(token *models.ActivationToken) error
	GetByHash(userID uint, tokenHash string) (*models.ActivationToken, error)
	MarkUsed(id uint, usedAt time.Time) (bool, error)
	DeleteStale(before time.Time) (int64, error)
	WithTx(tx *gorm.DB) ActivationTokenRepository
}

// GormActivationTokenRepository GORM 实现
type GormActivationTokenRepository struct {
	db *gorm.DB
}

// NewActivationTokenRepository 创建激活令牌仓库
func NewActivationTokenRepository(db *gorm.DB) *GormActivationTokenRepository {
	return &GormActivationTokenRepository{db: db}
}

// WithTx 绑定事务
func (r *GormActivationTokenRepository) WithTx(tx *gorm.DB) ActivationTokenRepository {
	if tx == nil {
		return r
	}
	return &GormActivationTokenRepository{db: tx}
}

// Create 创建激活令牌
func (r *GormActivationTokenRepository) Create(token *models.ActivationToken) error {
	return r.db.Create(token).Error
}

// GetByHash 根据用户与令牌哈希获取记录
func (r *GormActivationTokenRepository) GetByHash(userID uint, tokenHash string) (*models.ActivationToken, error) {
	return firstOrNil[models.ActivationToken](r.db.Where("user_id = ? AND token_hash = ?", userID, tokenHash))
}

// MarkUsed 标记令牌已使用，仅在未使用时生效
func (r *GormActivationTokenRepository) MarkUsed(id uint, usedAt time.Time) (bool, error) {
	result := r.db.Model(&models.ActivationToken{}).
		Where("id = ? AND used_at IS NULL", id).
		Update("used_at", usedAt)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteStale 清理已过期或已使用的令牌
func (r *GormActivationTokenRepository) DeleteStale(before time.Time) (int64, error) {
	result := r.db.Where("expires_at < ? OR used_at IS NOT NULL", before).Delete(&models.ActivationToken{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
