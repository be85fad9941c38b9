package repository

import (
	"strings"
	"time"

	"github.com/elisiyan/internal/models"

	"gorm.io/gorm"
)

// LoginAuditRepository 登录审计数据访问接口
type LoginAuditRepository interface {
	Create(audit *models.LoginAudit) error
	List(filter LoginAuditListFilter) ([]models.LoginAudit, int64, error)
	DeleteBefore(before time.Time) (int64, error)
}

// GormLoginAuditRepository GORM 实现
type GormLoginAuditRepository struct {
	db *gorm.DB
}

// NewLoginAuditRepository 创建登录审计仓库
func NewLoginAuditRepository(db *gorm.DB) *GormLoginAuditRepository {
	return &GormLoginAuditRepository{db: db}
}

// Create 写入一条审计记录
func (r *GormLoginAuditRepository) Create(audit *models.LoginAudit) error {
	if audit == nil {
		return nil
	}
	return r.db.Create(audit).Error
}

// List 按用户与结果查询，最新记录在前
func (r *GormLoginAuditRepository) List(filter LoginAuditListFilter) ([]models.LoginAudit, int64, error) {
	query := r.db.Model(&models.LoginAudit{})
	identities := normalizeIdentities(filter.Identities)
	switch {
	case filter.UserID != 0 && len(identities) > 0:
		query = query.Where("(user_id = ? OR LOWER(username) IN ?)", filter.UserID, identities)
	case filter.UserID != 0:
		query = query.Where("user_id = ?", filter.UserID)
	case len(identities) > 0:
		query = query.Where("LOWER(username) IN ?", identities)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	return countAndFind[models.LoginAudit](query, filter.Page, filter.PageSize, "id desc")
}

// DeleteBefore 清理早于指定时间的记录
func (r *GormLoginAuditRepository) DeleteBefore(before time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", before).Delete(&models.LoginAudit{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func normalizeIdentities(values []string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		if text := strings.ToLower(strings.TrimSpace(value)); text != "" {
			result = append(result, text)
		}
	}
	return result
}
