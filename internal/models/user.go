package models

import (
	"strings"
	"time"

	"github.com/elisiyan/internal/constants"
)

// User 用户表
type User struct {
	ID              uint       `gorm:"primarykey" json:"id"`                                   // 主键
	Username        string     `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"` // 用户名
	Email           string     `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`    // 邮箱
	PasswordHash    string     `gorm:"not null" json:"-"`                                      // 密码哈希（不返回给前端）
	FirstName       string     `gorm:"type:varchar(150);default:''" json:"first_name"`         // 名
	LastName        string     `gorm:"type:varchar(150);default:''" json:"last_name"`          // 姓
	IsActive        bool       `gorm:"not null;default:false;index" json:"is_active"`          // 是否已激活
	IsStaff         bool       `gorm:"not null;default:false" json:"is_staff"`                 // 运营人员
	IsSuperuser     bool       `gorm:"not null;default:false" json:"is_superuser"`             // 超级管理员
	TokenVersion    uint64     `gorm:"not null;default:0" json:"-"`                            // Token 版本（用于全量失效）
	EmailVerifiedAt *time.Time `json:"email_verified_at"`                                      // 邮箱验证时间
	LastLoginAt     *time.Time `json:"last_login_at"`                                          // 最后登录时间
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt       time.Time  `gorm:"index" json:"updated_at"`                                // 更新时间
	Profile         *Profile   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// Role 由角色标记推导授权角色
func (u User) Role() string {
	return RoleFromFlags(u.IsStaff, u.IsSuperuser)
}

// DisplayName 展示名称，未填写姓名时回退为用户名
func (u User) DisplayName() string {
	full := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if full == "" {
		return u.Username
	}
	return full
}

// RoleFromFlags 角色标记到授权角色的唯一映射
func RoleFromFlags(isStaff, isSuperuser bool) string {
	switch {
	case isSuperuser:
		return constants.RoleAdmin
	case isStaff:
		return constants.RoleStaff
	default:
		return constants.RoleCustomer
	}
}
