package models

import "time"

// ActivationToken 注册激活令牌（仅保存哈希）
type ActivationToken struct {
	ID        uint       `gorm:"primarykey" json:"id"`                           // 主键
	UserID    uint       `gorm:"index;not null" json:"user_id"`                  // 关联用户ID
	TokenHash string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"` // 令牌 SHA-256
	ExpiresAt time.Time  `gorm:"index" json:"expires_at"`                        // 过期时间
	UsedAt    *time.Time `gorm:"index" json:"used_at"`                           // 使用时间
	CreatedAt time.Time  `gorm:"index" json:"created_at"`                        // 创建时间
}

// TableName 指定表名
func (ActivationToken) TableName() string {
	return "activation_tokens"
}
