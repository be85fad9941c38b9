package models

import "time"

// Profile 用户资料（与用户一对一）
type Profile struct {
	ID         uint      `gorm:"primarykey" json:"id"`                         // 主键
	UserID     uint      `gorm:"uniqueIndex;not null" json:"user_id"`          // 用户ID
	MobileNo   string    `gorm:"type:varchar(12);default:''" json:"mobile_no"` // 手机号
	BuyHistory string    `gorm:"type:text" json:"buy_history"`                 // 购买记录（自由文本）
	CreatedAt  time.Time `json:"created_at"`                                   // 创建时间
	UpdatedAt  time.Time `json:"updated_at"`                                   // 更新时间
}

// TableName 指定表名
func (Profile) TableName() string {
	return "profiles"
}
