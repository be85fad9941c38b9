package models

import "time"

// Review 商品评价表（同一用户对同一商品仅允许一条）
type Review struct {
	ID             uint         `gorm:"primarykey" json:"id"`                                                      // 主键
	ClothingItemID uint         `gorm:"not null;uniqueIndex:idx_review_item_user,priority:1" json:"clothing_item"` // 商品ID
	UserID         uint         `gorm:"not null;uniqueIndex:idx_review_item_user,priority:2;index" json:"user"`    // 用户ID
	Comment        string       `gorm:"type:text;not null" json:"comment"`                                         // 评价内容
	Rating         int          `gorm:"not null" json:"rating"`                                                    // 评分（1-5）
	CreatedAt      time.Time    `gorm:"index" json:"created_at"`                                                   // 创建时间
	ClothingItem   ClothingItem `gorm:"foreignKey:ClothingItemID;constraint:OnDelete:CASCADE" json:"-"`            // 关联商品
	User           User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`                    // 关联用户
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
