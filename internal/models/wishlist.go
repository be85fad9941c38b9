package models

import "time"

// Wishlist 心愿单表（同一用户对同一商品仅允许一条）
type Wishlist struct {
	ID             uint         `gorm:"primarykey" json:"id"`                                                                 // 主键
	UserID         uint         `gorm:"not null;uniqueIndex:idx_wishlist_user_item,priority:1" json:"user_id"`                // 用户ID
	ClothingItemID uint         `gorm:"not null;uniqueIndex:idx_wishlist_user_item,priority:2;index" json:"clothing_item_id"` // 商品ID
	CreatedAt      time.Time    `gorm:"index" json:"created_at"`                                                              // 加入时间
	User           User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`                               // 关联用户
	ClothingItem   ClothingItem `gorm:"foreignKey:ClothingItemID;constraint:OnDelete:CASCADE" json:"-"`                       // 关联商品
}

// TableName 指定表名
func (Wishlist) TableName() string {
	return "wishlists"
}
