package models

import "time"

// Category 分类表（通过 parent_id 自关联形成树）
type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                      // 主键
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`        // 名称（唯一）
	ParentID  *uint     `gorm:"index" json:"parent_id"`                                    // 父分类ID（为空表示根分类）
	Parent    *Category `gorm:"foreignKey:ParentID;constraint:OnDelete:RESTRICT" json:"-"` // 父分类
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                                // 更新时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
