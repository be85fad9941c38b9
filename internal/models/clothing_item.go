package models

import (
	"strings"
	"time"

	"github.com/elisiyan/internal/constants"
)

// ClothingSize 商品尺码
type ClothingSize string

// ClothingColor 商品颜色
type ClothingColor string

var clothingSizes = []ClothingSize{
	constants.SizeS,
	constants.SizeM,
	constants.SizeL,
	constants.SizeXL,
	constants.SizeXXL,
}

var clothingColors = []ClothingColor{
	constants.ColorRed,
	constants.ColorBlue,
	constants.ColorBlack,
	constants.ColorWhite,
	constants.ColorGreen,
	constants.ColorYellow,
}

// ClothingSizes 全部可选尺码
func ClothingSizes() []ClothingSize {
	return append([]ClothingSize(nil), clothingSizes...)
}

// ClothingColors 全部可选颜色
func ClothingColors() []ClothingColor {
	return append([]ClothingColor(nil), clothingColors...)
}

// Valid 是否为合法尺码
func (s ClothingSize) Valid() bool {
	for _, item := range clothingSizes {
		if s == item {
			return true
		}
	}
	return false
}

// Valid 是否为合法颜色
func (c ClothingColor) Valid() bool {
	for _, item := range clothingColors {
		if c == item {
			return true
		}
	}
	return false
}

// ParseClothingSize 解析尺码（忽略大小写）
func ParseClothingSize(raw string) (ClothingSize, bool) {
	normalized := ClothingSize(strings.ToUpper(strings.TrimSpace(raw)))
	if !normalized.Valid() {
		return "", false
	}
	return normalized, true
}

// ParseClothingColor 解析颜色（忽略大小写）
func ParseClothingColor(raw string) (ClothingColor, bool) {
	text := strings.TrimSpace(raw)
	for _, item := range clothingColors {
		if strings.EqualFold(text, string(item)) {
			return item, true
		}
	}
	return "", false
}

// ClothingItem 商品表
type ClothingItem struct {
	ID          uint          `gorm:"primarykey" json:"id"`                                               // 主键
	Name        string        `gorm:"type:varchar(255);not null;index" json:"name"`                       // 名称
	Description string        `gorm:"type:text" json:"description"`                                       // 描述
	Price       Money         `gorm:"type:decimal(10,2);not null" json:"price"`                           // 价格
	Popularity  int           `gorm:"not null;default:0;index" json:"popularity"`                         // 热度
	Image       string        `gorm:"type:varchar(500)" json:"image"`                                     // 图片路径
	CategoryID  uint          `gorm:"not null;index" json:"category_id"`                                  // 分类ID
	Category    Category      `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"category"` // 分类
	Size        ClothingSize  `gorm:"type:varchar(8);not null;index" json:"size"`                         // 尺码
	Color       ClothingColor `gorm:"type:varchar(16);not null;index" json:"color"`                       // 颜色
	CreatedAt   time.Time     `gorm:"index" json:"created_at"`                                            // 创建时间
	UpdatedAt   time.Time     `json:"updated_at"`                                                         // 更新时间
}

// TableName 指定表名
func (ClothingItem) TableName() string {
	return "clothing_items"
}
