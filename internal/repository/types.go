package repository

import (
	"github.com/elisiyan/internal/models"

	"github.com/shopspring/decimal"
)

// ClothingItemListFilter 查询商品列表的过滤条件
// 各条件相互独立，同时给出时按 AND 组合
type ClothingItemListFilter struct {
	Page       int
	PageSize   int
	Name       string
	Size       models.ClothingSize
	Color      models.ClothingColor
	CategoryID uint
	PriceMin   *decimal.Decimal
	PriceMax   *decimal.Decimal
	SortBy     string
}

// ReviewListFilter 查询评价列表的过滤条件
type ReviewListFilter struct {
	Page           int
	PageSize       int
	ClothingItemID uint
	UserID         uint
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	IsActive *bool
	IsStaff  *bool
}

// LoginAuditListFilter 查询登录审计的过滤条件
// UserID 与 Identities 同时给出时按 OR 组合，用于匹配登录失败时未关联到用户的记录
type LoginAuditListFilter struct {
	Page       int
	PageSize   int
	UserID     uint
	Identities []string
	Status     string
}
