package repository

import (
	"github.com/elisiyan/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 后台概览聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview() (DashboardOverviewRow, error)
	GetMostReviewedItems(limit int) ([]DashboardItemRankingRow, error)
	GetMostWishlistedItems(limit int) ([]DashboardItemRankingRow, error)
}

// DashboardOverviewRow 后台概览原始统计结果
type DashboardOverviewRow struct {
	ClothingItems   int64
	Categories      int64
	Reviews         int64
	WishlistEntries int64
	Users           int64
	ActiveUsers     int64
	StaffUsers      int64
}

// DashboardItemRankingRow 商品排行统计
type DashboardItemRankingRow struct {
	ClothingItemID uint
	Name           string
	Total          int64
}

// GormDashboardRepository GORM 实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建概览仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview 获取总览统计
func (r *GormDashboardRepository) GetOverview() (DashboardOverviewRow, error) {
	result := DashboardOverviewRow{}

	counts := []struct {
		model interface{}
		where string
		args  []interface{}
		dest  *int64
	}{
		{model: &models.ClothingItem{}, dest: &result.ClothingItems},
		{model: &models.Category{}, dest: &result.Categories},
		{model: &models.Review{}, dest: &result.Reviews},
		{model: &models.Wishlist{}, dest: &result.WishlistEntries},
		{model: &models.User{}, dest: &result.Users},
		{model: &models.User{}, where: "is_active = ?", args: []interface{}{true}, dest: &result.ActiveUsers},
		{model: &models.User{}, where: "is_staff = ? OR is_superuser = ?", args: []interface{}{true, true}, dest: &result.StaffUsers},
	}
	for _, item := range counts {
		query := r.db.Model(item.model)
		if item.where != "" {
			query = query.Where(item.where, item.args...)
		}
		if err := query.Count(item.dest).Error; err != nil {
			return result, err
		}
	}
	return result, nil
}

// GetMostReviewedItems 评价数最多的商品
func (r *GormDashboardRepository) GetMostReviewedItems(limit int) ([]DashboardItemRankingRow, error) {
	return r.rankItems("reviews", limit)
}

// GetMostWishlistedItems 被加入心愿单次数最多的商品
func (r *GormDashboardRepository) GetMostWishlistedItems(limit int) ([]DashboardItemRankingRow, error) {
	return r.rankItems("wishlists", limit)
}

func (r *GormDashboardRepository) rankItems(table string, limit int) ([]DashboardItemRankingRow, error) {
	if limit <= 0 {
		limit = 5
	}
	rows := make([]DashboardItemRankingRow, 0)
	if err := r.db.Table(table).
		Select("clothing_items.id AS clothing_item_id, clothing_items.name AS name, COUNT(*) AS total").
		Joins("JOIN clothing_items ON clothing_items.id = " + table + ".clothing_item_id").
		Group("clothing_items.id, clothing_items.name").
		Order("total DESC, clothing_items.id ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
