package service

import (
	"context"
	"time"

	"github.com/elisiyan/internal/cache"
	"github.com/elisiyan/internal/logger"
	"github.com/elisiyan/internal/repository"
)

const (
	dashboardCacheTTL     = 45 * time.Second
	dashboardCacheKey     = "dashboard:overview"
	dashboardRankingLimit = 5
)

// DashboardService 后台概览服务
// 说明：聚合后台首页的计数与商品排行。
type DashboardService struct {
	repo repository.DashboardRepository
}

// NewDashboardService 创建后台概览服务
func NewDashboardService(repo repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// DashboardOverview 后台概览
type DashboardOverview struct {
	Counts         DashboardCounts     `json:"counts"`
	MostReviewed   []DashboardItemRank `json:"most_reviewed"`
	MostWishlisted []DashboardItemRank `json:"most_wishlisted"`
	GeneratedAt    time.Time           `json:"generated_at"`
}

// DashboardCounts 后台计数
type DashboardCounts struct {
	ClothingItems   int64 `json:"clothing_items"`
	Categories      int64 `json:"categories"`
	Reviews         int64 `json:"reviews"`
	WishlistEntries int64 `json:"wishlist_entries"`
	Users           int64 `json:"users"`
	ActiveUsers     int64 `json:"active_users"`
	StaffUsers      int64 `json:"staff_users"`
}

// DashboardItemRank 商品排行项
type DashboardItemRank struct {
	ClothingItemID uint   `json:"clothing_item"`
	Name           string `json:"name"`
	Total          int64  `json:"total"`
}

// GetOverview 获取后台概览，forceRefresh 为 true 时跳过缓存
func (s *DashboardService) GetOverview(ctx context.Context, forceRefresh bool) (*DashboardOverview, error) {
	if !forceRefresh {
		var cached DashboardOverview
		hit, err := cache.GetJSON(ctx, dashboardCacheKey, &cached)
		if err != nil {
			logger.Warnw("dashboard_cache_get_failed", "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	row, err := s.repo.GetOverview()
	if err != nil {
		return nil, err
	}
	reviewed, err := s.repo.GetMostReviewedItems(dashboardRankingLimit)
	if err != nil {
		return nil, err
	}
	wishlisted, err := s.repo.GetMostWishlistedItems(dashboardRankingLimit)
	if err != nil {
		return nil, err
	}

	overview := &DashboardOverview{
		Counts: DashboardCounts{
			ClothingItems:   row.ClothingItems,
			Categories:      row.Categories,
			Reviews:         row.Reviews,
			WishlistEntries: row.WishlistEntries,
			Users:           row.Users,
			ActiveUsers:     row.ActiveUsers,
			StaffUsers:      row.StaffUsers,
		},
		MostReviewed:   toDashboardRanks(reviewed),
		MostWishlisted: toDashboardRanks(wishlisted),
		GeneratedAt:    time.Now(),
	}
	if err := cache.SetJSON(ctx, dashboardCacheKey, overview, dashboardCacheTTL); err != nil {
		logger.Warnw("dashboard_cache_set_failed", "error", err)
	}
	return overview, nil
}

func toDashboardRanks(rows []repository.DashboardItemRankingRow) []DashboardItemRank {
	result := make([]DashboardItemRank, 0, len(rows))
	for _, row := range rows {
		result = append(result, DashboardItemRank{
			ClothingItemID: row.ClothingItemID,
			Name:           row.Name,
			Total:          row.Total,
		})
	}
	return result
}
