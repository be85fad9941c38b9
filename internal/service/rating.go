package service

import (
	"github.com/elisiyan/internal/repository"

	"github.com/shopspring/decimal"
)

// RatingSummary 单个商品的评分汇总
type RatingSummary struct {
	Average decimal.Decimal
	Count   int
}

// AverageRating 计算评分均值，保留 2 位小数，无评分时为 0
func AverageRating(ratings []int) decimal.Decimal {
	if len(ratings) == 0 {
		return decimal.Zero
	}
	total := int64(0)
	for _, rating := range ratings {
		total += int64(rating)
	}
	return decimal.NewFromInt(total).
		Div(decimal.NewFromInt(int64(len(ratings)))).
		Round(2)
}

// RatingAggregator 读取时实时汇总评分，不做缓存
type RatingAggregator struct {
	reviewRepo repository.ReviewRepository
}

// NewRatingAggregator 创建评分汇总器
func NewRatingAggregator(reviewRepo repository.ReviewRepository) *RatingAggregator {
	return &RatingAggregator{reviewRepo: reviewRepo}
}

// ForItems 一次查询汇总多个商品的评分，未出现的商品汇总为零值
func (a *RatingAggregator) ForItems(itemIDs []uint) (map[uint]RatingSummary, error) {
	result := make(map[uint]RatingSummary, len(itemIDs))
	if len(itemIDs) == 0 {
		return result, nil
	}
	rows, err := a.reviewRepo.ListRatingsByItemIDs(uniqueIDs(itemIDs))
	if err != nil {
		return nil, err
	}
	grouped := make(map[uint][]int, len(itemIDs))
	for _, row := range rows {
		grouped[row.ClothingItemID] = append(grouped[row.ClothingItemID], row.Rating)
	}
	for _, id := range itemIDs {
		ratings := grouped[id]
		result[id] = RatingSummary{
			Average: AverageRating(ratings),
			Count:   len(ratings),
		}
	}
	return result, nil
}

// ForItem 汇总单个商品的评分
func (a *RatingAggregator) ForItem(itemID uint) (RatingSummary, error) {
	summaries, err := a.ForItems([]uint{itemID})
	if err != nil {
		return RatingSummary{}, err
	}
	return summaries[itemID], nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	result := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
