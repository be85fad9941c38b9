package cache

import (
	"context"
	"time"

	"github.com/elisiyan/internal/models"
)

const categoryListKey = "catalog:categories"

// CategoryList 读取分类列表快照，未命中时由 load 从数据库加载
func CategoryList(ctx context.Context, ttl time.Duration, load func() ([]models.Category, error)) ([]models.Category, error) {
	return Remember(ctx, categoryListKey, ttl, load)
}

// InvalidateCategoryList 分类变更后删除快照
func InvalidateCategoryList(ctx context.Context) error {
	return Del(ctx, categoryListKey)
}
