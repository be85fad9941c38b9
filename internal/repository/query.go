package repository

import (
	"errors"
	"math"

	"gorm.io/gorm"
)

// firstOrNil 取第一条记录，不存在时返回 nil, nil
func firstOrNil[T any](query *gorm.DB, conds ...interface{}) (*T, error) {
	var row T
	err := query.First(&row, conds...).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return &row, nil
}

func countOf(query *gorm.DB) (int64, error) {
	var n int64
	err := query.Count(&n).Error
	return n, err
}

// pageWindow 把页码换算为 limit/offset，pageSize <= 0 表示不分页；偏移量不会溢出
func pageWindow(page, pageSize int) (limit, offset int, paged bool) {
	if pageSize <= 0 {
		return 0, 0, false
	}
	skipped := max(page, 1) - 1
	if skipped > math.MaxInt/pageSize {
		// 页码过大时偏移量封顶，结果为空页
		return pageSize, math.MaxInt, true
	}
	return pageSize, skipped * pageSize, true
}

// countAndFind 先计数再取当前页；预加载挂在计数之后，count 不会触发关联查询
func countAndFind[T any](query *gorm.DB, page, pageSize int, order string, preloads ...string) ([]T, int64, error) {
	total, err := countOf(query)
	if err != nil {
		return nil, 0, err
	}
	rows := make([]T, 0)
	if total == 0 {
		return rows, 0, nil
	}
	if limit, offset, ok := pageWindow(page, pageSize); ok {
		query = query.Limit(limit).Offset(offset)
	}
	if order != "" {
		query = query.Order(order)
	}
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
