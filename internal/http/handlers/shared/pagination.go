package shared

import (
	"strconv"
	"strings"

	"github.com/elisiyan/internal/http/response"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// NormalizePagination 归一化分页参数。
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// ParsePagination 解析 query 中的 page/page_size，非法值按默认处理。
func ParsePagination(rawPage, rawPageSize string) (int, int) {
	page, _ := strconv.Atoi(strings.TrimSpace(rawPage))
	pageSize, _ := strconv.Atoi(strings.TrimSpace(rawPageSize))
	return NormalizePagination(page, pageSize)
}

// BuildPagination 构造分页信息，pageSize 为 0 表示未分页。
func BuildPagination(page, pageSize int, total int64) response.Pagination {
	if pageSize <= 0 {
		return response.Pagination{Page: 1, PageSize: int(total), Total: total, TotalPage: 1}
	}
	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	return response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}
