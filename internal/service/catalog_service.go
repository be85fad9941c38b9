package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/elisiyan/internal/constants"
	"github.com/elisiyan/internal/models"
	"github.com/elisiyan/internal/repository"

	"github.com/shopspring/decimal"
)

const defaultMaxPageSize = 100

// CatalogItem 商品与实时评分汇总
type CatalogItem struct {
	Item   models.ClothingItem
	Rating RatingSummary
}

// CatalogQuery 商品列表的原始查询参数
// 字段保持字符串形式，由 ParseCatalogQuery 统一校验
type CatalogQuery struct {
	Name     string `form:"name"`
	Size     string `form:"size"`
	Color    string `form:"color"`
	Category string `form:"category"`
	PriceMin string `form:"price_min"`
	PriceMax string `form:"price_max"`
	SortBy   string `form:"sort_by"`
	Page     string `form:"page"`
	PageSize string `form:"page_size"`
}

// CatalogService 商品目录查询服务
type CatalogService struct {
	itemRepo    repository.ClothingItemRepository
	ratings     *RatingAggregator
	maxPageSize int
}

// NewCatalogService 创建商品目录查询服务
func NewCatalogService(itemRepo repository.ClothingItemRepository, ratings *RatingAggregator, maxPageSize int) *CatalogService {
	if maxPageSize <= 0 {
		maxPageSize = defaultMaxPageSize
	}
	return &CatalogService{
		itemRepo:    itemRepo,
		ratings:     ratings,
		maxPageSize: maxPageSize,
	}
}

// ParseCatalogQuery 将原始查询参数转换为仓储过滤条件
// 非法尺码与颜色视为未指定，其余非法值返回校验错误
func ParseCatalogQuery(query CatalogQuery, maxPageSize int) (repository.ClothingItemListFilter, error) {
	filter := repository.ClothingItemListFilter{
		Name: strings.TrimSpace(query.Name),
	}

	if size, ok := models.ParseClothingSize(query.Size); ok {
		filter.Size = size
	}
	if color, ok := models.ParseClothingColor(query.Color); ok {
		filter.Color = color
	}

	if raw := strings.TrimSpace(query.Category); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return filter, ErrCategoryFilterInvalid
		}
		filter.CategoryID = uint(id)
	}

	priceMin, err := parsePriceBound(query.PriceMin)
	if err != nil {
		return filter, err
	}
	priceMax, err := parsePriceBound(query.PriceMax)
	if err != nil {
		return filter, err
	}
	if priceMin != nil && priceMax != nil && priceMin.GreaterThan(*priceMax) {
		return filter, ErrPriceRangeInvalid
	}
	filter.PriceMin = priceMin
	filter.PriceMax = priceMax

	switch sortBy := strings.ToLower(strings.TrimSpace(query.SortBy)); sortBy {
	case "", constants.SortByPrice:
		filter.SortBy = constants.SortByPrice
	case constants.SortByPopularity:
		filter.SortBy = constants.SortByPopularity
	default:
		return filter, ErrSortByInvalid
	}

	page, pageSize, err := parsePagination(query.Page, query.PageSize, maxPageSize)
	if err != nil {
		return filter, err
	}
	filter.Page = page
	filter.PageSize = pageSize
	return filter, nil
}

// ListItems 按条件查询商品并附带评分汇总，无匹配时返回空列表
func (s *CatalogService) ListItems(query CatalogQuery) ([]CatalogItem, repository.ClothingItemListFilter, int64, error) {
	filter, err := ParseCatalogQuery(query, s.maxPageSize)
	if err != nil {
		return nil, filter, 0, err
	}
	items, total, err := s.itemRepo.List(filter)
	if err != nil {
		return nil, filter, 0, err
	}
	result, err := s.attachRatings(items)
	if err != nil {
		return nil, filter, 0, err
	}
	return result, filter, total, nil
}

// GetItem 获取商品详情与评分汇总
func (s *CatalogService) GetItem(id uint) (*CatalogItem, error) {
	if id == 0 {
		return nil, ErrClothingItemNotFound
	}
	item, err := s.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrClothingItemNotFound
	}
	summary, err := s.ratings.ForItem(item.ID)
	if err != nil {
		return nil, err
	}
	return &CatalogItem{Item: *item, Rating: summary}, nil
}

func (s *CatalogService) attachRatings(items []models.ClothingItem) ([]CatalogItem, error) {
	result := make([]CatalogItem, 0, len(items))
	if len(items) == 0 {
		return result, nil
	}
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	summaries, err := s.ratings.ForItems(ids)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		result = append(result, CatalogItem{Item: item, Rating: summaries[item.ID]})
	}
	return result, nil
}

func parsePriceBound(raw string) (*decimal.Decimal, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(text)
	if err != nil || value.IsNegative() {
		return nil, ErrPriceRangeInvalid
	}
	return &value, nil
}

// parsePagination page_size 缺省时不分页，返回 0
func parsePagination(rawPage, rawPageSize string, maxPageSize int) (int, int, error) {
	pageText := strings.TrimSpace(rawPage)
	sizeText := strings.TrimSpace(rawPageSize)
	if sizeText == "" {
		if pageText != "" {
			if _, err := parsePositiveInt(pageText); err != nil {
				return 0, 0, err
			}
		}
		return 0, 0, nil
	}
	pageSize, err := parsePositiveInt(sizeText)
	if err != nil {
		return 0, 0, err
	}
	if maxPageSize > 0 && pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	page := 1
	if pageText != "" {
		page, err = parsePositiveInt(pageText)
		if err != nil {
			return 0, 0, err
		}
	}
	// offset = (page-1)*pageSize 不能溢出 int
	if page-1 > math.MaxInt/pageSize {
		return 0, 0, ErrPaginationInvalid
	}
	return page, pageSize, nil
}

func parsePositiveInt(raw string) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, ErrPaginationInvalid
	}
	return value, nil
}
