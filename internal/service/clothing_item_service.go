package service

import (
	"strings"

	"github.com/elisiyan/internal/constants"
	"github.com/elisiyan/internal/models"
	"github.com/elisiyan/internal/repository"
)

const maxClothingItemNameLength = 255

// ClothingItemService 商品管理服务
type ClothingItemService struct {
	itemRepo          repository.ClothingItemRepository
	categoryRepo      repository.CategoryRepository
	defaultCategoryID uint
}

// NewClothingItemService 创建商品管理服务
func NewClothingItemService(itemRepo repository.ClothingItemRepository, categoryRepo repository.CategoryRepository, defaultCategoryID uint) *ClothingItemService {
	if defaultCategoryID == 0 {
		defaultCategoryID = constants.DefaultCategoryID
	}
	return &ClothingItemService{
		itemRepo:          itemRepo,
		categoryRepo:      categoryRepo,
		defaultCategoryID: defaultCategoryID,
	}
}

// ClothingItemInput 创建/更新商品输入
// CategoryID 为 0 时落到默认分类，Size/Color 为空时使用默认值
type ClothingItemInput struct {
	Name        string
	Description string
	Price       models.Money
	Popularity  int
	Image       string
	CategoryID  uint
	Size        string
	Color       string
}

// Create 创建商品
func (s *ClothingItemService) Create(input ClothingItemInput) (*models.ClothingItem, error) {
	item := &models.ClothingItem{}
	if err := s.apply(item, input); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Create(item); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return s.reload(item.ID)
}

// Update 整体更新商品
func (s *ClothingItemService) Update(id uint, input ClothingItemInput) (*models.ClothingItem, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(item, input); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Update(item); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return s.reload(item.ID)
}

// Get 获取商品
func (s *ClothingItemService) Get(id uint) (*models.ClothingItem, error) {
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
	return item, nil
}

// Delete 删除商品及其评价与心愿单记录
func (s *ClothingItemService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.itemRepo.Delete(id)
}

func (s *ClothingItemService) apply(item *models.ClothingItem, input ClothingItemInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrItemNameRequired
	}
	if len([]rune(name)) > maxClothingItemNameLength {
		return ErrInvalidInput
	}
	if !input.Price.Fits() {
		return ErrPriceInvalid
	}
	if input.Popularity < 0 {
		return ErrPopularityInvalid
	}

	size := models.ClothingSize(constants.SizeM)
	if raw := strings.TrimSpace(input.Size); raw != "" {
		parsed, ok := models.ParseClothingSize(raw)
		if !ok {
			return ErrSizeInvalid
		}
		size = parsed
	}
	color := models.ClothingColor(constants.ColorBlack)
	if raw := strings.TrimSpace(input.Color); raw != "" {
		parsed, ok := models.ParseClothingColor(raw)
		if !ok {
			return ErrColorInvalid
		}
		color = parsed
	}

	categoryID := input.CategoryID
	if categoryID == 0 {
		categoryID = s.defaultCategoryID
	}
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	item.Name = name
	item.Description = strings.TrimSpace(input.Description)
	item.Price = models.NewMoneyFromDecimal(input.Price.Decimal)
	item.Popularity = input.Popularity
	item.Image = strings.TrimSpace(input.Image)
	item.CategoryID = category.ID
	item.Category = *category
	item.Size = size
	item.Color = color
	return nil
}

func (s *ClothingItemService) reload(id uint) (*models.ClothingItem, error) {
	item, err := s.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrClothingItemNotFound
	}
	return item, nil
}
