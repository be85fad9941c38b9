package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/elisiyan/internal/cache"
	"github.com/elisiyan/internal/logger"
	"github.com/elisiyan/internal/models"
	"github.com/elisiyan/internal/repository"
)

const maxCategoryNameLength = 100

// CategoryService 分类业务服务
type CategoryService struct {
	repo              repository.CategoryRepository
	defaultCategoryID uint
	cacheTTL          time.Duration
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository, defaultCategoryID uint, cacheTTL time.Duration) *CategoryService {
	return &CategoryService{
		repo:              repo,
		defaultCategoryID: defaultCategoryID,
		cacheTTL:          cacheTTL,
	}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	Name     string
	ParentID *uint
}

// CategoryNode 分类树节点
type CategoryNode struct {
	Category models.Category
	Children []CategoryNode
}

// List 获取分类列表，优先读取缓存快照
func (s *CategoryService) List() ([]models.Category, error) {
	return cache.CategoryList(context.Background(), s.cacheTTL, s.repo.List)
}

// Tree 组装分类树，根节点为没有父分类的分类
func (s *CategoryService) Tree() ([]CategoryNode, error) {
	categories, err := s.List()
	if err != nil {
		return nil, err
	}
	return BuildCategoryTree(categories), nil
}

// BuildCategoryTree 由扁平分类列表构建树，同级按 ID 升序
func BuildCategoryTree(categories []models.Category) []CategoryNode {
	known := make(map[uint]struct{}, len(categories))
	for _, category := range categories {
		known[category.ID] = struct{}{}
	}
	children := make(map[uint][]models.Category, len(categories))
	roots := make([]models.Category, 0)
	for _, category := range categories {
		if category.ParentID == nil {
			roots = append(roots, category)
			continue
		}
		if _, ok := known[*category.ParentID]; !ok {
			roots = append(roots, category)
			continue
		}
		children[*category.ParentID] = append(children[*category.ParentID], category)
	}

	visited := make(map[uint]struct{}, len(categories))
	var build func(list []models.Category) []CategoryNode
	build = func(list []models.Category) []CategoryNode {
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
		nodes := make([]CategoryNode, 0, len(list))
		for _, category := range list {
			if _, seen := visited[category.ID]; seen {
				continue
			}
			visited[category.ID] = struct{}{}
			nodes = append(nodes, CategoryNode{
				Category: category,
				Children: build(children[category.ID]),
			})
		}
		return nodes
	}
	return build(roots)
}

// Get 获取分类详情
func (s *CategoryService) Get(id uint) (*models.Category, error) {
	if id == 0 {
		return nil, ErrCategoryNotFound
	}
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	name, err := normalizeCategoryName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameAvailable(name, 0); err != nil {
		return nil, err
	}
	parentID, err := s.resolveParent(input.ParentID)
	if err != nil {
		return nil, err
	}

	category := models.Category{
		Name:     name,
		ParentID: parentID,
	}
	if err := s.repo.Create(&category); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrCategoryNameExists
		}
		return nil, err
	}
	s.invalidateCache()
	return &category, nil
}

// Update 更新分类名称与父分类，父分类变更会做环路检查
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	name, err := normalizeCategoryName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameAvailable(name, category.ID); err != nil {
		return nil, err
	}
	parentID, err := s.resolveParent(input.ParentID)
	if err != nil {
		return nil, err
	}
	if parentID != nil {
		if err := s.ensureNoCycle(category.ID, *parentID); err != nil {
			return nil, err
		}
	}

	category.Name = name
	category.ParentID = parentID
	if err := s.repo.Update(category); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrCategoryNameExists
		}
		return nil, err
	}
	s.invalidateCache()
	return category, nil
}

// Delete 删除分类，仍有商品或子分类时拒绝
func (s *CategoryService) Delete(id uint) error {
	category, err := s.Get(id)
	if err != nil {
		return err
	}
	if s.defaultCategoryID != 0 && category.ID == s.defaultCategoryID {
		return ErrDefaultCategoryProtected
	}
	children, err := s.repo.CountChildren(category.ID)
	if err != nil {
		return err
	}
	if children > 0 {
		return ErrCategoryInUse
	}
	items, err := s.repo.CountItems(category.ID)
	if err != nil {
		return err
	}
	if items > 0 {
		return ErrCategoryInUse
	}
	if err := s.repo.Delete(category.ID); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return ErrCategoryInUse
		}
		return err
	}
	s.invalidateCache()
	return nil
}

// ensureNoCycle 从新父分类沿祖先链向上查找，遇到自身即成环
func (s *CategoryService) ensureNoCycle(id, parentID uint) error {
	visited := make(map[uint]struct{})
	current := parentID
	for current != 0 {
		if current == id {
			return ErrCategoryCycle
		}
		if _, seen := visited[current]; seen {
			return ErrCategoryCycle
		}
		visited[current] = struct{}{}
		ancestor, err := s.repo.GetByID(current)
		if err != nil {
			return err
		}
		if ancestor == nil || ancestor.ParentID == nil {
			return nil
		}
		current = *ancestor.ParentID
	}
	return nil
}

func (s *CategoryService) resolveParent(parentID *uint) (*uint, error) {
	if parentID == nil || *parentID == 0 {
		return nil, nil
	}
	parent, err := s.repo.GetByID(*parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, ErrCategoryParentNotFound
	}
	id := parent.ID
	return &id, nil
}

func (s *CategoryService) ensureNameAvailable(name string, selfID uint) error {
	exist, err := s.repo.GetByName(name)
	if err != nil {
		return err
	}
	if exist != nil && exist.ID != selfID {
		return ErrCategoryNameExists
	}
	return nil
}

func (s *CategoryService) invalidateCache() {
	if err := cache.InvalidateCategoryList(context.Background()); err != nil {
		logger.Warnw("category_cache_invalidate_failed", "error", err)
	}
}

func normalizeCategoryName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrCategoryNameRequired
	}
	if len([]rune(name)) > maxCategoryNameLength {
		return "", ErrInvalidInput
	}
	return name, nil
}
