package service

import (
	"github.com/elisiyan/internal/models"
	"github.com/elisiyan/internal/repository"
)

// WishlistService 心愿单服务
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	itemRepo     repository.ClothingItemRepository
}

// NewWishlistService 创建心愿单服务
func NewWishlistService(wishlistRepo repository.WishlistRepository, itemRepo repository.ClothingItemRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		itemRepo:     itemRepo,
	}
}

// Add 加入心愿单，同一商品重复加入返回 ErrWishlistItemExists
func (s *WishlistService) Add(userID, itemID uint) (*models.Wishlist, error) {
	if userID == 0 {
		return nil, ErrUserNotFound
	}
	if err := s.ensureItemExists(itemID); err != nil {
		return nil, err
	}

	count, err := s.wishlistRepo.CountByUserAndItem(userID, itemID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrWishlistItemExists
	}

	entry := &models.Wishlist{
		UserID:         userID,
		ClothingItemID: itemID,
	}
	if err := s.wishlistRepo.Create(entry); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrWishlistItemExists
		}
		return nil, err
	}
	created, err := s.wishlistRepo.GetByID(entry.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, ErrWishlistItemNotFound
	}
	return created, nil
}

// Remove 从心愿单移除，不存在时返回 ErrWishlistItemNotFound
func (s *WishlistService) Remove(userID, itemID uint) error {
	if userID == 0 {
		return ErrUserNotFound
	}
	if err := s.ensureItemExists(itemID); err != nil {
		return err
	}
	affected, err := s.wishlistRepo.DeleteByUserAndItem(userID, itemID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrWishlistItemNotFound
	}
	return nil
}

// List 获取用户心愿单
func (s *WishlistService) List(userID uint) ([]models.Wishlist, error) {
	if userID == 0 {
		return nil, ErrUserNotFound
	}
	return s.wishlistRepo.ListByUser(userID)
}

func (s *WishlistService) ensureItemExists(itemID uint) error {
	if itemID == 0 {
		return ErrClothingItemNotFound
	}
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrClothingItemNotFound
	}
	return nil
}
