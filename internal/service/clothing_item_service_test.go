package service

import (
	"errors"
	"testing"

	"github.com/elisiyan/internal/models"
	"github.com/elisiyan/internal/repository"

	"github.com/shopspring/decimal"
)

func TestClothingItemServiceCreateDefaults(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewClothingItemService(repository.NewClothingItemRepository(db), repository.NewCategoryRepository(db), 0)

	item, err := svc.Create(ClothingItemInput{
		Name:  "  Plain Tee ",
		Price: models.NewMoneyFromDecimal(decimal.RequireFromString("12.345")),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if item.Name != "Plain Tee" || item.CategoryID != 1 {
		t.Fatalf("name trimmed and default category expected, got %+v", item)
	}
	if item.Size != models.ClothingSize("M") || item.Color != models.ClothingColor("Black") {
		t.Fatalf("default size/color expected, got %s/%s", item.Size, item.Color)
	}
	if item.Price.String() != "12.35" {
		t.Fatalf("price should round to 2 places, got %s", item.Price.String())
	}
	if item.Category.Name != "Uncategorized" {
		t.Fatalf("category should be preloaded, got %+v", item.Category)
	}
}

func TestClothingItemServiceValidation(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewClothingItemService(repository.NewClothingItemRepository(db), repository.NewCategoryRepository(db), 1)
	price := models.NewMoneyFromDecimal(decimal.NewFromInt(10))

	tests := []struct {
		name    string
		input   ClothingItemInput
		wantErr error
	}{
		{name: "blank_name", input: ClothingItemInput{Name: " ", Price: price}, wantErr: ErrItemNameRequired},
		{name: "negative_price", input: ClothingItemInput{Name: "x", Price: models.NewMoneyFromDecimal(decimal.NewFromInt(-1))}, wantErr: ErrPriceInvalid},
		{name: "negative_popularity", input: ClothingItemInput{Name: "x", Price: price, Popularity: -3}, wantErr: ErrPopularityInvalid},
		{name: "bad_size", input: ClothingItemInput{Name: "x", Price: price, Size: "XS"}, wantErr: ErrSizeInvalid},
		{name: "bad_color", input: ClothingItemInput{Name: "x", Price: price, Color: "Teal"}, wantErr: ErrColorInvalid},
		{name: "missing_category", input: ClothingItemInput{Name: "x", Price: price, CategoryID: 404}, wantErr: ErrCategoryNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(tt.input); !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v got %v", tt.wantErr, err)
			}
		})
	}
}

func TestClothingItemServiceUpdateAndDelete(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewClothingItemService(repository.NewClothingItemRepository(db), repository.NewCategoryRepository(db), 1)
	user := createServiceTestUser(t, db, "olga", "Passw0rdX", true)
	item := createServiceTestItem(t, db, "Parka", "120.00", 4, 1)
	if err := db.Create(&models.Review{ClothingItemID: item.ID, UserID: user.ID, Comment: "warm", Rating: 5}).Error; err != nil {
		t.Fatalf("create review failed: %v", err)
	}
	if err := db.Create(&models.Wishlist{ClothingItemID: item.ID, UserID: user.ID}).Error; err != nil {
		t.Fatalf("create wishlist failed: %v", err)
	}

	updated, err := svc.Update(item.ID, ClothingItemInput{
		Name:       "Parka Pro",
		Price:      models.NewMoneyFromDecimal(decimal.RequireFromString("150")),
		Popularity: 9,
		Size:       "xxl",
		Color:      "green",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Parka Pro" || updated.Size != models.ClothingSize("XXL") || updated.Color != models.ClothingColor("Green") {
		t.Fatalf("unexpected update %+v", updated)
	}
	if _, err := svc.Update(999, ClothingItemInput{Name: "x"}); !errors.Is(err, ErrClothingItemNotFound) {
		t.Fatalf("missing item want ErrClothingItemNotFound got %v", err)
	}

	if err := svc.Delete(item.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	var reviews, wishlists int64
	db.Model(&models.Review{}).Where("clothing_item_id = ?", item.ID).Count(&reviews)
	db.Model(&models.Wishlist{}).Where("clothing_item_id = ?", item.ID).Count(&wishlists)
	if reviews != 0 || wishlists != 0 {
		t.Fatalf("dependent rows should be removed, reviews=%d wishlists=%d", reviews, wishlists)
	}
	if err := svc.Delete(item.ID); !errors.Is(err, ErrClothingItemNotFound) {
		t.Fatalf("second delete want ErrClothingItemNotFound got %v", err)
	}
}
