package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/elisiyan/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), models.NewGormConfig("silent"))
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateWith(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createTestCategory(t *testing.T, db *gorm.DB, name string, parentID *uint) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, ParentID: parentID}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func createTestItem(t *testing.T, db *gorm.DB, name string, price int64, popularity int, categoryID uint, size models.ClothingSize, color models.ClothingColor) *models.ClothingItem {
	t.Helper()
	item := &models.ClothingItem{
		Name:       name,
		Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		Popularity: popularity,
		CategoryID: categoryID,
		Size:       size,
		Color:      color,
	}
	if err := NewClothingItemRepository(db).Create(item); err != nil {
		t.Fatalf("create item failed: %v", err)
	}
	return item
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		IsActive:     true,
	}
	if err := NewUserRepository(db).Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func itemIDs(items []models.ClothingItem) []uint {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func equalIDs(got, want []uint) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
