//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"

	"github.com/elisiyan/internal/constants"
	"github.com/elisiyan/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), models.NewGormConfig("silent"))
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.Wishlist{},
		&models.Review{},
		&models.ClothingItem{},
		&models.Category{},
		&models.ActivationToken{},
		&models.Profile{},
		&models.User{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)
	if err := models.MigrateWith(db); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestPostgresCatalogFilterAndUniqueness(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	category := &models.Category{Name: "Postgres Shirts"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	itemRepo := NewClothingItemRepository(db)
	item := &models.ClothingItem{
		Name:       "Oxford SHIRT",
		Price:      models.NewMoneyFromDecimal(decimal.RequireFromString("19.90")),
		CategoryID: category.ID,
		Size:       constants.SizeL,
		Color:      constants.ColorWhite,
	}
	if err := itemRepo.Create(item); err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	items, total, err := itemRepo.List(ClothingItemListFilter{Name: "shirt", Size: constants.SizeL})
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].ID != item.ID {
		t.Fatalf("postgres ILIKE filter want item %d got total=%d", item.ID, total)
	}
	if items[0].Price.String() != "19.90" {
		t.Fatalf("price want 19.90 got %s", items[0].Price.String())
	}

	user := &models.User{Username: "pg-user", Email: "pg@example.com", PasswordHash: "x", IsActive: true}
	if err := NewUserRepository(db).Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	reviewRepo := NewReviewRepository(db)
	if err := reviewRepo.Create(&models.Review{ClothingItemID: item.ID, UserID: user.ID, Comment: "ok", Rating: 5}); err != nil {
		t.Fatalf("create review failed: %v", err)
	}
	err = reviewRepo.Create(&models.Review{ClothingItemID: item.ID, UserID: user.ID, Comment: "dup", Rating: 1})
	if !IsUniqueViolation(err) {
		t.Fatalf("duplicate review should be unique violation on postgres, got %v", err)
	}
}
