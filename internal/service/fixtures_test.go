package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/elisiyan/internal/config"
	"github.com/elisiyan/internal/models"
	"github.com/elisiyan/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), models.NewGormConfig("silent"))
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateWith(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := models.EnsureDefaultCategory(db, 1, "Uncategorized"); err != nil {
		t.Fatalf("ensure default category failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createServiceTestUser(t *testing.T, db *gorm.DB, username, password string, active bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	now := time.Now()
	user := &models.User{
		Username:     username,
		Email:        strings.ToLower(username) + "@example.com",
		PasswordHash: string(hash),
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func createServiceTestItem(t *testing.T, db *gorm.DB, name, price string, popularity int, categoryID uint) *models.ClothingItem {
	t.Helper()
	item := &models.ClothingItem{
		Name:       name,
		Price:      models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		Popularity: popularity,
		CategoryID: categoryID,
		Size:       models.ClothingSize("M"),
		Color:      models.ClothingColor("Blue"),
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create item failed: %v", err)
	}
	return item
}

func newTestUserAuthService(db *gorm.DB) *UserAuthService {
	cfg := &config.Config{}
	cfg.UserJWT = config.JWTConfig{SecretKey: "service-test-secret", ExpireHours: 2, RememberMeExpireHours: 48}
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{MinLength: 8, RequireUpper: true, RequireLower: true, RequireNumber: true}
	cfg.Email.Activation = config.ActivationConfig{BaseURL: "http://shop.test/", ExpireHours: 1}
	return NewUserAuthService(
		cfg,
		repository.NewUserRepository(db),
		repository.NewProfileRepository(db),
		repository.NewActivationTokenRepository(db),
		NewEmailService(&cfg.Email),
		nil,
	)
}
