package models

import (
	"errors"
	"strings"
	"time"

	"github.com/elisiyan/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultSuperuserPassword = "Admin12345"

// EnsureDefaultCategory 确保兜底分类存在（未指定分类的商品归入该分类）
func EnsureDefaultCategory(db *gorm.DB, id uint, name string) error {
	if id == 0 {
		return nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Uncategorized"
	}
	var existing Category
	err := db.First(&existing, id).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	category := Category{ID: id, Name: name}
	if err := db.Create(&category).Error; err != nil {
		return err
	}
	// 显式指定主键后需同步 postgres 自增序列
	if db.Dialector != nil && db.Dialector.Name() == "postgres" {
		if err := db.Exec("SELECT setval(pg_get_serial_sequence('categories', 'id'), (SELECT MAX(id) FROM categories))").Error; err != nil {
			return err
		}
	}
	logger.Infow("default_category_created", "category_id", id, "name", name)
	return nil
}

// InitDefaultSuperuser 初始化默认超级管理员（已存在超级管理员时跳过）
func InitDefaultSuperuser(db *gorm.DB, username, email, password string) error {
	var count int64
	if err := db.Model(&User{}).Where("is_superuser = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	usedDefault := false
	if password == "" {
		password = defaultSuperuserPassword
		usedDefault = true
	}
	user, err := CreateSuperuser(db, username, email, password)
	if err != nil {
		return err
	}
	if usedDefault {
		logger.Warnw("default_superuser_created_with_default_password", "username", user.Username, "password", password)
	} else {
		logger.Warnw("default_superuser_created", "username", user.Username, "password_hidden", true)
	}
	return nil
}

// CreateSuperuser 创建已激活的超级管理员及其资料
func CreateSuperuser(db *gorm.DB, username, email, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		username = "admin"
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		email = username + "@example.com"
	}
	if password == "" {
		return nil, errors.New("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := User{
		Username:        username,
		Email:           email,
		PasswordHash:    string(hash),
		IsActive:        true,
		IsStaff:         true,
		IsSuperuser:     true,
		EmailVerifiedAt: &now,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&Profile{UserID: user.ID}).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
