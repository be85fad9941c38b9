package models

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	applog "github.com/elisiyan/internal/logger"

	"github.com/glebarez/sqlite" // 纯 Go SQLite 驱动（基于 modernc.org/sqlite）
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 500 * time.Millisecond

var DB *gorm.DB

// DBPoolConfig 数据库连接池配置
type DBPoolConfig struct {
	MaxOpenConns           int
	MaxIdleConns           int
	ConnMaxLifetimeSeconds int
	ConnMaxIdleTimeSeconds int
}

// InitDB 初始化数据库连接
func InitDB(driver, dsn, logMode string, pool DBPoolConfig) error {
	dialector, err := openDialector(driver, dsn)
	if err != nil {
		return err
	}
	db, err := gorm.Open(dialector, NewGormConfig(logMode))
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	applyDBPool(sqlDB, pool)
	DB = db
	return nil
}

// NewGormConfig 统一 gorm 配置
// 开启 TranslateError 后唯一约束冲突会被转换为 gorm.ErrDuplicatedKey；
// SQL 日志写入应用日志，记录不存在不算错误
func NewGormConfig(logMode string) *gorm.Config {
	return &gorm.Config{
		Logger: logger.New(applog.StdLogger(), logger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  parseLogLevel(logMode),
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	}
}

func openDialector(driver, dsn string) (gorm.Dialector, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres", "postgresql":
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

func parseLogLevel(mode string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func applyDBPool(sqlDB *sql.DB, pool DBPoolConfig) {
	if sqlDB == nil {
		return
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns >= 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetimeSeconds > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifetimeSeconds) * time.Second)
	}
	if pool.ConnMaxIdleTimeSeconds > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(pool.ConnMaxIdleTimeSeconds) * time.Second)
	}
}

// AllModels 需要迁移的全部模型
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Profile{},
		&ActivationToken{},
		&Category{},
		&ClothingItem{},
		&Review{},
		&Wishlist{},
		&LoginAudit{},
	}
}

// AutoMigrate 自动迁移所有数据库表
func AutoMigrate() error {
	return MigrateWith(DB)
}

// MigrateWith 对指定连接执行迁移
func MigrateWith(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database is not initialized")
	}
	return db.AutoMigrate(AllModels()...)
}
