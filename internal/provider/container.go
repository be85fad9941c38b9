package provider

import (
	"time"

	"github.com/elisiyan/internal/authz"
	"github.com/elisiyan/internal/cache"
	"github.com/elisiyan/internal/config"
	"github.com/elisiyan/internal/logger"
	"github.com/elisiyan/internal/models"
	"github.com/elisiyan/internal/queue"
	"github.com/elisiyan/internal/repository"
	"github.com/elisiyan/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo            repository.UserRepository
	ProfileRepo         repository.ProfileRepository
	ActivationTokenRepo repository.ActivationTokenRepository
	CategoryRepo        repository.CategoryRepository
	ClothingItemRepo    repository.ClothingItemRepository
	ReviewRepo          repository.ReviewRepository
	WishlistRepo        repository.WishlistRepository
	DashboardRepo       repository.DashboardRepository
	LoginAuditRepo      repository.LoginAuditRepository

	// Services
	AuthzService        *authz.Service
	RatingAggregator    *service.RatingAggregator
	CatalogService      *service.CatalogService
	CategoryService     *service.CategoryService
	ClothingItemService *service.ClothingItemService
	ReviewService       *service.ReviewService
	WishlistService     *service.WishlistService
	UserAuthService     *service.UserAuthService
	UserAdminService    *service.UserAdminService
	EmailService        *service.EmailService
	CaptchaService      *service.CaptchaService
	UploadService       *service.UploadService
	DashboardService    *service.DashboardService
	LoginAuditService   *service.LoginAuditService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	if err := authzService.BootstrapPolicyTable(); err != nil {
		logger.Errorw("provider_bootstrap_policy_table_failed", "error", err)
		panic(err)
	}

	return Build(cfg, models.DB, queueClient, authzService)
}

// Build 基于给定的数据库连接组装仓储与服务
func Build(cfg *config.Config, db *gorm.DB, queueClient *queue.Client, authzService *authz.Service) *Container {
	c := &Container{
		Config:       cfg,
		QueueClient:  queueClient,
		AuthzService: authzService,
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.UserRepo = repository.NewUserRepository(db)
	c.ProfileRepo = repository.NewProfileRepository(db)
	c.ActivationTokenRepo = repository.NewActivationTokenRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ClothingItemRepo = repository.NewClothingItemRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
	c.LoginAuditRepo = repository.NewLoginAuditRepository(db)
}

func (c *Container) initServices() {
	catalog := c.Config.Catalog
	categoryCacheTTL := time.Duration(catalog.CategoryCacheTTL) * time.Second

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UploadService = service.NewUploadService(&c.Config.Upload)
	c.RatingAggregator = service.NewRatingAggregator(c.ReviewRepo)
	c.CatalogService = service.NewCatalogService(c.ClothingItemRepo, c.RatingAggregator, catalog.MaxPageSize)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, catalog.DefaultCategoryID, categoryCacheTTL)
	c.ClothingItemService = service.NewClothingItemService(c.ClothingItemRepo, c.CategoryRepo, catalog.DefaultCategoryID)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ClothingItemRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ClothingItemRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.ProfileRepo, c.ActivationTokenRepo, c.EmailService, c.QueueClient)
	c.UserAdminService = service.NewUserAdminService(c.UserRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo)
	c.LoginAuditService = service.NewLoginAuditService(c.LoginAuditRepo)
}
