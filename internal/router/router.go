package router

import (
	"sort"
	"strings"
	"time"

	"github.com/elisiyan/internal/authz"
	"github.com/elisiyan/internal/cache"
	"github.com/elisiyan/internal/config"
	adminhandlers "github.com/elisiyan/internal/http/handlers/admin"
	publichandlers "github.com/elisiyan/internal/http/handlers/public"
	"github.com/elisiyan/internal/http/handlers/shared"
	"github.com/elisiyan/internal/http/response"
	"github.com/elisiyan/internal/i18n"
	"github.com/elisiyan/internal/logger"
	"github.com/elisiyan/internal/provider"

	"github.com/gin-gonic/gin"
)

const defaultUploadDir = "uploads"

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log, ok := logger.Current()
	if !ok {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	if err := shared.RegisterValidators(); err != nil {
		logger.Errorw("register_validators_failed", "error", err)
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisClient := cache.Client()
	limits := cfg.Security.LoginRateLimit
	loginRule := ThrottleRule{
		Scope:      cache.BuildKey("throttle:login"),
		Window:     time.Duration(limits.WindowSeconds) * time.Second,
		Limit:      limits.MaxAttempts,
		Block:      time.Duration(limits.BlockSeconds) * time.Second,
		MessageKey: "error.login_too_many",
	}
	registerRule := ThrottleRule{
		Scope:  cache.BuildKey("throttle:register"),
		Window: time.Duration(limits.WindowSeconds) * time.Second,
		Limit:  limits.MaxAttempts,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	uploadDir := strings.TrimSpace(cfg.Upload.Dir)
	if uploadDir == "" {
		uploadDir = defaultUploadDir
	}
	r.Static("/uploads", uploadDir)

	var userAuth AuthStateResolver
	if c.UserAuthService != nil {
		userAuth = c.UserAuthService
	}
	var enforcer RoleEnforcer
	if c.AuthzService != nil {
		enforcer = c.AuthzService
	}
	authRequired := UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, userAuth)
	policy := PolicyMiddleware(enforcer)

	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/health", healthHandler)

		// 商品目录
		apiV1.GET("/clothing", publicHandler.ListClothingItems)
		apiV1.GET("/clothing/:id", publicHandler.GetClothingItem)
		apiV1.GET("/categories", publicHandler.ListCategories)
		apiV1.GET("/categories/tree", publicHandler.GetCategoryTree)
		apiV1.GET("/categories/:id", publicHandler.GetCategory)

		// 评价
		apiV1.GET("/reviews", publicHandler.ListReviews)
		apiV1.GET("/reviews/:id", publicHandler.GetReview)
		apiV1.GET("/reviews/:id/reviews", publicHandler.ListItemReviews)
		apiV1.POST("/reviews", authRequired, policy, publicHandler.CreateReview)

		apiV1.GET("/captcha/image", publicHandler.GetImageCaptcha)

		// 用户认证
		users := apiV1.Group("/users")
		{
			users.POST("/register", ThrottleMiddleware(redisClient, registerRule, ThrottleByIP), publicHandler.UserRegister)
			users.GET("/active/:uid64/:token", publicHandler.UserActivate)
			users.POST("/login", ThrottleMiddleware(redisClient, loginRule, ThrottleByCredential), publicHandler.UserLogin)

			authorized := users.Group("")
			authorized.Use(authRequired, policy)
			{
				authorized.POST("/logout", publicHandler.UserLogout)
				authorized.GET("/profile", publicHandler.GetUserProfile)
				authorized.PUT("/profile", publicHandler.UpdateUserProfile)
			}
		}

		// 心愿单
		wishlist := apiV1.Group("/wishlist")
		wishlist.Use(authRequired, policy)
		{
			wishlist.POST("/add_to_wishlist", publicHandler.AddToWishlist)
			wishlist.POST("/remove_from_wishlist", publicHandler.RemoveFromWishlist)
			wishlist.GET("/view_wishlist", publicHandler.ViewWishlist)
		}

		// 后台接口，角色由策略表判定
		admin := apiV1.Group("/admin")
		admin.Use(authRequired, policy)
		{
			admin.GET("/interface", adminHandler.GetAdminInterface)

			admin.GET("/clothing", adminHandler.GetAdminClothingItems)
			admin.POST("/clothing", adminHandler.CreateClothingItem)
			admin.GET("/clothing/:id", adminHandler.GetAdminClothingItem)
			admin.PUT("/clothing/:id", adminHandler.UpdateClothingItem)
			admin.DELETE("/clothing/:id", adminHandler.DeleteClothingItem)

			admin.GET("/categories", adminHandler.GetAdminCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			admin.GET("/reviews", adminHandler.GetAdminReviews)
			admin.POST("/upload", adminHandler.UploadClothingImage)

			admin.GET("/users", adminHandler.GetAdminUsers)
			admin.GET("/users/:id", adminHandler.GetAdminUser)
			admin.PATCH("/users/:id", adminHandler.UpdateAdminUser)
			admin.DELETE("/users/:id", adminHandler.DeleteAdminUser)
			admin.GET("/users/:id/login-audits", adminHandler.GetAdminUserLoginAudits)

			admin.GET("/authz/policies", adminHandler.GetAuthzPolicies)
		}
	}

	r.GET("/health", healthHandler)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, i18n.T(i18n.ResolveLocale(c), "error.not_found"))
	})

	reportUncoveredRoutes(r)

	return r
}

func healthHandler(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}

// protectedRoute 需要登录的路由
type protectedRoute struct {
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// publicRoutes 无需登录的路由
var publicRoutes = map[string]struct{}{
	"GET:/health":                     {},
	"GET:/clothing":                   {},
	"GET:/clothing/:id":               {},
	"GET:/categories":                 {},
	"GET:/categories/tree":            {},
	"GET:/categories/:id":             {},
	"GET:/reviews":                    {},
	"GET:/reviews/:id":                {},
	"GET:/reviews/:id/reviews":        {},
	"GET:/captcha/image":              {},
	"POST:/users/register":            {},
	"GET:/users/active/:uid64/:token": {},
	"POST:/users/login":               {},
}

func buildProtectedRouteCatalog(engine *gin.Engine) []protectedRoute {
	if engine == nil {
		return []protectedRoute{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]protectedRoute, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/") {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, ok := publicRoutes[permission]; ok {
			continue
		}
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, protectedRoute{
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Object == items[j].Object {
			return items[i].Method < items[j].Method
		}
		return items[i].Object < items[j].Object
	})

	return items
}

// uncoveredRoutes 返回策略表中没有任何角色可以访问的受保护路由
func uncoveredRoutes(engine *gin.Engine, table []authz.RoleSeed) []protectedRoute {
	granted := make(map[string]struct{})
	for _, seed := range table {
		for _, p := range seed.Policies {
			object := authz.NormalizeObject(p.Object)
			action := authz.NormalizeAction(p.Action)
			granted[action+":"+object] = struct{}{}
		}
	}

	missing := make([]protectedRoute, 0)
	for _, route := range buildProtectedRouteCatalog(engine) {
		if _, ok := granted[route.Permission]; ok {
			continue
		}
		if _, ok := granted["*:"+route.Object]; ok {
			continue
		}
		missing = append(missing, route)
	}
	return missing
}

func reportUncoveredRoutes(engine *gin.Engine) {
	for _, route := range uncoveredRoutes(engine, authz.PolicyTable()) {
		logger.Warnw("route_without_policy", "method", route.Method, "object", route.Object)
	}
}
