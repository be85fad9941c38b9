package constants

// 商品尺码常量
const (
	SizeS   = "S"
	SizeM   = "M"
	SizeL   = "L"
	SizeXL  = "XL"
	SizeXXL = "XXL"
)

// 商品颜色常量
const (
	ColorRed    = "Red"
	ColorBlue   = "Blue"
	ColorBlack  = "Black"
	ColorWhite  = "White"
	ColorGreen  = "Green"
	ColorYellow = "Yellow"
)

// 商品列表排序常量
const (
	SortByPrice      = "price"
	SortByPopularity = "popularity"
)

// 用户角色常量（与授权策略表中的角色一一对应）
const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

// 验证码常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
	CaptchaSceneLogin    = "login"
	CaptchaSceneRegister = "register"
)

// 异步任务常量
const (
	QueueCritical            = "critical"
	QueueDefault             = "default"
	TaskUserActivationEmail  = "email:user_activation"
	TaskUserActivatedWelcome = "email:user_welcome"
	TaskHousekeeping         = "maintenance:housekeeping"
)

// 登录审计常量
const (
	LoginStatusSuccess          = "success"
	LoginStatusFailed           = "failed"
	LoginFailInvalidCredentials = "invalid_credentials"
	LoginFailUserInactive       = "user_inactive"
	LoginFailCaptcha            = "captcha_invalid"
	LoginFailInternal           = "internal_error"
)

// DefaultCategoryID 未指定分类时的兜底分类
const DefaultCategoryID uint = 1

// Gin 上下文键
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
	ContextKeyUsername = "username"
	ContextKeyRequest  = "request_id"
)
