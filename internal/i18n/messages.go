package i18n

var catalogs = map[string]map[string]string{
	LocaleEN: messagesEN,
	LocaleZH: messagesZH,
}

var messagesEN = map[string]string{
	"msg.success":          "success",
	"msg.register_success": "Check your mail for confirmation",
	"msg.activate_success": "Your account has been activated",
	"msg.logout_success":   "Logged out",
	"msg.review_created":   "Review created",
	"msg.wishlist_added":   "Item added to wishlist",
	"msg.wishlist_removed": "Item removed from wishlist",
	"msg.created":          "created",
	"msg.deleted":          "deleted",
	"msg.upload_success":   "File uploaded",
	"msg.health_ok":        "ok",

	"error.bad_request":    "Invalid request",
	"error.unauthorized":   "Authentication credentials were not provided",
	"error.forbidden":      "You do not have permission to perform this action",
	"error.not_found":      "Not found",
	"error.internal":       "Internal server error",
	"error.id_invalid":     "Invalid id",
	"error.rate_limited":   "Too many requests, please retry in %d seconds",
	"error.login_too_many": "Too many login attempts, please retry in %d seconds",

	"error.auth_header_missing":  "Authorization header is missing",
	"error.auth_header_invalid":  "Authorization header must be Bearer <token>",
	"error.token_invalid":        "Token is invalid or expired",
	"error.token_revoked":        "Token has been revoked",
	"error.jwt_secret_missing":   "Token secret is not configured",
	"error.user_id_invalid":      "Invalid user id",
	"error.user_id_type_invalid": "Invalid user id type",

	"error.clothing_item_not_found":     "Clothing item not found",
	"error.item_name_required":          "Name is required",
	"error.price_invalid":               "Price must be a non-negative amount",
	"error.popularity_invalid":          "Popularity must be non-negative",
	"error.size_invalid":                "Size must be one of %s",
	"error.color_invalid":               "Color must be one of %s",
	"error.sort_by_invalid":             "sort_by must be price or popularity",
	"error.price_range_invalid":         "price_min and price_max must be non-negative and price_min <= price_max",
	"error.category_filter_invalid":     "category must be a category id",
	"error.pagination_invalid":          "page and page_size must be positive integers",
	"error.catalog_fetch_failed":        "Failed to load clothing items",
	"error.clothing_item_save_failed":   "Failed to save clothing item",
	"error.clothing_item_delete_failed": "Failed to delete clothing item",

	"error.category_not_found":         "Category not found",
	"error.category_name_required":     "Category name is required",
	"error.category_name_exists":       "Category with this name already exists",
	"error.category_parent_not_found":  "Parent category not found",
	"error.category_cycle":             "A category cannot be its own ancestor",
	"error.category_in_use":            "Category still has clothing items or subcategories",
	"error.default_category_protected": "The default category cannot be deleted",
	"error.category_fetch_failed":      "Failed to load categories",
	"error.category_save_failed":       "Failed to save category",
	"error.category_delete_failed":     "Failed to delete category",

	"error.review_not_found":        "Review not found",
	"error.review_exists":           "You have already reviewed this item",
	"error.review_rating_invalid":   "Rating must be an integer between 1 and 5",
	"error.review_comment_required": "Comment is required",
	"error.review_create_failed":    "Failed to create review",
	"error.review_fetch_failed":     "Failed to load reviews",

	"error.wishlist_item_exists":    "Item is already in your wishlist",
	"error.wishlist_item_not_found": "Item not found in wishlist",
	"error.wishlist_update_failed":  "Failed to update wishlist",
	"error.wishlist_fetch_failed":   "Failed to load wishlist",

	"error.username_required":     "Username is required",
	"error.username_invalid":      "Username may contain only letters, digits and @/./+/-/_ characters",
	"error.username_exists":       "A user with that username already exists",
	"error.email_invalid":         "Enter a valid email address",
	"error.email_exists":          "A user with that email already exists",
	"error.password_mismatch":     "Passwords do not match",
	"error.password_weak":         "Password does not satisfy the password policy",
	"error.invalid_credentials":   "Invalid username or password",
	"error.user_inactive":         "User account is not active",
	"error.activation_invalid":    "Activation link is invalid",
	"error.activation_expired":    "Activation link has expired",
	"error.register_failed":       "Registration failed",
	"error.activate_failed":       "Activation failed",
	"error.login_failed":          "Login failed",
	"error.logout_failed":         "Logout failed",
	"error.mobile_no_invalid":     "mobile_no must be at most 12 digits",
	"error.profile_empty":         "Nothing to update",
	"error.profile_fetch_failed":  "Failed to load profile",
	"error.profile_update_failed": "Failed to update profile",
	"error.user_not_found":        "User not found",
	"error.cannot_modify_self":    "You cannot delete or demote your own account",
	"error.user_fetch_failed":     "Failed to load users",
	"error.user_update_failed":    "Failed to update user",
	"error.user_delete_failed":    "Failed to delete user",

	"error.login_audit_fetch_failed": "Failed to load login audits",

	"error.captcha_required":        "Captcha is required",
	"error.captcha_invalid":         "Captcha is invalid",
	"error.captcha_config_invalid":  "Captcha is not enabled",
	"error.captcha_generate_failed": "Failed to generate captcha",

	"error.upload_empty":            "No file uploaded",
	"error.upload_too_large":        "File is too large",
	"error.upload_type_not_allowed": "File type is not allowed",
	"error.upload_dimensions":       "Image dimensions are out of range",
	"error.upload_failed":           "Upload failed",

	"error.dashboard_fetch_failed": "Failed to load overview",
	"error.authz_fetch_failed":     "Failed to load authorization policies",
}

var messagesZH = map[string]string{
	"msg.success":          "成功",
	"msg.register_success": "请查收邮件完成激活",
	"msg.activate_success": "账号已激活",
	"msg.logout_success":   "已退出登录",
	"msg.review_created":   "评价已提交",
	"msg.wishlist_added":   "已加入心愿单",
	"msg.wishlist_removed": "已移出心愿单",
	"msg.created":          "创建成功",
	"msg.deleted":          "删除成功",
	"msg.upload_success":   "上传成功",
	"msg.health_ok":        "ok",

	"error.bad_request":    "请求参数错误",
	"error.unauthorized":   "未提供身份凭证",
	"error.forbidden":      "无权执行该操作",
	"error.not_found":      "资源不存在",
	"error.internal":       "服务器内部错误",
	"error.id_invalid":     "无效的 ID",
	"error.rate_limited":   "请求过于频繁，请 %d 秒后重试",
	"error.login_too_many": "登录尝试次数过多，请 %d 秒后重试",

	"error.auth_header_missing": "缺少 Authorization 请求头",
	"error.auth_header_invalid": "Authorization 格式应为 Bearer <token>",
	"error.token_invalid":       "token 无效或已过期",
	"error.token_revoked":       "token 已失效",

	"error.clothing_item_not_found": "商品不存在",
	"error.price_invalid":           "价格必须为非负金额",
	"error.size_invalid":            "尺码取值无效，可选：%s",
	"error.color_invalid":           "颜色取值无效，可选：%s",
	"error.sort_by_invalid":         "sort_by 仅支持 price 或 popularity",
	"error.price_range_invalid":     "价格区间无效",
	"error.category_filter_invalid": "category 必须为分类 ID",

	"error.category_not_found":   "分类不存在",
	"error.category_name_exists": "分类名称已存在",
	"error.category_cycle":       "分类不能成为自身的祖先",
	"error.category_in_use":      "分类下仍有商品或子分类",

	"error.review_exists":         "您已评价过该商品",
	"error.review_rating_invalid": "评分必须为 1 到 5 的整数",

	"error.wishlist_item_exists":    "商品已在心愿单中",
	"error.wishlist_item_not_found": "心愿单中没有该商品",

	"error.username_exists":     "用户名已存在",
	"error.email_exists":        "邮箱已被注册",
	"error.password_mismatch":   "两次输入的密码不一致",
	"error.invalid_credentials": "用户名或密码错误",
	"error.user_inactive":       "账号尚未激活",
	"error.activation_invalid":  "激活链接无效",
	"error.activation_expired":  "激活链接已过期",

	"error.login_audit_fetch_failed": "获取登录记录失败",
}
