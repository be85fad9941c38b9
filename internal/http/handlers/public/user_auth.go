package public

import (
	"errors"
	"time"

	"github.com/elisiyan/internal/constants"
	handlershared "github.com/elisiyan/internal/http/handlers/shared"
	"github.com/elisiyan/internal/http/response"
	"github.com/elisiyan/internal/models"
	"github.com/elisiyan/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Username        string                       `json:"username" binding:"required"`
	FirstName       string                       `json:"first_name"`
	LastName        string                       `json:"last_name"`
	Email           string                       `json:"email" binding:"required"`
	Password        string                       `json:"password" binding:"required"`
	ConfirmPassword string                       `json:"confirm_password" binding:"required"`
	CaptchaPayload  service.CaptchaVerifyPayload `json:"captcha_payload"`
}

// UserRegister 用户注册，账号需通过邮件激活
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if respondCaptchaError(c, h.CaptchaService.Verify(constants.CaptchaSceneRegister, req.CaptchaPayload)) {
		return
	}

	user, err := h.UserAuthService.Register(service.RegisterInput{
		Username:        req.Username,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		if errors.Is(err, service.ErrWeakPassword) {
			// 密码策略错误直接返回未满足的规则说明
			respondErrorWithMsg(c, response.CodeBadRequest, err.Error(), nil)
			return
		}
		respondWithMappedError(c, err, registerErrorRules, response.CodeInternal, "error.register_failed")
		return
	}

	response.Created(c, handlershared.Msg(c, "msg.register_success"), gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// UserActivate 通过邮件中的链接激活账号
func (h *Handler) UserActivate(c *gin.Context) {
	user, err := h.UserAuthService.Activate(c.Param("uid64"), c.Param("token"))
	if err != nil {
		respondWithMappedError(c, err, activateErrorRules, response.CodeInternal, "error.activate_failed")
		return
	}
	response.SuccessWithMsg(c, handlershared.Msg(c, "msg.activate_success"), gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"is_active": user.IsActive,
	})
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Username       string                       `json:"username" binding:"required"`
	Password       string                       `json:"password" binding:"required"`
	RememberMe     bool                         `json:"remember_me"`
	CaptchaPayload service.CaptchaVerifyPayload `json:"captcha_payload"`
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.CaptchaService.Verify(constants.CaptchaSceneLogin, req.CaptchaPayload); err != nil {
		h.recordLogin(c, req.Username, nil, err)
		respondCaptchaError(c, err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Username, req.Password, req.RememberMe)
	h.recordLogin(c, req.Username, user, err)
	if err != nil {
		respondWithMappedError(c, err, loginErrorRules, response.CodeInternal, "error.login_failed")
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"user_id":    user.ID,
		"username":   user.Username,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// recordLogin 写入登录审计，失败只记日志不影响登录结果
func (h *Handler) recordLogin(c *gin.Context, username string, user *models.User, loginErr error) {
	input := service.LoginAuditInput{
		Username:  username,
		Err:       loginErr,
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: c.GetString(constants.ContextKeyRequest),
	}
	if user != nil {
		input.UserID = user.ID
	}
	if err := h.LoginAuditService.Record(input); err != nil {
		handlershared.RequestLog(c).Warnw("login_audit_record_failed", "username", username, "error", err)
	}
}

// UserLogout 退出登录，使当前用户全部 token 失效
func (h *Handler) UserLogout(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.UserAuthService.Logout(userID); err != nil {
		respondError(c, response.CodeInternal, "error.logout_failed", err)
		return
	}
	response.SuccessWithMsg(c, handlershared.Msg(c, "msg.logout_success"), nil)
}

// GetUserProfile 当前用户资料
func (h *Handler) GetUserProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetProfile(userID)
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.profile_fetch_failed")
		return
	}
	response.Success(c, handlershared.PresentProfile(user))
}

// UpdateProfileRequest 更新资料请求，未传字段保持不变
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	MobileNo  *string `json:"mobile_no"`
}

// UpdateUserProfile 更新当前用户资料
func (h *Handler) UpdateUserProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.UserAuthService.UpdateProfile(userID, service.ProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		MobileNo:  req.MobileNo,
	})
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.profile_update_failed")
		return
	}
	response.Success(c, handlershared.PresentProfile(user))
}
