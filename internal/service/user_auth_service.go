package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/elisiyan/internal/cache"
	"github.com/elisiyan/internal/config"
	"github.com/elisiyan/internal/logger"
	"github.com/elisiyan/internal/models"
	"github.com/elisiyan/internal/queue"
	"github.com/elisiyan/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	maxUsernameLength      = 150
	maxMobileNoLength      = 12
	activationTokenBytes   = 32
	defaultActivationHours = 72
	activationPathPrefix   = "/api/v1/users/active/"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+\-]+$`)
var mobileNoPattern = regexp.MustCompile(`^[0-9]+$`)

// UserAuthService 用户认证服务
type UserAuthService struct {
	cfg          *config.Config
	userRepo     repository.UserRepository
	profileRepo  repository.ProfileRepository
	tokenRepo    repository.ActivationTokenRepository
	emailService *EmailService
	queueClient  *queue.Client
}

// NewUserAuthService 创建用户认证服务
func NewUserAuthService(
	cfg *config.Config,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	tokenRepo repository.ActivationTokenRepository,
	emailService *EmailService,
	queueClient *queue.Client,
) *UserAuthService {
	return &UserAuthService{
		cfg:          cfg,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		tokenRepo:    tokenRepo,
		emailService: emailService,
		queueClient:  queueClient,
	}
}

// UserJWTClaims 用户 JWT 声明
type UserJWTClaims struct {
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// RegisterInput 注册输入
type RegisterInput struct {
	Username        string
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// ProfileInput 资料更新输入，nil 字段保持不变
type ProfileInput struct {
	FirstName *string
	LastName  *string
	MobileNo  *string
}

// GenerateUserJWT 生成用户 JWT Token
func (s *UserAuthService) GenerateUserJWT(user *models.User, expireHours int) (string, time.Time, error) {
	resolvedHours := expireHours
	if resolvedHours <= 0 {
		resolvedHours = resolveUserJWTExpireHours(s.cfg.UserJWT)
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(resolvedHours) * time.Hour)
	claims := UserJWTClaims{
		UserID:       user.ID,
		Username:     user.Username,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    strings.TrimSpace(s.cfg.UserJWT.Issuer),
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.UserJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseUserJWT 解析用户 JWT Token
func (s *UserAuthService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	return ParseUserJWT(s.cfg.UserJWT.SecretKey, tokenString)
}

// ParseUserJWT 使用指定密钥解析用户 JWT Token
func ParseUserJWT(secretKey, tokenString string) (*UserJWTClaims, error) {
	if strings.TrimSpace(secretKey) == "" {
		return nil, ErrTokenInvalid
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Register 注册用户，账号在邮箱确认前保持未激活
func (s *UserAuthService) Register(input RegisterInput) (*models.User, error) {
	username, err := normalizeUsername(input.Username)
	if err != nil {
		return nil, err
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if err := ValidatePassword(s.cfg.Security.PasswordPolicy, input.Password, username, email); err != nil {
		return nil, err
	}
	if err := s.ensureIdentityAvailable(username, email); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	rawToken, tokenHash, err := newActivationToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		IsActive:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = s.userRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Create(user); err != nil {
			return err
		}
		profile := &models.Profile{UserID: user.ID, CreatedAt: now, UpdatedAt: now}
		if err := s.profileRepo.WithTx(tx).Create(profile); err != nil {
			return err
		}
		user.Profile = profile
		return s.tokenRepo.WithTx(tx).Create(&models.ActivationToken{
			UserID:    user.ID,
			TokenHash: tokenHash,
			ExpiresAt: now.Add(time.Duration(s.resolveActivationHours()) * time.Hour),
			CreatedAt: now,
		})
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			if identityErr := s.ensureIdentityAvailable(username, email); identityErr != nil {
				return nil, identityErr
			}
			return nil, ErrUsernameExists
		}
		return nil, err
	}

	s.deliverActivationEmail(user, s.BuildActivationLink(user.ID, rawToken))
	return user, nil
}

// BuildActivationLink 生成激活链接
func (s *UserAuthService) BuildActivationLink(userID uint, rawToken string) string {
	base := strings.TrimRight(strings.TrimSpace(s.cfg.Email.Activation.BaseURL), "/")
	return base + activationPathPrefix + EncodeUID(userID) + "/" + rawToken
}

// Activate 校验激活链接并激活账号，令牌只能使用一次
func (s *UserAuthService) Activate(uid64, rawToken string) (*models.User, error) {
	userID, err := DecodeUID(uid64)
	if err != nil {
		return nil, ErrActivationInvalid
	}
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return nil, ErrActivationInvalid
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrActivationInvalid
	}
	record, err := s.tokenRepo.GetByHash(user.ID, hashActivationToken(token))
	if err != nil {
		return nil, err
	}
	if record == nil || record.UsedAt != nil {
		return nil, ErrActivationInvalid
	}
	now := time.Now()
	if !record.ExpiresAt.After(now) {
		return nil, ErrActivationExpired
	}

	err = s.userRepo.Transaction(func(tx *gorm.DB) error {
		marked, err := s.tokenRepo.WithTx(tx).MarkUsed(record.ID, now)
		if err != nil {
			return err
		}
		if !marked {
			return ErrActivationInvalid
		}
		user.IsActive = true
		if user.EmailVerifiedAt == nil {
			user.EmailVerifiedAt = &now
		}
		user.UpdatedAt = now
		return s.userRepo.WithTx(tx).Update(user)
	})
	if err != nil {
		return nil, err
	}
	_ = cache.StoreAuthState(context.Background(), user)
	s.deliverWelcomeEmail(user)
	return user, nil
}

// Login 用户名密码登录，未激活账号拒绝登录
func (s *UserAuthService) Login(username, password string, rememberMe bool) (*models.User, string, time.Time, error) {
	identity := strings.TrimSpace(username)
	if identity == "" || password == "" {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByUsername(identity)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil && strings.Contains(identity, "@") {
		user, err = s.userRepo.GetByEmail(strings.ToLower(identity))
		if err != nil {
			return nil, "", time.Time{}, err
		}
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", time.Time{}, ErrUserInactive
	}

	expireHours := resolveUserJWTExpireHours(s.cfg.UserJWT)
	if rememberMe {
		expireHours = resolveRememberMeExpireHours(s.cfg.UserJWT)
	}
	token, expiresAt, err := s.GenerateUserJWT(user, expireHours)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.StoreAuthState(context.Background(), user)
	return user, token, expiresAt, nil
}

// Logout 提升 token 版本，使该用户已签发的全部 token 失效
func (s *UserAuthService) Logout(userID uint) error {
	if userID == 0 {
		return ErrUserNotFound
	}
	if err := s.userRepo.IncrementTokenVersion(userID); err != nil {
		return err
	}
	if err := cache.ForgetAuthState(context.Background(), userID); err != nil {
		logger.Warnw("user_logout_auth_state_del_failed", "user_id", userID, "error", err)
	}
	return nil
}

// PurgeStaleActivationTokens 清理过期与已使用的激活令牌
func (s *UserAuthService) PurgeStaleActivationTokens(now time.Time) (int64, error) {
	return s.tokenRepo.DeleteStale(now)
}

// ResolveAuthState 获取鉴权快照，缓存未命中时回源数据库
func (s *UserAuthService) ResolveAuthState(ctx context.Context, userID uint) (*cache.UserAuthState, error) {
	if userID == 0 {
		return nil, ErrUserNotFound
	}
	return cache.AuthState(ctx, userID, func() (*models.User, error) {
		user, err := s.userRepo.GetByID(userID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}
		return user, nil
	})
}

// GetProfile 获取用户及其资料
func (s *UserAuthService) GetProfile(userID uint) (*models.User, error) {
	if userID == 0 {
		return nil, ErrUserNotFound
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Profile == nil {
		profile, err := s.ensureProfile(user.ID)
		if err != nil {
			return nil, err
		}
		user.Profile = profile
	}
	return user, nil
}

// UpdateProfile 更新姓名与手机号
func (s *UserAuthService) UpdateProfile(userID uint, input ProfileInput) (*models.User, error) {
	if input.FirstName == nil && input.LastName == nil && input.MobileNo == nil {
		return nil, ErrProfileEmpty
	}
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	var mobileNo string
	if input.MobileNo != nil {
		mobileNo = strings.TrimSpace(*input.MobileNo)
		if mobileNo != "" && (len(mobileNo) > maxMobileNoLength || !mobileNoPattern.MatchString(mobileNo)) {
			return nil, ErrMobileNoInvalid
		}
	}

	now := time.Now()
	err = s.userRepo.Transaction(func(tx *gorm.DB) error {
		if input.FirstName != nil || input.LastName != nil {
			if input.FirstName != nil {
				user.FirstName = strings.TrimSpace(*input.FirstName)
			}
			if input.LastName != nil {
				user.LastName = strings.TrimSpace(*input.LastName)
			}
			user.UpdatedAt = now
			if err := s.userRepo.WithTx(tx).Update(user); err != nil {
				return err
			}
		}
		if input.MobileNo != nil {
			user.Profile.MobileNo = mobileNo
			user.Profile.UpdatedAt = now
			if err := s.profileRepo.WithTx(tx).Update(user.Profile); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserAuthService) ensureProfile(userID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}
	now := time.Now()
	profile = &models.Profile{UserID: userID, CreatedAt: now, UpdatedAt: now}
	if err := s.profileRepo.Create(profile); err != nil {
		if repository.IsUniqueViolation(err) {
			return s.profileRepo.GetByUserID(userID)
		}
		return nil, err
	}
	return profile, nil
}

func (s *UserAuthService) ensureIdentityAvailable(username, email string) error {
	exist, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return err
	}
	if exist != nil {
		return ErrUsernameExists
	}
	exist, err = s.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if exist != nil {
		return ErrEmailExists
	}
	return nil
}

// deliverActivationEmail 队列可用时异步投递，否则同步发送；发送失败不影响注册结果
func (s *UserAuthService) deliverActivationEmail(user *models.User, link string) {
	if s.queueClient != nil && s.queueClient.Enabled() {
		err := s.queueClient.EnqueueUserActivationEmail(queue.UserActivationEmailPayload{
			UserID:   user.ID,
			Email:    user.Email,
			Username: user.Username,
			Link:     link,
		})
		if err == nil {
			return
		}
		logger.Warnw("user_register_email_enqueue_failed", "user_id", user.ID, "error", err)
	}
	if err := s.emailService.SendActivationEmail(user.Email, user.Username, link); err != nil {
		if errors.Is(err, ErrEmailServiceDisabled) {
			logger.Warnw("user_register_email_skipped", "user_id", user.ID, "reason", "email_disabled")
			logger.Debugw("user_register_activation_link", "user_id", user.ID, "link", link)
			return
		}
		logger.Warnw("user_register_email_send_failed", "user_id", user.ID, "error", err)
	}
}

func (s *UserAuthService) deliverWelcomeEmail(user *models.User) {
	if s.queueClient != nil && s.queueClient.Enabled() {
		err := s.queueClient.EnqueueUserWelcomeEmail(queue.UserWelcomeEmailPayload{UserID: user.ID})
		if err == nil {
			return
		}
		logger.Warnw("user_welcome_email_enqueue_failed", "user_id", user.ID, "error", err)
	}
	if !s.emailService.Enabled() {
		return
	}
	if err := s.emailService.SendWelcomeEmail(user.Email, user.DisplayName()); err != nil {
		logger.Warnw("user_welcome_email_send_failed", "user_id", user.ID, "error", err)
	}
}

func (s *UserAuthService) resolveActivationHours() int {
	if s.cfg.Email.Activation.ExpireHours <= 0 {
		return defaultActivationHours
	}
	return s.cfg.Email.Activation.ExpireHours
}

// EncodeUID 将用户 ID 编码为 URL 安全的 base64
func EncodeUID(userID uint) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatUint(uint64(userID), 10)))
}

// DecodeUID 解析激活链接中的用户 ID
func DecodeUID(uid64 string) (uint, error) {
	text := strings.TrimRight(strings.TrimSpace(uid64), "=")
	raw, err := base64.RawURLEncoding.DecodeString(text)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrActivationInvalid
	}
	return uint(id), nil
}

func newActivationToken() (string, string, error) {
	buf := make([]byte, activationTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	raw := hex.EncodeToString(buf)
	return raw, hashActivationToken(raw), nil
}

func hashActivationToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func normalizeUsername(raw string) (string, error) {
	username := strings.TrimSpace(raw)
	if username == "" {
		return "", ErrUsernameRequired
	}
	if len([]rune(username)) > maxUsernameLength || !usernamePattern.MatchString(username) {
		return "", ErrUsernameInvalid
	}
	return username, nil
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

// NormalizeEmail 统一邮箱格式
func NormalizeEmail(email string) (string, error) {
	return normalizeEmail(email)
}

func resolveUserJWTExpireHours(cfg config.JWTConfig) int {
	if cfg.ExpireHours <= 0 {
		return 24
	}
	return cfg.ExpireHours
}

func resolveRememberMeExpireHours(cfg config.JWTConfig) int {
	if cfg.RememberMeExpireHours <= 0 {
		return resolveUserJWTExpireHours(cfg)
	}
	return cfg.RememberMeExpireHours
}
