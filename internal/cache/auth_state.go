package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/elisiyan/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// UserAuthState 鉴权中间件每次请求需要的用户字段
type UserAuthState struct {
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	IsActive     bool   `json:"is_active"`
	IsStaff      bool   `json:"is_staff"`
	IsSuperuser  bool   `json:"is_superuser"`
	TokenVersion uint64 `json:"token_version"`
}

// Role 快照对应的授权角色
func (s UserAuthState) Role() string {
	return models.RoleFromFlags(s.IsStaff, s.IsSuperuser)
}

func authStateKey(userID uint) string {
	return "auth:user:" + strconv.FormatUint(uint64(userID), 10)
}

func snapshotOf(user *models.User) *UserAuthState {
	return &UserAuthState{
		UserID:       user.ID,
		Username:     user.Username,
		IsActive:     user.IsActive,
		IsStaff:      user.IsStaff,
		IsSuperuser:  user.IsSuperuser,
		TokenVersion: user.TokenVersion,
	}
}

// AuthState 读取鉴权快照，未命中时通过 load 回源并回填
// load 返回错误（包括用户不存在）时不写缓存
func AuthState(ctx context.Context, userID uint, load func() (*models.User, error)) (*UserAuthState, error) {
	return Remember(ctx, authStateKey(userID), authStateCacheTTL, func() (*UserAuthState, error) {
		user, err := load()
		if err != nil {
			return nil, err
		}
		return snapshotOf(user), nil
	})
}

// StoreAuthState 用户状态变化后刷新快照
func StoreAuthState(ctx context.Context, user *models.User) error {
	if user == nil || user.ID == 0 {
		return nil
	}
	return SetJSON(ctx, authStateKey(user.ID), snapshotOf(user), authStateCacheTTL)
}

// ForgetAuthState 删除快照，下次请求回源
func ForgetAuthState(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return Del(ctx, authStateKey(userID))
}
