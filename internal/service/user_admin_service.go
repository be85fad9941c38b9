package service

import (
	"context"
	"time"

	"github.com/elisiyan/internal/cache"
	"github.com/elisiyan/internal/logger"
	"github.com/elisiyan/internal/models"
	"github.com/elisiyan/internal/repository"
)

// UserAdminService 后台用户管理服务
type UserAdminService struct {
	userRepo repository.UserRepository
}

// NewUserAdminService 创建后台用户管理服务
func NewUserAdminService(userRepo repository.UserRepository) *UserAdminService {
	return &UserAdminService{userRepo: userRepo}
}

// UserFlagsInput 用户标记更新输入，nil 字段保持不变
type UserFlagsInput struct {
	IsActive    *bool
	IsStaff     *bool
	IsSuperuser *bool
}

// List 分页查询用户
func (s *UserAdminService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// Get 获取用户详情
func (s *UserAdminService) Get(id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrUserNotFound
	}
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateFlags 更新激活与角色标记，管理员不能停用或降级自己
// 停用或角色变化会提升 token 版本，使旧 token 立即失效
func (s *UserAdminService) UpdateFlags(operatorID, id uint, input UserFlagsInput) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if input.IsActive == nil && input.IsStaff == nil && input.IsSuperuser == nil {
		return nil, ErrProfileEmpty
	}
	if operatorID == user.ID && demotesSelf(user, input) {
		return nil, ErrCannotModifySelf
	}

	previousRole := user.Role()
	previousActive := user.IsActive
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.IsStaff != nil {
		user.IsStaff = *input.IsStaff
	}
	if input.IsSuperuser != nil {
		user.IsSuperuser = *input.IsSuperuser
	}
	if user.IsActive != previousActive || user.Role() != previousRole {
		user.TokenVersion++
	}
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	if err := cache.StoreAuthState(context.Background(), user); err != nil {
		logger.Warnw("admin_user_auth_state_set_failed", "user_id", user.ID, "error", err)
	}
	return user, nil
}

// Delete 删除用户及其资料、评价、心愿单与激活令牌
func (s *UserAdminService) Delete(operatorID, id uint) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	if operatorID == user.ID {
		return ErrCannotModifySelf
	}
	if err := s.userRepo.Delete(user.ID); err != nil {
		return err
	}
	if err := cache.ForgetAuthState(context.Background(), user.ID); err != nil {
		logger.Warnw("admin_user_auth_state_del_failed", "user_id", user.ID, "error", err)
	}
	return nil
}

func demotesSelf(user *models.User, input UserFlagsInput) bool {
	if input.IsActive != nil && !*input.IsActive {
		return true
	}
	if input.IsSuperuser != nil && !*input.IsSuperuser && user.IsSuperuser {
		return true
	}
	if input.IsStaff != nil && !*input.IsStaff && user.IsStaff && !user.IsSuperuser {
		return true
	}
	return false
}
