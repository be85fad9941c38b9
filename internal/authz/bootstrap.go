package authz

import (
	"fmt"

	"github.com/elisiyan/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// PolicyTable 角色到可访问接口的唯一策略表
// customer < staff < admin，高级角色继承低级角色的全部权限
func PolicyTable() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleCustomer,
			Policies: []Policy{
				{Object: "/reviews", Action: "POST"},
				{Object: "/wishlist/add_to_wishlist", Action: "POST"},
				{Object: "/wishlist/remove_from_wishlist", Action: "POST"},
				{Object: "/wishlist/view_wishlist", Action: "GET"},
				{Object: "/users/profile", Action: "GET"},
				{Object: "/users/profile", Action: "PUT"},
				{Object: "/users/logout", Action: "POST"},
			},
		},
		{
			Role:     constants.RoleStaff,
			Inherits: []string{constants.RoleCustomer},
			Policies: []Policy{
				{Object: "/admin/interface", Action: "GET"},
				{Object: "/admin/clothing", Action: "*"},
				{Object: "/admin/clothing/:id", Action: "*"},
				{Object: "/admin/categories", Action: "*"},
				{Object: "/admin/categories/:id", Action: "*"},
				{Object: "/admin/reviews", Action: "GET"},
				{Object: "/admin/upload", Action: "POST"},
			},
		},
		{
			Role:     constants.RoleAdmin,
			Inherits: []string{constants.RoleStaff},
			Policies: []Policy{
				{Object: "/admin/users", Action: "GET"},
				{Object: "/admin/users/:id", Action: "*"},
				{Object: "/admin/users/:id/login-audits", Action: "GET"},
				{Object: "/admin/authz/policies", Action: "GET"},
			},
		},
	}
}

// BootstrapPolicyTable 以 PolicyTable 为准同步 casbin 规则，代码中已删除的规则会被清理
func (s *Service) BootstrapPolicyTable() error {
	if _, err := s.Sync(PolicyTable()); err != nil {
		return fmt.Errorf("sync builtin policy table: %w", err)
	}
	return nil
}
