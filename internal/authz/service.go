package authz

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const (
	apiV1Prefix     = "/api/v1"
	casbinTableName = "casbin_rule"
	rolePrefix      = "role:"
)

const roleLadderModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

var errUnavailable = errors.New("authz service unavailable")

// Policy 权限策略
type Policy struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
	Action  string `json:"action"`
}

func (p Policy) rule() []string {
	return []string{p.Subject, p.Object, p.Action}
}

// RoleLink 角色继承关系
type RoleLink struct {
	Role   string `json:"role"`
	Parent string `json:"parent"`
}

// SyncReport 策略表同步结果
type SyncReport struct {
	PoliciesAdded   int
	PoliciesRemoved int
	LinksAdded      int
	LinksRemoved    int
}

// Changed 是否有任何变更
func (r SyncReport) Changed() bool {
	return r.PoliciesAdded+r.PoliciesRemoved+r.LinksAdded+r.LinksRemoved > 0
}

// Service Casbin 授权服务，策略持久化在 casbin_rule 表
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 创建授权服务
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, errors.New("authz db is nil")
	}
	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTableName)
	if err != nil {
		return nil, fmt.Errorf("create authz adapter: %w", err)
	}
	m, err := model.NewModelFromString(roleLadderModel)
	if err != nil {
		return nil, fmt.Errorf("load authz model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	enforcer.EnableAutoSave(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load authz policy: %w", err)
	}
	return &Service{enforcer: enforcer}, nil
}

// EnforceRole 判断角色能否对资源执行动作，角色继承由 g 规则展开
func (s *Service) EnforceRole(role, obj, act string) (bool, error) {
	if s == nil || s.enforcer == nil {
		return false, errUnavailable
	}
	subject, err := NormalizeRole(role)
	if err != nil {
		return false, err
	}
	return s.enforcer.Enforce(subject, NormalizeObject(obj), NormalizeAction(act))
}

// Sync 使持久化的规则与给定策略表完全一致：补齐缺失项，移除表中已不存在的项
func (s *Service) Sync(table []RoleSeed) (SyncReport, error) {
	var report SyncReport
	if s == nil || s.enforcer == nil {
		return report, errUnavailable
	}
	wantPolicies, wantLinks, err := expandTable(table)
	if err != nil {
		return report, err
	}

	currentPolicies, err := s.enforcer.GetPolicy()
	if err != nil {
		return report, fmt.Errorf("read policies: %w", err)
	}
	addPolicies, removePolicies := diffRules(wantPolicies, currentPolicies)
	if len(removePolicies) > 0 {
		if _, err := s.enforcer.RemovePolicies(removePolicies); err != nil {
			return report, fmt.Errorf("remove stale policies: %w", err)
		}
	}
	if len(addPolicies) > 0 {
		if _, err := s.enforcer.AddPolicies(addPolicies); err != nil {
			return report, fmt.Errorf("add policies: %w", err)
		}
	}
	report.PoliciesAdded, report.PoliciesRemoved = len(addPolicies), len(removePolicies)

	currentLinks, err := s.enforcer.GetNamedGroupingPolicy("g")
	if err != nil {
		return report, fmt.Errorf("read role links: %w", err)
	}
	addLinks, removeLinks := diffRules(wantLinks, currentLinks)
	if len(removeLinks) > 0 {
		if _, err := s.enforcer.RemoveGroupingPolicies(removeLinks); err != nil {
			return report, fmt.Errorf("remove stale role links: %w", err)
		}
	}
	if len(addLinks) > 0 {
		if _, err := s.enforcer.AddGroupingPolicies(addLinks); err != nil {
			return report, fmt.Errorf("add role links: %w", err)
		}
	}
	report.LinksAdded, report.LinksRemoved = len(addLinks), len(removeLinks)
	return report, nil
}

// expandTable 把策略表展开为 casbin p/g 规则
func expandTable(table []RoleSeed) ([][]string, [][]string, error) {
	var policies, links [][]string
	for _, seed := range table {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return nil, nil, err
		}
		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return nil, nil, err
			}
			if parentRole == role {
				return nil, nil, fmt.Errorf("role %s cannot inherit itself", role)
			}
			links = append(links, []string{role, parentRole})
		}
		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return nil, nil, fmt.Errorf("policy %s on %s has no action", role, policy.Object)
			}
			policies = append(policies, Policy{Subject: role, Object: NormalizeObject(policy.Object), Action: action}.rule())
		}
	}
	return policies, links, nil
}

// diffRules 返回 want 中缺失的规则与 current 中多余的规则
func diffRules(want, current [][]string) (add, remove [][]string) {
	key := func(rule []string) string { return strings.Join(rule, "\x00") }
	wantSet := make(map[string]struct{}, len(want))
	for _, rule := range want {
		wantSet[key(rule)] = struct{}{}
	}
	currentSet := make(map[string]struct{}, len(current))
	for _, rule := range current {
		k := key(rule)
		currentSet[k] = struct{}{}
		if _, ok := wantSet[k]; !ok {
			remove = append(remove, rule)
		}
	}
	seen := make(map[string]struct{}, len(want))
	for _, rule := range want {
		k := key(rule)
		if _, ok := currentSet[k]; ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		add = append(add, rule)
	}
	return add, remove
}

// ListPolicies 导出完整策略表与继承关系
func (s *Service) ListPolicies() ([]Policy, []RoleLink, error) {
	if s == nil || s.enforcer == nil {
		return nil, nil, errUnavailable
	}
	rules, err := s.enforcer.GetPolicy()
	if err != nil {
		return nil, nil, fmt.Errorf("list policies: %w", err)
	}
	policies := make([]Policy, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			continue
		}
		policies = append(policies, Policy{Subject: rule[0], Object: rule[1], Action: rule[2]})
	}
	sort.Slice(policies, func(i, j int) bool {
		a, b := policies[i], policies[j]
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		if a.Object != b.Object {
			return a.Object < b.Object
		}
		return a.Action < b.Action
	})

	groupings, err := s.enforcer.GetNamedGroupingPolicy("g")
	if err != nil {
		return nil, nil, fmt.Errorf("list role links: %w", err)
	}
	links := make([]RoleLink, 0, len(groupings))
	for _, rule := range groupings {
		if len(rule) < 2 {
			continue
		}
		links = append(links, RoleLink{Role: rule[0], Parent: rule[1]})
	}
	sort.Slice(links, func(i, j int) bool { return links[i].Role < links[j].Role })
	return policies, links, nil
}

// NormalizeRole 统一角色名称为 role:<name>
func NormalizeRole(role string) (string, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(role)), " ", "_")
	normalized = strings.TrimPrefix(normalized, rolePrefix)
	if normalized == "" {
		return "", errors.New("role is required")
	}
	return rolePrefix + normalized, nil
}

// NormalizeObject 统一授权资源路径，去掉 /api/v1 前缀
func NormalizeObject(object string) string {
	normalized := strings.TrimSpace(object)
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	if normalized == apiV1Prefix {
		return "/"
	}
	return strings.TrimPrefix(normalized, apiV1Prefix)
}

// NormalizeAction 统一授权动作
func NormalizeAction(action string) string {
	return strings.ToUpper(strings.TrimSpace(action))
}
