package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// policies memetakan role -> resource -> actions. Role ditentukan di luar
// sistem ini (klaim token); di sini hanya otorisasi route.
var policies = [][3]string{
	{RoleAdmin, "employee", "read"},
	{RoleAdmin, "employee", "create"},
	{RoleAdmin, "employee", "update"},
	{RoleAdmin, "employee", "delete"},
	{RoleAdmin, "schedule", "read"},
	{RoleAdmin, "schedule", "write"},
	{RoleAdmin, "attendance", "read"},
	{RoleAdmin, "attendance", "create"},
	{RoleAdmin, "attendance", "correct"},
	{RoleAdmin, "report", "read"},
	{RoleAdmin, "report", "read_all"},
	{RoleAdmin, "payroll", "compute"},

	{RoleEmployee, "attendance", "read"},
	{RoleEmployee, "attendance", "create"},
	{RoleEmployee, "schedule", "read"},
	{RoleEmployee, "report", "read"},
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(role, resource, action)
}
