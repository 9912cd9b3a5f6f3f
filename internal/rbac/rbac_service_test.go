package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestService_Enforce(t *testing.T) {
	svc, err := NewService()
	assert.NoError(t, err)

	tests := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"admin can correct attendance", RoleAdmin, "attendance", "correct", true},
		{"admin can compute payroll", RoleAdmin, "payroll", "compute", true},
		{"employee can clock in", RoleEmployee, "attendance", "create", true},
		{"employee can read reports", RoleEmployee, "report", "read", true},
		{"employee cannot correct attendance", RoleEmployee, "attendance", "correct", false},
		{"employee cannot compute payroll", RoleEmployee, "payroll", "compute", false},
		{"employee cannot write schedules", RoleEmployee, "schedule", "write", false},
		{"unknown role denied", "GUEST", "attendance", "read", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := svc.Enforce(tt.role, tt.resource, tt.action)
			assert.NoError(t, err)
			assert.Equal(t, tt.allowed, allowed)
		})
	}
}
