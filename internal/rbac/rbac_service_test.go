package rbac

import (
	"testing"

	"go-exitflow/internal/domain"
	"go-exitflow/internal/rbac/infra"
	"go-exitflow/internal/workflow"

	"github.com/stretchr/testify/assert"
)

func newTestService(t *testing.T) Service {
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)
	svc, err := NewService(enforcer)
	assert.NoError(t, err)
	return svc
}

func TestEnforce_StageGrants(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		role     string
		resource string
		action   string
		want     bool
	}{
		{workflow.RoleEmployee, "exit_form", "create", true},
		{workflow.RoleEmployee, "exit_workflow", "read", true},
		{workflow.RoleEmployee, "manager_review", "submit", false},
		{workflow.RoleEmployee, "hr_review", "read", false},

		{workflow.RoleManager, "manager_review", "submit", true},
		{workflow.RoleManager, "hr_review", "submit", false},
		{workflow.RoleManager, "asset_clearance", "submit", false},

		{workflow.RoleHR, "hr_review", "submit", true},
		{workflow.RoleHR, "offboarding", "submit", true},
		{workflow.RoleHR, "final_approval", "submit", true},
		{workflow.RoleHR, "exit_form", "create", true},
		{workflow.RoleHR, "asset_clearance", "submit", false},
		{workflow.RoleHR, "payroll_check", "submit", false},

		{workflow.RoleSystemAdmin, "asset_clearance", "submit", true},
		{workflow.RoleSystemAdmin, "hr_review", "submit", false},

		{workflow.RolePayroll, "payroll_check", "submit", true},
		{workflow.RolePayroll, "final_approval", "submit", false},
	}

	for _, tc := range cases {
		allowed, err := svc.Enforce(domain.EnforceRequest{
			Role: tc.role, Resource: tc.resource, Action: tc.action,
		})
		assert.NoError(t, err)
		assert.Equal(t, tc.want, allowed, "%s %s:%s", tc.role, tc.resource, tc.action)
	}
}

func TestEnforce_CEOInheritsHR(t *testing.T) {
	svc := newTestService(t)

	for _, resource := range []string{"hr_review", "offboarding", "final_approval"} {
		allowed, err := svc.Enforce(domain.EnforceRequest{
			Role: workflow.RoleCEO, Resource: resource, Action: "submit",
		})
		assert.NoError(t, err)
		assert.True(t, allowed, resource)
	}

	// But not grants HR never had.
	allowed, err := svc.Enforce(domain.EnforceRequest{
		Role: workflow.RoleCEO, Resource: "asset_clearance", Action: "submit",
	})
	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestEnforce_RoleCasingTolerated(t *testing.T) {
	svc := newTestService(t)

	allowed, err := svc.Enforce(domain.EnforceRequest{
		Role: " hr ", Resource: "hr_review", Action: "submit",
	})
	assert.NoError(t, err)
	assert.True(t, allowed)
}
