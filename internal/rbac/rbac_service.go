package rbac

import (
	"strings"

	"go-exitflow/internal/domain"
	"go-exitflow/internal/workflow"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

// Route-level grants. Stage-level rules (exact status, direct-manager checks,
// edit-mode amendments) stay in the workflow package; this only answers "may
// this role touch this endpoint at all".
var policies = [][3]string{
	{workflow.RoleEmployee, "exit_form", "create"},
	{workflow.RoleEmployee, "exit_form", "read"},
	{workflow.RoleEmployee, "exit_workflow", "read"},

	{workflow.RoleManager, "exit_form", "create"},
	{workflow.RoleManager, "exit_form", "read"},
	{workflow.RoleManager, "exit_workflow", "read"},
	{workflow.RoleManager, "manager_review", "read"},
	{workflow.RoleManager, "manager_review", "submit"},

	{workflow.RoleHR, "exit_form", "create"},
	{workflow.RoleHR, "exit_form", "read"},
	{workflow.RoleHR, "exit_workflow", "read"},
	{workflow.RoleHR, "employee", "read"},
	{workflow.RoleHR, "manager_review", "read"},
	{workflow.RoleHR, "hr_review", "read"},
	{workflow.RoleHR, "hr_review", "submit"},
	{workflow.RoleHR, "asset_clearance", "read"},
	{workflow.RoleHR, "offboarding", "read"},
	{workflow.RoleHR, "offboarding", "submit"},
	{workflow.RoleHR, "payroll_check", "read"},
	{workflow.RoleHR, "final_approval", "read"},
	{workflow.RoleHR, "final_approval", "submit"},

	{workflow.RoleSystemAdmin, "exit_form", "create"},
	{workflow.RoleSystemAdmin, "exit_form", "read"},
	{workflow.RoleSystemAdmin, "exit_workflow", "read"},
	{workflow.RoleSystemAdmin, "asset_clearance", "read"},
	{workflow.RoleSystemAdmin, "asset_clearance", "submit"},

	{workflow.RolePayroll, "exit_form", "create"},
	{workflow.RolePayroll, "exit_form", "read"},
	{workflow.RolePayroll, "exit_workflow", "read"},
	{workflow.RolePayroll, "payroll_check", "read"},
	{workflow.RolePayroll, "payroll_check", "submit"},
}

// CEO inherits every HR grant.
var groupings = [][2]string{
	{workflow.RoleCEO, workflow.RoleHR},
}

type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
}

func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range groupings {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	role := strings.ToUpper(strings.TrimSpace(req.Role))

	allowed, err := s.enforcer.Enforce(role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}
