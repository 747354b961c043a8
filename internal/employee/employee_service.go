package employee

import (
	"context"
	"errors"

	employeeerrors "go-exitflow/internal/employee/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	GetRoster(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{repo: repo, logger: l}
}

// GetRoster lists active employees for the HR/CEO exit-form picker.
func (s *service) GetRoster(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAllActive(ctx)
	if err != nil {
		s.logger.Error("get roster failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(employees), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:       e.ID.String(),
		FullName: e.FullName,
		Email:    e.Email,
		Username: e.Username,
		Role:     e.Role,
		Active:   e.Active,
	}
	if e.ReportingManagerID != nil {
		v := e.ReportingManagerID.String()
		resp.ReportingManagerID = &v
	}
	return resp
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp
}
