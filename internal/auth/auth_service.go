package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "go-exitflow/internal/auth/errors"
	"go-exitflow/internal/employee"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 8 * time.Hour

type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}

type service struct {
	employees employee.Repository
	logger    *zap.Logger
}

func NewService(employees employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{employees: employees, logger: l}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	emp, err := s.employees.FindByUsernameOrEmail(ctx, req.Login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		s.logger.Error("login lookup failed", zap.Error(err))
		return LoginResponse{}, err
	}
	if !emp.Active {
		return LoginResponse{}, autherrors.ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":     emp.ID.String(),
		"employee_id": emp.ID.String(),
		"role":        emp.Role,
		"username":    emp.Username,
		"iat":         now.Unix(),
		"exp":         now.Add(tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		s.logger.Error("token signing failed", zap.Error(err))
		return LoginResponse{}, err
	}

	s.logger.Info("login success",
		zap.String("employee_id", emp.ID.String()),
		zap.String("role", emp.Role),
	)

	return LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(tokenTTL.Seconds()),
		EmployeeID:  emp.ID.String(),
		FullName:    emp.FullName,
		Role:        emp.Role,
		Username:    emp.Username,
	}, nil
}
