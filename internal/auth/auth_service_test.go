package auth_test

import (
	"context"
	"database/sql"
	"testing"

	"go-exitflow/internal/auth"
	autherrors "go-exitflow/internal/auth/errors"
	"go-exitflow/internal/employee"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeEmployees struct {
	findByUsernameOrEmailFn func(ctx context.Context, login string) (*employee.Employee, error)
}

func (f *fakeEmployees) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployees) FindAllActive(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployees) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployees) FindByUsernameOrEmail(ctx context.Context, login string) (*employee.Employee, error) {
	return f.findByUsernameOrEmailFn(ctx, login)
}
func (f *fakeEmployees) HasDirectReports(ctx context.Context, managerID string) (bool, error) {
	return false, nil
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	password := "s3cret-pass"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	emp := &employee.Employee{
		ID:           uuid.New(),
		FullName:     "Dana Whitfield",
		Email:        "dana@example.com",
		Username:     "dana.w",
		PasswordHash: string(hash),
		Role:         "HR",
		Active:       true,
	}

	repo := &fakeEmployees{
		findByUsernameOrEmailFn: func(ctx context.Context, login string) (*employee.Employee, error) {
			assert.Equal(t, "dana.w", login)
			return emp, nil
		},
	}
	svc := auth.NewService(repo)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Login: "dana.w", Password: password})
	assert.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, emp.ID.String(), resp.EmployeeID)
	assert.Equal(t, "HR", resp.Role)
	assert.NotEmpty(t, resp.AccessToken)

	// The token must carry the claims the auth middleware reads back out.
	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, emp.ID.String(), claims["employee_id"])
	assert.Equal(t, "HR", claims["role"])
	assert.Equal(t, "dana.w", claims["username"])
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hash, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.DefaultCost)
	repo := &fakeEmployees{
		findByUsernameOrEmailFn: func(ctx context.Context, login string) (*employee.Employee, error) {
			return &employee.Employee{ID: uuid.New(), PasswordHash: string(hash), Active: true}, nil
		},
	}

	_, err := auth.NewService(repo).Login(context.Background(), auth.LoginRequest{Login: "x", Password: "wrong"})
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestLogin_UnknownAccount(t *testing.T) {
	repo := &fakeEmployees{
		findByUsernameOrEmailFn: func(ctx context.Context, login string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	// Same error as a wrong password, no account enumeration.
	_, err := auth.NewService(repo).Login(context.Background(), auth.LoginRequest{Login: "ghost", Password: "x"})
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestLogin_InactiveAccount(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("pass"), bcrypt.DefaultCost)
	repo := &fakeEmployees{
		findByUsernameOrEmailFn: func(ctx context.Context, login string) (*employee.Employee, error) {
			return &employee.Employee{ID: uuid.New(), PasswordHash: string(hash), Active: false}, nil
		},
	}

	_, err := auth.NewService(repo).Login(context.Background(), auth.LoginRequest{Login: "x", Password: "pass"})
	assert.ErrorIs(t, err, autherrors.ErrAccountInactive)
}
