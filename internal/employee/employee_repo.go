package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindAllActive(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByUsernameOrEmail(ctx context.Context, login string) (*Employee, error)
	HasDirectReports(ctx context.Context, managerID string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) FindAllActive(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("full_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindByUsernameOrEmail(ctx context.Context, login string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", login, login).
		First(&e).Error
	return &e, err
}

func (r *repository) HasDirectReports(ctx context.Context, managerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("reporting_manager_id = ?", managerID).
		Where("active = ?", true).
		Count(&count).Error
	return count > 0, err
}
