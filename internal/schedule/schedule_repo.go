package schedule

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=schedule_repo.go -destination=mock/schedule_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *EmployeeSchedule) error
	FindByEmployee(ctx context.Context, employeeID string) (*EmployeeSchedule, error)
	Update(ctx context.Context, s *EmployeeSchedule) error
	DeleteByEmployee(ctx context.Context, employeeID string) error
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

func (r *repository) Create(ctx context.Context, s *EmployeeSchedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) (*EmployeeSchedule, error) {
	var s EmployeeSchedule
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Update(ctx context.Context, s *EmployeeSchedule) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) DeleteByEmployee(ctx context.Context, employeeID string) error {
	return r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&EmployeeSchedule{}).Error
}
