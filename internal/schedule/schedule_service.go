package schedule

import (
	"context"
	"database/sql"
	"errors"

	"go-timeclock/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=schedule_service.go -destination=mock/schedule_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, employeeID string, req UpsertScheduleRequest) (ScheduleResponse, error)
	GetEffective(ctx context.Context, employeeID string) (ScheduleResponse, error)
	Delete(ctx context.Context, employeeID string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	resolver *Resolver
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, resolver *Resolver, logger ...*zap.Logger) Service {
	l := zap.L().Named("schedule.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schedule.service")
	}
	return &service{db: db, repo: repo, resolver: resolver, logger: l}
}

// Upsert: create jika belum ada, update in place jika sudah ada.
func (s *service) Upsert(ctx context.Context, employeeID string, req UpsertScheduleRequest) (ScheduleResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return ScheduleResponse{}, apperror.InvalidField("employee_id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("upsert schedule begin tx failed", zap.Error(err))
		return ScheduleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByEmployee(ctx, employeeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("upsert schedule lookup failed", zap.Error(err))
		return ScheduleResponse{}, err
	}

	var row *EmployeeSchedule
	if existing == nil {
		row = &EmployeeSchedule{
			ID:            uuid.New(),
			EmployeeID:    employeeUUID,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			ExpectedHours: req.ExpectedHours,
		}
		if err := qtx.Create(ctx, row); err != nil {
			s.logger.Error("create schedule persist failed", zap.Error(err))
			return ScheduleResponse{}, err
		}
	} else {
		existing.StartTime = req.StartTime
		existing.EndTime = req.EndTime
		existing.ExpectedHours = req.ExpectedHours
		if err := qtx.Update(ctx, existing); err != nil {
			s.logger.Error("update schedule persist failed", zap.Error(err))
			return ScheduleResponse{}, err
		}
		row = existing
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("upsert schedule commit failed", zap.Error(err))
		return ScheduleResponse{}, err
	}

	s.logger.Info("upsert schedule success",
		zap.String("employee_id", employeeID),
		zap.String("start_time", row.StartTime),
		zap.Float64("expected_hours", row.ExpectedHours),
	)

	return ScheduleResponse{
		EmployeeID:    employeeID,
		StartTime:     row.StartTime,
		EndTime:       row.EndTime,
		ExpectedHours: row.ExpectedHours,
	}, nil
}

func (s *service) GetEffective(ctx context.Context, employeeID string) (ScheduleResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return ScheduleResponse{}, apperror.InvalidField("employee_id")
	}

	eff, err := s.resolver.Resolve(ctx, employeeID)
	if err != nil {
		s.logger.Error("resolve schedule failed", zap.String("employee_id", employeeID), zap.Error(err))
		return ScheduleResponse{}, err
	}

	return ScheduleResponse{
		EmployeeID:    employeeID,
		StartTime:     eff.StartTime,
		EndTime:       eff.EndTime,
		ExpectedHours: eff.ExpectedHours,
		IsDefault:     eff.IsDefault,
	}, nil
}

func (s *service) Delete(ctx context.Context, employeeID string) error {
	if _, err := uuid.Parse(employeeID); err != nil {
		return apperror.InvalidField("employee_id")
	}

	if _, err := s.repo.FindByEmployee(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if err := s.repo.DeleteByEmployee(ctx, employeeID); err != nil {
		s.logger.Error("delete schedule failed", zap.String("employee_id", employeeID), zap.Error(err))
		return err
	}

	s.logger.Info("delete schedule success", zap.String("employee_id", employeeID))
	return nil
}
