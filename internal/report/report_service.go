package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-timeclock/internal/attendance"
	"go-timeclock/internal/employee"
	employeeerrors "go-timeclock/internal/employee/errors"
	"go-timeclock/internal/schedule"
	"go-timeclock/internal/shared/apperror"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	// DailyCacheKeyFormat dipakai service dan consumer pemanas cache.
	DailyCacheKeyFormat = "report:daily:%s:%s"
	DailyCacheTTL       = 15 * time.Minute
)

func DailyCacheKey(employeeID, date string) string {
	return fmt.Sprintf(DailyCacheKeyFormat, employeeID, date)
}

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Daily(ctx context.Context, employeeID, date string) (DailyReport, error)
	RefreshDaily(ctx context.Context, employeeID, date string) (DailyReport, error)
	Weekly(ctx context.Context, employeeID, startDate, endDate string) (WeeklyReport, error)
	Monthly(ctx context.Context, employeeID string, year, month int) (MonthlyReport, error)
	Summary(ctx context.Context, startDate, endDate string) (SummaryReport, error)
	Compliance(ctx context.Context, employeeID, startDate, endDate string) (ComplianceReport, error)
	Exceptions(ctx context.Context, startDate, endDate, employeeID string) (ExceptionReport, error)
}

type service struct {
	attendanceRepo attendance.Repository
	employeeRepo   employee.Repository
	resolver       *schedule.Resolver
	rdb            *redis.Client
	sf             *singleflight.Group
	loc            *time.Location
	logger         *zap.Logger
}

func NewService(
	attendanceRepo attendance.Repository,
	employeeRepo employee.Repository,
	resolver *schedule.Resolver,
	rdb *redis.Client,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		resolver:       resolver,
		rdb:            rdb,
		sf:             &singleflight.Group{},
		loc:            loc,
		logger:         l,
	}
}

func (s *service) Daily(ctx context.Context, employeeID, date string) (DailyReport, error) {
	day, err := s.parseDate(date, "date")
	if err != nil {
		return DailyReport{}, err
	}
	if err := s.ensureEmployee(ctx, employeeID); err != nil {
		return DailyReport{}, err
	}

	cacheKey := DailyCacheKey(employeeID, day.Format(dateLayout))

	// 1. Cek Redis; consumer clock-out sudah memanaskan key ini
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var rep DailyReport
			if json.Unmarshal([]byte(cached), &rep) == nil {
				return rep, nil
			}
		}
	}

	// 2. Singleflight supaya stampede di satu tanggal cuma query sekali
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		return s.computeAndCacheDaily(ctx, employeeID, day)
	})
	if err != nil {
		s.logger.Error("daily report failed",
			zap.String("employee_id", employeeID),
			zap.String("date", date),
			zap.Error(err),
		)
		return DailyReport{}, err
	}
	return v.(DailyReport), nil
}

// RefreshDaily menghitung ulang tanpa membaca cache dan menimpa entri
// lama. Dipanggil consumer clock-out supaya cache tidak basi.
func (s *service) RefreshDaily(ctx context.Context, employeeID, date string) (DailyReport, error) {
	day, err := s.parseDate(date, "date")
	if err != nil {
		return DailyReport{}, err
	}
	if err := s.ensureEmployee(ctx, employeeID); err != nil {
		return DailyReport{}, err
	}
	return s.computeAndCacheDaily(ctx, employeeID, day)
}

func (s *service) computeAndCacheDaily(ctx context.Context, employeeID string, day time.Time) (DailyReport, error) {
	records, err := s.attendanceRepo.FindByEmployeeAndRange(ctx, employeeID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return DailyReport{}, err
	}
	rep := AggregateDaily(employeeID, day, records, s.loc)

	if s.rdb != nil {
		cacheKey := DailyCacheKey(employeeID, day.Format(dateLayout))
		if payload, err := json.Marshal(rep); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, payload, DailyCacheTTL).Err(); err != nil {
				s.logger.Warn("daily report cache write failed", zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}
	return rep, nil
}

func (s *service) Weekly(ctx context.Context, employeeID, startDate, endDate string) (WeeklyReport, error) {
	start, err := s.parseDate(startDate, "start_date")
	if err != nil {
		return WeeklyReport{}, err
	}

	// Default: tujuh hari kalender inklusif
	end := start.AddDate(0, 0, 6)
	if endDate != "" {
		end, err = s.parseDate(endDate, "end_date")
		if err != nil {
			return WeeklyReport{}, err
		}
	}
	if end.Before(start) {
		return WeeklyReport{}, apperror.New(apperror.CodeInvalidInput, "end_date is before start_date", 400)
	}

	if err := s.ensureEmployee(ctx, employeeID); err != nil {
		return WeeklyReport{}, err
	}

	records, err := s.attendanceRepo.FindByEmployeeAndRange(ctx, employeeID, start, end.AddDate(0, 0, 1))
	if err != nil {
		s.logger.Error("weekly report query failed", zap.String("employee_id", employeeID), zap.Error(err))
		return WeeklyReport{}, err
	}
	return AggregateWeekly(employeeID, start, end, records, s.loc), nil
}

func (s *service) Monthly(ctx context.Context, employeeID string, year, month int) (MonthlyReport, error) {
	if year < 2000 || year > 2200 {
		return MonthlyReport{}, apperror.InvalidField("year")
	}
	if month < 1 || month > 12 {
		return MonthlyReport{}, apperror.InvalidField("month")
	}
	if err := s.ensureEmployee(ctx, employeeID); err != nil {
		return MonthlyReport{}, err
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.loc)
	to := from.AddDate(0, 1, 0)

	records, err := s.attendanceRepo.FindByEmployeeAndRange(ctx, employeeID, from, to)
	if err != nil {
		s.logger.Error("monthly report query failed", zap.String("employee_id", employeeID), zap.Error(err))
		return MonthlyReport{}, err
	}
	return AggregateMonthly(employeeID, year, time.Month(month), records, s.loc), nil
}

// Summary adalah left-join semua karyawan aktif terhadap absensi dalam
// rentang: karyawan tanpa record tetap muncul dengan total nol.
func (s *service) Summary(ctx context.Context, startDate, endDate string) (SummaryReport, error) {
	start, end, err := s.parseRange(startDate, endDate)
	if err != nil {
		return SummaryReport{}, err
	}

	employees, err := s.employeeRepo.FindAllActive(ctx)
	if err != nil {
		s.logger.Error("summary report employee query failed", zap.Error(err))
		return SummaryReport{}, err
	}
	records, err := s.attendanceRepo.FindAllInRange(ctx, start, end.AddDate(0, 0, 1))
	if err != nil {
		s.logger.Error("summary report attendance query failed", zap.Error(err))
		return SummaryReport{}, err
	}

	byEmployee := make(map[string][]attendance.Attendance)
	for _, r := range records {
		id := r.EmployeeID.String()
		byEmployee[id] = append(byEmployee[id], r)
	}

	rep := SummaryReport{
		StartDate: start.Format(dateLayout),
		EndDate:   end.Format(dateLayout),
		Employees: make([]EmployeeSummary, 0, len(employees)),
	}
	for _, e := range employees {
		id := e.ID.String()
		sched, err := s.resolver.Resolve(ctx, id)
		if err != nil {
			return SummaryReport{}, err
		}
		rep.Employees = append(rep.Employees, SummarizeEmployee(id, e.FullName, byEmployee[id], sched, s.loc))
	}
	return rep, nil
}

func (s *service) Compliance(ctx context.Context, employeeID, startDate, endDate string) (ComplianceReport, error) {
	start, end, err := s.parseRange(startDate, endDate)
	if err != nil {
		return ComplianceReport{}, err
	}
	if err := s.ensureEmployee(ctx, employeeID); err != nil {
		return ComplianceReport{}, err
	}

	sched, err := s.resolver.Resolve(ctx, employeeID)
	if err != nil {
		return ComplianceReport{}, err
	}
	records, err := s.attendanceRepo.FindByEmployeeAndRange(ctx, employeeID, start, end.AddDate(0, 0, 1))
	if err != nil {
		s.logger.Error("compliance report query failed", zap.String("employee_id", employeeID), zap.Error(err))
		return ComplianceReport{}, err
	}
	return Compare(employeeID, start, end, records, sched, s.loc)
}

func (s *service) Exceptions(ctx context.Context, startDate, endDate, employeeID string) (ExceptionReport, error) {
	start, end, err := s.parseRange(startDate, endDate)
	if err != nil {
		return ExceptionReport{}, err
	}

	var (
		employees []EmployeeLite
		records   []attendance.Attendance
	)
	if employeeID != "" {
		empl, err := s.employeeRepo.FindByID(ctx, employeeID)
		if err != nil {
			return ExceptionReport{}, mapEmployeeError(err)
		}
		employees = []EmployeeLite{{ID: empl.ID.String(), Name: empl.FullName}}
		records, err = s.attendanceRepo.FindByEmployeeAndRange(ctx, employeeID, start, end.AddDate(0, 0, 1))
		if err != nil {
			s.logger.Error("exception report query failed", zap.String("employee_id", employeeID), zap.Error(err))
			return ExceptionReport{}, err
		}
	} else {
		active, err := s.employeeRepo.FindAllActive(ctx)
		if err != nil {
			s.logger.Error("exception report employee query failed", zap.Error(err))
			return ExceptionReport{}, err
		}
		for _, e := range active {
			employees = append(employees, EmployeeLite{ID: e.ID.String(), Name: e.FullName})
		}
		records, err = s.attendanceRepo.FindAllInRange(ctx, start, end.AddDate(0, 0, 1))
		if err != nil {
			s.logger.Error("exception report attendance query failed", zap.Error(err))
			return ExceptionReport{}, err
		}
	}

	return DetectExceptions(start, end, employees, records, s.loc), nil
}

func (s *service) ensureEmployee(ctx context.Context, employeeID string) error {
	if employeeID == "" {
		return apperror.RequiredField("employee_id")
	}
	if _, err := s.employeeRepo.FindByID(ctx, employeeID); err != nil {
		return mapEmployeeError(err)
	}
	return nil
}

func (s *service) parseDate(value, field string) (time.Time, error) {
	if value == "" {
		return time.Time{}, apperror.RequiredField(field)
	}
	parsed, err := time.ParseInLocation(dateLayout, value, s.loc)
	if err != nil {
		return time.Time{}, apperror.InvalidField(field)
	}
	return parsed, nil
}

func (s *service) parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := s.parseDate(startDate, "start_date")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := s.parseDate(endDate, "end_date")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperror.New(apperror.CodeInvalidInput, "end_date is before start_date", 400)
	}
	return start, end, nil
}

func mapEmployeeError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	return err
}
