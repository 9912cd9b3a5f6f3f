package payroll

import (
	"context"
	"errors"
	"sort"
	"time"

	"go-timeclock/internal/attendance"
	"go-timeclock/internal/employee"
	employeeerrors "go-timeclock/internal/employee/errors"
	"go-timeclock/internal/report"
	"go-timeclock/internal/schedule"
	"go-timeclock/internal/shared/apperror"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	ComputeOne(ctx context.Context, employeeID, startDate, endDate string, hourlyRate float64) (PayrollReport, error)
	ComputeAll(ctx context.Context, startDate, endDate string, hourlyRate float64) (PayrollRunReport, error)
}

type service struct {
	attendanceRepo attendance.Repository
	employeeRepo   employee.Repository
	resolver       *schedule.Resolver
	loc            *time.Location
	logger         *zap.Logger
}

func NewService(
	attendanceRepo attendance.Repository,
	employeeRepo employee.Repository,
	resolver *schedule.Resolver,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		resolver:       resolver,
		loc:            loc,
		logger:         l,
	}
}

func (s *service) ComputeOne(ctx context.Context, employeeID, startDate, endDate string, hourlyRate float64) (PayrollReport, error) {
	start, end, err := s.parseRange(startDate, endDate)
	if err != nil {
		return PayrollReport{}, err
	}
	if hourlyRate <= 0 {
		return PayrollReport{}, apperror.InvalidField("hourly_rate")
	}

	empl, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollReport{}, employeeerrors.ErrEmployeeNotFound
		}
		return PayrollReport{}, err
	}

	records, err := s.attendanceRepo.FindByEmployeeAndRange(ctx, employeeID, start, end.AddDate(0, 0, 1))
	if err != nil {
		s.logger.Error("payroll attendance query failed", zap.String("employee_id", employeeID), zap.Error(err))
		return PayrollReport{}, err
	}

	sched, err := s.resolver.Resolve(ctx, employeeID)
	if err != nil {
		return PayrollReport{}, err
	}

	rep, err := s.buildReport(empl, start, end, hourlyRate, records, sched)
	if err != nil {
		return PayrollReport{}, err
	}

	s.logger.Info("payroll computed",
		zap.String("employee_id", employeeID),
		zap.Float64("total_hours", rep.TotalHours),
		zap.Float64("amount", rep.PayrollAmount),
	)
	return rep, nil
}

// ComputeAll menjalankan perhitungan yang sama untuk semua karyawan
// aktif. Karyawan tanpa absensi tetap masuk hasil dengan nol.
func (s *service) ComputeAll(ctx context.Context, startDate, endDate string, hourlyRate float64) (PayrollRunReport, error) {
	start, end, err := s.parseRange(startDate, endDate)
	if err != nil {
		return PayrollRunReport{}, err
	}
	if hourlyRate <= 0 {
		return PayrollRunReport{}, apperror.InvalidField("hourly_rate")
	}

	employees, err := s.employeeRepo.FindAllActive(ctx)
	if err != nil {
		s.logger.Error("payroll employee query failed", zap.Error(err))
		return PayrollRunReport{}, err
	}
	records, err := s.attendanceRepo.FindAllInRange(ctx, start, end.AddDate(0, 0, 1))
	if err != nil {
		s.logger.Error("payroll attendance query failed", zap.Error(err))
		return PayrollRunReport{}, err
	}

	byEmployee := make(map[string][]attendance.Attendance)
	for _, r := range records {
		id := r.EmployeeID.String()
		byEmployee[id] = append(byEmployee[id], r)
	}

	run := PayrollRunReport{
		StartDate:  start.Format(dateLayout),
		EndDate:    end.Format(dateLayout),
		HourlyRate: hourlyRate,
		Employees:  make([]PayrollReport, 0, len(employees)),
	}
	for i := range employees {
		empl := &employees[i]
		sched, err := s.resolver.Resolve(ctx, empl.ID.String())
		if err != nil {
			return PayrollRunReport{}, err
		}
		rep, err := s.buildReport(empl, start, end, hourlyRate, byEmployee[empl.ID.String()], sched)
		if err != nil {
			// Satu karyawan bermasalah tidak boleh merusak run: lewati
			// dengan log, sisanya tetap dihitung
			s.logger.Warn("payroll computation skipped for employee",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			continue
		}
		run.Employees = append(run.Employees, rep)
		run.TotalHours = attendance.Round2(run.TotalHours + rep.TotalHours)
		run.TotalAmount = attendance.Round2(run.TotalAmount + rep.PayrollAmount)
	}

	s.logger.Info("payroll run computed",
		zap.Int("employees", len(run.Employees)),
		zap.Float64("total_amount", run.TotalAmount),
	)
	return run, nil
}

func (s *service) buildReport(
	empl *employee.Employee,
	start, end time.Time,
	hourlyRate float64,
	records []attendance.Attendance,
	sched schedule.Effective,
) (PayrollReport, error) {
	rep := PayrollReport{
		EmployeeID:     empl.ID.String(),
		EmployeeName:   empl.FullName,
		StartDate:      start.Format(dateLayout),
		EndDate:        end.Format(dateLayout),
		HourlyRate:     hourlyRate,
		DailyBreakdown: []PayrollDay{},
	}

	type dayTotal struct {
		hours       float64
		late        bool
		lateMinutes int
	}
	perDay := make(map[string]*dayTotal)
	for _, r := range records {
		annotated, err := attendance.Annotate(r, sched, s.loc)
		if err != nil {
			return PayrollReport{}, err
		}
		day := r.ClockIn.In(s.loc).Format(dateLayout)
		dt, ok := perDay[day]
		if !ok {
			dt = &dayTotal{}
			perDay[day] = dt
		}
		dt.hours = attendance.Round2(dt.hours + annotated.Status.HoursWorked)
		if annotated.Status.IsLate && !dt.late {
			dt.late = true
			dt.lateMinutes = annotated.Status.LateMinutes
		}
	}

	days := make([]string, 0, len(perDay))
	for d := range perDay {
		days = append(days, d)
	}
	sort.Strings(days)

	for _, d := range days {
		dt := perDay[d]
		rep.DailyBreakdown = append(rep.DailyBreakdown, PayrollDay{
			Date:        d,
			HoursWorked: dt.hours,
			Amount:      attendance.Round2(dt.hours * hourlyRate),
			Late:        dt.late,
			LateMinutes: dt.lateMinutes,
		})
		rep.TotalHours = attendance.Round2(rep.TotalHours + dt.hours)
	}
	rep.PayrollAmount = attendance.Round2(rep.TotalHours * hourlyRate)
	rep.DaysWorked = len(days)

	workDays := report.ExpectedWorkDays(start, end, s.loc)
	rep.ExpectedWorkDays = len(workDays)
	for _, wd := range workDays {
		if _, ok := perDay[wd]; !ok {
			rep.MissingDays++
		}
	}
	if rep.ExpectedWorkDays > 0 {
		rep.AttendanceRatePercent = attendance.Round2(float64(rep.DaysWorked) / float64(rep.ExpectedWorkDays) * 100)
	}

	return rep, nil
}

func (s *service) parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	if startDate == "" {
		return time.Time{}, time.Time{}, apperror.RequiredField("start_date")
	}
	if endDate == "" {
		return time.Time{}, time.Time{}, apperror.RequiredField("end_date")
	}
	start, err := time.ParseInLocation(dateLayout, startDate, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.InvalidField("start_date")
	}
	end, err := time.ParseInLocation(dateLayout, endDate, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.InvalidField("end_date")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperror.New(apperror.CodeInvalidInput, "end_date is before start_date", 400)
	}
	return start, end, nil
}
