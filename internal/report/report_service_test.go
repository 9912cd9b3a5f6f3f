package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-timeclock/internal/attendance"
	"go-timeclock/internal/employee"
	employeeerrors "go-timeclock/internal/employee/errors"
	"go-timeclock/internal/schedule"
)

type fakeAttendanceRepo struct {
	byEmployee func(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error)
	allInRange func(ctx context.Context, from, to time.Time) ([]attendance.Attendance, error)
}

func (f *fakeAttendanceRepo) WithTx(tx *sql.Tx) attendance.Repository        { return f }
func (f *fakeAttendanceRepo) Create(ctx context.Context, a *attendance.Attendance) error { return nil }
func (f *fakeAttendanceRepo) FindByID(ctx context.Context, id string) (*attendance.Attendance, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeAttendanceRepo) FindOpenByEmployee(ctx context.Context, employeeID string) (*attendance.Attendance, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeAttendanceRepo) FindByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	if f.byEmployee != nil {
		return f.byEmployee(ctx, employeeID, from, to)
	}
	return nil, nil
}
func (f *fakeAttendanceRepo) FindAllInRange(ctx context.Context, from, to time.Time) ([]attendance.Attendance, error) {
	if f.allInRange != nil {
		return f.allInRange(ctx, from, to)
	}
	return nil, nil
}
func (f *fakeAttendanceRepo) FindAll(ctx context.Context) ([]attendance.Attendance, error) {
	return nil, nil
}
func (f *fakeAttendanceRepo) Update(ctx context.Context, a *attendance.Attendance) error { return nil }
func (f *fakeAttendanceRepo) Delete(ctx context.Context, id string) error                { return nil }

type fakeEmployeeRepo struct {
	active  []employee.Employee
	findErr error
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository                  { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return f.active, nil
}
func (f *fakeEmployeeRepo) FindAllActive(ctx context.Context) ([]employee.Employee, error) {
	return f.active, nil
}
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for i := range f.active {
		if f.active[i].ID.String() == id {
			return &f.active[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error            { return nil }

type fakeScheduleRepo struct {
	schedule *schedule.EmployeeSchedule
}

func (f *fakeScheduleRepo) WithTx(tx *sql.Tx) schedule.Repository { return f }
func (f *fakeScheduleRepo) Create(ctx context.Context, s *schedule.EmployeeSchedule) error {
	return nil
}
func (f *fakeScheduleRepo) FindByEmployee(ctx context.Context, employeeID string) (*schedule.EmployeeSchedule, error) {
	if f.schedule == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.schedule, nil
}
func (f *fakeScheduleRepo) Update(ctx context.Context, s *schedule.EmployeeSchedule) error {
	return nil
}
func (f *fakeScheduleRepo) DeleteByEmployee(ctx context.Context, employeeID string) error {
	return nil
}

func testResolver() *schedule.Resolver {
	return schedule.NewResolver(&fakeScheduleRepo{}, schedule.Defaults{
		StartTime:     "09:00",
		EndTime:       "17:00",
		ExpectedHours: 8.0,
	})
}

func activeEmployee(name string) employee.Employee {
	return employee.Employee{ID: uuid.New(), FullName: name, IsActive: true}
}

func TestDaily_CacheHitSkipsRepository(t *testing.T) {
	empl := activeEmployee("Siti Rahma")
	cached := DailyReport{
		EmployeeID: empl.ID.String(),
		Date:       "2025-12-01",
		TotalHours: 8.0,
	}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(DailyCacheKey(empl.ID.String(), "2025-12-01")).SetVal(string(payload))

	repoCalled := false
	attRepo := &fakeAttendanceRepo{
		byEmployee: func(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
			repoCalled = true
			return nil, nil
		},
	}
	svc := NewService(attRepo, &fakeEmployeeRepo{active: []employee.Employee{empl}}, testResolver(), rdb, time.UTC, zap.NewNop())

	rep, err := svc.Daily(context.Background(), empl.ID.String(), "2025-12-01")
	require.NoError(t, err)

	assert.Equal(t, 8.0, rep.TotalHours)
	assert.False(t, repoCalled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDaily_CacheMissComputesAndStores(t *testing.T) {
	empl := activeEmployee("Siti Rahma")
	records := []attendance.Attendance{
		completedRecord(t, empl.ID, "2025-12-01T09:00:00", "2025-12-01T17:00:00"),
	}

	attRepo := &fakeAttendanceRepo{
		byEmployee: func(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
			return records, nil
		},
	}

	expected := AggregateDaily(empl.ID.String(), time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), records, time.UTC)
	payload, err := json.Marshal(expected)
	require.NoError(t, err)

	rdb, mock := redismock.NewClientMock()
	key := DailyCacheKey(empl.ID.String(), "2025-12-01")
	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, payload, DailyCacheTTL).SetVal("OK")

	svc := NewService(attRepo, &fakeEmployeeRepo{active: []employee.Employee{empl}}, testResolver(), rdb, time.UTC, zap.NewNop())

	rep, err := svc.Daily(context.Background(), empl.ID.String(), "2025-12-01")
	require.NoError(t, err)

	assert.Equal(t, 8.0, rep.TotalHours)
	assert.Equal(t, 1, rep.CompletedCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDaily_UnknownEmployee(t *testing.T) {
	svc := NewService(&fakeAttendanceRepo{}, &fakeEmployeeRepo{}, testResolver(), nil, time.UTC, zap.NewNop())

	_, err := svc.Daily(context.Background(), uuid.NewString(), "2025-12-01")
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestWeekly_DefaultsToSevenDays(t *testing.T) {
	empl := activeEmployee("Siti Rahma")
	var gotFrom, gotTo time.Time
	attRepo := &fakeAttendanceRepo{
		byEmployee: func(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
			gotFrom, gotTo = from, to
			return nil, nil
		},
	}
	svc := NewService(attRepo, &fakeEmployeeRepo{active: []employee.Employee{empl}}, testResolver(), nil, time.UTC, zap.NewNop())

	rep, err := svc.Weekly(context.Background(), empl.ID.String(), "2025-12-01", "")
	require.NoError(t, err)

	assert.Equal(t, "2025-12-07", rep.EndDate)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), gotFrom)
	assert.Equal(t, time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC), gotTo)
	assert.Equal(t, 0, rep.DaysWorked)
	assert.Equal(t, 0.0, rep.AvgHoursPerDay)
}

func TestSummary_IncludesEmployeesWithoutRecords(t *testing.T) {
	worked := activeEmployee("Siti Rahma")
	idle := activeEmployee("Budi Santoso")

	records := []attendance.Attendance{
		completedRecord(t, worked.ID, "2025-12-01T09:00:00", "2025-12-01T17:00:00"),
	}
	attRepo := &fakeAttendanceRepo{
		allInRange: func(ctx context.Context, from, to time.Time) ([]attendance.Attendance, error) {
			return records, nil
		},
	}
	svc := NewService(attRepo, &fakeEmployeeRepo{active: []employee.Employee{worked, idle}}, testResolver(), nil, time.UTC, zap.NewNop())

	rep, err := svc.Summary(context.Background(), "2025-12-01", "2025-12-05")
	require.NoError(t, err)

	require.Len(t, rep.Employees, 2)
	assert.Equal(t, 8.0, rep.Employees[0].TotalHours)
	// Left join: karyawan tanpa record tetap muncul dengan nol
	assert.Equal(t, 0.0, rep.Employees[1].TotalHours)
	assert.Equal(t, 0, rep.Employees[1].DaysWorked)
}

func TestExceptions_AllActiveWhenNoEmployeeFilter(t *testing.T) {
	empl := activeEmployee("Siti Rahma")
	attRepo := &fakeAttendanceRepo{}
	svc := NewService(attRepo, &fakeEmployeeRepo{active: []employee.Employee{empl}}, testResolver(), nil, time.UTC, zap.NewNop())

	rep, err := svc.Exceptions(context.Background(), "2025-12-01", "2025-12-07", "")
	require.NoError(t, err)

	assert.Len(t, rep.MissingDays, 5)
	assert.Equal(t, 1, rep.Summary.EmployeesWithIssues)
}

func TestReportService_RejectsMissingDates(t *testing.T) {
	svc := NewService(&fakeAttendanceRepo{}, &fakeEmployeeRepo{}, testResolver(), nil, time.UTC, zap.NewNop())

	_, err := svc.Summary(context.Background(), "", "2025-12-05")
	assert.Error(t, err)

	_, err = svc.Compliance(context.Background(), uuid.NewString(), "2025-12-01", "")
	assert.Error(t, err)

	_, err = svc.Weekly(context.Background(), uuid.NewString(), "", "")
	assert.Error(t, err)
}
