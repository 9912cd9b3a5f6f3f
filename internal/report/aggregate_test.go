package report

import (
	"testing"
	"time"

	"go-timeclock/internal/attendance"
	"go-timeclock/internal/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedRecord(t *testing.T, empID uuid.UUID, clockIn, clockOut string) attendance.Attendance {
	t.Helper()
	in, err := time.ParseInLocation(attendance.TimestampLayout, clockIn, time.UTC)
	require.NoError(t, err)
	out, err := time.ParseInLocation(attendance.TimestampLayout, clockOut, time.UTC)
	require.NoError(t, err)
	hours := attendance.Round2(out.Sub(in).Hours())
	return attendance.Attendance{
		ID:          uuid.New(),
		EmployeeID:  empID,
		ClockIn:     in,
		ClockOut:    &out,
		HoursWorked: &hours,
		Source:      attendance.SourceManual,
	}
}

func openRecord(t *testing.T, empID uuid.UUID, clockIn string) attendance.Attendance {
	t.Helper()
	in, err := time.ParseInLocation(attendance.TimestampLayout, clockIn, time.UTC)
	require.NoError(t, err)
	return attendance.Attendance{
		ID:         uuid.New(),
		EmployeeID: empID,
		ClockIn:    in,
		Source:     attendance.SourceManual,
	}
}

func TestAggregateDaily_MixedRecords(t *testing.T) {
	empID := uuid.New()
	records := []attendance.Attendance{
		completedRecord(t, empID, "2025-11-27T09:00:00", "2025-11-27T12:00:00"),
		completedRecord(t, empID, "2025-11-27T13:00:00", "2025-11-27T17:30:00"),
		openRecord(t, empID, "2025-11-27T19:00:00"),
		// Record hari lain harus terfilter
		completedRecord(t, empID, "2025-11-26T09:00:00", "2025-11-26T17:00:00"),
	}

	date := time.Date(2025, 11, 27, 0, 0, 0, 0, time.UTC)
	rep := AggregateDaily(empID.String(), date, records, time.UTC)

	assert.Equal(t, "2025-11-27", rep.Date)
	assert.Equal(t, 3, rep.TotalRecords)
	assert.Equal(t, 2, rep.CompletedCount)
	assert.Equal(t, 1, rep.IncompleteCount)
	assert.Equal(t, 7.5, rep.TotalHours)
	assert.Len(t, rep.Records, 3)
}

func TestAggregateDaily_NoRecords(t *testing.T) {
	date := time.Date(2025, 11, 27, 0, 0, 0, 0, time.UTC)
	rep := AggregateDaily(uuid.NewString(), date, nil, time.UTC)

	assert.Equal(t, 0.0, rep.TotalHours)
	assert.Equal(t, 0, rep.TotalRecords)
	assert.NotNil(t, rep.Records)
	assert.Empty(t, rep.Records)
}

func TestAggregateWeekly_GroupsByDate(t *testing.T) {
	empID := uuid.New()
	records := []attendance.Attendance{
		completedRecord(t, empID, "2025-12-01T09:00:00", "2025-12-01T17:00:00"),
		completedRecord(t, empID, "2025-12-02T09:00:00", "2025-12-02T18:00:00"),
		completedRecord(t, empID, "2025-12-02T19:00:00", "2025-12-02T20:00:00"),
		completedRecord(t, empID, "2025-12-04T09:00:00", "2025-12-04T16:00:00"),
	}

	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)
	rep := AggregateWeekly(empID.String(), start, end, records, time.UTC)

	assert.Equal(t, "2025-12-01", rep.StartDate)
	assert.Equal(t, "2025-12-07", rep.EndDate)
	assert.Equal(t, 3, rep.DaysWorked)
	assert.Equal(t, 25.0, rep.TotalHours)
	assert.InDelta(t, 8.33, rep.AvgHoursPerDay, 0.001)

	require.Len(t, rep.DailyBreakdown, 3)
	assert.Equal(t, "2025-12-02", rep.DailyBreakdown[1].Date)
	assert.Equal(t, 10.0, rep.DailyBreakdown[1].TotalHours)
	assert.Equal(t, 2, rep.DailyBreakdown[1].Records)
}

func TestAggregateWeekly_EmptyRangeNoDivisionError(t *testing.T) {
	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	rep := AggregateWeekly(uuid.NewString(), start, start.AddDate(0, 0, 6), nil, time.UTC)

	assert.Equal(t, 0, rep.DaysWorked)
	assert.Equal(t, 0.0, rep.AvgHoursPerDay)
	assert.Equal(t, 0.0, rep.TotalHours)
}

func TestAggregateMonthly_WeekBucketsByCalendarDay(t *testing.T) {
	empID := uuid.New()
	records := []attendance.Attendance{
		completedRecord(t, empID, "2025-12-01T09:00:00", "2025-12-01T17:00:00"), // Week 1
		completedRecord(t, empID, "2025-12-07T09:00:00", "2025-12-07T17:00:00"), // Week 1
		completedRecord(t, empID, "2025-12-08T09:00:00", "2025-12-08T17:00:00"), // Week 2
		completedRecord(t, empID, "2025-12-29T09:00:00", "2025-12-29T13:00:00"), // Week 5
		completedRecord(t, empID, "2025-12-31T09:00:00", "2025-12-31T13:00:00"), // Week 5
	}

	rep := AggregateMonthly(empID.String(), 2025, time.December, records, time.UTC)

	assert.Equal(t, 5, rep.DaysWorked)
	assert.Equal(t, 32.0, rep.TotalHours)

	require.Len(t, rep.WeeklySummary, 3)
	assert.Equal(t, "Week 1", rep.WeeklySummary[0].Week)
	assert.Equal(t, 16.0, rep.WeeklySummary[0].TotalHours)
	assert.Equal(t, 2, rep.WeeklySummary[0].DaysWorked)
	assert.Equal(t, "Week 2", rep.WeeklySummary[1].Week)
	assert.Equal(t, "Week 5", rep.WeeklySummary[2].Week)
	assert.Equal(t, 8.0, rep.WeeklySummary[2].TotalHours)
}

func TestSummarizeEmployee_VarianceAndCompliance(t *testing.T) {
	empID := uuid.New()
	sched := schedule.Effective{StartTime: "09:00", EndTime: "17:00", ExpectedHours: 8.0}
	records := []attendance.Attendance{
		completedRecord(t, empID, "2025-12-01T09:00:00", "2025-12-01T17:00:00"),
		completedRecord(t, empID, "2025-12-02T09:00:00", "2025-12-02T15:00:00"),
	}

	s := SummarizeEmployee(empID.String(), "Dewi Lestari", records, sched, time.UTC)

	assert.Equal(t, 14.0, s.TotalHours)
	assert.Equal(t, 2, s.DaysWorked)
	assert.Equal(t, 16.0, s.ExpectedTotalHours)
	assert.Equal(t, -2.0, s.Variance)
	assert.Equal(t, 87.5, s.CompliancePercent)
}

func TestSummarizeEmployee_ZeroRecords(t *testing.T) {
	sched := schedule.Effective{StartTime: "09:00", EndTime: "17:00", ExpectedHours: 8.0}
	s := SummarizeEmployee(uuid.NewString(), "Budi Santoso", nil, sched, time.UTC)

	assert.Equal(t, 0.0, s.TotalHours)
	assert.Equal(t, 0, s.DaysWorked)
	assert.Equal(t, 0.0, s.ExpectedTotalHours)
	assert.Equal(t, 0.0, s.Variance)
	// Guard expected = 0: persentase nol, bukan NaN
	assert.Equal(t, 0.0, s.CompliancePercent)
}
