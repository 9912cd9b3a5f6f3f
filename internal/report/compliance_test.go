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

var complianceSchedule = schedule.Effective{StartTime: "09:00", EndTime: "17:00", ExpectedHours: 8.0}

type recordSpec struct {
	clockIn  string
	clockOut string
}

type attendanceList []recordSpec

func (l attendanceList) build(t *testing.T, empID uuid.UUID) []attendance.Attendance {
	t.Helper()
	records := make([]attendance.Attendance, 0, len(l))
	for _, spec := range l {
		if spec.clockOut == "" {
			records = append(records, openRecord(t, empID, spec.clockIn))
			continue
		}
		records = append(records, completedRecord(t, empID, spec.clockIn, spec.clockOut))
	}
	return records
}

func TestCompare_PerDayVariance(t *testing.T) {
	empID := uuid.New()
	records := attendanceList{
		{clockIn: "2025-12-01T08:55:00", clockOut: "2025-12-01T17:05:00"}, // early, meets hours
		{clockIn: "2025-12-02T09:20:00", clockOut: "2025-12-02T17:00:00"}, // late, undertime
		{clockIn: "2025-12-03T09:00:00", clockOut: "2025-12-03T17:00:00"}, // exactly on time
	}.build(t, empID)

	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 7, 0, 0, 0, 0, time.UTC)
	rep, err := Compare(empID.String(), start, end, records, complianceSchedule, time.UTC)
	require.NoError(t, err)

	require.Len(t, rep.Days, 3)

	early := rep.Days[0]
	assert.Equal(t, "08:55", early.ActualStart)
	assert.Equal(t, -5, early.StartVarianceMinutes)
	assert.True(t, early.OnTime)
	assert.True(t, early.MeetsExpectedHours)
	assert.True(t, early.Compliant)
	assert.InDelta(t, 0.17, early.HoursVariance, 0.001)

	late := rep.Days[1]
	assert.Equal(t, 20, late.StartVarianceMinutes)
	assert.False(t, late.OnTime)
	assert.False(t, late.MeetsExpectedHours)
	assert.False(t, late.Compliant)
	assert.InDelta(t, -0.33, late.HoursVariance, 0.001)

	// Variance nol berarti on-time: aturan <= 0, bukan strict
	exact := rep.Days[2]
	assert.Equal(t, 0, exact.StartVarianceMinutes)
	assert.True(t, exact.OnTime)
	assert.True(t, exact.Compliant)
}

func TestCompare_SummaryUsesSignedAverages(t *testing.T) {
	empID := uuid.New()
	records := attendanceList{
		{clockIn: "2025-12-01T08:50:00", clockOut: "2025-12-01T17:00:00"}, // -10 menit
		{clockIn: "2025-12-02T09:10:00", clockOut: "2025-12-02T17:00:00"}, // +10 menit
	}.build(t, empID)

	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 7, 0, 0, 0, 0, time.UTC)
	rep, err := Compare(empID.String(), start, end, records, complianceSchedule, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, 2, rep.Summary.TotalDays)
	assert.Equal(t, 1, rep.Summary.OnTimeDays)
	assert.Equal(t, 50.0, rep.Summary.OnTimePercent)
	// Cepat dan telat saling meniadakan
	assert.Equal(t, 0.0, rep.Summary.AvgStartVarianceMinutes)
}

func TestCompare_IgnoresIncompleteRecords(t *testing.T) {
	empID := uuid.New()
	records := attendanceList{
		{clockIn: "2025-12-01T09:00:00", clockOut: "2025-12-01T17:00:00"},
		{clockIn: "2025-12-02T09:00:00"},
	}.build(t, empID)

	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 7, 0, 0, 0, 0, time.UTC)
	rep, err := Compare(empID.String(), start, end, records, complianceSchedule, time.UTC)
	require.NoError(t, err)

	assert.Len(t, rep.Days, 1)
	assert.Equal(t, 1, rep.Summary.TotalDays)
}

func TestCompare_EmptyRange(t *testing.T) {
	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 7, 0, 0, 0, 0, time.UTC)
	rep, err := Compare(uuid.NewString(), start, end, nil, complianceSchedule, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, 0, rep.Summary.TotalDays)
	assert.Equal(t, 0.0, rep.Summary.OnTimePercent)
	assert.Empty(t, rep.Days)
}

func TestCompare_MalformedScheduleFailsLoudly(t *testing.T) {
	empID := uuid.New()
	records := attendanceList{
		{clockIn: "2025-12-01T09:00:00", clockOut: "2025-12-01T17:00:00"},
	}.build(t, empID)

	bad := schedule.Effective{StartTime: "morning", EndTime: "17:00", ExpectedHours: 8.0}
	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	_, err := Compare(empID.String(), start, start, records, bad, time.UTC)
	assert.Error(t, err)
}
