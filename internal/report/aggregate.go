package report

import (
	"fmt"
	"sort"
	"time"

	"go-timeclock/internal/attendance"
	"go-timeclock/internal/schedule"
)

const dateLayout = "2006-01-02"

// Agregasi di package ini seluruhnya fungsi murni atas record yang sudah
// diambil caller. Pembulatan 2 desimal dilakukan di tiap langkah, bukan
// hanya hasil akhir, supaya total report bisa direproduksi persis dari
// breakdown-nya.

func recordHours(a attendance.Attendance) float64 {
	if a.HoursWorked == nil {
		return 0
	}
	return *a.HoursWorked
}

func recordDate(a attendance.Attendance, loc *time.Location) string {
	return a.ClockIn.In(loc).Format(dateLayout)
}

// AggregateDaily merangkum record satu karyawan pada satu tanggal
// kalender. Record dengan clock_out kosong tetap dihitung, jamnya nol.
func AggregateDaily(employeeID string, date time.Time, records []attendance.Attendance, loc *time.Location) DailyReport {
	day := date.In(loc).Format(dateLayout)
	rep := DailyReport{
		EmployeeID: employeeID,
		Date:       day,
		Records:    []RecordSummary{},
	}

	for _, r := range records {
		if recordDate(r, loc) != day {
			continue
		}
		summary := RecordSummary{
			ID:          r.ID.String(),
			ClockIn:     r.ClockIn.In(loc).Format(attendance.TimestampLayout),
			HoursWorked: recordHours(r),
			Complete:    r.ClockOut != nil,
		}
		if r.ClockOut != nil {
			v := r.ClockOut.In(loc).Format(attendance.TimestampLayout)
			summary.ClockOut = &v
			rep.CompletedCount++
		} else {
			rep.IncompleteCount++
		}
		rep.TotalRecords++
		rep.TotalHours = attendance.Round2(rep.TotalHours + summary.HoursWorked)
		rep.Records = append(rep.Records, summary)
	}

	return rep
}

// AggregateWeekly merangkum rentang [start, end] inklusif, dikelompokkan
// per tanggal. DaysWorked = jumlah tanggal berbeda dengan minimal satu
// record, tidak harus tujuh.
func AggregateWeekly(employeeID string, start, end time.Time, records []attendance.Attendance, loc *time.Location) WeeklyReport {
	buckets := bucketByDate(records, loc)

	rep := WeeklyReport{
		EmployeeID:     employeeID,
		StartDate:      start.In(loc).Format(dateLayout),
		EndDate:        end.In(loc).Format(dateLayout),
		DailyBreakdown: buckets,
	}
	for _, b := range buckets {
		rep.TotalHours = attendance.Round2(rep.TotalHours + b.TotalHours)
	}
	rep.DaysWorked = len(buckets)
	if rep.DaysWorked > 0 {
		rep.AvgHoursPerDay = attendance.Round2(rep.TotalHours / float64(rep.DaysWorked))
	}
	return rep
}

// AggregateMonthly merangkum satu bulan kalender. WeeklySummary memakai
// bucket ceil(tanggal/7), bukan minggu ISO.
func AggregateMonthly(employeeID string, year int, month time.Month, records []attendance.Attendance, loc *time.Location) MonthlyReport {
	buckets := bucketByDate(records, loc)

	rep := MonthlyReport{
		EmployeeID:     employeeID,
		Year:           year,
		Month:          int(month),
		DailyBreakdown: buckets,
		WeeklySummary:  []WeekBucket{},
	}

	weekTotals := make(map[int]*WeekBucket)
	for _, b := range buckets {
		rep.TotalHours = attendance.Round2(rep.TotalHours + b.TotalHours)

		parsed, err := time.ParseInLocation(dateLayout, b.Date, loc)
		if err != nil {
			continue
		}
		weekNo := (parsed.Day() + 6) / 7
		wb, ok := weekTotals[weekNo]
		if !ok {
			wb = &WeekBucket{Week: fmt.Sprintf("Week %d", weekNo)}
			weekTotals[weekNo] = wb
		}
		wb.TotalHours = attendance.Round2(wb.TotalHours + b.TotalHours)
		wb.DaysWorked++
	}

	rep.DaysWorked = len(buckets)
	if rep.DaysWorked > 0 {
		rep.AvgHoursPerDay = attendance.Round2(rep.TotalHours / float64(rep.DaysWorked))
	}

	weekNos := make([]int, 0, len(weekTotals))
	for n := range weekTotals {
		weekNos = append(weekNos, n)
	}
	sort.Ints(weekNos)
	for _, n := range weekNos {
		rep.WeeklySummary = append(rep.WeeklySummary, *weekTotals[n])
	}

	return rep
}

// SummarizeEmployee menilai satu karyawan terhadap jadwal efektifnya
// dalam rentang: expected = expectedHours x daysWorked, variance =
// actual dikurangi expected, compliance = actual/expected x 100.
func SummarizeEmployee(employeeID, employeeName string, records []attendance.Attendance, sched schedule.Effective, loc *time.Location) EmployeeSummary {
	buckets := bucketByDate(records, loc)

	s := EmployeeSummary{
		EmployeeID:   employeeID,
		EmployeeName: employeeName,
	}
	for _, b := range buckets {
		s.TotalHours = attendance.Round2(s.TotalHours + b.TotalHours)
	}
	s.DaysWorked = len(buckets)
	if s.DaysWorked > 0 {
		s.AvgHoursPerDay = attendance.Round2(s.TotalHours / float64(s.DaysWorked))
	}

	s.ExpectedTotalHours = attendance.Round2(sched.ExpectedHours * float64(s.DaysWorked))
	s.Variance = attendance.Round2(s.TotalHours - s.ExpectedTotalHours)
	if s.ExpectedTotalHours > 0 {
		s.CompliancePercent = attendance.Round2(s.TotalHours / s.ExpectedTotalHours * 100)
	}
	return s
}

func bucketByDate(records []attendance.Attendance, loc *time.Location) []DailyBucket {
	totals := make(map[string]*DailyBucket)
	for _, r := range records {
		day := recordDate(r, loc)
		b, ok := totals[day]
		if !ok {
			b = &DailyBucket{Date: day}
			totals[day] = b
		}
		b.TotalHours = attendance.Round2(b.TotalHours + recordHours(r))
		b.Records++
	}

	days := make([]string, 0, len(totals))
	for d := range totals {
		days = append(days, d)
	}
	sort.Strings(days)

	out := make([]DailyBucket, 0, len(days))
	for _, d := range days {
		out = append(out, *totals[d])
	}
	return out
}
