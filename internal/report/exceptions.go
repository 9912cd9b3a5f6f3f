package report

import (
	"time"

	"go-timeclock/internal/attendance"
)

const (
	ExceptionMissingClockOut = "missing_clock_out"
	ExceptionAbsent          = "absent"

	SeverityHigh   = "high"
	SeverityMedium = "medium"
)

// EmployeeLite cukup untuk pelaporan exception; detektor tidak perlu
// entity karyawan lengkap.
type EmployeeLite struct {
	ID   string
	Name string
}

// DetectExceptions mencari dua jenis anomali dalam rentang [start, end]
// inklusif: record tanpa clock-out dan hari kerja tanpa record sama
// sekali. Hari kerja fix Senin sampai Jumat, tanpa kalender libur.
//
// Record yang ada tapi belum clock-out tetap menghitung harinya hadir;
// satu kejadian tidak pernah dilaporkan dua kali.
func DetectExceptions(start, end time.Time, employees []EmployeeLite, records []attendance.Attendance, loc *time.Location) ExceptionReport {
	rep := ExceptionReport{
		StartDate:         start.In(loc).Format(dateLayout),
		EndDate:           end.In(loc).Format(dateLayout),
		IncompleteRecords: []IncompleteRecord{},
		MissingDays:       []MissingDay{},
	}

	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.Name
	}

	attended := make(map[string]map[string]bool)
	for _, r := range records {
		empID := r.EmployeeID.String()
		day := recordDate(r, loc)
		if attended[empID] == nil {
			attended[empID] = make(map[string]bool)
		}
		attended[empID][day] = true

		if r.ClockOut == nil {
			rep.IncompleteRecords = append(rep.IncompleteRecords, IncompleteRecord{
				AttendanceID: r.ID.String(),
				EmployeeID:   empID,
				EmployeeName: names[empID],
				Date:         day,
				ClockIn:      r.ClockIn.In(loc).Format(attendance.TimestampLayout),
				Type:         ExceptionMissingClockOut,
				Severity:     SeverityHigh,
			})
		}
	}

	workDays := ExpectedWorkDays(start, end, loc)
	for _, e := range employees {
		for _, day := range workDays {
			if !attended[e.ID][day] {
				rep.MissingDays = append(rep.MissingDays, MissingDay{
					EmployeeID:   e.ID,
					EmployeeName: e.Name,
					Date:         day,
					Type:         ExceptionAbsent,
					Severity:     SeverityMedium,
				})
			}
		}
	}

	flagged := make(map[string]bool)
	for _, r := range rep.IncompleteRecords {
		flagged[r.EmployeeID] = true
	}
	for _, m := range rep.MissingDays {
		flagged[m.EmployeeID] = true
	}

	rep.Summary = ExceptionSummary{
		IncompleteCount:     len(rep.IncompleteRecords),
		MissingDayCount:     len(rep.MissingDays),
		EmployeesWithIssues: len(flagged),
	}
	return rep
}

// ExpectedWorkDays mengembalikan tanggal Senin-Jumat dalam [start, end]
// inklusif, urut naik.
func ExpectedWorkDays(start, end time.Time, loc *time.Location) []string {
	var days []string
	cur := time.Date(start.In(loc).Year(), start.In(loc).Month(), start.In(loc).Day(), 0, 0, 0, 0, loc)
	last := time.Date(end.In(loc).Year(), end.In(loc).Month(), end.In(loc).Day(), 0, 0, 0, 0, loc)
	for !cur.After(last) {
		wd := cur.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			days = append(days, cur.Format(dateLayout))
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return days
}
