package report

import (
	"math"
	"sort"
	"time"

	"go-timeclock/internal/attendance"
	"go-timeclock/internal/schedule"
	"go-timeclock/internal/shared/apperror"
)

// Compare menilai kedisiplinan per hari terhadap jadwal efektif. Hanya
// record lengkap yang diperhitungkan; hari tanpa record lengkap tidak
// muncul sama sekali.
//
// OnTime di sini adalah variance <= 0: datang tepat pada jam mulai
// dihitung on-time. Ini SENGAJA berbeda dari aturan keterlambatan
// classifier yang strict-after; keduanya menjawab pertanyaan berbeda
// dan tidak boleh dicampur.
func Compare(employeeID string, start, end time.Time, records []attendance.Attendance, sched schedule.Effective, loc *time.Location) (ComplianceReport, error) {
	rep := ComplianceReport{
		EmployeeID: employeeID,
		StartDate:  start.In(loc).Format(dateLayout),
		EndDate:    end.In(loc).Format(dateLayout),
		Days:       []DayComparison{},
	}

	type dayAgg struct {
		firstIn time.Time
		lastOut time.Time
		hours   float64
	}
	perDay := make(map[string]*dayAgg)
	for _, r := range records {
		if r.ClockOut == nil {
			continue
		}
		day := recordDate(r, loc)
		agg, ok := perDay[day]
		if !ok {
			agg = &dayAgg{firstIn: r.ClockIn, lastOut: *r.ClockOut}
			perDay[day] = agg
		} else {
			if r.ClockIn.Before(agg.firstIn) {
				agg.firstIn = r.ClockIn
			}
			if r.ClockOut.After(agg.lastOut) {
				agg.lastOut = *r.ClockOut
			}
		}
		agg.hours = attendance.Round2(agg.hours + recordHours(r))
	}

	days := make([]string, 0, len(perDay))
	for d := range perDay {
		days = append(days, d)
	}
	sort.Strings(days)

	var sumStartVariance, sumHoursVariance float64
	for _, day := range days {
		agg := perDay[day]
		localIn := agg.firstIn.In(loc)

		expectedStart, err := scheduleInstant(localIn, sched.StartTime, loc)
		if err != nil {
			return ComplianceReport{}, err
		}

		cmp := DayComparison{
			Date:                 day,
			ActualStart:          localIn.Format("15:04"),
			ActualEnd:            agg.lastOut.In(loc).Format("15:04"),
			StartVarianceMinutes: int(math.Round(localIn.Sub(expectedStart).Minutes())),
			HoursWorked:          agg.hours,
			HoursVariance:        attendance.Round2(agg.hours - sched.ExpectedHours),
		}
		cmp.OnTime = cmp.StartVarianceMinutes <= 0
		cmp.MeetsExpectedHours = cmp.HoursWorked >= sched.ExpectedHours
		cmp.Compliant = cmp.OnTime && cmp.MeetsExpectedHours

		rep.Days = append(rep.Days, cmp)

		sumStartVariance += float64(cmp.StartVarianceMinutes)
		sumHoursVariance += cmp.HoursVariance

		rep.Summary.TotalDays++
		if cmp.OnTime {
			rep.Summary.OnTimeDays++
		}
		if cmp.MeetsExpectedHours {
			rep.Summary.MeetsHoursDays++
		}
		if cmp.Compliant {
			rep.Summary.CompliantDays++
		}
	}

	if rep.Summary.TotalDays > 0 {
		n := float64(rep.Summary.TotalDays)
		rep.Summary.OnTimePercent = attendance.Round2(float64(rep.Summary.OnTimeDays) / n * 100)
		rep.Summary.MeetsHoursPercent = attendance.Round2(float64(rep.Summary.MeetsHoursDays) / n * 100)
		rep.Summary.CompliantPercent = attendance.Round2(float64(rep.Summary.CompliantDays) / n * 100)
		// Rata-rata nilai bertanda: hari cepat dan hari telat saling
		// meniadakan, itu memang semantiknya
		rep.Summary.AvgStartVarianceMinutes = attendance.Round2(sumStartVariance / n)
		rep.Summary.AvgHoursVariance = attendance.Round2(sumHoursVariance / n)
	}

	return rep, nil
}

func scheduleInstant(t time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, apperror.Computation("malformed schedule time " + hhmm)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), parsed.Hour(), parsed.Minute(), 0, 0, loc), nil
}
