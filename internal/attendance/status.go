package attendance

import (
	"fmt"
	"math"
	"time"

	"go-timeclock/internal/schedule"
	"go-timeclock/internal/shared/apperror"
)

// StatusResult adalah klasifikasi turunan satu record absensi terhadap
// jadwal efektifnya. Tidak pernah dipersist; dihitung ulang setiap kali
// dari timestamp mentah.
//
// Untuk record lengkap berlaku tepat satu dari {undertime, overtime,
// keduanya false}: jam sama persis dengan ekspektasi berarti bukan
// keduanya. Keterlambatan independen dari perbandingan jam.
type StatusResult struct {
	ClockInTime    string  `json:"clock_in_time"` // HH:MM
	HoursWorked    float64 `json:"hours_worked"`
	IsComplete     bool    `json:"is_complete"`
	IsLate         bool    `json:"is_late"`
	LateMinutes    int     `json:"late_minutes"`
	IsUndertime    bool    `json:"is_undertime"`
	UndertimeHours float64 `json:"undertime_hours"`
	IsOvertime     bool    `json:"is_overtime"`
	OvertimeHours  float64 `json:"overtime_hours"`
}

// AnnotatedRecord memasangkan record dengan status turunannya.
type AnnotatedRecord struct {
	Record Attendance
	Status StatusResult
}

// Classify menghitung status satu record absensi. Fungsi murni: tidak ada
// side effect, tidak ada clock ambient, semuanya dari argumen.
//
// Record tanpa clock-out hanya dapat vonis keterlambatan; flag berbasis
// jam dipaksa false/nol. Keterlambatan strict: clock-in tepat pada jam
// mulai tidak pernah terlambat.
func Classify(clockIn time.Time, clockOut *time.Time, sched schedule.Effective, loc *time.Location) (StatusResult, error) {
	localIn := clockIn.In(loc)

	expectedStart, err := atTimeOfDay(localIn, sched.StartTime, loc)
	if err != nil {
		return StatusResult{}, err
	}

	result := StatusResult{
		ClockInTime: localIn.Format("15:04"),
	}

	if localIn.After(expectedStart) {
		result.IsLate = true
		result.LateMinutes = int(math.Round(localIn.Sub(expectedStart).Minutes()))
	}

	if clockOut == nil {
		return result, nil
	}

	if clockOut.Before(clockIn) {
		return StatusResult{}, apperror.Computation("clock_out is before clock_in")
	}

	result.IsComplete = true
	result.HoursWorked = Round2(clockOut.Sub(clockIn).Hours())

	switch {
	case result.HoursWorked < sched.ExpectedHours:
		result.IsUndertime = true
		result.UndertimeHours = Round2(sched.ExpectedHours - result.HoursWorked)
	case result.HoursWorked > sched.ExpectedHours:
		result.IsOvertime = true
		result.OvertimeHours = Round2(result.HoursWorked - sched.ExpectedHours)
	}

	return result, nil
}

// Annotate mengklasifikasi satu record persisten.
func Annotate(a Attendance, sched schedule.Effective, loc *time.Location) (AnnotatedRecord, error) {
	status, err := Classify(a.ClockIn, a.ClockOut, sched, loc)
	if err != nil {
		return AnnotatedRecord{}, err
	}
	return AnnotatedRecord{Record: a, Status: status}, nil
}

// Round2 membulatkan ke 2 desimal. Dipakai di SETIAP langkah agregasi,
// bukan hanya hasil akhir, supaya total report bisa direproduksi persis.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// atTimeOfDay menempatkan jam HH:MM pada tanggal kalender t (lokal).
// Jam schedule yang rusak adalah computation error, bukan default diam.
func atTimeOfDay(t time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, apperror.Computation(fmt.Sprintf("malformed schedule time %q", hhmm))
	}
	return time.Date(t.Year(), t.Month(), t.Day(), parsed.Hour(), parsed.Minute(), 0, 0, loc), nil
}
