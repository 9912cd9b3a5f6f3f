package report

// Tanggal di semua DTO report berformat YYYY-MM-DD, jam HH:MM, sesuai
// kontrak API absensi.

type RecordSummary struct {
	ID          string   `json:"id"`
	ClockIn     string   `json:"clock_in"`
	ClockOut    *string  `json:"clock_out,omitempty"`
	HoursWorked float64  `json:"hours_worked"`
	Complete    bool     `json:"complete"`
}

type DailyReport struct {
	EmployeeID      string          `json:"employee_id"`
	Date            string          `json:"date"`
	TotalHours      float64         `json:"total_hours"`
	TotalRecords    int             `json:"total_records"`
	CompletedCount  int             `json:"completed_count"`
	IncompleteCount int             `json:"incomplete_count"`
	Records         []RecordSummary `json:"records"`
}

type DailyBucket struct {
	Date       string  `json:"date"`
	TotalHours float64 `json:"total_hours"`
	Records    int     `json:"records"`
}

type WeeklyReport struct {
	EmployeeID     string        `json:"employee_id"`
	StartDate      string        `json:"start_date"`
	EndDate        string        `json:"end_date"`
	TotalHours     float64       `json:"total_hours"`
	DaysWorked     int           `json:"days_worked"`
	AvgHoursPerDay float64       `json:"avg_hours_per_day"`
	DailyBreakdown []DailyBucket `json:"daily_breakdown"`
}

// WeekBucket mengikuti penomoran ceil(tanggal/7): "Week 1" = tanggal 1..7,
// "Week 5" = tanggal 29..31. Bucketing berbasis tanggal kalender, bukan
// minggu ISO.
type WeekBucket struct {
	Week       string  `json:"week"`
	TotalHours float64 `json:"total_hours"`
	DaysWorked int     `json:"days_worked"`
}

type MonthlyReport struct {
	EmployeeID     string        `json:"employee_id"`
	Year           int           `json:"year"`
	Month          int           `json:"month"`
	TotalHours     float64       `json:"total_hours"`
	DaysWorked     int           `json:"days_worked"`
	AvgHoursPerDay float64       `json:"avg_hours_per_day"`
	WeeklySummary  []WeekBucket  `json:"weekly_summary"`
	DailyBreakdown []DailyBucket `json:"daily_breakdown"`
}

type EmployeeSummary struct {
	EmployeeID         string  `json:"employee_id"`
	EmployeeName       string  `json:"employee_name"`
	TotalHours         float64 `json:"total_hours"`
	DaysWorked         int     `json:"days_worked"`
	AvgHoursPerDay     float64 `json:"avg_hours_per_day"`
	ExpectedTotalHours float64 `json:"expected_total_hours"`
	Variance           float64 `json:"variance"`
	CompliancePercent  float64 `json:"compliance_percent"`
}

type SummaryReport struct {
	StartDate string            `json:"start_date"`
	EndDate   string            `json:"end_date"`
	Employees []EmployeeSummary `json:"employees"`
}

type DayComparison struct {
	Date                 string  `json:"date"`
	ActualStart          string  `json:"actual_start"`
	ActualEnd            string  `json:"actual_end"`
	StartVarianceMinutes int     `json:"start_variance_minutes"`
	HoursWorked          float64 `json:"hours_worked"`
	HoursVariance        float64 `json:"hours_variance"`
	OnTime               bool    `json:"on_time"`
	MeetsExpectedHours   bool    `json:"meets_expected_hours"`
	Compliant            bool    `json:"compliant"`
}

type ComplianceSummary struct {
	TotalDays               int     `json:"total_days"`
	OnTimeDays              int     `json:"on_time_days"`
	OnTimePercent           float64 `json:"on_time_percent"`
	MeetsHoursDays          int     `json:"meets_hours_days"`
	MeetsHoursPercent       float64 `json:"meets_hours_percent"`
	CompliantDays           int     `json:"compliant_days"`
	CompliantPercent        float64 `json:"compliant_percent"`
	AvgStartVarianceMinutes float64 `json:"avg_start_variance_minutes"`
	AvgHoursVariance        float64 `json:"avg_hours_variance"`
}

type ComplianceReport struct {
	EmployeeID string            `json:"employee_id"`
	StartDate  string            `json:"start_date"`
	EndDate    string            `json:"end_date"`
	Days       []DayComparison   `json:"days"`
	Summary    ComplianceSummary `json:"summary"`
}

type IncompleteRecord struct {
	AttendanceID string `json:"attendance_id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Date         string `json:"date"`
	ClockIn      string `json:"clock_in"`
	Type         string `json:"type"`     // missing_clock_out
	Severity     string `json:"severity"` // high
}

type MissingDay struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Date         string `json:"date"`
	Type         string `json:"type"`     // absent
	Severity     string `json:"severity"` // medium
}

type ExceptionSummary struct {
	IncompleteCount     int `json:"incomplete_count"`
	MissingDayCount     int `json:"missing_day_count"`
	EmployeesWithIssues int `json:"employees_with_issues"`
}

type ExceptionReport struct {
	StartDate         string             `json:"start_date"`
	EndDate           string             `json:"end_date"`
	IncompleteRecords []IncompleteRecord `json:"incomplete_records"`
	MissingDays       []MissingDay       `json:"missing_days"`
	Summary           ExceptionSummary   `json:"summary"`
}
