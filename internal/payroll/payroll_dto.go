package payroll

type ComputeRequest struct {
	EmployeeID string  `json:"employee_id" binding:"omitempty,uuid"`
	StartDate  string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate    string  `json:"end_date" binding:"required,datetime=2006-01-02"`
	HourlyRate float64 `json:"hourly_rate" binding:"required,gt=0"`
}

type PayrollDay struct {
	Date        string  `json:"date"`
	HoursWorked float64 `json:"hours_worked"`
	Amount      float64 `json:"amount"`
	Late        bool    `json:"late"`
	LateMinutes int     `json:"late_minutes"`
}

// PayrollReport adalah rangkuman gaji satu karyawan dalam satu rentang.
// Amount selalu jam dikali tarif; potongan istirahat belum ikut dihitung
// (net_hours_worked masih kolom cadangan).
type PayrollReport struct {
	EmployeeID            string       `json:"employee_id"`
	EmployeeName          string       `json:"employee_name"`
	StartDate             string       `json:"start_date"`
	EndDate               string       `json:"end_date"`
	HourlyRate            float64      `json:"hourly_rate"`
	TotalHours            float64      `json:"total_hours"`
	PayrollAmount         float64      `json:"payroll_amount"`
	DaysWorked            int          `json:"days_worked"`
	ExpectedWorkDays      int          `json:"expected_work_days"`
	MissingDays           int          `json:"missing_days"`
	AttendanceRatePercent float64      `json:"attendance_rate_percent"`
	DailyBreakdown        []PayrollDay `json:"daily_breakdown"`
}

type PayrollRunReport struct {
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	HourlyRate  float64         `json:"hourly_rate"`
	TotalHours  float64         `json:"total_hours"`
	TotalAmount float64         `json:"total_amount"`
	Employees   []PayrollReport `json:"employees"`
}
