package attendance

// TimestampLayout adalah format semua instant di API: waktu lokal tanpa
// offset, satu timezone deployment.
const TimestampLayout = "2006-01-02T15:04:05"

type ClockInRequest struct {
	Source string  `json:"source"`
	Notes  *string `json:"notes"`
}

type ClockOutRequest struct {
	Notes *string `json:"notes"`
}

// CorrectionRequest adalah jalur koreksi manual admin: timestamp bebas,
// tanpa pengecekan "satu record terbuka per karyawan".
type CorrectionRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	ClockIn    string  `json:"clock_in" binding:"required"`
	ClockOut   *string `json:"clock_out"`
	Notes      *string `json:"notes"`
	Source     string  `json:"source"`
}

type UpdateCorrectionRequest struct {
	ClockIn  string  `json:"clock_in" binding:"required"`
	ClockOut *string `json:"clock_out"`
	Notes    *string `json:"notes"`
}

type ListFilter struct {
	EmployeeID string `form:"employee_id"`
	StartDate  string `form:"start_date"` // YYYY-MM-DD
	EndDate    string `form:"end_date"`   // YYYY-MM-DD, inklusif
}

type AttendanceResponse struct {
	ID           string   `json:"id"`
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name,omitempty"`
	ClockIn      string   `json:"clock_in"`
	ClockOut     *string  `json:"clock_out,omitempty"`
	HoursWorked  *float64 `json:"hours_worked,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
	Source       string   `json:"source"`
}

// StatusResponse adalah AttendanceResponse plus hasil klasifikasi.
type StatusResponse struct {
	AttendanceResponse
	Status StatusResult `json:"status"`
}
