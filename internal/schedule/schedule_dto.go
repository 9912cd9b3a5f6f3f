package schedule

type UpsertScheduleRequest struct {
	StartTime     string  `json:"start_time" binding:"required,datetime=15:04"`
	EndTime       string  `json:"end_time" binding:"required,datetime=15:04"`
	ExpectedHours float64 `json:"expected_hours" binding:"required,gt=0,lte=24"`
}

type ScheduleResponse struct {
	EmployeeID    string  `json:"employee_id"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	ExpectedHours float64 `json:"expected_hours"`
	IsDefault     bool    `json:"is_default"`
}
