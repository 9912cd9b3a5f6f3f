package events

import "time"

const AttendanceTopic = "timeclock.attendance.v1"

type AttendanceClockedOutEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	AttendanceID string    `json:"attendance_id"`
	EmployeeID   string    `json:"employee_id"`
	WorkDate     string    `json:"work_date"` // YYYY-MM-DD, local calendar
	HoursWorked  float64   `json:"hours_worked"`
	OccurredAt   time.Time `json:"occurred_at"`
}
