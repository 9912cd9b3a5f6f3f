package schedule

import (
	"time"

	"github.com/google/uuid"
)

// EmployeeSchedule adalah jadwal kerja yang dikonfigurasi per karyawan.
// Satu baris per karyawan (upsert). Karyawan tanpa baris memakai default
// sistem lewat Resolver, tanpa pernah menulis baris default ke tabel.
type EmployeeSchedule struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_schedule_employee"`
	StartTime     string    `gorm:"column:start_time;type:varchar(5);not null"` // HH:MM
	EndTime       string    `gorm:"column:end_time;type:varchar(5);not null"`   // HH:MM
	ExpectedHours float64   `gorm:"column:expected_hours;type:numeric(4,2);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (EmployeeSchedule) TableName() string {
	return "employee_schedules"
}
