package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Attendance struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index;uniqueIndex:uq_attendance_open,where:clock_out IS NULL"`
	ClockIn    time.Time  `gorm:"column:clock_in;type:timestamp;not null;index"`
	ClockOut   *time.Time `gorm:"column:clock_out;type:timestamp"`
	// HoursWorked diisi sekali saat clock-out (jam, 2 desimal).
	HoursWorked *float64 `gorm:"column:hours_worked;type:numeric(6,2)"`
	// NetHoursWorked dicadangkan untuk potongan istirahat. Belum pernah
	// dihitung; agregasi dan payroll tetap memakai HoursWorked.
	NetHoursWorked *float64       `gorm:"column:net_hours_worked;type:numeric(6,2)"`
	Notes          *string        `gorm:"column:notes;type:varchar(500)"`
	Source         string         `gorm:"column:source;type:varchar(30);not null;default:MANUAL"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
	Employee       *EmployeeRef   `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
