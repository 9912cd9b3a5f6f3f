package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeNumber string    `gorm:"column:employee_number;type:varchar(20);not null;uniqueIndex:uq_employee_number"`
	FullName       string    `gorm:"column:full_name;not null"`
	Email          string    `gorm:"column:email;uniqueIndex:uq_employee_email"`
	Position       string    `gorm:"column:position;type:varchar(100)"`
	IsActive       bool      `gorm:"column:is_active;not null;default:true;index"`
	HireDate       time.Time `gorm:"column:hire_date;type:date"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
