package employee

type CreateEmployeeRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Position       string `json:"position"`
	HireDate       string `json:"hire_date" binding:"required"`
	EmployeeNumber string `json:"employee_number"`
}

type UpdateEmployeeRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Position string `json:"position"`
	IsActive *bool  `json:"is_active"`
}

type EmployeeResponse struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Position       string `json:"position,omitempty"`
	IsActive       bool   `json:"is_active"`
	HireDate       string `json:"hire_date"`
}
