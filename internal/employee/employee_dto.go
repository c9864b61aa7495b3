package employee

type CreateEmployeeRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone"`
	EmploymentType string `json:"employment_type"`
	Status         string `json:"status"`
	WorkMode       string `json:"work_mode"`
	TechTeam       bool   `json:"tech_team"`
	JoiningDate    string `json:"joining_date" binding:"required"`
	EmployeeNumber string `json:"employee_number"`
}

type UpdateEmployeeRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone"`
	EmploymentType string `json:"employment_type"`
	Status         string `json:"status" binding:"required"`
	WorkMode       string `json:"work_mode"`
	TechTeam       bool   `json:"tech_team"`
	JoiningDate    string `json:"joining_date" binding:"required"`
}

type EmployeeResponse struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	EmploymentType string `json:"employment_type,omitempty"`
	Status         string `json:"status"`
	WorkMode       string `json:"work_mode,omitempty"`
	TechTeam       bool   `json:"tech_team"`
	JoiningDate    string `json:"joining_date"`
	CompanyID      string `json:"company_id"`
}
