package attendance

type CheckInRequest struct {
	// At opsional (RFC3339); kosong berarti waktu server.
	At    string  `json:"at"`
	Notes *string `json:"notes"`
}

type CheckOutRequest struct {
	At    string  `json:"at"`
	Notes *string `json:"notes"`
}

type AttendanceResponse struct {
	ID             string  `json:"id"`
	CompanyID      string  `json:"company_id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	AttendanceDate string  `json:"attendance_date"`
	CheckIn        string  `json:"check_in"`
	CheckOut       *string `json:"check_out,omitempty"`
	Status         string  `json:"status"`
	WorkedHours    float64 `json:"worked_hours"`
	Notes          *string `json:"notes,omitempty"`
}
