package events

import "time"

const AttendanceRecordedTopic = "crm.attendance.recorded.v1"

// AttendanceRecordedEvent adalah mirror eksplisit tiap check-in/check-out
// untuk sistem downstream. Ditulis lewat outbox dalam transaksi yang sama
// dengan row attendance, jadi tidak ada dual-write yang diam-diam divergen.
type AttendanceRecordedEvent struct {
	EventType    string    `json:"event_type"` // attendance_checked_in | attendance_checked_out
	RequestID    string    `json:"request_id,omitempty"`
	AttendanceID string    `json:"attendance_id"`
	EmployeeID   string    `json:"employee_id"`
	CompanyID    string    `json:"company_id"`
	Status       string    `json:"status"`
	WorkedHours  float64   `json:"worked_hours,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
