package events

import "time"

const (
	EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"
	EmployeeCreatedType    = "employee_created"
)

// EmployeeCreatedEvent never carries credentials. HasLogin tells consumers
// whether an identity was provisioned alongside the profile.
type EmployeeCreatedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeCode string    `json:"employee_code"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Designation  string    `json:"designation,omitempty"`
	Department   string    `json:"department,omitempty"`
	HasLogin     bool      `json:"has_login"`
	OccurredAt   time.Time `json:"occurred_at"`
}
