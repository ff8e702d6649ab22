package events

import "time"

const PersonHiredTopic = "hr.person.hired.v1"

type PersonHiredEvent struct {
	EventType      string    `json:"event_type"`
	PersonID       string    `json:"person_id"`
	DepartmentID   string    `json:"department_id"`
	EmploymentKind string    `json:"employment_kind"`
	HireDate       string    `json:"hire_date"`
	OccurredAt     time.Time `json:"occurred_at"`
}
