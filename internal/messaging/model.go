// Package messaging lets admins send one-off notifications to employees from
// canned templates and keeps a history of everything delivered.
package messaging

import "time"

// Template is a canned notification body. Placeholders like {employeeName}
// are substituted client-side before sending.
type Template struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	Body      string    `json:"template"`
	Default   bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HistoryEntry records one delivered message.
type HistoryEntry struct {
	ID         int64     `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	SentBy     string    `json:"sentBy"`
	SentAt     time.Time `json:"sentAt"`
}
