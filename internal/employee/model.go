package employee

import "time"

// Employee is a local credential record. Identity data (name, rank, schedule)
// lives in Kronos; this row only carries what login needs.
type Employee struct {
	ID           int64
	EmployeeID   string
	Name         string
	Rank         string
	Email        string
	PasswordHash string
	Admin        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
