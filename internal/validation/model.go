package validation

import "time"

// Record is a committed VALIDATED transition for one employee and pay period.
// At most one row exists per (employee, pay period), enforced by a unique
// constraint and upsert semantics.
type Record struct {
	ID             int64     `json:"id"`
	EmployeeID     string    `json:"employeeId"`
	PayPeriod      string    `json:"payPeriod"`
	ValidatedBy    string    `json:"validatedBy"`
	ValidatorRank  string    `json:"validatorRank"`
	ValidationDate time.Time `json:"validationDate"`
	Filename       string    `json:"filename"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Validator identifies the operator stamping a batch.
type Validator struct {
	Name string `json:"name" validate:"required"`
	Rank string `json:"rank" validate:"required"`
}

// ItemResult is the per-employee outcome of a batch validation.
type ItemResult struct {
	EmployeeID string `json:"employeeId"`
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Summary aggregates a validate-all run.
type Summary struct {
	Total     int `json:"total"`
	Validated int `json:"validated"`
	Failed    int `json:"failed"`
}
