package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/firedesk/timecard/internal/shared"
)

// Repository encapsulates DB operations for the employee roster.
type Repository interface {
	GetByEmployeeID(ctx context.Context, employeeID string) (Employee, error)
	SetPassword(ctx context.Context, employeeID, passwordHash string) error
	List(ctx context.Context) ([]Employee, error)
	UpsertRoster(ctx context.Context, roster []Employee) (int64, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns the pgx-backed employee store.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) GetByEmployeeID(ctx context.Context, employeeID string) (Employee, error) {
	var e Employee
	err := r.db.QueryRow(ctx, `SELECT id, employee_id, name, rank, email, password_hash, is_admin, created_at, updated_at
FROM employees WHERE employee_id=$1`, employeeID).
		Scan(&e.ID, &e.EmployeeID, &e.Name, &e.Rank, &e.Email, &e.PasswordHash, &e.Admin, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, fmt.Errorf("employee: %s: %w", employeeID, shared.ErrNotFound)
		}
		return Employee{}, fmt.Errorf("employee: get: %w", err)
	}
	return e, nil
}

func (r *repository) SetPassword(ctx context.Context, employeeID, passwordHash string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE employees SET password_hash=$2, updated_at=NOW() WHERE employee_id=$1`,
		employeeID, passwordHash)
	if err != nil {
		return fmt.Errorf("employee: set password: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("employee: %s: %w", employeeID, shared.ErrNotFound)
	}
	return nil
}

func (r *repository) List(ctx context.Context) ([]Employee, error) {
	rows, err := r.db.Query(ctx, `SELECT id, employee_id, name, rank, email, password_hash, is_admin, created_at, updated_at
FROM employees ORDER BY employee_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("employee: list: %w", err)
	}
	defer rows.Close()
	var out []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Name, &e.Rank, &e.Email, &e.PasswordHash, &e.Admin,
			&e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("employee: scan: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// UpsertRoster refreshes identity fields from the workforce directory.
// Credentials and the admin flag are local and never overwritten.
func (r *repository) UpsertRoster(ctx context.Context, roster []Employee) (int64, error) {
	var count int64
	for _, e := range roster {
		if e.EmployeeID == "" {
			continue
		}
		_, err := r.db.Exec(ctx, `INSERT INTO employees (employee_id, name, email, rank)
VALUES ($1,$2,$3,$4)
ON CONFLICT (employee_id) DO UPDATE SET
	name=EXCLUDED.name,
	email=EXCLUDED.email,
	rank=EXCLUDED.rank,
	updated_at=NOW()`,
			e.EmployeeID, e.Name, e.Email, e.Rank)
		if err != nil {
			return count, fmt.Errorf("employee: upsert %s: %w", e.EmployeeID, err)
		}
		count++
	}
	return count, nil
}
