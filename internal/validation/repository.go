package validation

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository encapsulates DB operations for the validation ledger.
type Repository interface {
	Upsert(ctx context.Context, rec Record) (Record, error)
	ListByPeriod(ctx context.Context, payPeriod string) ([]Record, error)
	Delete(ctx context.Context, employeeID, payPeriod string) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns the pgx-backed validation ledger.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, rec Record) (Record, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO timecard_validations
(employee_id, pay_period, validated_by, validator_rank, validation_date, filename)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (employee_id, pay_period) DO UPDATE SET
	validated_by=EXCLUDED.validated_by,
	validator_rank=EXCLUDED.validator_rank,
	validation_date=EXCLUDED.validation_date,
	filename=EXCLUDED.filename,
	updated_at=NOW()
RETURNING id, created_at, updated_at`,
		rec.EmployeeID, rec.PayPeriod, rec.ValidatedBy, rec.ValidatorRank, rec.ValidationDate, rec.Filename)
	if err := row.Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return Record{}, fmt.Errorf("validation: upsert: %w", err)
	}
	return rec, nil
}

func (r *repository) ListByPeriod(ctx context.Context, payPeriod string) ([]Record, error) {
	rows, err := r.db.Query(ctx, `SELECT id, employee_id, pay_period, validated_by, validator_rank, validation_date, filename, created_at, updated_at
FROM timecard_validations WHERE pay_period=$1 ORDER BY employee_id ASC`, payPeriod)
	if err != nil {
		return nil, fmt.Errorf("validation: list: %w", err)
	}
	defer rows.Close()
	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.PayPeriod, &rec.ValidatedBy, &rec.ValidatorRank,
			&rec.ValidationDate, &rec.Filename, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("validation: scan: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *repository) Delete(ctx context.Context, employeeID, payPeriod string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM timecard_validations WHERE employee_id=$1 AND pay_period=$2`, employeeID, payPeriod)
	if err != nil {
		return fmt.Errorf("validation: delete: %w", err)
	}
	return nil
}
