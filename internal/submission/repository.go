package submission

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository encapsulates DB operations for the submission ledger.
type Repository interface {
	Insert(ctx context.Context, rec Record) (Record, error)
	Latest(ctx context.Context, payPeriod string) (*Record, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns the pgx-backed submission ledger.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, rec Record) (Record, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO timecard_submissions
(reference, pay_period, sent_by, sent_at, validated_count, finance_email)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id, created_at`,
		rec.Reference, rec.PayPeriod, rec.SentBy, rec.SentAt, rec.ValidatedCount, rec.FinanceEmail)
	if err := row.Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return Record{}, fmt.Errorf("submission: insert: %w", err)
	}
	return rec, nil
}

func (r *repository) Latest(ctx context.Context, payPeriod string) (*Record, error) {
	var rec Record
	err := r.db.QueryRow(ctx, `SELECT id, reference, pay_period, sent_by, sent_at, validated_count, finance_email, created_at
FROM timecard_submissions WHERE pay_period=$1 ORDER BY sent_at DESC LIMIT 1`, payPeriod).
		Scan(&rec.ID, &rec.Reference, &rec.PayPeriod, &rec.SentBy, &rec.SentAt, &rec.ValidatedCount, &rec.FinanceEmail, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("submission: latest: %w", err)
	}
	return &rec, nil
}
