package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/firedesk/timecard/internal/shared"
)

// Repository encapsulates DB operations for templates and the send history.
type Repository interface {
	ListTemplates(ctx context.Context) ([]Template, error)
	GetTemplate(ctx context.Context, id int64) (Template, error)
	RecordSend(ctx context.Context, entry HistoryEntry) (HistoryEntry, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns the pgx-backed messaging store.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) ListTemplates(ctx context.Context) ([]Template, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, subject, template, is_default, created_at, updated_at
FROM message_templates ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("messaging: list templates: %w", err)
	}
	defer rows.Close()
	var templates []Template
	for rows.Next() {
		var tpl Template
		if err := rows.Scan(&tpl.ID, &tpl.Name, &tpl.Subject, &tpl.Body, &tpl.Default,
			&tpl.CreatedAt, &tpl.UpdatedAt); err != nil {
			return nil, fmt.Errorf("messaging: scan template: %w", err)
		}
		templates = append(templates, tpl)
	}
	return templates, rows.Err()
}

func (r *repository) GetTemplate(ctx context.Context, id int64) (Template, error) {
	var tpl Template
	err := r.db.QueryRow(ctx, `SELECT id, name, subject, template, is_default, created_at, updated_at
FROM message_templates WHERE id=$1`, id).
		Scan(&tpl.ID, &tpl.Name, &tpl.Subject, &tpl.Body, &tpl.Default, &tpl.CreatedAt, &tpl.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Template{}, fmt.Errorf("messaging: template %d: %w", id, shared.ErrNotFound)
		}
		return Template{}, fmt.Errorf("messaging: get template: %w", err)
	}
	return tpl, nil
}

func (r *repository) RecordSend(ctx context.Context, entry HistoryEntry) (HistoryEntry, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO message_history
(employee_id, subject, message, sent_by, sent_at)
VALUES ($1,$2,$3,$4,$5)
RETURNING id`,
		entry.EmployeeID, entry.Subject, entry.Message, entry.SentBy, entry.SentAt)
	if err := row.Scan(&entry.ID); err != nil {
		return HistoryEntry{}, fmt.Errorf("messaging: record send: %w", err)
	}
	return entry, nil
}
