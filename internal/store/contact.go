// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

// CreateContactSubmissionParams holds the fields for CreateContactSubmission.
type CreateContactSubmissionParams struct {
	ID        string
	Name      string
	Email     string
	Subject   sql.NullString
	Message   string
	CreatedAt time.Time
}

const createContactSubmission = `
INSERT INTO contact_submissions (id, name, email, subject, message, read, created_at)
VALUES (?, ?, ?, ?, ?, FALSE, ?)`

// CreateContactSubmission inserts a contact form submission.
func (q *Queries) CreateContactSubmission(ctx context.Context, arg CreateContactSubmissionParams) error {
	_, err := q.db.ExecContext(ctx, createContactSubmission,
		arg.ID, arg.Name, arg.Email, arg.Subject, arg.Message, arg.CreatedAt)
	return err
}

const listContactSubmissions = `
SELECT id, name, email, subject, message, read, created_at
FROM contact_submissions
ORDER BY created_at DESC
LIMIT ?`

// ListContactSubmissions returns the newest submissions up to limit.
func (q *Queries) ListContactSubmissions(ctx context.Context, limit int64) ([]model.ContactSubmission, error) {
	rows, err := q.db.QueryContext(ctx, listContactSubmissions, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.ContactSubmission
	for rows.Next() {
		var i model.ContactSubmission
		if err := rows.Scan(&i.ID, &i.Name, &i.Email, &i.Subject,
			&i.Message, &i.Read, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

// CountContactSubmissions returns the total number of submissions.
func (q *Queries) CountContactSubmissions(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_submissions`).Scan(&n)
	return n, err
}

// CountUnreadContactSubmissions returns the number of unread submissions.
func (q *Queries) CountUnreadContactSubmissions(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contact_submissions WHERE read IS NOT TRUE`).Scan(&n)
	return n, err
}

const markContactSubmissionRead = `
UPDATE contact_submissions SET read = TRUE WHERE id = ?`

// MarkContactSubmissionRead flags one submission as read.
func (q *Queries) MarkContactSubmissionRead(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, markContactSubmissionRead, id)
	return err
}
