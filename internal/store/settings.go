// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

const listWebsiteSettings = `
SELECT id, section, visible, order_index, settings, updated_at
FROM website_settings
ORDER BY order_index IS NULL, order_index ASC, section ASC`

// ListWebsiteSettings returns all per-section settings rows in display order.
func (q *Queries) ListWebsiteSettings(ctx context.Context) ([]model.WebsiteSetting, error) {
	rows, err := q.db.QueryContext(ctx, listWebsiteSettings)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.WebsiteSetting
	for rows.Next() {
		i, err := scanWebsiteSetting(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getWebsiteSettingBySection = `
SELECT id, section, visible, order_index, settings, updated_at
FROM website_settings
WHERE section = ?`

// GetWebsiteSettingBySection returns the settings row for one section.
// Returns sql.ErrNoRows when the section is unconfigured.
func (q *Queries) GetWebsiteSettingBySection(ctx context.Context, section string) (model.WebsiteSetting, error) {
	row := q.db.QueryRowContext(ctx, getWebsiteSettingBySection, section)

	var i model.WebsiteSetting
	var settings sql.NullString
	err := row.Scan(&i.ID, &i.Section, &i.Visible, &i.OrderIndex, &settings, &i.UpdatedAt)
	if settings.Valid {
		i.Settings = []byte(settings.String)
	}
	return i, err
}

// UpsertWebsiteSettingParams holds the fields for UpsertWebsiteSetting.
type UpsertWebsiteSettingParams struct {
	ID         string
	Section    string
	Visible    sql.NullBool
	OrderIndex sql.NullInt64
	Settings   sql.NullString
	UpdatedAt  time.Time
}

const upsertWebsiteSetting = `
INSERT INTO website_settings (id, section, visible, order_index, settings, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (section) DO UPDATE SET
    visible = excluded.visible,
    order_index = excluded.order_index,
    settings = excluded.settings,
    updated_at = excluded.updated_at`

// UpsertWebsiteSetting inserts or replaces the settings row for a section.
// Sections are keyed uniquely by name, so at most one row per section survives.
func (q *Queries) UpsertWebsiteSetting(ctx context.Context, arg UpsertWebsiteSettingParams) error {
	_, err := q.db.ExecContext(ctx, upsertWebsiteSetting,
		arg.ID, arg.Section, arg.Visible, arg.OrderIndex, arg.Settings, arg.UpdatedAt)
	return err
}

const deleteWebsiteSetting = `
DELETE FROM website_settings WHERE section = ?`

// DeleteWebsiteSetting removes the settings row for a section.
func (q *Queries) DeleteWebsiteSetting(ctx context.Context, section string) error {
	_, err := q.db.ExecContext(ctx, deleteWebsiteSetting, section)
	return err
}

// scanWebsiteSetting scans one website_settings row from a *sql.Rows.
func scanWebsiteSetting(rows *sql.Rows) (model.WebsiteSetting, error) {
	var i model.WebsiteSetting
	var settings sql.NullString
	err := rows.Scan(&i.ID, &i.Section, &i.Visible, &i.OrderIndex, &settings, &i.UpdatedAt)
	if settings.Valid {
		i.Settings = []byte(settings.String)
	}
	return i, err
}
