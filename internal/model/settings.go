// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Well-known section keys. The settings table may carry rows for sections the
// application does not know about; unknown sections are simply never looked up.
const (
	SectionNavbar  = "navbar"
	SectionHero    = "hero"
	SectionAbout   = "about"
	SectionContent = "content"
	SectionContact = "contact"
	SectionFooter  = "footer"
)

// WebsiteSetting is one per-section configuration row. Sections are keyed
// uniquely by name; Settings is an opaque JSON payload whose shape depends on
// the section.
type WebsiteSetting struct {
	ID         string          `json:"id"`
	Section    string          `json:"section"`
	Visible    sql.NullBool    `json:"visible,omitempty"`
	OrderIndex sql.NullInt64   `json:"order_index,omitempty"`
	Settings   json.RawMessage `json:"settings,omitempty"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// IsVisible reports whether the section should render. Only an explicit false
// suppresses a section; NULL or true means visible.
func (w *WebsiteSetting) IsVisible() bool {
	return !w.Visible.Valid || w.Visible.Bool
}

// DecodeSettings unmarshals the opaque payload into v. Unrecognized keys in
// the payload are ignored; an empty payload leaves v untouched.
func (w *WebsiteSetting) DecodeSettings(v any) error {
	if len(w.Settings) == 0 {
		return nil
	}
	return json.Unmarshal(w.Settings, v)
}

// Per-section payload shapes. Each section decodes only the keys it
// recognizes; zero values fall back to built-in defaults at render time.

// HeroSettings configures the hero section.
type HeroSettings struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	CTALabel string `json:"cta_label"`
}

// AboutSettings configures the about section.
type AboutSettings struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ContentSettings configures the content cards section.
type ContentSettings struct {
	Title string `json:"title"`
}

// ContactSettings configures the contact section.
type ContactSettings struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	ShowResume bool   `json:"show_resume"`
}

// FooterSettings configures the footer.
type FooterSettings struct {
	Text string `json:"text"`
}

// NavbarSettings configures the navigation bar.
type NavbarSettings struct {
	Brand string `json:"brand"`
}
